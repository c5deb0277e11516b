package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mindease/handlers"
	"mindease/utils"
)

// RegisterRoutes wires the HTTP surface onto the router.
func RegisterRoutes(router *gin.Engine, h *handlers.HandlerBundle) {
	router.Use(cors.Default())

	RegisterHealthRoute(router)

	api := router.Group("/api")

	therapists := api.Group("/therapists")
	{
		therapists.POST("", h.Therapist.CreateTherapistHandler)
		therapists.GET("/:id", h.Therapist.GetTherapistHandler)

		therapists.GET("/:id/consulting-hours", h.Therapist.GetConsultingHoursHandler)
		therapists.PUT("/:id/consulting-hours", h.Therapist.ReplaceConsultingHoursHandler)

		therapists.POST("/:id/schedule/generate", h.Therapist.GenerateSlotsHandler)
		therapists.GET("/:id/schedule", h.Schedule.GetScheduleRangeHandler)
		therapists.GET("/:id/schedule/:date", h.Schedule.GetDayScheduleHandler)

		therapists.POST("/:id/slots", h.Schedule.CreateCustomSlotHandler)
		therapists.PATCH("/:id/slots", h.Schedule.UpdateSlotHandler)
		therapists.DELETE("/:id/slots", h.Schedule.DeleteSlotHandler)

		therapists.GET("/:id/sessions", h.Booking.ListTherapistSessionsHandler)
	}

	sessions := api.Group("/sessions")
	{
		sessions.POST("", h.Booking.CreateSessionHandler)
		sessions.GET("/:id", h.Booking.GetSessionHandler)
		sessions.POST("/:id/confirm", h.Booking.ConfirmSessionHandler)
		sessions.POST("/:id/complete", h.Booking.CompleteSessionHandler)
		sessions.POST("/:id/cancel", h.Booking.CancelSessionHandler)
	}

	api.GET("/users/:id/sessions", h.Booking.ListUserSessionsHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Mongo || !status.Redis {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
}
