package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindease/services/booking"
	"mindease/utils"
)

// BookingHandler serves the session booking and lifecycle endpoints.
type BookingHandler struct {
	Booking booking.Service
}

func NewBookingHandler(svc booking.Service) *BookingHandler {
	return &BookingHandler{Booking: svc}
}

func (h *BookingHandler) CreateSessionHandler(c *gin.Context) {
	var input struct {
		UserID      string `json:"userId" binding:"required"`
		TherapistID string `json:"therapistId" binding:"required"`
		Date        string `json:"date" binding:"required"`
		StartTime   string `json:"startTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	session, err := h.Booking.CreateSession(c.Request.Context(), input.UserID, input.TherapistID, input.Date, input.StartTime)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *BookingHandler) GetSessionHandler(c *gin.Context) {
	session, err := h.Booking.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *BookingHandler) ConfirmSessionHandler(c *gin.Context) {
	session, err := h.Booking.ConfirmSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *BookingHandler) CompleteSessionHandler(c *gin.Context) {
	session, err := h.Booking.CompleteSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *BookingHandler) CancelSessionHandler(c *gin.Context) {
	var input struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	session, err := h.Booking.CancelSession(c.Request.Context(), c.Param("id"), input.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *BookingHandler) ListUserSessionsHandler(c *gin.Context) {
	sessions, err := h.Booking.ListUserSessions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *BookingHandler) ListTherapistSessionsHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "date query parameter is required")
		return
	}

	sessions, err := h.Booking.ListTherapistSessions(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
