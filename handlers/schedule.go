package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindease/models"
	"mindease/services/scheduling"
	"mindease/utils"
)

// ScheduleHandler serves day-schedule reads and custom slot edits.
type ScheduleHandler struct {
	Scheduling scheduling.Service
}

func NewScheduleHandler(svc scheduling.Service) *ScheduleHandler {
	return &ScheduleHandler{Scheduling: svc}
}

// GetScheduleRangeHandler returns schedules for ?start=...&end=...; when
// includeBooked is not "true", booked slots are filtered out of the response.
func (h *ScheduleHandler) GetScheduleRangeHandler(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "start and end query parameters are required")
		return
	}
	includeBooked := c.Query("includeBooked") == "true"

	schedules, err := h.Scheduling.GetScheduleRange(c.Request.Context(), c.Param("id"), start, end, includeBooked)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}

func (h *ScheduleHandler) GetDayScheduleHandler(c *gin.Context) {
	schedule, err := h.Scheduling.GetDaySchedule(c.Request.Context(), c.Param("id"), c.Param("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

func (h *ScheduleHandler) CreateCustomSlotHandler(c *gin.Context) {
	var input struct {
		Date        string `json:"date" binding:"required"`
		StartTime   string `json:"startTime" binding:"required"`
		EndTime     string `json:"endTime" binding:"required"`
		IsAvailable *bool  `json:"isAvailable"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	isAvailable := true
	if input.IsAvailable != nil {
		isAvailable = *input.IsAvailable
	}

	schedule, err := h.Scheduling.CreateCustomSlot(c.Request.Context(), c.Param("id"), input.Date, input.StartTime, input.EndTime, isAvailable)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

func (h *ScheduleHandler) UpdateSlotHandler(c *gin.Context) {
	var input struct {
		Date      string            `json:"date" binding:"required"`
		StartTime string            `json:"startTime" binding:"required"`
		Updates   models.SlotUpdate `json:"updates"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	schedule, err := h.Scheduling.UpdateSlot(c.Request.Context(), c.Param("id"), input.Date, input.StartTime, input.Updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

func (h *ScheduleHandler) DeleteSlotHandler(c *gin.Context) {
	date := c.Query("date")
	startTime := c.Query("startTime")
	if date == "" || startTime == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "date and startTime query parameters are required")
		return
	}

	if err := h.Scheduling.DeleteSlot(c.Request.Context(), c.Param("id"), date, startTime); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
