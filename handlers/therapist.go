package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	therapistRepo "mindease/database/repository/therapist"
	"mindease/models"
	"mindease/services/scheduling"
	"mindease/utils"
)

// TherapistHandler serves therapist records and their consulting-hours
// pattern, plus the explicit slot-materialization endpoint.
type TherapistHandler struct {
	Repo       therapistRepo.Repository
	Scheduling scheduling.Service
}

func NewTherapistHandler(repo therapistRepo.Repository, svc scheduling.Service) *TherapistHandler {
	return &TherapistHandler{Repo: repo, Scheduling: svc}
}

func (h *TherapistHandler) CreateTherapistHandler(c *gin.Context) {
	var input struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required,email"`
		Bio   string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	therapist := &models.Therapist{
		ID:              uuid.NewString(),
		Name:            input.Name,
		Email:           input.Email,
		Bio:             input.Bio,
		ConsultingHours: []models.ConsultingHour{},
	}
	if err := h.Repo.Create(c.Request.Context(), therapist); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, therapist)
}

func (h *TherapistHandler) GetTherapistHandler(c *gin.Context) {
	therapist, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if therapist == nil {
		utils.JSONError(c, http.StatusNotFound, "Not found", "therapist not found")
		return
	}
	c.JSON(http.StatusOK, therapist)
}

func (h *TherapistHandler) GetConsultingHoursHandler(c *gin.Context) {
	hours, err := h.Scheduling.GetConsultingHours(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"consultingHours": hours})
}

func (h *TherapistHandler) ReplaceConsultingHoursHandler(c *gin.Context) {
	var input struct {
		ConsultingHours []models.ConsultingHour `json:"consultingHours" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	if err := h.Scheduling.ReplaceConsultingHours(c.Request.Context(), c.Param("id"), input.ConsultingHours); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"consultingHours": input.ConsultingHours})
}

func (h *TherapistHandler) GenerateSlotsHandler(c *gin.Context) {
	var input struct {
		StartDate string `json:"startDate"`
		Days      int    `json:"days"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if input.Days == 0 {
		input.Days = 30
	}

	startDate := time.Now()
	if input.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", input.StartDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "invalid startDate, expected YYYY-MM-DD")
			return
		}
		startDate = parsed
	}

	result, err := h.Scheduling.GenerateSlots(c.Request.Context(), c.Param("id"), startDate, input.Days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
