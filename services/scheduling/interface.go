package scheduling

import (
	"context"
	"time"

	"mindease/models"
)

// Service is the scheduling engine: consulting-hours policy, slot
// generation over a date window, and day-schedule reads and point edits.
type Service interface {
	// GetConsultingHours returns the therapist's recurring pattern.
	GetConsultingHours(ctx context.Context, therapistID string) ([]models.ConsultingHour, error)
	// ReplaceConsultingHours validates and fully replaces the pattern. It
	// never regenerates slots; materialization is a separate explicit call.
	ReplaceConsultingHours(ctx context.Context, therapistID string, hours []models.ConsultingHour) error

	// GenerateSlots materializes the pattern over [startDate, startDate+days).
	// It is idempotent: re-running with an unchanged pattern reports inserts
	// only for genuinely new dates, and customized slots survive regeneration.
	GenerateSlots(ctx context.Context, therapistID string, startDate time.Time, days int) (models.GenerateResult, error)

	// GetDaySchedule returns the schedule for one date, with booked slots
	// annotated from live sessions. A missing document yields an empty-slots
	// stub, not an error.
	GetDaySchedule(ctx context.Context, therapistID, date string) (models.DaySchedule, error)
	// GetScheduleRange returns schedules in ascending date order. When
	// includeBooked is false each day's slots are filtered to free ones at
	// read time only.
	GetScheduleRange(ctx context.Context, therapistID, start, end string, includeBooked bool) ([]models.DaySchedule, error)

	// CreateCustomSlot inserts a manually defined slot, creating the day
	// schedule if absent.
	CreateCustomSlot(ctx context.Context, therapistID, date, startTime, endTime string, isAvailable bool) (models.DaySchedule, error)
	// UpdateSlot applies a partial edit to the slot with the given start
	// time; the slot becomes customized.
	UpdateSlot(ctx context.Context, therapistID, date, startTime string, update models.SlotUpdate) (models.DaySchedule, error)
	// DeleteSlot removes the slot with the given start time.
	DeleteSlot(ctx context.Context, therapistID, date, startTime string) error
}
