package scheduleRepo

import (
	"context"

	"mindease/models"
)

// Repository defines data access for day-schedule documents. One document
// holds the full slot array for a (therapist, date) pair; writes replace the
// whole document.
type Repository interface {
	// GetByDate returns (nil, nil) when no document exists for the date;
	// absence is a valid state, not an error.
	GetByDate(ctx context.Context, therapistID, date string) (*models.DaySchedule, error)
	// GetByDateRange returns documents for start <= date <= end in ascending
	// date order.
	GetByDateRange(ctx context.Context, therapistID, start, end string) ([]models.DaySchedule, error)
	// Upsert replaces the document for (therapistID, schedule.Date), creating
	// it when absent.
	Upsert(ctx context.Context, schedule *models.DaySchedule) error
	// BulkReplaceWindow applies a generation run in one round trip: every
	// schedule in upserts is replaced-or-inserted and every date in deletes
	// is removed. It reports how many documents were newly inserted and how
	// many existing ones actually changed.
	BulkReplaceWindow(ctx context.Context, therapistID string, upserts []models.DaySchedule, deletes []string) (inserted, modified int64, err error)
	EnsureIndexes(ctx context.Context) error
}
