package sessionRepo

import (
	"context"
	"errors"

	"mindease/models"
)

// ErrDuplicateKey is returned by Insert when the partial unique index on
// (therapist_id, date, start_time) rejects the write, i.e. the slot already
// has a non-cancelled session. Callers translate it to a domain conflict.
var ErrDuplicateKey = errors.New("duplicate session key")

// Repository defines data access for session rows. The partial unique index
// maintained by EnsureIndexes is the sole double-booking guarantee.
type Repository interface {
	Insert(ctx context.Context, session *models.Session) error
	// GetByID returns (nil, nil) when no session matches.
	GetByID(ctx context.Context, id string) (*models.Session, error)
	// UpdateStatus atomically moves a session from one of the given statuses
	// to the target status, returning the updated row, or (nil, nil) when the
	// session is missing or not in an allowed state.
	UpdateStatus(ctx context.Context, id string, from []string, to string, active bool) (*models.Session, error)
	// ListActiveInRange returns non-cancelled sessions for a therapist with
	// start <= date <= end.
	ListActiveInRange(ctx context.Context, therapistID, start, end string) ([]models.Session, error)
	ListByUser(ctx context.Context, userID string) ([]models.Session, error)
	ListByTherapistDate(ctx context.Context, therapistID, date string) ([]models.Session, error)
	EnsureIndexes(ctx context.Context) error
}
