package booking

import (
	"context"

	"mindease/models"
)

// Service is the session lifecycle coordinator. Double-booking safety comes
// from the partial unique session index, never from pre-read state.
type Service interface {
	// CreateSession books a slot: it verifies the slot is published and open,
	// then inserts a pending session. A lost race surfaces as a conflict and
	// is never retried, since retrying would book a different slot.
	CreateSession(ctx context.Context, userID, therapistID, date, startTime string) (*models.Session, error)
	// ConfirmSession moves pending -> confirmed.
	ConfirmSession(ctx context.Context, sessionID string) (*models.Session, error)
	// CompleteSession moves confirmed -> completed.
	CompleteSession(ctx context.Context, sessionID string) (*models.Session, error)
	// CancelSession moves pending/confirmed -> cancelled, owner-only, and
	// frees the slot key for future booking.
	CancelSession(ctx context.Context, sessionID, actingUserID string) (*models.Session, error)

	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	ListUserSessions(ctx context.Context, userID string) ([]models.Session, error)
	ListTherapistSessions(ctx context.Context, therapistID, date string) ([]models.Session, error)
}
