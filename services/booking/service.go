package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	scheduleRepo "mindease/database/repository/schedule"
	sessionRepo "mindease/database/repository/session"
	therapistRepo "mindease/database/repository/therapist"
	"mindease/models"
	"mindease/services/scheduling"
	"mindease/utils"
)

// DefaultService is the production implementation of the booking coordinator.
type DefaultService struct {
	Sessions   sessionRepo.Repository
	Schedules  scheduleRepo.Repository
	Therapists therapistRepo.Repository
}

func (s *DefaultService) CreateSession(ctx context.Context, userID, therapistID, date, startTime string) (*models.Session, error) {
	if userID == "" || therapistID == "" {
		return nil, scheduling.NewValidationError("userId and therapistId are required")
	}
	if _, err := time.Parse(scheduling.DateLayout, date); err != nil {
		return nil, scheduling.NewValidationError("invalid date %q, expected YYYY-MM-DD", date)
	}
	startMin, err := scheduling.ParseClock(startTime)
	if err != nil {
		return nil, err
	}
	start := scheduling.FormatClock(startMin)

	therapist, err := s.Therapists.GetByID(ctx, therapistID)
	if err != nil {
		return nil, scheduling.NewInternalError("failed to fetch therapist", err)
	}
	if therapist == nil {
		return nil, scheduling.NewNotFoundError("therapist %s not found", therapistID)
	}

	// The slot must be published. This read is advisory only; the insert
	// below is what decides a race.
	schedule, err := s.Schedules.GetByDate(ctx, therapistID, date)
	if err != nil {
		return nil, scheduling.NewInternalError("failed to read schedule", err)
	}
	slot := findSlot(schedule, start)
	if slot == nil {
		return nil, scheduling.NewNotFoundError("no slot starting at %s on %s", start, date)
	}
	if !slot.IsAvailable {
		return nil, scheduling.NewConflictError("slot %s on %s is not open for booking", start, date)
	}

	now := time.Now()
	session := &models.Session{
		ID:          uuid.NewString(),
		UserID:      userID,
		TherapistID: therapistID,
		Date:        date,
		StartTime:   start,
		EndTime:     scheduling.FormatClock(startMin + scheduling.SessionDuration),
		Status:      models.SessionPending,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Sessions.Insert(ctx, session); err != nil {
		if err == sessionRepo.ErrDuplicateKey {
			return nil, scheduling.NewConflictError("slot %s on %s is already booked", start, date)
		}
		return nil, scheduling.NewInternalError("failed to create session", err)
	}

	utils.GetLogger().Info("session booked",
		zap.String("sessionId", session.ID),
		zap.String("therapistId", therapistID),
		zap.String("date", date),
		zap.String("startTime", start),
	)
	return session, nil
}

func (s *DefaultService) ConfirmSession(ctx context.Context, sessionID string) (*models.Session, error) {
	return s.transition(ctx, sessionID, []string{models.SessionPending}, models.SessionConfirmed, true)
}

func (s *DefaultService) CompleteSession(ctx context.Context, sessionID string) (*models.Session, error) {
	return s.transition(ctx, sessionID, []string{models.SessionConfirmed}, models.SessionCompleted, true)
}

func (s *DefaultService) CancelSession(ctx context.Context, sessionID, actingUserID string) (*models.Session, error) {
	session, err := s.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, scheduling.NewInternalError("failed to fetch session", err)
	}
	// A session owned by someone else is reported as missing rather than
	// leaking its existence.
	if session == nil || session.UserID != actingUserID {
		return nil, scheduling.NewNotFoundError("session %s not found", sessionID)
	}

	from := []string{models.SessionPending, models.SessionConfirmed}
	updated, err := s.Sessions.UpdateStatus(ctx, sessionID, from, models.SessionCancelled, false)
	if err != nil {
		return nil, scheduling.NewInternalError("failed to cancel session", err)
	}
	if updated == nil {
		return nil, scheduling.NewConflictError("session %s cannot be cancelled from status %s", sessionID, session.Status)
	}

	utils.GetLogger().Info("session cancelled",
		zap.String("sessionId", sessionID),
		zap.String("therapistId", updated.TherapistID),
		zap.String("date", updated.Date),
		zap.String("startTime", updated.StartTime),
	)
	return updated, nil
}

func (s *DefaultService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, scheduling.NewInternalError("failed to fetch session", err)
	}
	if session == nil {
		return nil, scheduling.NewNotFoundError("session %s not found", sessionID)
	}
	return session, nil
}

func (s *DefaultService) ListUserSessions(ctx context.Context, userID string) ([]models.Session, error) {
	sessions, err := s.Sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, scheduling.NewInternalError("failed to list sessions", err)
	}
	return sessions, nil
}

func (s *DefaultService) ListTherapistSessions(ctx context.Context, therapistID, date string) ([]models.Session, error) {
	if _, err := time.Parse(scheduling.DateLayout, date); err != nil {
		return nil, scheduling.NewValidationError("invalid date %q, expected YYYY-MM-DD", date)
	}
	sessions, err := s.Sessions.ListByTherapistDate(ctx, therapistID, date)
	if err != nil {
		return nil, scheduling.NewInternalError("failed to list sessions", err)
	}
	return sessions, nil
}

func (s *DefaultService) transition(ctx context.Context, sessionID string, from []string, to string, active bool) (*models.Session, error) {
	updated, err := s.Sessions.UpdateStatus(ctx, sessionID, from, to, active)
	if err != nil {
		return nil, scheduling.NewInternalError("failed to update session", err)
	}
	if updated != nil {
		return updated, nil
	}

	session, err := s.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, scheduling.NewInternalError("failed to fetch session", err)
	}
	if session == nil {
		return nil, scheduling.NewNotFoundError("session %s not found", sessionID)
	}
	return nil, scheduling.NewConflictError("session %s cannot move from %s to %s", sessionID, session.Status, to)
}

func findSlot(schedule *models.DaySchedule, start string) *models.TimeSlot {
	if schedule == nil {
		return nil
	}
	for i := range schedule.Slots {
		if schedule.Slots[i].StartTime == start {
			return &schedule.Slots[i]
		}
	}
	return nil
}
