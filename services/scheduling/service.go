package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	scheduleRepo "mindease/database/repository/schedule"
	sessionRepo "mindease/database/repository/session"
	therapistRepo "mindease/database/repository/therapist"
	"mindease/models"
	"mindease/utils"
)

const (
	// maxWindowDays bounds a single generation run.
	maxWindowDays = 365

	dayCacheTTL = 5 * time.Minute
)

// DefaultService is the production implementation of the scheduling engine.
// Cache is optional; when nil, day reads always hit the store.
type DefaultService struct {
	Therapists therapistRepo.Repository
	Schedules  scheduleRepo.Repository
	Sessions   sessionRepo.Repository
	Cache      *redis.Client
}

func (s *DefaultService) GetConsultingHours(ctx context.Context, therapistID string) ([]models.ConsultingHour, error) {
	therapist, err := s.Therapists.GetByID(ctx, therapistID)
	if err != nil {
		return nil, NewInternalError("failed to fetch therapist", err)
	}
	if therapist == nil {
		return nil, NewNotFoundError("therapist %s not found", therapistID)
	}
	if therapist.ConsultingHours == nil {
		return []models.ConsultingHour{}, nil
	}
	return therapist.ConsultingHours, nil
}

func (s *DefaultService) ReplaceConsultingHours(ctx context.Context, therapistID string, hours []models.ConsultingHour) error {
	if err := ValidateConsultingHours(hours); err != nil {
		return err
	}
	if err := s.Therapists.UpdateConsultingHours(ctx, therapistID, hours); err != nil {
		if err == therapistRepo.ErrNotFound {
			return NewNotFoundError("therapist %s not found", therapistID)
		}
		return NewInternalError("failed to replace consulting hours", err)
	}
	return nil
}

// GenerateSlots merges the expanded pattern into the stored window: one read
// of the existing documents, then a single bulk write. Customized slots are
// carried over, and dates whose weekday lost all enabled hours keep a
// custom-only document or are dropped. Bookedness lives in sessions, so
// regeneration can never orphan a booking.
func (s *DefaultService) GenerateSlots(ctx context.Context, therapistID string, startDate time.Time, days int) (models.GenerateResult, error) {
	if days <= 0 || days > maxWindowDays {
		return models.GenerateResult{}, NewValidationError("days must be between 1 and %d, got %d", maxWindowDays, days)
	}

	therapist, err := s.Therapists.GetByID(ctx, therapistID)
	if err != nil {
		return models.GenerateResult{}, NewInternalError("failed to fetch therapist", err)
	}
	if therapist == nil {
		return models.GenerateResult{}, NewNotFoundError("therapist %s not found", therapistID)
	}

	computed, err := ExpandWindow(therapistID, therapist.ConsultingHours, startDate, days)
	if err != nil {
		return models.GenerateResult{}, err
	}
	computedByDate := make(map[string]models.DaySchedule, len(computed))
	for _, c := range computed {
		computedByDate[c.Date] = c
	}

	startStr := startDate.Format(DateLayout)
	endStr := startDate.AddDate(0, 0, days-1).Format(DateLayout)
	existing, err := s.Schedules.GetByDateRange(ctx, therapistID, startStr, endStr)
	if err != nil {
		return models.GenerateResult{}, NewInternalError("failed to read schedule window", err)
	}
	existingByDate := make(map[string]models.DaySchedule, len(existing))
	for _, e := range existing {
		existingByDate[e.Date] = e
	}

	var upserts []models.DaySchedule
	var deletes []string
	for offset := 0; offset < days; offset++ {
		date := startDate.AddDate(0, 0, offset).Format(DateLayout)
		gen, hasGen := computedByDate[date]
		prev, hasPrev := existingByDate[date]

		var custom []models.TimeSlot
		if hasPrev {
			custom = customOnly(prev.Slots)
		}

		switch {
		case hasGen:
			gen.Slots = mergeCustomSlots(gen.Slots, custom)
			upserts = append(upserts, gen)
		case len(custom) > 0:
			upserts = append(upserts, models.DaySchedule{
				TherapistID: therapistID,
				Date:        date,
				Slots:       custom,
			})
		case hasPrev:
			deletes = append(deletes, date)
		}
	}

	inserted, modified, err := s.Schedules.BulkReplaceWindow(ctx, therapistID, upserts, deletes)
	if err != nil {
		return models.GenerateResult{}, NewInternalError("failed to write schedule window", err)
	}

	s.invalidateWindow(ctx, therapistID, startDate, days)
	utils.GetLogger().Info("slot generation completed",
		zap.String("therapistId", therapistID),
		zap.String("start", startStr),
		zap.Int("days", days),
		zap.Int64("inserted", inserted),
		zap.Int64("modified", modified),
	)
	return models.GenerateResult{InsertedCount: inserted, ModifiedCount: modified}, nil
}

func (s *DefaultService) GetDaySchedule(ctx context.Context, therapistID, date string) (models.DaySchedule, error) {
	if err := validateDate(date); err != nil {
		return models.DaySchedule{}, err
	}

	schedule, err := s.fetchDay(ctx, therapistID, date)
	if err != nil {
		return models.DaySchedule{}, err
	}
	if schedule == nil {
		return models.DaySchedule{TherapistID: therapistID, Date: date, Slots: []models.TimeSlot{}}, nil
	}

	sessions, err := s.Sessions.ListActiveInRange(ctx, therapistID, date, date)
	if err != nil {
		return models.DaySchedule{}, NewInternalError("failed to read sessions", err)
	}
	annotateBooked(schedule.Slots, sessionsByStart(sessions))
	return *schedule, nil
}

func (s *DefaultService) GetScheduleRange(ctx context.Context, therapistID, start, end string, includeBooked bool) ([]models.DaySchedule, error) {
	if err := validateDate(start); err != nil {
		return nil, err
	}
	if err := validateDate(end); err != nil {
		return nil, err
	}
	if start > end {
		return nil, NewValidationError("start date %s is after end date %s", start, end)
	}

	schedules, err := s.Schedules.GetByDateRange(ctx, therapistID, start, end)
	if err != nil {
		return nil, NewInternalError("failed to read schedule range", err)
	}
	sessions, err := s.Sessions.ListActiveInRange(ctx, therapistID, start, end)
	if err != nil {
		return nil, NewInternalError("failed to read sessions", err)
	}
	byDate := make(map[string]map[string]string)
	for _, sess := range sessions {
		if byDate[sess.Date] == nil {
			byDate[sess.Date] = make(map[string]string)
		}
		byDate[sess.Date][sess.StartTime] = sess.ID
	}

	out := make([]models.DaySchedule, 0, len(schedules))
	for _, day := range schedules {
		annotateBooked(day.Slots, byDate[day.Date])
		if !includeBooked {
			free := day.Slots[:0:0]
			for _, slot := range day.Slots {
				if slot.IsAvailable {
					free = append(free, slot)
				}
			}
			day.Slots = free
		}
		out = append(out, day)
	}
	return out, nil
}

func (s *DefaultService) CreateCustomSlot(ctx context.Context, therapistID, date, startTime, endTime string, isAvailable bool) (models.DaySchedule, error) {
	if err := validateDate(date); err != nil {
		return models.DaySchedule{}, err
	}
	start, err := canonicalClock(startTime)
	if err != nil {
		return models.DaySchedule{}, err
	}
	end, err := canonicalClock(endTime)
	if err != nil {
		return models.DaySchedule{}, err
	}
	startMin, _ := ParseClock(start)
	endMin, _ := ParseClock(end)
	if startMin >= endMin {
		return models.DaySchedule{}, NewValidationError("start %q must be before end %q", startTime, endTime)
	}

	schedule, err := s.Schedules.GetByDate(ctx, therapistID, date)
	if err != nil {
		return models.DaySchedule{}, NewInternalError("failed to read schedule", err)
	}
	if schedule == nil {
		schedule = &models.DaySchedule{TherapistID: therapistID, Date: date}
	}
	for _, slot := range schedule.Slots {
		if slot.StartTime == start {
			return models.DaySchedule{}, NewConflictError("a slot starting at %s already exists on %s", start, date)
		}
	}

	schedule.Slots = append(schedule.Slots, models.TimeSlot{
		StartTime:    start,
		EndTime:      end,
		IsAvailable:  isAvailable,
		IsCustomized: true,
	})
	sortSlots(schedule.Slots)
	if err := s.Schedules.Upsert(ctx, schedule); err != nil {
		return models.DaySchedule{}, NewInternalError("failed to write schedule", err)
	}
	s.invalidateDay(ctx, therapistID, date)
	return *schedule, nil
}

func (s *DefaultService) UpdateSlot(ctx context.Context, therapistID, date, startTime string, update models.SlotUpdate) (models.DaySchedule, error) {
	if err := validateDate(date); err != nil {
		return models.DaySchedule{}, err
	}
	start, err := canonicalClock(startTime)
	if err != nil {
		return models.DaySchedule{}, err
	}

	schedule, err := s.Schedules.GetByDate(ctx, therapistID, date)
	if err != nil {
		return models.DaySchedule{}, NewInternalError("failed to read schedule", err)
	}
	if schedule == nil {
		return models.DaySchedule{}, NewNotFoundError("no schedule for %s on %s", therapistID, date)
	}
	idx := indexOfSlot(schedule.Slots, start)
	if idx < 0 {
		return models.DaySchedule{}, NewNotFoundError("no slot starting at %s on %s", start, date)
	}

	slot := schedule.Slots[idx]
	if update.StartTime != nil {
		newStart, err := canonicalClock(*update.StartTime)
		if err != nil {
			return models.DaySchedule{}, err
		}
		for i, other := range schedule.Slots {
			if i != idx && other.StartTime == newStart {
				return models.DaySchedule{}, NewConflictError("a slot starting at %s already exists on %s", newStart, date)
			}
		}
		slot.StartTime = newStart
	}
	if update.EndTime != nil {
		newEnd, err := canonicalClock(*update.EndTime)
		if err != nil {
			return models.DaySchedule{}, err
		}
		slot.EndTime = newEnd
	}
	startMin, _ := ParseClock(slot.StartTime)
	endMin, _ := ParseClock(slot.EndTime)
	if startMin >= endMin {
		return models.DaySchedule{}, NewValidationError("start %q must be before end %q", slot.StartTime, slot.EndTime)
	}
	if update.IsAvailable != nil {
		slot.IsAvailable = *update.IsAvailable
	}
	slot.IsCustomized = true

	schedule.Slots[idx] = slot
	sortSlots(schedule.Slots)
	if err := s.Schedules.Upsert(ctx, schedule); err != nil {
		return models.DaySchedule{}, NewInternalError("failed to write schedule", err)
	}
	s.invalidateDay(ctx, therapistID, date)
	return *schedule, nil
}

func (s *DefaultService) DeleteSlot(ctx context.Context, therapistID, date, startTime string) error {
	if err := validateDate(date); err != nil {
		return err
	}
	start, err := canonicalClock(startTime)
	if err != nil {
		return err
	}

	schedule, err := s.Schedules.GetByDate(ctx, therapistID, date)
	if err != nil {
		return NewInternalError("failed to read schedule", err)
	}
	if schedule == nil {
		return NewNotFoundError("no schedule for %s on %s", therapistID, date)
	}
	idx := indexOfSlot(schedule.Slots, start)
	if idx < 0 {
		return NewNotFoundError("no slot starting at %s on %s", start, date)
	}

	schedule.Slots = append(schedule.Slots[:idx], schedule.Slots[idx+1:]...)
	if err := s.Schedules.Upsert(ctx, schedule); err != nil {
		return NewInternalError("failed to write schedule", err)
	}
	s.invalidateDay(ctx, therapistID, date)
	return nil
}

func validateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return NewValidationError("invalid date %q, expected YYYY-MM-DD", date)
	}
	return nil
}

func indexOfSlot(slots []models.TimeSlot, start string) int {
	for i, slot := range slots {
		if slot.StartTime == start {
			return i
		}
	}
	return -1
}

func sessionsByStart(sessions []models.Session) map[string]string {
	byStart := make(map[string]string, len(sessions))
	for _, sess := range sessions {
		byStart[sess.StartTime] = sess.ID
	}
	return byStart
}

// annotateBooked flips slots with a live session to unavailable and links
// the session ID. Stored documents are untouched.
func annotateBooked(slots []models.TimeSlot, byStart map[string]string) {
	if len(byStart) == 0 {
		return
	}
	for i := range slots {
		if id, ok := byStart[slots[i].StartTime]; ok {
			slots[i].IsAvailable = false
			slots[i].SessionID = id
		}
	}
}

// fetchDay reads one raw day document through the cache. Only stored slot
// documents are cached; session-derived bookedness is joined per request.
func (s *DefaultService) fetchDay(ctx context.Context, therapistID, date string) (*models.DaySchedule, error) {
	key := dayCacheKey(therapistID, date)
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var cached models.DaySchedule
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	schedule, err := s.Schedules.GetByDate(ctx, therapistID, date)
	if err != nil {
		return nil, NewInternalError("failed to read schedule", err)
	}
	if schedule != nil && s.Cache != nil {
		if raw, err := json.Marshal(schedule); err == nil {
			s.Cache.Set(ctx, key, raw, dayCacheTTL)
		}
	}
	return schedule, nil
}

func (s *DefaultService) invalidateDay(ctx context.Context, therapistID, date string) {
	if s.Cache == nil {
		return
	}
	s.Cache.Del(ctx, dayCacheKey(therapistID, date))
}

func (s *DefaultService) invalidateWindow(ctx context.Context, therapistID string, startDate time.Time, days int) {
	if s.Cache == nil {
		return
	}
	keys := make([]string, 0, days)
	for offset := 0; offset < days; offset++ {
		keys = append(keys, dayCacheKey(therapistID, startDate.AddDate(0, 0, offset).Format(DateLayout)))
	}
	s.Cache.Del(ctx, keys...)
}

func dayCacheKey(therapistID, date string) string {
	return fmt.Sprintf("schedule:%s:%s", therapistID, date)
}
