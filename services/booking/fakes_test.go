package booking

import (
	"context"
	"sync"

	sessionRepo "mindease/database/repository/session"
	therapistRepo "mindease/database/repository/therapist"
	"mindease/models"
)

// fakeSessionRepo enforces the same partial-unique semantics as the Mongo
// index: at most one active session per (therapist, date, startTime).
type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]models.Session)}
}

func (f *fakeSessionRepo) Insert(_ context.Context, s *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.sessions {
		if existing.Active &&
			existing.TherapistID == s.TherapistID &&
			existing.Date == s.Date &&
			existing.StartTime == s.StartTime {
			return sessionRepo.ErrDuplicateKey
		}
	}
	f.sessions[s.ID] = *s
	return nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeSessionRepo) UpdateStatus(_ context.Context, id string, from []string, to string, active bool) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	for _, status := range from {
		if s.Status == status {
			s.Status = to
			s.Active = active
			f.sessions[id] = s
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) ListActiveInRange(_ context.Context, therapistID, start, end string) ([]models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Session
	for _, s := range f.sessions {
		if s.TherapistID == therapistID && s.Active && s.Date >= start && s.Date <= end {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByUser(_ context.Context, userID string) ([]models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Session
	for _, s := range f.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByTherapistDate(_ context.Context, therapistID, date string) ([]models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Session
	for _, s := range f.sessions {
		if s.TherapistID == therapistID && s.Date == date {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) EnsureIndexes(context.Context) error { return nil }

// activeCount reports the number of non-cancelled sessions for a slot key.
func (f *fakeSessionRepo) activeCount(therapistID, date, startTime string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.sessions {
		if s.Active && s.TherapistID == therapistID && s.Date == date && s.StartTime == startTime {
			n++
		}
	}
	return n
}

type fakeScheduleRepo struct {
	mu   sync.Mutex
	docs map[string]models.DaySchedule
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{docs: make(map[string]models.DaySchedule)}
}

func (f *fakeScheduleRepo) put(doc models.DaySchedule) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[doc.TherapistID+"|"+doc.Date] = doc
}

func (f *fakeScheduleRepo) GetByDate(_ context.Context, therapistID, date string) (*models.DaySchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[therapistID+"|"+date]
	if !ok {
		return nil, nil
	}
	cp := doc
	cp.Slots = append([]models.TimeSlot(nil), doc.Slots...)
	return &cp, nil
}

func (f *fakeScheduleRepo) GetByDateRange(context.Context, string, string, string) ([]models.DaySchedule, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) Upsert(_ context.Context, doc *models.DaySchedule) error {
	f.put(*doc)
	return nil
}

func (f *fakeScheduleRepo) BulkReplaceWindow(context.Context, string, []models.DaySchedule, []string) (int64, int64, error) {
	return 0, 0, nil
}

func (f *fakeScheduleRepo) EnsureIndexes(context.Context) error { return nil }

type fakeTherapistRepo struct {
	therapists map[string]models.Therapist
}

func newFakeTherapistRepo() *fakeTherapistRepo {
	return &fakeTherapistRepo{therapists: make(map[string]models.Therapist)}
}

func (f *fakeTherapistRepo) Create(_ context.Context, t *models.Therapist) error {
	f.therapists[t.ID] = *t
	return nil
}

func (f *fakeTherapistRepo) GetByID(_ context.Context, id string) (*models.Therapist, error) {
	t, ok := f.therapists[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (f *fakeTherapistRepo) ListIDs(context.Context) ([]string, error) { return nil, nil }

func (f *fakeTherapistRepo) UpdateConsultingHours(_ context.Context, id string, hours []models.ConsultingHour) error {
	t, ok := f.therapists[id]
	if !ok {
		return therapistRepo.ErrNotFound
	}
	t.ConsultingHours = hours
	f.therapists[id] = t
	return nil
}

func (f *fakeTherapistRepo) EnsureIndexes(context.Context) error { return nil }
