package scheduling

import (
	"context"
	"reflect"
	"sort"
	"sync"

	therapistRepo "mindease/database/repository/therapist"
	"mindease/models"
)

type fakeTherapistRepo struct {
	mu         sync.Mutex
	therapists map[string]models.Therapist
}

func newFakeTherapistRepo() *fakeTherapistRepo {
	return &fakeTherapistRepo{therapists: make(map[string]models.Therapist)}
}

func (f *fakeTherapistRepo) Create(_ context.Context, t *models.Therapist) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.therapists[t.ID] = *t
	return nil
}

func (f *fakeTherapistRepo) GetByID(_ context.Context, id string) (*models.Therapist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.therapists[id]
	if !ok {
		return nil, nil
	}
	cp := t
	cp.ConsultingHours = append([]models.ConsultingHour(nil), t.ConsultingHours...)
	return &cp, nil
}

func (f *fakeTherapistRepo) ListIDs(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for id := range f.therapists {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeTherapistRepo) UpdateConsultingHours(_ context.Context, id string, hours []models.ConsultingHour) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.therapists[id]
	if !ok {
		return therapistRepo.ErrNotFound
	}
	t.ConsultingHours = append([]models.ConsultingHour(nil), hours...)
	f.therapists[id] = t
	return nil
}

func (f *fakeTherapistRepo) EnsureIndexes(context.Context) error { return nil }

type fakeScheduleRepo struct {
	mu   sync.Mutex
	docs map[string]models.DaySchedule // key: therapistID + "|" + date
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{docs: make(map[string]models.DaySchedule)}
}

func scheduleKey(therapistID, date string) string { return therapistID + "|" + date }

func cloneSchedule(s models.DaySchedule) models.DaySchedule {
	s.Slots = append([]models.TimeSlot(nil), s.Slots...)
	return s
}

func (f *fakeScheduleRepo) GetByDate(_ context.Context, therapistID, date string) (*models.DaySchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[scheduleKey(therapistID, date)]
	if !ok {
		return nil, nil
	}
	cp := cloneSchedule(doc)
	return &cp, nil
}

func (f *fakeScheduleRepo) GetByDateRange(_ context.Context, therapistID, start, end string) ([]models.DaySchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.DaySchedule
	for _, doc := range f.docs {
		if doc.TherapistID == therapistID && doc.Date >= start && doc.Date <= end {
			out = append(out, cloneSchedule(doc))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (f *fakeScheduleRepo) Upsert(_ context.Context, schedule *models.DaySchedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[scheduleKey(schedule.TherapistID, schedule.Date)] = cloneSchedule(*schedule)
	return nil
}

// BulkReplaceWindow mirrors Mongo's counting: an upsert of a missing
// document counts as inserted, a replace that changes nothing counts as
// neither.
func (f *fakeScheduleRepo) BulkReplaceWindow(_ context.Context, therapistID string, upserts []models.DaySchedule, deletes []string) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var inserted, modified int64
	for _, doc := range upserts {
		key := scheduleKey(therapistID, doc.Date)
		prev, ok := f.docs[key]
		switch {
		case !ok:
			inserted++
		case !reflect.DeepEqual(prev, doc):
			modified++
		}
		f.docs[key] = cloneSchedule(doc)
	}
	for _, date := range deletes {
		delete(f.docs, scheduleKey(therapistID, date))
	}
	return inserted, modified, nil
}

func (f *fakeScheduleRepo) EnsureIndexes(context.Context) error { return nil }

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
