package scheduling

import (
	"context"
	"reflect"
	"testing"

	"mindease/models"
)

func newTestService() (*DefaultService, *fakeTherapistRepo, *fakeScheduleRepo, *fakeSessionRepo) {
	therapists := newFakeTherapistRepo()
	schedules := newFakeScheduleRepo()
	sessions := newFakeSessionRepo()
	svc := &DefaultService{Therapists: therapists, Schedules: schedules, Sessions: sessions}
	return svc, therapists, schedules, sessions
}

func seedTherapist(t *testing.T, repo *fakeTherapistRepo, hours []models.ConsultingHour) string {
	t.Helper()
	th := &models.Therapist{ID: "t1", Name: "Dr. Rivera", Email: "rivera@example.com", ConsultingHours: hours}
	if err := repo.Create(context.Background(), th); err != nil {
		t.Fatal(err)
	}
	return th.ID
}

var monWedHours = []models.ConsultingHour{
	{DayOfWeek: 1, StartTime: "9:00 AM", EndTime: "1:00 PM", IsEnabled: true},
	{DayOfWeek: 3, StartTime: "9:00 AM", EndTime: "4:00 PM", IsEnabled: true},
}

func TestReplaceConsultingHours(t *testing.T) {
	svc, therapists, _, _ := newTestService()
	id := seedTherapist(t, therapists, nil)
	ctx := context.Background()

	bad := []models.ConsultingHour{{DayOfWeek: 9, StartTime: "9:00 AM", EndTime: "1:00 PM", IsEnabled: true}}
	err := svc.ReplaceConsultingHours(ctx, id, bad)
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("got %v, want ValidationError", err)
	}

	if err := svc.ReplaceConsultingHours(ctx, id, monWedHours); err != nil {
		t.Fatal(err)
	}
	hours, err := svc.GetConsultingHours(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(hours, monWedHours) {
		t.Errorf("got %v, want %v", hours, monWedHours)
	}

	err = svc.ReplaceConsultingHours(ctx, "nope", monWedHours)
	if _, ok := err.(*NotFoundError); !ok {
		t.Fatalf("got %v, want NotFoundError", err)
	}
}

func TestGenerateSlotsWindow(t *testing.T) {
	svc, therapists, schedules, _ := newTestService()
	id := seedTherapist(t, therapists, monWedHours)
	ctx := context.Background()

	result, err := svc.GenerateSlots(ctx, id, monday, 7)
	if err != nil {
		t.Fatal(err)
	}
	if result.InsertedCount != 2 || result.ModifiedCount != 0 {
		t.Errorf("first run: %+v, want inserted 2 modified 0", result)
	}

	window, err := svc.GetScheduleRange(ctx, id, "2025-06-02", "2025-06-08", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(window) != 2 {
		t.Fatalf("got %d non-empty schedules, want 2", len(window))
	}

	// Dates without enabled hours stay absent.
	if doc, _ := schedules.GetByDate(ctx, id, "2025-06-03"); doc != nil {
		t.Error("Tuesday should have no schedule document")
	}
	stub, err := svc.GetDaySchedule(ctx, id, "2025-06-03")
	if err != nil {
		t.Fatal(err)
	}
	if len(stub.Slots) != 0 {
		t.Errorf("Tuesday stub has %d slots, want 0", len(stub.Slots))
	}
}

func TestGenerateSlotsIdempotent(t *testing.T) {
	svc, therapists, _, _ := newTestService()
	id := seedTherapist(t, therapists, monWedHours)
	ctx := context.Background()

	if _, err := svc.GenerateSlots(ctx, id, monday, 7); err != nil {
		t.Fatal(err)
	}
	before, err := svc.GetScheduleRange(ctx, id, "2025-06-02", "2025-06-08", true)
	if err != nil {
		t.Fatal(err)
	}

	result, err := svc.GenerateSlots(ctx, id, monday, 7)
	if err != nil {
		t.Fatal(err)
	}
	if result.InsertedCount != 0 || result.ModifiedCount != 0 {
		t.Errorf("second run: %+v, want inserted 0 modified 0", result)
	}

	after, err := svc.GetScheduleRange(ctx, id, "2025-06-02", "2025-06-08", true)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Error("regeneration with unchanged hours altered the slot sets")
	}
}

func TestGenerateSlotsPreservesCustomSlots(t *testing.T) {
	svc, therapists, _, _ := newTestService()
	id := seedTherapist(t, therapists, monWedHours)
	ctx := context.Background()

	if _, err := svc.GenerateSlots(ctx, id, monday, 7); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateCustomSlot(ctx, id, "2025-06-02", "5:00 PM", "6:00 PM", true); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.GenerateSlots(ctx, id, monday, 7); err != nil {
		t.Fatal(err)
	}
	day, err := svc.GetDaySchedule(ctx, id, "2025-06-02")
	if err != nil {
		t.Fatal(err)
	}
	last := day.Slots[len(day.Slots)-1]
	if last.StartTime != "5:00 PM" || !last.IsCustomized {
		t.Errorf("custom slot lost on regeneration: %+v", day.Slots)
	}
}

func TestGenerateSlotsDisabledWeekdayCleansUp(t *testing.T) {
	svc, therapists, schedules, _ := newTestService()
	id := seedTherapist(t, therapists, monWedHours)
	ctx := context.Background()

	if _, err := svc.GenerateSlots(ctx, id, monday, 7); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateCustomSlot(ctx, id, "2025-06-04", "5:00 PM", "6:00 PM", true); err != nil {
		t.Fatal(err)
	}

	// Disable everything and regenerate the same window.
	if err := svc.ReplaceConsultingHours(ctx, id, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GenerateSlots(ctx, id, monday, 7); err != nil {
		t.Fatal(err)
	}

	// Monday had only generated slots and is gone.
	if doc, _ := schedules.GetByDate(ctx, id, "2025-06-02"); doc != nil {
		t.Errorf("Monday document should have been removed, got %+v", doc)
	}
	// Wednesday keeps its customized slot and nothing else.
	day, err := svc.GetDaySchedule(ctx, id, "2025-06-04")
	if err != nil {
		t.Fatal(err)
	}
	if len(day.Slots) != 1 || !day.Slots[0].IsCustomized {
		t.Errorf("Wednesday should keep only the custom slot, got %+v", day.Slots)
	}
}

func TestGenerateSlotsValidation(t *testing.T) {
	svc, therapists, _, _ := newTestService()
	id := seedTherapist(t, therapists, monWedHours)
	ctx := context.Background()

	if _, err := svc.GenerateSlots(ctx, id, monday, 0); err == nil {
		t.Error("days=0 accepted, want ValidationError")
	}
	if _, err := svc.GenerateSlots(ctx, "nope", monday, 7); err == nil {
		t.Error("unknown therapist accepted, want NotFoundError")
	}
}

func TestGetDayScheduleAnnotatesBooked(t *testing.T) {
	svc, therapists, _, sessions := newTestService()
	id := seedTherapist(t, therapists, monWedHours)
	ctx := context.Background()

	if _, err := svc.GenerateSlots(ctx, id, monday, 7); err != nil {
		t.Fatal(err)
	}
	sessions.Insert(ctx, &models.Session{
		ID: "s1", UserID: "u1", TherapistID: id,
		Date: "2025-06-02", StartTime: "10:00 AM", EndTime: "11:00 AM",
		Status: models.SessionPending, Active: true,
	})

	day, err := svc.GetDaySchedule(ctx, id, "2025-06-02")
	if err != nil {
		t.Fatal(err)
	}
	var booked *models.TimeSlot
	for i := range day.Slots {
		if day.Slots[i].StartTime == "10:00 AM" {
			booked = &day.Slots[i]
		}
	}
	if booked == nil {
		t.Fatal("10:00 AM slot missing")
	}
	if booked.IsAvailable || booked.SessionID != "s1" {
		t.Errorf("booked slot not annotated: %+v", booked)
	}
}

func TestGetScheduleRangeFiltersBooked(t *testing.T) {
	svc, therapists, _, sessions := newTestService()
	id := seedTherapist(t, therapists, monWedHours)
	ctx := context.Background()

	if _, err := svc.GenerateSlots(ctx, id, monday, 7); err != nil {
		t.Fatal(err)
	}
	sessions.Insert(ctx, &models.Session{
		ID: "s1", UserID: "u1", TherapistID: id,
		Date: "2025-06-02", StartTime: "9:00 AM", EndTime: "10:00 AM",
		Status: models.SessionConfirmed, Active: true,
	})

	free, err := svc.GetScheduleRange(ctx, id, "2025-06-02", "2025-06-02", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(free) != 1 || len(free[0].Slots) != 2 {
		t.Fatalf("free view: %+v, want one day with 2 slots", free)
	}
	for _, slot := range free[0].Slots {
		if slot.StartTime == "9:00 AM" {
			t.Error("booked slot leaked into the free view")
		}
	}

	all, err := svc.GetScheduleRange(ctx, id, "2025-06-02", "2025-06-02", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(all[0].Slots) != 3 {
		t.Fatalf("full view has %d slots, want 3", len(all[0].Slots))
	}
}

func TestCreateCustomSlotConflict(t *testing.T) {
	svc, therapists, _, _ := newTestService()
	id := seedTherapist(t, therapists, nil)
	ctx := context.Background()

	if _, err := svc.CreateCustomSlot(ctx, id, "2025-06-02", "3:00 PM", "4:00 PM", true); err != nil {
		t.Fatal(err)
	}
	// Same start time, different spelling.
	_, err := svc.CreateCustomSlot(ctx, id, "2025-06-02", "3:00 pm", "3:30 PM", false)
	if _, ok := err.(*ConflictError); !ok {
		t.Fatalf("got %v, want ConflictError", err)
	}
}

func TestCreateCustomSlotValidation(t *testing.T) {
	svc, therapists, _, _ := newTestService()
	id := seedTherapist(t, therapists, nil)
	ctx := context.Background()

	if _, err := svc.CreateCustomSlot(ctx, id, "bogus", "3:00 PM", "4:00 PM", true); err == nil {
		t.Error("bad date accepted")
	}
	if _, err := svc.CreateCustomSlot(ctx, id, "2025-06-02", "4:00 PM", "3:00 PM", true); err == nil {
		t.Error("start after end accepted")
	}
}

func TestUpdateSlot(t *testing.T) {
	svc, therapists, _, _ := newTestService()
	id := seedTherapist(t, therapists, monWedHours)
	ctx := context.Background()

	if _, err := svc.GenerateSlots(ctx, id, monday, 7); err != nil {
		t.Fatal(err)
	}

	unavailable := false
	day, err := svc.UpdateSlot(ctx, id, "2025-06-02", "9:00 AM", models.SlotUpdate{IsAvailable: &unavailable})
	if err != nil {
		t.Fatal(err)
	}
	slot := day.Slots[0]
	if slot.IsAvailable || !slot.IsCustomized {
		t.Errorf("edited slot should be unavailable and customized: %+v", slot)
	}

	_, err = svc.UpdateSlot(ctx, id, "2025-06-02", "8:00 PM", models.SlotUpdate{IsAvailable: &unavailable})
	if _, ok := err.(*NotFoundError); !ok {
		t.Fatalf("got %v, want NotFoundError", err)
	}
	_, err = svc.UpdateSlot(ctx, id, "2025-06-03", "9:00 AM", models.SlotUpdate{IsAvailable: &unavailable})
	if _, ok := err.(*NotFoundError); !ok {
		t.Fatalf("got %v, want NotFoundError", err)
	}
}

func TestUpdateSlotStartTimeCollision(t *testing.T) {
	svc, therapists, _, _ := newTestService()
	id := seedTherapist(t, therapists, monWedHours)
	ctx := context.Background()

	if _, err := svc.GenerateSlots(ctx, id, monday, 7); err != nil {
		t.Fatal(err)
	}
	newStart := "10:00 AM"
	_, err := svc.UpdateSlot(ctx, id, "2025-06-02", "9:00 AM", models.SlotUpdate{StartTime: &newStart})
	if _, ok := err.(*ConflictError); !ok {
		t.Fatalf("got %v, want ConflictError", err)
	}
}

func TestDeleteSlot(t *testing.T) {
	svc, therapists, _, _ := newTestService()
	id := seedTherapist(t, therapists, monWedHours)
	ctx := context.Background()

	if _, err := svc.GenerateSlots(ctx, id, monday, 7); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteSlot(ctx, id, "2025-06-02", "9:00 AM"); err != nil {
		t.Fatal(err)
	}
	day, err := svc.GetDaySchedule(ctx, id, "2025-06-02")
	if err != nil {
		t.Fatal(err)
	}
	if len(day.Slots) != 2 {
		t.Errorf("got %d slots after delete, want 2", len(day.Slots))
	}

	err = svc.DeleteSlot(ctx, id, "2025-06-02", "9:00 AM")
	if _, ok := err.(*NotFoundError); !ok {
		t.Fatalf("got %v, want NotFoundError", err)
	}
	err = svc.DeleteSlot(ctx, id, "2025-06-03", "9:00 AM")
	if _, ok := err.(*NotFoundError); !ok {
		t.Fatalf("got %v, want NotFoundError", err)
	}
}
