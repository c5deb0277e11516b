package scheduling

import (
	"sort"
	"time"

	"mindease/models"
)

// ValidateConsultingHours checks every entry of a recurring pattern:
// weekday in range, parseable labels, and start < end for enabled entries.
func ValidateConsultingHours(hours []models.ConsultingHour) error {
	for i, ch := range hours {
		if ch.DayOfWeek < 0 || ch.DayOfWeek > 6 {
			return NewValidationError("consulting hour %d: dayOfWeek %d out of range 0-6", i, ch.DayOfWeek)
		}
		start, err := ParseClock(ch.StartTime)
		if err != nil {
			return NewValidationError("consulting hour %d: %v", i, err)
		}
		end, err := ParseClock(ch.EndTime)
		if err != nil {
			return NewValidationError("consulting hour %d: %v", i, err)
		}
		if ch.IsEnabled && start >= end {
			return NewValidationError("consulting hour %d: start %q must be before end %q", i, ch.StartTime, ch.EndTime)
		}
	}
	return nil
}

// hourForWeekday returns the first enabled entry for the weekday. Duplicate
// weekdays are tolerated; the first enabled match wins.
func hourForWeekday(hours []models.ConsultingHour, weekday int) (models.ConsultingHour, bool) {
	for _, ch := range hours {
		if ch.IsEnabled && ch.DayOfWeek == weekday {
			return ch, true
		}
	}
	return models.ConsultingHour{}, false
}

// ExpandWindow materializes a recurring pattern over a date window. It is a
// pure function of its inputs: each offset day with an enabled consulting
// hour becomes a DaySchedule of fixed-duration, non-customized slots; days
// without enabled hours produce no schedule at all.
func ExpandWindow(therapistID string, hours []models.ConsultingHour, startDate time.Time, days int) ([]models.DaySchedule, error) {
	var schedules []models.DaySchedule
	for offset := 0; offset < days; offset++ {
		day := startDate.AddDate(0, 0, offset)
		ch, ok := hourForWeekday(hours, int(day.Weekday()))
		if !ok {
			continue
		}
		starts, err := EnumerateSlots(ch.StartTime, ch.EndTime)
		if err != nil {
			return nil, err
		}
		if len(starts) == 0 {
			continue
		}
		slots := make([]models.TimeSlot, 0, len(starts))
		for _, s := range starts {
			m, _ := ParseClock(s)
			slots = append(slots, models.TimeSlot{
				StartTime:   s,
				EndTime:     FormatClock(m + SessionDuration),
				IsAvailable: true,
			})
		}
		schedules = append(schedules, models.DaySchedule{
			TherapistID: therapistID,
			Date:        day.Format(DateLayout),
			Slots:       slots,
		})
	}
	return schedules, nil
}

// mergeCustomSlots overlays manually created slots onto a generated set. A
// customized slot wins a start-time collision with a generated one, so
// regeneration never clobbers a therapist's point edits.
func mergeCustomSlots(generated, custom []models.TimeSlot) []models.TimeSlot {
	taken := make(map[string]bool, len(custom))
	merged := make([]models.TimeSlot, 0, len(generated)+len(custom))
	for _, cs := range custom {
		taken[cs.StartTime] = true
		merged = append(merged, cs)
	}
	for _, gs := range generated {
		if !taken[gs.StartTime] {
			merged = append(merged, gs)
		}
	}
	sortSlots(merged)
	return merged
}

// customOnly filters a day's slots down to the customized ones.
func customOnly(slots []models.TimeSlot) []models.TimeSlot {
	var custom []models.TimeSlot
	for _, s := range slots {
		if s.IsCustomized {
			custom = append(custom, s)
		}
	}
	return custom
}

func sortSlots(slots []models.TimeSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		a, _ := ParseClock(slots[i].StartTime)
		b, _ := ParseClock(slots[j].StartTime)
		return a < b
	})
}
