package models

// TimeSlot is a fixed-duration bookable window within a day schedule.
// Booked state is never stored on the slot; it is derived from live
// sessions at read time and surfaced through IsAvailable/SessionID on
// API responses.
type TimeSlot struct {
	StartTime    string `bson:"startTime" json:"startTime"`
	EndTime      string `bson:"endTime" json:"endTime"`
	IsAvailable  bool   `bson:"isAvailable" json:"isAvailable"`
	IsCustomized bool   `bson:"isCustomized" json:"isCustomized"`
	SessionID    string `bson:"-" json:"sessionId,omitempty"`
}

// DaySchedule holds the materialized slots for one therapist on one
// calendar date. Unique on (therapist_id, date); a missing document means
// no availability that day, not an error.
type DaySchedule struct {
	TherapistID string     `bson:"therapist_id" json:"therapistId"`
	Date        string     `bson:"date" json:"date"` // "2006-01-02"
	Slots       []TimeSlot `bson:"slots" json:"slots"`
}

// SlotUpdate carries a partial edit of one slot. Nil fields are left
// untouched.
type SlotUpdate struct {
	StartTime   *string `json:"startTime,omitempty"`
	EndTime     *string `json:"endTime,omitempty"`
	IsAvailable *bool   `json:"isAvailable,omitempty"`
}

// GenerateResult reports what a slot-generation run wrote.
type GenerateResult struct {
	InsertedCount int64 `json:"insertedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}
