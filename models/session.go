package models

import "time"

// Session lifecycle states.
const (
	SessionPending   = "pending"
	SessionConfirmed = "confirmed"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
)

// Session is a customer's booking of one slot.
//
// Active mirrors "status != cancelled". Mongo partial indexes cannot
// express $ne, so the unique index on (therapist_id, date, start_time)
// is scoped to active: true instead. That index is the only mechanism
// preventing double-booking; cancelling a session clears Active and
// frees the key.
type Session struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"user_id" json:"userId"`
	TherapistID string    `bson:"therapist_id" json:"therapistId"`
	Date        string    `bson:"date" json:"date"` // "2006-01-02"
	StartTime   string    `bson:"start_time" json:"startTime"`
	EndTime     string    `bson:"end_time" json:"endTime"`
	Status      string    `bson:"status" json:"status"`
	Active      bool      `bson:"active" json:"-"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}
