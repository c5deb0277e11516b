package models

import "time"

// ConsultingHour is one weekday entry in a therapist's recurring
// availability pattern. Times are 12-hour wall-clock labels (e.g. "9:00 AM").
type ConsultingHour struct {
	DayOfWeek int    `bson:"dayOfWeek" json:"dayOfWeek"` // 0 = Sunday .. 6 = Saturday
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
	IsEnabled bool   `bson:"isEnabled" json:"isEnabled"`
}

// Therapist owns the consulting-hours pattern that day schedules are
// generated from.
type Therapist struct {
	ID              string           `bson:"id" json:"id"`
	Name            string           `bson:"name" json:"name"`
	Email           string           `bson:"email" json:"email"`
	Bio             string           `bson:"bio,omitempty" json:"bio,omitempty"`
	ConsultingHours []ConsultingHour `bson:"consultingHours" json:"consultingHours"`
	CreatedAt       time.Time        `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time        `bson:"updated_at" json:"updatedAt"`
}
