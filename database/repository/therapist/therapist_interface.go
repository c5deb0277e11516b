package therapistRepo

import (
	"context"
	"errors"

	"mindease/models"
)

// ErrNotFound is returned by mutations whose target therapist is missing.
// Reads report absence as (nil, nil) instead.
var ErrNotFound = errors.New("therapist not found")

// Repository defines data access for therapists and their embedded
// consulting-hours pattern.
type Repository interface {
	Create(ctx context.Context, therapist *models.Therapist) error
	// GetByID returns (nil, nil) when no therapist matches.
	GetByID(ctx context.Context, id string) (*models.Therapist, error)
	// ListIDs returns the IDs of all therapists, for background horizon runs.
	ListIDs(ctx context.Context) ([]string, error)
	// UpdateConsultingHours fully replaces the recurring pattern.
	UpdateConsultingHours(ctx context.Context, id string, hours []models.ConsultingHour) error
	EnsureIndexes(ctx context.Context) error
}
