package database

import (
	"context"

	"github.com/example/tenkanji/internal/apperr"
	"github.com/example/tenkanji/pkg/models"
)

// ActivityRepository handles the append-only activity event log
type ActivityRepository struct{}

// NewActivityRepository creates a new repository instance
func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{}
}

// Append records one activity event. Multiple events per day are expected;
// deduplication happens at read time.
func (r *ActivityRepository) Append(ctx context.Context, initials, date string, kind models.ActivityKind) error {
	query := "INSERT INTO activity_events (user_initials, activity_date, kind) VALUES ($1, $2, $3)"
	if _, err := DB.ExecContext(ctx, query, initials, date, kind); err != nil {
		return apperr.Storage("appendActivity", initials, err)
	}
	return nil
}

// Dates returns the distinct activity dates of the given kind for a user
func (r *ActivityRepository) Dates(ctx context.Context, initials string, kind models.ActivityKind) ([]string, error) {
	var dates []string
	query := "SELECT DISTINCT activity_date FROM activity_events WHERE user_initials = $1 AND kind = $2"
	if err := DB.SelectContext(ctx, &dates, query, initials, kind); err != nil {
		return nil, apperr.Storage("activityDates", initials, err)
	}
	return dates, nil
}
