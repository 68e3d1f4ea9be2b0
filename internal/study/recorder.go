package study

import (
	"context"
	"time"

	"github.com/example/tenkanji/internal/apperr"
	"github.com/example/tenkanji/pkg/models"
)

// StatusWriter applies one graded answer to the mastery store.
type StatusWriter interface {
	ApplyResult(ctx context.Context, initials string, result models.WordResult, now time.Time) error
}

// ActivityLog appends activity events.
type ActivityLog interface {
	Append(ctx context.Context, initials, date string, kind models.ActivityKind) error
}

// Recorder applies submitted session results to the mastery store and logs
// the session in the activity feed.
type Recorder struct {
	statuses StatusWriter
	activity ActivityLog
	now      func() time.Time
}

// NewRecorder creates a progress recorder.
func NewRecorder(statuses StatusWriter, activity ActivityLog) *Recorder {
	return &Recorder{statuses: statuses, activity: activity, now: time.Now}
}

// RecordResults upserts the mastery row for each result in order and then
// appends one normal_session activity event for today. Each per-word upsert
// is independently atomic; a storage error aborts the remaining results and
// is returned, leaving the already applied ones in place. Safe to call any
// number of times per day; the streak reader deduplicates by date.
func (r *Recorder) RecordResults(ctx context.Context, initials string, results []models.WordResult) error {
	initials, ok := models.NormalizeInitials(initials)
	if !ok {
		return apperr.Validation("recordResults", initials, "initials must be 3 letters")
	}
	if len(results) == 0 {
		return apperr.Validation("recordResults", initials, "results are required")
	}
	for _, res := range results {
		if res.Word == "" {
			return apperr.Validation("recordResults", initials, "result word is required")
		}
	}

	now := r.now().UTC()
	for _, res := range results {
		if err := r.statuses.ApplyResult(ctx, initials, res, now); err != nil {
			return err
		}
	}

	return r.activity.Append(ctx, initials, now.Format("2006-01-02"), models.ActivityNormalSession)
}
