package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/example/tenkanji/internal/apperr"
	"github.com/example/tenkanji/pkg/models"
)

// DailyChallengeRepository handles database operations for daily challenge
// completions
type DailyChallengeRepository struct{}

// NewDailyChallengeRepository creates a new repository instance
func NewDailyChallengeRepository() *DailyChallengeRepository {
	return &DailyChallengeRepository{}
}

// Upsert stores a completion keyed by (user_initials, challenge_date).
// Completing the same day again overwrites the previous score and results.
func (r *DailyChallengeRepository) Upsert(ctx context.Context, challenge *models.DailyChallenge) error {
	query := `
		INSERT INTO daily_challenges (user_initials, challenge_date, score, results, completed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_initials, challenge_date) DO UPDATE SET
			score = excluded.score,
			results = excluded.results,
			completed_at = excluded.completed_at
	`
	_, err := DB.ExecContext(ctx, query,
		challenge.UserInitials,
		challenge.ChallengeDate,
		challenge.Score,
		challenge.ResultsJSON,
		challenge.CompletedAt.UTC(),
	)
	if err != nil {
		return apperr.Storage("completeDailyChallenge", challenge.UserInitials, err)
	}
	return nil
}

// Get returns the completion for one user and date, or nil when the
// challenge has not been completed that day.
func (r *DailyChallengeRepository) Get(ctx context.Context, initials, date string) (*models.DailyChallenge, error) {
	var challenge models.DailyChallenge
	query := `
		SELECT user_initials, challenge_date, score, results, completed_at
		FROM daily_challenges
		WHERE user_initials = $1 AND challenge_date = $2
	`
	err := DB.GetContext(ctx, &challenge, query, initials, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage("getDailyChallenge", initials, err)
	}
	return &challenge, nil
}

// Dates returns the distinct dates on which the user completed the challenge
func (r *DailyChallengeRepository) Dates(ctx context.Context, initials string) ([]string, error) {
	var dates []string
	query := "SELECT challenge_date FROM daily_challenges WHERE user_initials = $1"
	if err := DB.SelectContext(ctx, &dates, query, initials); err != nil {
		return nil, apperr.Storage("dailyChallengeDates", initials, err)
	}
	return dates, nil
}
