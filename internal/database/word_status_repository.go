package database

import (
	"context"
	"time"

	"github.com/example/tenkanji/internal/apperr"
	"github.com/example/tenkanji/pkg/models"
)

// WordStatusRepository handles database operations for per-user word mastery
type WordStatusRepository struct{}

// NewWordStatusRepository creates a new repository instance
func NewWordStatusRepository() *WordStatusRepository {
	return &WordStatusRepository{}
}

// ApplyResult upserts the mastery row for one answered word. The status
// follows the answer unconditionally (correct = mastered, wrong = seen) while
// the counters are incremented in SQL so concurrent submissions cannot lose
// increments. One statement per word; each call is independently atomic.
func (r *WordStatusRepository) ApplyResult(ctx context.Context, initials string, result models.WordResult, now time.Time) error {
	status := models.StatusSeen
	correct, wrong := 0, 1
	if result.IsCorrect {
		status = models.StatusMastered
		correct, wrong = 1, 0
	}

	query := `
		INSERT INTO word_status (user_initials, word, status, correct_count, wrong_count, last_reviewed)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_initials, word) DO UPDATE SET
			status = excluded.status,
			correct_count = word_status.correct_count + excluded.correct_count,
			wrong_count = word_status.wrong_count + excluded.wrong_count,
			last_reviewed = excluded.last_reviewed
	`
	if _, err := DB.ExecContext(ctx, query, initials, result.Word, status, correct, wrong, now.UTC()); err != nil {
		return apperr.Storage("recordResults", result.Word, err)
	}
	return nil
}

// GetByUserAndWord returns the mastery row for one user and word
func (r *WordStatusRepository) GetByUserAndWord(ctx context.Context, initials, word string) (*models.WordStatus, error) {
	var ws models.WordStatus
	query := `
		SELECT user_initials, word, status, correct_count, wrong_count, last_reviewed
		FROM word_status
		WHERE user_initials = $1 AND word = $2
	`
	if err := DB.GetContext(ctx, &ws, query, initials, word); err != nil {
		return nil, apperr.Storage("getWordStatus", word, err)
	}
	return &ws, nil
}

// MasteredWords returns the words the user currently has mastered
func (r *WordStatusRepository) MasteredWords(ctx context.Context, initials string) ([]string, error) {
	var words []string
	query := "SELECT word FROM word_status WHERE user_initials = $1 AND status = $2"
	if err := DB.SelectContext(ctx, &words, query, initials, models.StatusMastered); err != nil {
		return nil, apperr.Storage("masteredWords", initials, err)
	}
	return words, nil
}

// MasteredByLastReviewed returns up to limit mastered words ranked by
// last_reviewed ascending, so the least recently reviewed come first.
func (r *WordStatusRepository) MasteredByLastReviewed(ctx context.Context, initials string, limit int) ([]string, error) {
	var words []string
	query := `
		SELECT word FROM word_status
		WHERE user_initials = $1 AND status = $2
		ORDER BY last_reviewed ASC
		LIMIT $3
	`
	if err := DB.SelectContext(ctx, &words, query, initials, models.StatusMastered, limit); err != nil {
		return nil, apperr.Storage("reviewWords", initials, err)
	}
	return words, nil
}

// StatusMap returns the status of every word the user has ever answered
func (r *WordStatusRepository) StatusMap(ctx context.Context, initials string) (map[string]models.WordStatusValue, error) {
	var rows []models.WordStatus
	query := "SELECT user_initials, word, status, correct_count, wrong_count, last_reviewed FROM word_status WHERE user_initials = $1"
	if err := DB.SelectContext(ctx, &rows, query, initials); err != nil {
		return nil, apperr.Storage("statusMap", initials, err)
	}
	statuses := make(map[string]models.WordStatusValue, len(rows))
	for _, row := range rows {
		statuses[row.Word] = row.Status
	}
	return statuses, nil
}

// CountMastered returns how many words the user has mastered
func (r *WordStatusRepository) CountMastered(ctx context.Context, initials string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM word_status WHERE user_initials = $1 AND status = $2"
	if err := DB.GetContext(ctx, &count, query, initials, models.StatusMastered); err != nil {
		return 0, apperr.Storage("countMastered", initials, err)
	}
	return count, nil
}
