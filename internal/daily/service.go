package daily

import (
	"context"
	"time"

	"github.com/example/tenkanji/internal/apperr"
	"github.com/example/tenkanji/internal/corpus"
	"github.com/example/tenkanji/pkg/models"
)

// ChallengeStore persists daily challenge completions.
type ChallengeStore interface {
	Upsert(ctx context.Context, challenge *models.DailyChallenge) error
	Get(ctx context.Context, initials, date string) (*models.DailyChallenge, error)
}

// ActivityLog appends activity events.
type ActivityLog interface {
	Append(ctx context.Context, initials, date string, kind models.ActivityKind) error
}

// Service serves the daily challenge and records completions.
type Service struct {
	corpus     *corpus.Corpus
	kanji      *corpus.KanjiTable
	challenges ChallengeStore
	activity   ActivityLog
	now        func() time.Time
}

// NewService creates a daily challenge service over the loaded corpus.
func NewService(c *corpus.Corpus, kanji *corpus.KanjiTable, challenges ChallengeStore, activity ActivityLog) *Service {
	return &Service{
		corpus:     c,
		kanji:      kanji,
		challenges: challenges,
		activity:   activity,
		now:        time.Now,
	}
}

// Completed summarizes a stored completion for the client.
type Completed struct {
	Score   int                 `json:"score"`
	Results []models.WordResult `json:"results"`
}

// Challenge is the daily challenge payload for one user and date.
type Challenge struct {
	Date            string             `json:"date"`
	Chunk           []models.ChunkWord `json:"chunk"`
	TotalKanjiWords int                `json:"totalKanjiWords"`
	Completed       bool               `json:"completed"`
	CompletedData   *Completed         `json:"completedData,omitempty"`
}

// Today returns the current challenge for the user: the deterministic word
// selection for today's date plus the stored completion if the user already
// played.
func (s *Service) Today(ctx context.Context, initials string) (*Challenge, error) {
	initials, ok := models.NormalizeInitials(initials)
	if !ok {
		return nil, apperr.Validation("getDaily", initials, "initials must be 3 letters")
	}

	date := s.now().UTC().Format("2006-01-02")
	selection := Select(date, s.corpus.Words(), func(w models.Word) bool {
		return s.kanji.HasKanji(w.Word)
	})

	challenge := &Challenge{
		Date:            date,
		Chunk:           selection.Words,
		TotalKanjiWords: selection.TotalKanjiWords,
	}

	stored, err := s.challenges.Get(ctx, initials, date)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		results, err := stored.Results()
		if err != nil {
			return nil, apperr.Storage("getDaily", initials, err)
		}
		challenge.Completed = true
		challenge.CompletedData = &Completed{Score: stored.Score, Results: results}
	}
	return challenge, nil
}

// Complete stores the user's score for today and logs a daily_challenge
// activity event. Keyed by (user, date): completing twice overwrites.
func (s *Service) Complete(ctx context.Context, initials string, score int, results []models.WordResult) (*models.DailyChallenge, error) {
	initials, ok := models.NormalizeInitials(initials)
	if !ok {
		return nil, apperr.Validation("completeDailyChallenge", initials, "initials must be 3 letters")
	}
	if len(results) == 0 {
		return nil, apperr.Validation("completeDailyChallenge", initials, "results are required")
	}
	if score < 0 || score > len(results) {
		return nil, apperr.Validation("completeDailyChallenge", initials, "score out of range")
	}

	now := s.now().UTC()
	challenge := &models.DailyChallenge{
		UserInitials:  initials,
		ChallengeDate: now.Format("2006-01-02"),
		Score:         score,
		CompletedAt:   now,
	}
	if err := challenge.SetResults(results); err != nil {
		return nil, apperr.Validation("completeDailyChallenge", initials, err.Error())
	}

	if err := s.challenges.Upsert(ctx, challenge); err != nil {
		return nil, err
	}
	if err := s.activity.Append(ctx, initials, challenge.ChallengeDate, models.ActivityDailyChallenge); err != nil {
		return nil, err
	}
	return challenge, nil
}
