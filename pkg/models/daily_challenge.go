package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DailyChallenge records one user's completion of the challenge for one
// calendar day. Keyed by (user_initials, challenge_date); re-completion
// overwrites the previous row.
type DailyChallenge struct {
	UserInitials  string    `json:"user_initials"  db:"user_initials"`
	ChallengeDate string    `json:"challenge_date" db:"challenge_date"` // YYYY-MM-DD
	Score         int       `json:"score"          db:"score"`
	ResultsJSON   string    `json:"-"              db:"results"`
	CompletedAt   time.Time `json:"completed_at"   db:"completed_at"`
}

// Results decodes the stored per-word results.
func (d *DailyChallenge) Results() ([]WordResult, error) {
	if d.ResultsJSON == "" {
		return nil, nil
	}
	var results []WordResult
	if err := json.Unmarshal([]byte(d.ResultsJSON), &results); err != nil {
		return nil, fmt.Errorf("failed to decode daily challenge results: %w", err)
	}
	return results, nil
}

// SetResults encodes the per-word results for storage.
func (d *DailyChallenge) SetResults(results []WordResult) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode daily challenge results: %w", err)
	}
	d.ResultsJSON = string(data)
	return nil
}
