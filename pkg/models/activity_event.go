package models

import "time"

// ActivityKind distinguishes the two independently recorded activity sources.
type ActivityKind string

const (
	// ActivityNormalSession is logged after a regular study session submit.
	ActivityNormalSession ActivityKind = "normal_session"
	// ActivityDailyChallenge is logged after completing the daily challenge.
	ActivityDailyChallenge ActivityKind = "daily_challenge"
)

// ActivityEvent is one append-only activity log row. Several events on the
// same calendar day are allowed; readers deduplicate by date.
type ActivityEvent struct {
	ID           int64        `json:"id"            db:"id"`
	UserInitials string       `json:"user_initials" db:"user_initials"`
	ActivityDate string       `json:"activity_date" db:"activity_date"` // YYYY-MM-DD
	Kind         ActivityKind `json:"kind"          db:"kind"`
	CreatedAt    time.Time    `json:"created_at"    db:"created_at"`
}
