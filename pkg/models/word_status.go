package models

import "database/sql"

// WordStatusValue is the mastery state of a word for one user.
type WordStatusValue int

const (
	// StatusNew means the word has never been answered.
	StatusNew WordStatusValue = 0
	// StatusSeen means the most recent answer was wrong.
	StatusSeen WordStatusValue = 1
	// StatusMastered means the most recent answer was correct.
	StatusMastered WordStatusValue = 2
)

// WordStatus tracks a user's mastery of a specific word.
// There is at most one row per (user_initials, word) pair. Status follows the
// latest answer (a wrong answer demotes a mastered word back to seen), while
// correct_count and wrong_count only ever grow.
type WordStatus struct {
	UserInitials string          `json:"user_initials" db:"user_initials"`
	Word         string          `json:"word"          db:"word"`
	Status       WordStatusValue `json:"status"        db:"status"`
	CorrectCount int             `json:"correct_count" db:"correct_count"`
	WrongCount   int             `json:"wrong_count"   db:"wrong_count"`
	LastReviewed sql.NullTime    `json:"last_reviewed" db:"last_reviewed"`
}
