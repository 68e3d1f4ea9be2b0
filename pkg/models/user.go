package models

import "time"

// User represents a learner identified by three-letter initials.
type User struct {
	Initials  string    `json:"initials"   db:"initials"`
	ChunkSize int       `json:"chunk_size" db:"chunk_size"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
