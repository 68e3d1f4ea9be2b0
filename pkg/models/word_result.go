package models

// WordResult is one graded answer submitted by the client.
type WordResult struct {
	Word      string `json:"word"`
	IsCorrect bool   `json:"isCorrect"`
}
