package models

// Word represents one corpus entry to be learned.
// The corpus is immutable; load order is the authoritative word order.
type Word struct {
	Word     string   `json:"word"`
	Hiragana string   `json:"hiragana"`
	Romaji   string   `json:"romaji"`
	Meanings []string `json:"meanings"`
	Page     int      `json:"page,omitempty"`
}

// ChunkWord is a corpus word annotated with its position for client-side
// addressing. The position is carried twice (id and index) because existing
// clients read both fields.
type ChunkWord struct {
	Word
	ID    int `json:"id"`
	Index int `json:"index"`
}
