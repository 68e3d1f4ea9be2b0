// Package study serves chunked study sessions: selecting which words to
// show next and recording the graded results.
package study

import (
	"context"

	"github.com/example/tenkanji/internal/apperr"
	"github.com/example/tenkanji/internal/corpus"
	"github.com/example/tenkanji/pkg/models"
)

// DefaultChunkSize is used when the caller does not ask for a specific size.
const DefaultChunkSize = 10

// Mode selects between studying new words and reviewing mastered ones.
type Mode string

const (
	// ModeNew serves not-yet-mastered words in corpus order.
	ModeNew Mode = "new"
	// ModeReview serves mastered words, least recently reviewed first.
	ModeReview Mode = "review"
)

// StatusReader is the mastery state the selector needs.
type StatusReader interface {
	MasteredWords(ctx context.Context, initials string) ([]string, error)
	MasteredByLastReviewed(ctx context.Context, initials string, limit int) ([]string, error)
	StatusMap(ctx context.Context, initials string) (map[string]models.WordStatusValue, error)
}

// Chunk is one study session's worth of words.
type Chunk struct {
	Chunk         []models.ChunkWord `json:"chunk"`
	StartIndex    int                `json:"startIndex"`
	TotalMastered int                `json:"totalMastered"`
	TotalWords    int                `json:"totalWords"`
}

// WordStatusEntry pairs a corpus word with the user's status for it.
type WordStatusEntry struct {
	Word   string                 `json:"word"`
	Status models.WordStatusValue `json:"status"`
}

// Selector picks study chunks out of the corpus based on mastery state.
type Selector struct {
	corpus   *corpus.Corpus
	statuses StatusReader
}

// NewSelector creates a chunk selector over the loaded corpus.
func NewSelector(c *corpus.Corpus, statuses StatusReader) *Selector {
	return &Selector{corpus: c, statuses: statuses}
}

// SelectChunk returns the next chunk for the user. In new mode it scans the
// corpus in order and collects words not yet mastered; startIndex is the
// corpus position of the first collected word, or -1 when everything is
// mastered. In review mode the mastered words are ranked by last review
// time for selection, but the chunk is returned in corpus order; startIndex
// is not meaningful and is -1.
func (s *Selector) SelectChunk(ctx context.Context, initials string, size int, mode Mode) (*Chunk, error) {
	initials, ok := models.NormalizeInitials(initials)
	if !ok {
		return nil, apperr.Validation("selectChunk", initials, "initials must be 3 letters")
	}
	if size <= 0 {
		size = DefaultChunkSize
	}

	mastered, err := s.statuses.MasteredWords(ctx, initials)
	if err != nil {
		return nil, err
	}
	masteredSet := make(map[string]bool, len(mastered))
	for _, w := range mastered {
		masteredSet[w] = true
	}

	result := &Chunk{
		Chunk:         []models.ChunkWord{},
		StartIndex:    -1,
		TotalMastered: len(masteredSet),
		TotalWords:    s.corpus.Len(),
	}

	if mode == ModeReview {
		selected, err := s.statuses.MasteredByLastReviewed(ctx, initials, size)
		if err != nil {
			return nil, err
		}
		selectedSet := make(map[string]bool, len(selected))
		for _, w := range selected {
			selectedSet[w] = true
		}
		// Selection order is review recency; display order is corpus order.
		for i := 0; i < s.corpus.Len(); i++ {
			w := s.corpus.At(i)
			if selectedSet[w.Word] {
				result.Chunk = append(result.Chunk, models.ChunkWord{Word: w, ID: i, Index: i})
			}
		}
		return result, nil
	}

	for i := 0; i < s.corpus.Len() && len(result.Chunk) < size; i++ {
		w := s.corpus.At(i)
		if masteredSet[w.Word] {
			continue
		}
		if len(result.Chunk) == 0 {
			result.StartIndex = i
		}
		result.Chunk = append(result.Chunk, models.ChunkWord{Word: w, ID: i, Index: i})
	}
	return result, nil
}

// StatusList returns the user's status for every corpus word in corpus
// order, defaulting to new for words never answered.
func (s *Selector) StatusList(ctx context.Context, initials string) ([]WordStatusEntry, error) {
	initials, ok := models.NormalizeInitials(initials)
	if !ok {
		return nil, apperr.Validation("wordsStatus", initials, "initials must be 3 letters")
	}
	statuses, err := s.statuses.StatusMap(ctx, initials)
	if err != nil {
		return nil, err
	}
	entries := make([]WordStatusEntry, 0, s.corpus.Len())
	for i := 0; i < s.corpus.Len(); i++ {
		w := s.corpus.At(i)
		entries = append(entries, WordStatusEntry{Word: w.Word, Status: statuses[w.Word]})
	}
	return entries, nil
}
