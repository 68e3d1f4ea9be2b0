// Package daily implements the once-per-day challenge: a deterministic,
// date-seeded selection of ten kanji words plus the completion record keeping.
package daily

import (
	"sort"
	"strconv"
	"strings"

	"github.com/example/tenkanji/pkg/models"
)

// ChallengeSize is the number of words served per daily challenge.
const ChallengeSize = 10

// Selection is the outcome of selecting one day's words.
type Selection struct {
	Words []models.ChunkWord
	// TotalKanjiWords is how many corpus words pass the kanji filter.
	TotalKanjiWords int
}

// lcg is the fixed linear congruential generator behind the daily shuffle.
// z(n+1) = (1664525*z(n) + 1013904223) mod 2^32. The constants and the draw
// sequence are part of the wire contract: every process must produce the
// same permutation for the same date.
type lcg struct {
	z uint32
}

func (g *lcg) next() float64 {
	g.z = g.z*1664525 + 1013904223
	return float64(g.z) / 4294967296.0
}

// Seed derives the generator seed from a calendar date by reading its
// YYYYMMDD digits as an integer, e.g. "2024-01-01" -> 20240101.
func Seed(date string) uint32 {
	digits := strings.ReplaceAll(date, "-", "")
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0
	}
	return uint32(n)
}

// Select picks the challenge words for one date. It filters the corpus with
// the predicate, sorts the survivors by word text so the result does not
// depend on corpus load order, then applies a seeded Fisher-Yates shuffle
// and keeps the first ten. Output is identical across calls, processes and
// restarts for a fixed date and corpus.
func Select(date string, words []models.Word, include func(models.Word) bool) Selection {
	filtered := make([]models.Word, 0, len(words))
	for _, w := range words {
		if include == nil || include(w) {
			filtered = append(filtered, w)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Word < filtered[j].Word
	})

	shuffle(Seed(date), filtered)

	count := ChallengeSize
	if len(filtered) < count {
		count = len(filtered)
	}
	selection := Selection{
		Words:           make([]models.ChunkWord, 0, count),
		TotalKanjiWords: len(filtered),
	}
	for i := 0; i < count; i++ {
		selection.Words = append(selection.Words, models.ChunkWord{
			Word:  filtered[i],
			ID:    i,
			Index: i,
		})
	}
	return selection
}

// shuffle runs Fisher-Yates in place, walking i from the end down to 1 and
// drawing before each swap. The descending order and draw-then-swap
// sequencing must not change, or the permutation stops matching other
// implementations of the same contract.
func shuffle(seed uint32, words []models.Word) {
	g := &lcg{z: seed}
	for i := len(words) - 1; i >= 1; i-- {
		j := int(g.next() * float64(i+1))
		words[i], words[j] = words[j], words[i]
	}
}
