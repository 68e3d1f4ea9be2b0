package corpus

import (
	"encoding/json"
	"fmt"
	"os"
)

// KanjiTable is the reference set of kanji characters. It backs the daily
// challenge filter: only words containing at least one known kanji qualify.
type KanjiTable struct {
	set map[rune]bool
}

// kanjiEntry mirrors one row of the kanji reference JSON file.
type kanjiEntry struct {
	Kanji string `json:"kanji"`
}

// LoadKanjiTable reads the kanji reference JSON file.
func LoadKanjiTable(path string) (*KanjiTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read kanji file: %w", err)
	}
	var entries []kanjiEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse kanji file %s: %w", path, err)
	}
	table := &KanjiTable{set: make(map[rune]bool, len(entries))}
	for _, e := range entries {
		for _, r := range e.Kanji {
			table.set[r] = true
		}
	}
	return table, nil
}

// NewKanjiTable builds a table from kanji strings.
func NewKanjiTable(kanji ...string) *KanjiTable {
	table := &KanjiTable{set: make(map[rune]bool, len(kanji))}
	for _, k := range kanji {
		for _, r := range k {
			table.set[r] = true
		}
	}
	return table
}

// Contains reports whether the rune is a known kanji.
func (t *KanjiTable) Contains(r rune) bool {
	return t.set[r]
}

// HasKanji reports whether the word contains at least one known kanji.
func (t *KanjiTable) HasKanji(word string) bool {
	for _, r := range word {
		if t.set[r] {
			return true
		}
	}
	return false
}

// Kanji returns the known kanji contained in the word, in word order and
// without duplicates.
func (t *KanjiTable) Kanji(word string) []string {
	var out []string
	seen := make(map[rune]bool)
	for _, r := range word {
		if t.set[r] && !seen[r] {
			seen[r] = true
			out = append(out, string(r))
		}
	}
	return out
}
