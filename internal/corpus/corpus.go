// Package corpus loads the word list and the kanji reference table. Both are
// read once at startup and treated as immutable; the file order of the word
// list is the authoritative corpus order.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/example/tenkanji/pkg/models"
)

// Corpus is the ordered, immutable word list.
type Corpus struct {
	words []models.Word
}

// Load reads the words JSON file into a Corpus.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read words file: %w", err)
	}
	var words []models.Word
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("failed to parse words file %s: %w", path, err)
	}
	return New(words), nil
}

// New builds a Corpus from an already ordered word slice.
func New(words []models.Word) *Corpus {
	return &Corpus{words: words}
}

// Len returns the number of words in the corpus.
func (c *Corpus) Len() int {
	return len(c.words)
}

// At returns the word at the given corpus position.
func (c *Corpus) At(i int) models.Word {
	return c.words[i]
}

// Words returns the corpus in order. Callers must not modify the result.
func (c *Corpus) Words() []models.Word {
	return c.words
}
