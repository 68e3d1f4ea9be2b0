// Package excel converts scraped word lists (Excel or CSV) into the JSON
// corpus file the server loads at startup.
package excel

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/tenkanji/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath       string // Path to the Excel or CSV file
	OutputPath     string // Path of the words JSON file to write
	WordColumn     int    // Column with the word (0-based)
	HiraganaColumn int    // Column with the hiragana reading
	RomajiColumn   int    // Column with the romaji transliteration
	MeaningsColumn int    // Column with meanings separated by ';'
	PageColumn     int    // Column with the source page number
	SheetName      string // Name of the sheet to import
	StartRow       int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordColumn:     0,
		HiraganaColumn: 1,
		RomajiColumn:   2,
		MeaningsColumn: 3,
		PageColumn:     4,
		SheetName:      "Sheet1",
		StartRow:       2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// ImportWords reads an Excel or CSV word list and writes the corpus JSON
// file. Row order is preserved: it becomes the authoritative corpus order.
func ImportWords(config ImportConfig) (*ImportResult, error) {
	var rows [][]string
	var err error

	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		rows, err = readCSVRows(config.FilePath)
	} else {
		rows, err = readExcelRows(config.FilePath, config.SheetName)
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: make([]string, 0)}
	words := make([]models.Word, 0, len(rows))

	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++

		word, err := parseRow(row, config)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		words = append(words, word)
		result.Imported++
	}

	if err := writeWordsFile(config.OutputPath, words); err != nil {
		return nil, err
	}
	return result, nil
}

// readExcelRows loads all rows of one sheet from an Excel file
func readExcelRows(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

// readCSVRows loads all rows from a CSV file
func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseRow converts one sheet row into a corpus word
func parseRow(row []string, config ImportConfig) (models.Word, error) {
	text := cell(row, config.WordColumn)
	if text == "" {
		return models.Word{}, fmt.Errorf("empty word cell")
	}

	word := models.Word{
		Word:     text,
		Hiragana: cell(row, config.HiraganaColumn),
		Romaji:   cell(row, config.RomajiColumn),
	}
	if meanings := cell(row, config.MeaningsColumn); meanings != "" {
		for _, m := range strings.Split(meanings, ";") {
			if m = strings.TrimSpace(m); m != "" {
				word.Meanings = append(word.Meanings, m)
			}
		}
	}
	if page := cell(row, config.PageColumn); page != "" {
		fmt.Sscanf(page, "%d", &word.Page)
	}
	return word, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// writeWordsFile writes the corpus JSON file
func writeWordsFile(path string, words []models.Word) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	data, err := json.MarshalIndent(words, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode words: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write words file: %w", err)
	}
	return nil
}
