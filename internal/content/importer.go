package content

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/hamstudy/pkg/models"
)

// ImportConfig defines how a pool spreadsheet maps to questions. The NCVEC
// releases pools as spreadsheets; columns default to the published layout.
type ImportConfig struct {
	FilePath       string           // Path to the Excel or CSV file
	Level          models.ExamLevel // Exam level the pool belongs to
	OutputDir      string           // Directory the pool JSON is written to
	IDColumn       string           // Column with the question id
	QuestionColumn string           // Column with the question text
	AnswerColumns  [4]string        // Columns with answers A-D
	CorrectColumn  string           // Column with the correct answer letter
	FigureColumn   string           // Column with the figure reference
	RefsColumn     string           // Column with the rule references
	SheetName      string           // Name of the sheet to import
	StartRow       int              // The row to start importing from (1-based)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig(level models.ExamLevel, filePath, outputDir string) ImportConfig {
	return ImportConfig{
		FilePath:       filePath,
		Level:          level,
		OutputDir:      outputDir,
		IDColumn:       "A",
		QuestionColumn: "B",
		AnswerColumns:  [4]string{"C", "D", "E", "F"},
		CorrectColumn:  "G",
		FigureColumn:   "H",
		RefsColumn:     "I",
		SheetName:      "Sheet1",
		StartRow:       2, // skip the header row
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// ImportPool converts a pool spreadsheet to the JSON file the loader reads.
// Rows with problems are reported and skipped; the written pool must still
// pass full validation before anything is saved.
func ImportPool(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))

	var rows [][]string
	var err error
	if ext == ".csv" {
		rows, err = readCSVRows(config.FilePath)
	} else {
		rows, err = readExcelRows(config.FilePath, config.SheetName)
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: make([]string, 0)}
	columns := columnIndexes(config)

	var pool []models.Question
	for i, row := range rows {
		rowNum := i + 1
		if rowNum < config.StartRow {
			continue
		}
		result.TotalProcessed++

		question, err := parseRow(row, columns)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		pool = append(pool, question)
		result.Imported++
	}

	if err := ValidatePool(config.Level, pool); err != nil {
		return result, fmt.Errorf("imported pool failed validation: %v", err)
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return result, fmt.Errorf("failed to create pool directory: %v", err)
	}
	encoded, err := json.MarshalIndent(pool, "", "  ")
	if err != nil {
		return result, fmt.Errorf("failed to encode pool: %v", err)
	}
	outPath := filepath.Join(config.OutputDir, string(config.Level)+".json")
	if err := os.WriteFile(outPath, encoded, 0644); err != nil {
		return result, fmt.Errorf("failed to write pool file: %v", err)
	}
	return result, nil
}

type rowColumns struct {
	id, question, correct, figure, refs int
	answers                             [4]int
}

// columnIndexes converts the configured column letters to slice indexes
func columnIndexes(config ImportConfig) rowColumns {
	idx := rowColumns{
		id:       columnIndex(config.IDColumn),
		question: columnIndex(config.QuestionColumn),
		correct:  columnIndex(config.CorrectColumn),
		figure:   columnIndex(config.FigureColumn),
		refs:     columnIndex(config.RefsColumn),
	}
	for i, col := range config.AnswerColumns {
		idx.answers[i] = columnIndex(col)
	}
	return idx
}

// columnIndex converts a spreadsheet column letter ("A", "B", ...) to a
// zero-based index; -1 means the column is unset
func columnIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	index := 0
	for _, ch := range column {
		if ch < 'A' || ch > 'Z' {
			return -1
		}
		index = index*26 + int(ch-'A') + 1
	}
	return index - 1
}

// cell safely reads one cell from a row
func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

// parseRow converts one spreadsheet row into a question
func parseRow(row []string, columns rowColumns) (models.Question, error) {
	id := cell(row, columns.id)
	if !models.ValidQuestionID(id) {
		return models.Question{}, fmt.Errorf("malformed question id %q", id)
	}

	text := cell(row, columns.question)
	if text == "" {
		return models.Question{}, fmt.Errorf("empty question text")
	}

	answers := make([]string, 4)
	for i, index := range columns.answers {
		answers[i] = cell(row, index)
		if answers[i] == "" {
			return models.Question{}, fmt.Errorf("missing answer %c", 'A'+i)
		}
	}

	correct, err := parseCorrect(cell(row, columns.correct))
	if err != nil {
		return models.Question{}, err
	}

	return models.Question{
		ID:            id,
		Subelement:    models.SubelementOf(id),
		Group:         models.GroupOf(id),
		Question:      text,
		Answers:       answers,
		CorrectAnswer: correct,
		Figure:        cell(row, columns.figure),
		Refs:          cell(row, columns.refs),
	}, nil
}

// parseCorrect accepts the answer key as a letter ("A".."D") or index
func parseCorrect(value string) (int, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	switch value {
	case "A", "B", "C", "D":
		return int(value[0] - 'A'), nil
	}
	if n, err := strconv.Atoi(value); err == nil && n >= 0 && n <= 3 {
		return n, nil
	}
	return 0, fmt.Errorf("invalid correct answer %q", value)
}

// readExcelRows reads all rows from the given sheet
func readExcelRows(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %v", sheet, err)
	}
	return rows, nil
}

// readCSVRows reads all rows from a CSV file
func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %v", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
