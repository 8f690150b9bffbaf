// Package output serializes extraction results as tab-separated values.
// TSV is preferred over CSV because extracted values frequently contain
// commas.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// TSVWriter writes header + data rows to tab-delimited files
type TSVWriter struct{}

// NewTSVWriter creates a TSV writer
func NewTSVWriter() *TSVWriter {
	return &TSVWriter{}
}

// Write writes headers and rows to the named file, cleaning every cell so
// the tab-delimited structure survives arbitrary extracted text.
func (w *TSVWriter) Write(path string, headers []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot write to %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	cw.Comma = '\t'

	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("cannot write to %s: %w", path, err)
	}
	for _, row := range rows {
		cleaned := make([]string, len(row))
		for i, cell := range row {
			cleaned[i] = CleanCell(cell)
		}
		if err := cw.Write(cleaned); err != nil {
			return fmt.Errorf("cannot write to %s: %w", path, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("cannot write to %s: %w", path, err)
	}
	return nil
}

// Format renders headers and rows as an in-memory TSV string, used by the
// serve mode where results are returned instead of written.
func (w *TSVWriter) Format(headers []string, rows [][]string) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(headers, "\t"))
	sb.WriteString("\n")
	for _, row := range rows {
		cleaned := make([]string, len(row))
		for i, cell := range row {
			cleaned[i] = CleanCell(cell)
		}
		sb.WriteString(strings.Join(cleaned, "\t"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// CleanCell makes a value safe for tab-delimited output: tabs, newlines
// and carriage returns become single spaces, whitespace runs collapse, and
// spaces inside number-like values are removed for spreadsheet import.
func CleanCell(value string) string {
	value = strings.ReplaceAll(value, "\t", " ")
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", "")
	value = strings.Join(strings.Fields(value), " ")

	if looksLikeNumber(value) {
		value = strings.ReplaceAll(value, " ", "")
	}
	return value
}

func looksLikeNumber(value string) bool {
	if value == "" {
		return false
	}
	stripped := strings.NewReplacer(",", "", " ", "", "$", "").Replace(value)
	_, err := strconv.ParseFloat(stripped, 64)
	return err == nil
}
