// Package scraper drives batch extraction: it expands file arguments,
// loads each document through the configured geometry provider, resolves
// every rule against it, and collects output rows. Per-file failures never
// abort a batch.
package scraper

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfsift/pdfsift/internal/extract"
	"github.com/pdfsift/pdfsift/internal/pattern"
	"github.com/pdfsift/pdfsift/internal/source"
)

// FileError records one file that could not be processed
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// BatchResult aggregates the rows and failures of one batch run
type BatchResult struct {
	Headers []string
	Rows    [][]string
	Failed  []FileError
}

// Service orchestrates extraction over documents
type Service struct {
	provider  source.Provider
	extractor *extract.Extractor
	verbose   bool
}

// NewService creates a scraper service over the given provider
func NewService(provider source.Provider, verbose bool) *Service {
	return &Service{
		provider:  provider,
		extractor: extract.New(),
		verbose:   verbose,
	}
}

// Headers returns the output header row for a rule set: the filename
// column followed by each rule's label. Custom labels override the
// defaults when their count matches.
func Headers(rules []pattern.Rule, custom []string) ([]string, error) {
	if len(custom) > 0 && len(custom) != len(rules) {
		return nil, fmt.Errorf("number of headers (%d) must match number of patterns (%d)", len(custom), len(rules))
	}
	headers := make([]string, 0, len(rules)+1)
	headers = append(headers, "filename")
	for i, rule := range rules {
		if len(custom) > 0 {
			headers = append(headers, custom[i])
		} else {
			headers = append(headers, rule.Header)
		}
	}
	return headers, nil
}

// ScrapeFile resolves every rule against one document and returns its
// output row: the filename followed by one cell per rule, empty when the
// rule did not match.
func (s *Service) ScrapeFile(path string, rules []pattern.Rule) ([]string, error) {
	doc, err := s.provider.Extract(path)
	if err != nil {
		return nil, err
	}

	row := make([]string, 0, len(rules)+1)
	row = append(row, path)
	for _, result := range s.extractor.ExtractAll(doc, rules) {
		row = append(row, result.Value)
	}
	return row, nil
}

// ScrapeBatch applies the rules to every file. Unreadable files are logged
// and reported in the result; the batch always completes with a row per
// readable document.
func (s *Service) ScrapeBatch(paths []string, rules []pattern.Rule, customHeaders []string) (*BatchResult, error) {
	headers, err := Headers(rules, customHeaders)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Headers: headers}
	for _, path := range paths {
		if s.verbose {
			log.Printf("Processing: %s", path)
		}
		row, err := s.ScrapeFile(path, rules)
		if err != nil {
			log.Printf("Error processing %s: %v", path, err)
			result.Failed = append(result.Failed, FileError{Path: path, Err: err})
			continue
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

// DumpBatch extracts the full reconstructed text of every file, one row
// per page: filename, 1-based page number, page text.
func (s *Service) DumpBatch(paths []string) (*BatchResult, error) {
	result := &BatchResult{Headers: []string{"filename", "page", "text_content"}}
	for _, path := range paths {
		if s.verbose {
			log.Printf("Processing: %s", path)
		}
		doc, err := s.provider.Extract(path)
		if err != nil {
			log.Printf("Error processing %s: %v", path, err)
			result.Failed = append(result.Failed, FileError{Path: path, Err: err})
			continue
		}
		for i, page := range doc.Pages {
			result.Rows = append(result.Rows, []string{path, strconv.Itoa(i + 1), page.Text()})
		}
	}
	return result, nil
}

// ExpandPaths resolves file arguments, including glob patterns, into a
// sorted deduplicated list of PDF paths. Non-PDF and missing paths are
// skipped with a warning.
func ExpandPaths(args []string) []string {
	seen := make(map[string]bool)
	var paths []string

	add := func(path string) {
		if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
			log.Printf("Warning: skipping non-PDF file: %s", path)
			return
		}
		if !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}

	for _, arg := range args {
		if strings.ContainsAny(arg, "*?[") {
			matches, err := filepath.Glob(arg)
			if err != nil {
				log.Printf("Warning: bad file pattern %q: %v", arg, err)
				continue
			}
			for _, m := range matches {
				add(m)
			}
			continue
		}
		add(arg)
	}

	sort.Strings(paths)
	return paths
}
