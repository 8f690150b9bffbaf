// Package extract resolves extraction rules against a reconstructed
// document model. All failure modes (keyword absent, directional offset
// out of bounds, no numeric substring) surface as an unmatched result,
// never as an error.
package extract

import (
	"strings"

	"github.com/pdfsift/pdfsift/internal/document"
	"github.com/pdfsift/pdfsift/internal/pattern"
)

// Result is the outcome of resolving one rule against one document
type Result struct {
	Value   string
	Matched bool
}

// unmatched is the absent-value result shared by every failure mode
var unmatched = Result{}

// anchor is the located position of a keyword match. A keyword spanning
// several consecutive words anchors at the full word window.
type anchor struct {
	page      int
	line      int
	firstWord int
	lastWord  int
}

// Extractor resolves rules against documents
type Extractor struct{}

// New creates an extractor
func New() *Extractor {
	return &Extractor{}
}

// Extract resolves one rule against the document. The first keyword match
// in (page, line, word) order is the anchor; the rule's direction and
// distance are applied from there and the target is captured according to
// the rule's extract type.
func (e *Extractor) Extract(doc *document.Document, rule pattern.Rule) Result {
	a, ok := findAnchor(doc, rule.Keyword)
	if !ok {
		return unmatched
	}

	page := doc.Pages[a.page]
	line := page.Lines[a.line]

	switch rule.Direction {
	case pattern.Right:
		target := a.lastWord + rule.Distance + 1
		if target >= len(line.Words) {
			return unmatched
		}
		return captureWord(line, target, rule)

	case pattern.Left:
		target := a.firstWord - rule.Distance - 1
		if target < 0 {
			return unmatched
		}
		return captureWord(line, target, rule)

	case pattern.Below:
		target := a.line + rule.Distance + 1
		if target >= len(page.Lines) {
			return unmatched
		}
		return captureLine(page.Lines[target], rule)

	case pattern.Above:
		target := a.line - rule.Distance - 1
		if target < 0 {
			return unmatched
		}
		return captureLine(page.Lines[target], rule)
	}

	return unmatched
}

// ExtractAll resolves each rule in turn against the same document
func (e *Extractor) ExtractAll(doc *document.Document, rules []pattern.Rule) []Result {
	results := make([]Result, len(rules))
	for i, rule := range rules {
		results[i] = e.Extract(doc, rule)
	}
	return results
}

// findAnchor scans words in document order for the first case-insensitive
// match of the keyword. Multi-word keywords match windows of consecutive
// words within a single line; a window never crosses a line boundary. A
// trailing colon on the keyword is ignored, and a colon attached to the
// last matched word is tolerated.
func findAnchor(doc *document.Document, keyword string) (anchor, bool) {
	kwWords := strings.Fields(strings.ToLower(strings.TrimSuffix(strings.TrimSpace(keyword), ":")))
	if len(kwWords) == 0 {
		return anchor{}, false
	}

	for pi, page := range doc.Pages {
		for li, line := range page.Lines {
			for wi := 0; wi+len(kwWords) <= len(line.Words); wi++ {
				if matchWindow(line.Words[wi:wi+len(kwWords)], kwWords) {
					return anchor{page: pi, line: li, firstWord: wi, lastWord: wi + len(kwWords) - 1}, true
				}
			}
		}
	}
	return anchor{}, false
}

func matchWindow(words []document.Word, kwWords []string) bool {
	for i, kw := range kwWords {
		w := strings.ToLower(words[i].Text)
		if i == len(kwWords)-1 {
			w = strings.TrimSuffix(w, ":")
		}
		if w != kw {
			return false
		}
	}
	return true
}

// captureWord captures a same-line target for the left/right directions
func captureWord(line document.Line, target int, rule pattern.Rule) Result {
	switch rule.ExtractType {
	case pattern.TypeWord:
		return Result{Value: line.Words[target].Text, Matched: true}

	case pattern.TypeNumber:
		// The value often sits a word or two past the target when a
		// currency symbol or label fragment occupies the target slot, so
		// scan a short window starting at the target.
		end := target + numberScanWindow
		if end > len(line.Words) {
			end = len(line.Words)
		}
		for i := target; i < end; i++ {
			if num, ok := firstNumber(line.Words[i].Text); ok {
				return Result{Value: num, Matched: true}
			}
		}
		return unmatched

	case pattern.TypeLine:
		return Result{Value: line.Text(), Matched: true}

	case pattern.TypeText:
		var parts []string
		if rule.Direction == pattern.Right {
			for _, w := range line.Words[target:] {
				parts = append(parts, w.Text)
			}
		} else {
			for _, w := range line.Words[:target+1] {
				parts = append(parts, w.Text)
			}
		}
		return Result{Value: strings.Join(parts, " "), Matched: true}
	}
	return unmatched
}

// captureLine captures a whole-line target for the above/below directions
func captureLine(line document.Line, rule pattern.Rule) Result {
	if len(line.Words) == 0 {
		return unmatched
	}

	switch rule.ExtractType {
	case pattern.TypeWord:
		return Result{Value: line.Words[0].Text, Matched: true}

	case pattern.TypeNumber:
		if num, ok := firstNumber(line.Text()); ok {
			return Result{Value: num, Matched: true}
		}
		return unmatched

	case pattern.TypeLine, pattern.TypeText:
		return Result{Value: line.Text(), Matched: true}
	}
	return unmatched
}
