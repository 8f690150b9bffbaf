// Package reconstruct turns a page's raw character stream into ordered
// lines of well-spaced words. It corrects the two spacing failure modes of
// machine-generated PDFs: words typeset with wide glyph advances but no
// literal space, and spurious spaces that are kerning artifacts rather
// than word boundaries.
package reconstruct

import (
	"sort"

	"github.com/pdfsift/pdfsift/internal/document"
)

const (
	// lineToleranceFraction of the font size decides whether a character's
	// vertical center still belongs to the current line.
	lineToleranceFraction = 0.3

	// maxMeasuredGap excludes column jumps and tab-like gaps from the
	// character spacing measurement.
	maxMeasuredGap = 50.0
)

// Config controls reconstruction behavior
type Config struct {
	Thresholds Thresholds
	// LineTolerance, when positive, is a fixed vertical grouping distance
	// in page units. When zero the tolerance adapts to font size.
	LineTolerance float64
}

// DefaultConfig returns a ratio-mode configuration with tested defaults
func DefaultConfig() Config {
	return Config{Thresholds: RatioThresholds(0, 0)}
}

// Reconstructor builds the line/word model from positioned characters
type Reconstructor struct {
	cfg Config
}

// New creates a reconstructor with the given configuration
func New(cfg Config) *Reconstructor {
	if cfg.Thresholds.Mode == "" {
		cfg.Thresholds = RatioThresholds(0, 0)
	}
	return &Reconstructor{cfg: cfg}
}

// Document reconstructs a full document from per-page character streams
func (r *Reconstructor) Document(pages [][]document.Char) *document.Document {
	doc := &document.Document{Pages: make([]document.Page, len(pages))}
	for i, chars := range pages {
		doc.Pages[i] = r.Page(chars, i)
	}
	return doc
}

// Page reconstructs one page. Characters may arrive in any order; they are
// grouped into lines top to bottom and ordered left to right within a line.
// Lines that end up with no words are dropped.
func (r *Reconstructor) Page(chars []document.Char, pageIndex int) document.Page {
	page := document.Page{Index: pageIndex}
	for _, lineChars := range r.groupIntoLines(chars) {
		words := r.buildWords(lineChars)
		if len(words) == 0 {
			continue
		}
		idx := len(page.Lines)
		for i := range words {
			words[i].Page = pageIndex
			words[i].Line = idx
			words[i].Index = i
		}
		page.Lines = append(page.Lines, document.Line{
			Words: words,
			Y:     lineY(lineChars),
			Page:  pageIndex,
			Index: idx,
		})
	}
	return page
}

// groupIntoLines clusters characters by vertical center. A character joins
// the current line when its center is within tolerance of the line's
// running center; the tolerance adapts to the font size of the characters
// being compared unless a fixed tolerance is configured.
func (r *Reconstructor) groupIntoLines(chars []document.Char) [][]document.Char {
	if len(chars) == 0 {
		return nil
	}

	sorted := make([]document.Char, len(chars))
	copy(sorted, chars)
	// Top to bottom first (PDF y grows upward), then left to right.
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].YCenter() != sorted[j].YCenter() {
			return sorted[i].YCenter() > sorted[j].YCenter()
		}
		return sorted[i].X0 < sorted[j].X0
	})

	var lines [][]document.Char
	current := []document.Char{sorted[0]}
	runningY := sorted[0].YCenter()

	for _, c := range sorted[1:] {
		if abs(c.YCenter()-runningY) <= r.tolerance(c) {
			current = append(current, c)
			runningY += (c.YCenter() - runningY) / float64(len(current))
		} else {
			lines = append(lines, current)
			current = []document.Char{c}
			runningY = c.YCenter()
		}
	}
	lines = append(lines, current)

	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool { return line[i].X0 < line[j].X0 })
	}
	return lines
}

func (r *Reconstructor) tolerance(c document.Char) float64 {
	if r.cfg.LineTolerance > 0 {
		return r.cfg.LineTolerance
	}
	if c.FontSize > 0 {
		return c.FontSize * lineToleranceFraction
	}
	return 2.0
}

// buildWords applies center-distance filtering to one line of characters
// and splits the corrected stream into words. A literal space survives only
// when the center distance of its non-space neighbors exceeds the
// minimum-space threshold; a synthetic space is inserted between adjacent
// non-space characters whose center distance exceeds the add-space
// threshold. Both comparisons are strict so reapplying the pass to an
// already-correct line changes nothing.
func (r *Reconstructor) buildWords(lineChars []document.Char) []document.Word {
	if len(lineChars) == 0 {
		return nil
	}

	addDist, minDist := r.cfg.Thresholds.resolve(medianCharSpacing(lineChars))

	var words []document.Word
	var run []document.Char

	flush := func() {
		if len(run) == 0 {
			return
		}
		w := document.Word{Text: "", BBox: run[0].BBox()}
		for _, c := range run {
			w.Text += c.Text
			w.BBox = w.BBox.Union(c.BBox())
		}
		words = append(words, w)
		run = run[:0]
	}

	for i, c := range lineChars {
		if c.IsSpace() {
			prev, prevOK := prevNonSpace(lineChars, i)
			next, nextOK := nextNonSpace(lineChars, i)
			if !prevOK || !nextOK {
				// A space with no text on one side carries no word
				// boundary either way.
				flush()
				continue
			}
			if next.XCenter()-prev.XCenter() > minDist {
				flush()
			}
			// Otherwise the space is kerning noise: drop it and let the
			// run continue.
			continue
		}

		run = append(run, c)

		if next, ok := nextNonSpace(lineChars, i); ok && i+1 < len(lineChars) && !lineChars[i+1].IsSpace() {
			if next.XCenter()-c.XCenter() > addDist {
				flush()
			}
		}
	}
	flush()

	return words
}

// medianCharSpacing measures the typical center-to-center distance between
// adjacent non-space characters of a line. The median resists the outsized
// gaps this package exists to detect; gaps that are non-positive or wider
// than maxMeasuredGap are excluded entirely.
func medianCharSpacing(lineChars []document.Char) float64 {
	var centers []float64
	for _, c := range lineChars {
		if !c.IsSpace() {
			centers = append(centers, c.XCenter())
		}
	}
	if len(centers) < 2 {
		return fallbackCharSpacing
	}

	var gaps []float64
	for i := 1; i < len(centers); i++ {
		gap := centers[i] - centers[i-1]
		if gap > 0 && gap < maxMeasuredGap {
			gaps = append(gaps, gap)
		}
	}
	if len(gaps) == 0 {
		return fallbackCharSpacing
	}

	sort.Float64s(gaps)
	mid := len(gaps) / 2
	if len(gaps)%2 == 0 {
		return (gaps[mid-1] + gaps[mid]) / 2
	}
	return gaps[mid]
}

func prevNonSpace(chars []document.Char, from int) (document.Char, bool) {
	for i := from - 1; i >= 0; i-- {
		if !chars[i].IsSpace() {
			return chars[i], true
		}
	}
	return document.Char{}, false
}

func nextNonSpace(chars []document.Char, from int) (document.Char, bool) {
	for i := from + 1; i < len(chars); i++ {
		if !chars[i].IsSpace() {
			return chars[i], true
		}
	}
	return document.Char{}, false
}

// lineY is the dominant vertical position of a line's characters
func lineY(lineChars []document.Char) float64 {
	if len(lineChars) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range lineChars {
		sum += c.YCenter()
	}
	return sum / float64(len(lineChars))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
