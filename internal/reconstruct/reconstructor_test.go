package reconstruct

import (
	"reflect"
	"testing"

	"github.com/pdfsift/pdfsift/internal/document"
)

// lineChars lays out text on one line with a uniform 5pt advance and 10pt
// font. extraGaps maps a rune index to the advance used *before* that
// rune, letting tests widen individual gaps.
func lineChars(text string, y float64, extraGaps map[int]float64) []document.Char {
	const advance = 5.0
	const fontSize = 10.0

	var chars []document.Char
	x := 0.0
	for i, r := range []rune(text) {
		if i > 0 {
			adv := advance
			if g, ok := extraGaps[i]; ok {
				adv = g
			}
			x += adv
		}
		chars = append(chars, document.Char{
			Text:     string(r),
			X0:       x,
			Y0:       y,
			X1:       x + advance,
			Y1:       y + fontSize,
			FontSize: fontSize,
		})
	}
	return chars
}

func wordTexts(line document.Line) []string {
	texts := make([]string, len(line.Words))
	for i, w := range line.Words {
		texts[i] = w.Text
	}
	return texts
}

func TestMissingSpacesInserted(t *testing.T) {
	// "InvoiceNumber:INV-2024-001" typeset without literal spaces: a
	// moderate gap before "Number" and a wide gap after the colon.
	text := "InvoiceNumber:INV-2024-001"
	gaps := map[int]float64{
		7:  8.0,  // before 'N' of Number
		14: 12.0, // after ':'
	}

	r := New(DefaultConfig())
	page := r.Page(lineChars(text, 700, gaps), 0)

	if len(page.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(page.Lines))
	}
	got := wordTexts(page.Lines[0])
	want := []string{"Invoice", "Number:", "INV-2024-001"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("words = %v, want %v", got, want)
	}
}

func TestSpuriousSpaceRemoved(t *testing.T) {
	// "Tot al" carries a literal space, but the glyphs around it sit only
	// 6pt apart against a 5pt typical advance: kerning noise, not a
	// word boundary.
	chars := lineChars("Tot al", 700, map[int]float64{4: 1.0})

	r := New(DefaultConfig())
	page := r.Page(chars, 0)

	if len(page.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(page.Lines))
	}
	got := wordTexts(page.Lines[0])
	want := []string{"Total"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("words = %v, want %v", got, want)
	}
}

func TestRealSpaceKept(t *testing.T) {
	// The literal space spans a wide gap: its neighbors are 15pt apart
	// against a 5pt typical advance, well past the 1.3 minimum ratio.
	chars := lineChars("Net Total", 700, map[int]float64{4: 10.0})

	r := New(DefaultConfig())
	page := r.Page(chars, 0)

	got := wordTexts(page.Lines[0])
	want := []string{"Net", "Total"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("words = %v, want %v", got, want)
	}
}

func TestReconstructionIdempotent(t *testing.T) {
	chars := lineChars("Total: 1,234.56", 700, map[int]float64{7: 10.0})

	r := New(DefaultConfig())
	first := r.Page(chars, 0)
	second := r.Page(chars, 0)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("reconstruction is not deterministic: %+v vs %+v", first, second)
	}

	// Already-correct text must come through unaltered.
	if got, want := first.Lines[0].Text(), "Total: 1,234.56"; got != want {
		t.Errorf("line text = %q, want %q", got, want)
	}
}

func TestNoGapsYieldSingleWord(t *testing.T) {
	chars := lineChars("abcdef", 700, nil)

	r := New(DefaultConfig())
	page := r.Page(chars, 0)

	if len(page.Lines) != 1 || len(page.Lines[0].Words) != 1 {
		t.Fatalf("expected a single word, got %+v", page.Lines)
	}
	if page.Lines[0].Words[0].Text != "abcdef" {
		t.Errorf("word = %q, want %q", page.Lines[0].Words[0].Text, "abcdef")
	}
}

func TestEmptyPage(t *testing.T) {
	r := New(DefaultConfig())
	page := r.Page(nil, 0)
	if len(page.Lines) != 0 {
		t.Errorf("expected no lines, got %d", len(page.Lines))
	}
}

func TestLinesOrderedTopToBottom(t *testing.T) {
	// Characters arrive interleaved across three lines.
	var chars []document.Char
	chars = append(chars, lineChars("bottom", 600, nil)...)
	chars = append(chars, lineChars("top", 700, nil)...)
	chars = append(chars, lineChars("middle", 650, nil)...)

	r := New(DefaultConfig())
	page := r.Page(chars, 0)

	if len(page.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(page.Lines))
	}
	want := []string{"top", "middle", "bottom"}
	for i, line := range page.Lines {
		if line.Text() != want[i] {
			t.Errorf("line %d = %q, want %q", i, line.Text(), want[i])
		}
		if i > 0 && page.Lines[i-1].Y < line.Y {
			t.Errorf("line %d breaks top-to-bottom ordering: %v before %v", i, page.Lines[i-1].Y, line.Y)
		}
		if line.Index != i {
			t.Errorf("line index = %d, want %d", line.Index, i)
		}
	}
}

func TestWordIndicesDense(t *testing.T) {
	chars := lineChars("one two three", 700, map[int]float64{4: 10.0, 8: 10.0})

	r := New(DefaultConfig())
	page := r.Page(chars, 0)

	for li, line := range page.Lines {
		for wi, w := range line.Words {
			if w.Line != li || w.Index != wi || w.Page != 0 {
				t.Errorf("word %q has indices (page=%d line=%d word=%d), want (0, %d, %d)",
					w.Text, w.Page, w.Line, w.Index, li, wi)
			}
		}
	}
}

func TestWordBoundingBoxUnion(t *testing.T) {
	chars := lineChars("ab", 700, nil)

	r := New(DefaultConfig())
	page := r.Page(chars, 0)

	w := page.Lines[0].Words[0]
	if w.BBox.X0 != chars[0].X0 || w.BBox.X1 != chars[1].X1 {
		t.Errorf("word bbox = %+v, want to span %v..%v", w.BBox, chars[0].X0, chars[1].X1)
	}
}

func TestAbsoluteThresholds(t *testing.T) {
	// Fixed 6pt thresholds: the 8pt gap splits, the 5pt advances do not.
	chars := lineChars("abcd", 700, map[int]float64{2: 8.0})

	cfg := Config{Thresholds: AbsoluteThresholds(6.0, 6.0)}
	page := New(cfg).Page(chars, 0)

	got := wordTexts(page.Lines[0])
	want := []string{"ab", "cd"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("words = %v, want %v", got, want)
	}
}

func TestMedianCharSpacing(t *testing.T) {
	tests := []struct {
		name string
		text string
		gaps map[int]float64
		want float64
	}{
		{"uniform", "abcdef", nil, 5.0},
		{"outlier ignored by median", "abcdef", map[int]float64{3: 20.0}, 5.0},
		{"too short", "a", nil, fallbackCharSpacing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := medianCharSpacing(lineChars(tt.text, 700, tt.gaps))
			if got != tt.want {
				t.Errorf("medianCharSpacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRatioThresholdDefaults(t *testing.T) {
	th := RatioThresholds(0, 0)
	if th.AddSpaceRatio != DefaultAddSpaceRatio || th.MinSpaceRatio != DefaultMinSpaceRatio {
		t.Errorf("RatioThresholds(0,0) = %+v, want defaults", th)
	}

	add, minDist := th.resolve(5.0)
	if add != 5.5 || minDist != 6.5 {
		t.Errorf("resolve(5.0) = (%v, %v), want (5.5, 6.5)", add, minDist)
	}
}
