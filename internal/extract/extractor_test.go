package extract

import (
	"strings"
	"testing"

	"github.com/pdfsift/pdfsift/internal/document"
	"github.com/pdfsift/pdfsift/internal/pattern"
)

// makeDoc builds a document from pages of line texts. Words are split on
// spaces; geometry is irrelevant to extraction.
func makeDoc(pages ...[]string) *document.Document {
	doc := &document.Document{}
	for pi, lines := range pages {
		page := document.Page{Index: pi}
		for li, text := range lines {
			line := document.Line{Page: pi, Index: li}
			for wi, w := range strings.Fields(text) {
				line.Words = append(line.Words, document.Word{
					Text: w, Page: pi, Line: li, Index: wi,
				})
			}
			page.Lines = append(page.Lines, line)
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc
}

func mustParse(t *testing.T, s string) pattern.Rule {
	t.Helper()
	rule, err := pattern.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return rule
}

func TestExtract(t *testing.T) {
	doc := makeDoc([]string{
		"ACME Corp",
		"Invoice Number: INV-2024-001",
		"Date: 2024-03-15",
		"Description: Widget assembly kit, blue",
		"Subtotal: $ 1,100.00",
		"Total: $ 1,234.56",
		"Thank you for your business",
	})

	tests := []struct {
		name string
		rule string
		want Result
	}{
		{
			name: "word right of keyword preserves case",
			rule: "Invoice Number:right:0:word",
			want: Result{Value: "INV-2024-001", Matched: true},
		},
		{
			name: "number skips currency word",
			rule: "Total:right:0:number",
			want: Result{Value: "1234.56", Matched: true},
		},
		{
			name: "text captures rest of line",
			rule: "Description:right:0:text",
			want: Result{Value: "Widget assembly kit, blue", Matched: true},
		},
		{
			name: "line captures whole line",
			rule: "Date:right:0:line",
			want: Result{Value: "Date: 2024-03-15", Matched: true},
		},
		{
			name: "right with distance",
			rule: "Invoice:right:1:word",
			want: Result{Value: "INV-2024-001", Matched: true},
		},
		{
			name: "left direction",
			rule: "Corp:left:0:word",
			want: Result{Value: "ACME", Matched: true},
		},
		{
			name: "below captures following line",
			rule: "ACME:below:0:line",
			want: Result{Value: "Invoice Number: INV-2024-001", Matched: true},
		},
		{
			name: "below with distance and number",
			rule: "Date:below:1:number",
			want: Result{Value: "1100.00", Matched: true},
		},
		{
			name: "above captures preceding line",
			rule: "Total:above:0:line",
			want: Result{Value: "Subtotal: $ 1,100.00", Matched: true},
		},
		{
			name: "keyword matching is case insensitive",
			rule: "total:right:0:number",
			want: Result{Value: "1234.56", Matched: true},
		},
		{
			name: "keyword absent",
			rule: "Missing:right:0:word",
			want: Result{},
		},
		{
			name: "right off end of line",
			rule: "INV-2024-001:right:0:word",
			want: Result{},
		},
		{
			name: "left off start of line",
			rule: "ACME:left:0:word",
			want: Result{},
		},
		{
			name: "above off top of page",
			rule: "ACME:above:0:line",
			want: Result{},
		},
		{
			name: "below off bottom of page",
			rule: "business:below:0:line",
			want: Result{},
		},
		{
			name: "number target has no digits",
			rule: "Thank:right:0:number",
			want: Result{},
		},
	}

	e := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(doc, mustParse(t, tt.rule))
			if got != tt.want {
				t.Errorf("Extract(%q) = %+v, want %+v", tt.rule, got, tt.want)
			}
		})
	}
}

func TestExtractKeywordTrailingColon(t *testing.T) {
	doc := makeDoc([]string{"Invoice Number: INV-2024-001"})

	// A trailing colon on the keyword itself is ignored when matching.
	rule := pattern.Rule{
		Keyword:     "Invoice Number:",
		Direction:   pattern.Right,
		Distance:    0,
		ExtractType: pattern.TypeWord,
	}
	got := New().Extract(doc, rule)
	want := Result{Value: "INV-2024-001", Matched: true}
	if got != want {
		t.Errorf("Extract() = %+v, want %+v", got, want)
	}
}

func TestExtractFirstMatchWins(t *testing.T) {
	// "Total" appears on page 1 and page 2; the page 1 anchor wins.
	doc := makeDoc(
		[]string{"Total: 100"},
		[]string{"Total: 200"},
	)

	got := New().Extract(doc, mustParse(t, "Total:right:0:number"))
	want := Result{Value: "100", Matched: true}
	if got != want {
		t.Errorf("Extract() = %+v, want %+v", got, want)
	}
}

func TestExtractKeywordNeverCrossesLines(t *testing.T) {
	doc := makeDoc([]string{
		"Grand",
		"Total: 500",
	})

	got := New().Extract(doc, mustParse(t, "Grand Total:right:0:number"))
	if got.Matched {
		t.Errorf("multi-word keyword matched across a line boundary: %+v", got)
	}
}

func TestExtractTextLeftIncludesLineStart(t *testing.T) {
	doc := makeDoc([]string{"alpha beta gamma Total"})

	got := New().Extract(doc, mustParse(t, "Total:left:1:text"))
	want := Result{Value: "alpha beta", Matched: true}
	if got != want {
		t.Errorf("Extract() = %+v, want %+v", got, want)
	}
}

func TestExtractAll(t *testing.T) {
	doc := makeDoc([]string{
		"Invoice Number: INV-42",
		"Total: $ 99.95",
	})
	rules := []pattern.Rule{
		mustParse(t, "Invoice Number:right:0:word"),
		mustParse(t, "Total:right:0:number"),
		mustParse(t, "Missing:right:0:word"),
	}

	results := New().ExtractAll(doc, rules)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Value != "INV-42" || results[1].Value != "99.95" {
		t.Errorf("unexpected values: %+v", results)
	}
	if results[2].Matched {
		t.Errorf("absent keyword should not match: %+v", results[2])
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	got := New().Extract(&document.Document{}, mustParse(t, "Total:right:0:word"))
	if got.Matched {
		t.Errorf("empty document should not match: %+v", got)
	}
}
