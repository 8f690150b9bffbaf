package source

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdfsift/pdfsift/internal/document"
	"github.com/pdfsift/pdfsift/internal/reconstruct"
)

// PlainTextProvider builds the document model from pre-tokenized row text
// when character-level spacing analysis is not wanted. Words carry no
// bounding boxes. Optional regex spacing repairs fix the most common
// concatenation artifacts without positional data.
type PlainTextProvider struct {
	smartSpacing bool
	maxFileSize  int64
}

// NewPlainTextProvider creates the degraded plain-text provider
func NewPlainTextProvider(cfg Config) *PlainTextProvider {
	return &PlainTextProvider{
		smartSpacing: cfg.SmartSpacing,
		maxFileSize:  cfg.MaxFileSize,
	}
}

// Name identifies the provider
func (p *PlainTextProvider) Name() string {
	return ProviderPlainText
}

// Extract loads every page's text rows and tokenizes them. A page whose
// rows cannot be read becomes an empty page; the rest of the document is
// still produced.
func (p *PlainTextProvider) Extract(path string) (*document.Document, error) {
	if err := ValidateFile(path, p.maxFileSize); err != nil {
		return nil, err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	doc := &document.Document{Pages: make([]document.Page, reader.NumPage())}
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		doc.Pages[pageNum-1] = document.Page{Index: pageNum - 1}

		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		doc.Pages[pageNum-1] = p.tokenizePage(rows, pageNum-1)
	}

	return doc, nil
}

// tokenizePage turns one page's text rows into lines of
// whitespace-separated words. Rows arrive sorted top to bottom with their
// fragments ordered left to right.
func (p *PlainTextProvider) tokenizePage(rows pdf.Rows, pageIndex int) document.Page {
	page := document.Page{Index: pageIndex}

	for _, row := range rows {
		var sb strings.Builder
		for _, frag := range row.Content {
			sb.WriteString(frag.S)
		}
		line := strings.TrimSpace(sb.String())
		if line == "" {
			continue
		}
		if p.smartSpacing {
			line = reconstruct.FixSpacing(line)
		}

		idx := len(page.Lines)
		fields := strings.Fields(line)
		words := make([]document.Word, len(fields))
		for i, field := range fields {
			words[i] = document.Word{Text: field, Page: pageIndex, Line: idx, Index: i}
		}
		page.Lines = append(page.Lines, document.Line{
			Words: words,
			Y:     float64(idx),
			Page:  pageIndex,
			Index: idx,
		})
	}

	return page
}
