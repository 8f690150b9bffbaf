package source

import (
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/pdfsift/pdfsift/internal/document"
	"github.com/pdfsift/pdfsift/internal/reconstruct"
)

// defaultFontSize approximates glyph height when the source reports none
const defaultFontSize = 12.0

// CharGeometryProvider extracts per-glyph positions with ledongthuc/pdf
// and feeds them through the text reconstructor. This is the default,
// high-fidelity path.
type CharGeometryProvider struct {
	reconstructor *reconstruct.Reconstructor
	maxFileSize   int64
}

// NewCharGeometryProvider creates the char-geometry provider
func NewCharGeometryProvider(cfg Config) *CharGeometryProvider {
	return &CharGeometryProvider{
		reconstructor: reconstruct.New(cfg.Reconstruct),
		maxFileSize:   cfg.MaxFileSize,
	}
}

// Name identifies the provider
func (p *CharGeometryProvider) Name() string {
	return ProviderCharGeometry
}

// Extract loads every page's character stream and reconstructs the
// document. A page whose content cannot be read yields an empty page; the
// rest of the document is still produced.
func (p *CharGeometryProvider) Extract(path string) (*document.Document, error) {
	if err := ValidateFile(path, p.maxFileSize); err != nil {
		return nil, err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	pages := make([][]document.Char, reader.NumPage())
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pages[pageNum-1] = fragmentChars(page.Content().Text, pageNum-1)
	}

	return p.reconstructor.Document(pages), nil
}

// fragmentChars converts ledongthuc text fragments into per-character
// cells. A fragment may carry several runes; its width is apportioned
// evenly across them so the reconstructor sees one cell per grapheme.
func fragmentChars(fragments []pdf.Text, pageIndex int) []document.Char {
	var chars []document.Char
	for _, frag := range fragments {
		runes := []rune(frag.S)
		if len(runes) == 0 {
			continue
		}

		height := frag.FontSize
		if height == 0 {
			height = defaultFontSize
		}

		cellWidth := frag.W / float64(len(runes))
		for i, r := range runes {
			x0 := frag.X + cellWidth*float64(i)
			chars = append(chars, document.Char{
				Text:     string(r),
				X0:       x0,
				Y0:       frag.Y,
				X1:       x0 + cellWidth,
				Y1:       frag.Y + height,
				FontSize: frag.FontSize,
				Page:     pageIndex,
			})
		}
	}
	return chars
}
