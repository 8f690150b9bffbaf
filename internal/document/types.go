// Package document defines the positioned text model produced by geometry
// sources and consumed by the pattern extractor: characters grouped into
// words, words grouped into lines, lines grouped into pages.
package document

import "strings"

// BoundingBox represents a rectangular area with coordinates
type BoundingBox struct {
	X0 float64 // Left
	Y0 float64 // Bottom
	X1 float64 // Right
	Y1 float64 // Top
}

// Width returns the width of the bounding box
func (b BoundingBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the height of the bounding box
func (b BoundingBox) Height() float64 {
	return b.Y1 - b.Y0
}

// Union returns the smallest bounding box containing both boxes
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	return BoundingBox{
		X0: min(b.X0, other.X0),
		Y0: min(b.Y0, other.Y0),
		X1: max(b.X1, other.X1),
		Y1: max(b.Y1, other.Y1),
	}
}

// Char is a single positioned grapheme as reported by a geometry source.
// Coordinates follow the source's convention; for PDF sources the origin is
// the lower-left corner of the page, so larger Y means higher on the page.
type Char struct {
	Text     string
	X0       float64
	Y0       float64
	X1       float64
	Y1       float64
	FontSize float64
	Page     int
}

// XCenter returns the horizontal center of the character
func (c Char) XCenter() float64 {
	return (c.X0 + c.X1) / 2
}

// YCenter returns the vertical center of the character
func (c Char) YCenter() float64 {
	return (c.Y0 + c.Y1) / 2
}

// BBox returns the character's bounding box
func (c Char) BBox() BoundingBox {
	return BoundingBox{X0: c.X0, Y0: c.Y0, X1: c.X1, Y1: c.Y1}
}

// IsSpace reports whether the character is a literal space
func (c Char) IsSpace() bool {
	return c.Text == " "
}

// Word is a run of characters between space boundaries. Page, Line and
// Index are dense zero-based positions within the document model.
type Word struct {
	Text  string
	BBox  BoundingBox
	Page  int
	Line  int
	Index int
}

// Line is an ordered sequence of words sharing a vertical position.
// Lines on a page are ordered top to bottom.
type Line struct {
	Words []Word
	Y     float64
	Page  int
	Index int
}

// Text returns the line's words joined with single spaces
func (l Line) Text() string {
	parts := make([]string, len(l.Words))
	for i, w := range l.Words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// Page is an ordered sequence of lines
type Page struct {
	Lines []Line
	Index int
}

// Text returns the page's lines joined with newlines
func (p Page) Text() string {
	parts := make([]string, len(p.Lines))
	for i, l := range p.Lines {
		parts[i] = l.Text()
	}
	return strings.Join(parts, "\n")
}

// Document is the reconstructed text model of one source file
type Document struct {
	Pages []Page
}

// Text returns the full document text, pages separated by blank lines
func (d *Document) Text() string {
	parts := make([]string, len(d.Pages))
	for i, p := range d.Pages {
		parts[i] = p.Text()
	}
	return strings.Join(parts, "\n\n")
}
