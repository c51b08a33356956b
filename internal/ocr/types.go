// Package ocr defines the text extraction data model and the extractors
// that turn uploaded documents into page-structured results.
package ocr

import "strings"

// BoundingBox is an axis-aligned pixel rectangle around a recognized region.
// Coordinates satisfy XMin <= XMax and YMin <= YMax.
type BoundingBox struct {
	XMin float64 `json:"x_min"`
	YMin float64 `json:"y_min"`
	XMax float64 `json:"x_max"`
	YMax float64 `json:"y_max"`
}

// TextBlock is one recognized region of text. Immutable once created.
type TextBlock struct {
	Text        string      `json:"text"`
	Confidence  float64     `json:"confidence"`
	BoundingBox BoundingBox `json:"bounding_box"`
}

// Page is one unit of a multi-page source: a whole image, or one PDF page.
// Text is the ordered concatenation of block text in recognition order.
// Confidence is the arithmetic mean of block confidences, or 0 with no
// blocks. For PDF pages extracted from an embedded text layer the value is
// a fixed 1.0 - no block-level confidence exists in that case, so this is a
// documented approximation rather than a measured score.
type Page struct {
	PageNumber int         `json:"page_number"`
	Text       string      `json:"text"`
	Confidence float64     `json:"confidence"`
	Blocks     []TextBlock `json:"blocks,omitempty"`
}

// Result is the page-structured output of a text extraction.
// Constructed once per request and never mutated after return.
type Result struct {
	Filename string `json:"filename"`
	FileType string `json:"file_type"` // "image" or "pdf"
	Text     string `json:"text"`
	Pages    []Page `json:"pages"`
}

// File types accepted by the extractors.
const (
	FileTypeImage = "image"
	FileTypePDF   = "pdf"
)

// joinBlocks concatenates block text in recognition order.
func joinBlocks(blocks []TextBlock) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, " ")
}

// JoinPages concatenates page text in page order, skipping empty pages.
func JoinPages(pages []Page) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		if p.Text != "" {
			parts = append(parts, p.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// meanConfidence returns the arithmetic mean of block confidences,
// or 0.0 when there are no blocks.
func meanConfidence(blocks []TextBlock) float64 {
	if len(blocks) == 0 {
		return 0.0
	}
	var sum float64
	for _, b := range blocks {
		sum += b.Confidence
	}
	return sum / float64(len(blocks))
}
