// Package pdftext produces per-page text from PDFs. Embedded text layers
// are read with pdftotext (poppler-utils); forced re-recognition shells out
// to ocrmypdf with a sidecar text file. pdfcpu validates the document and
// supplies the page count up front so malformed or encrypted uploads fail
// as client errors before any subprocess runs.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/docsift/docsift/internal/ocr"
)

// Source implements ocr.PageSource using poppler-utils and OCRmyPDF.
type Source struct {
	// PdftotextPath is the pdftotext binary (default "pdftotext").
	PdftotextPath string
	// OCRmyPDFPath is the ocrmypdf binary (default "ocrmypdf").
	OCRmyPDFPath string
	// Languages passed to ocrmypdf as tesseract language codes.
	Languages []string
}

var _ ocr.PageSource = (*Source)(nil)

// textLayerConfidence is reported for pages read from an embedded text
// layer. No block-level recognition happens on that path, so there is
// nothing to measure; downstream consumers depend on this fixed value.
const textLayerConfidence = 1.0

// ExtractText reads the embedded text layer of every page without OCR.
func (s *Source) ExtractText(ctx context.Context, pdf []byte) ([]ocr.PageText, error) {
	pageCount, err := validatePDF(pdf)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "docsift-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	inputPath := filepath.Join(dir, "input.pdf")
	textPath := filepath.Join(dir, "output.txt")
	if err := os.WriteFile(inputPath, pdf, 0o644); err != nil {
		return nil, fmt.Errorf("write temp pdf: %w", err)
	}

	// pdftotext separates pages with form feeds in its output.
	cmd := exec.CommandContext(ctx, s.pdftotext(), "-layout", inputPath, textPath)
	if output, err := cmd.CombinedOutput(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("pdftotext failed: %w (output: %s)", err, strings.TrimSpace(string(output)))
	}

	data, err := os.ReadFile(textPath)
	if err != nil {
		return nil, fmt.Errorf("read pdftotext output: %w", err)
	}

	return splitPages(string(data), pageCount, false), nil
}

// ExtractOCR re-recognizes every page through ocrmypdf, ignoring any
// existing text layer.
func (s *Source) ExtractOCR(ctx context.Context, pdf []byte) ([]ocr.PageText, error) {
	pageCount, err := validatePDF(pdf)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "docsift-ocr-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	inputPath := filepath.Join(dir, "input.pdf")
	outputPath := filepath.Join(dir, "output.pdf")
	sidecarPath := filepath.Join(dir, "text.txt")
	if err := os.WriteFile(inputPath, pdf, 0o644); err != nil {
		return nil, fmt.Errorf("write temp pdf: %w", err)
	}

	args := []string{
		"--force-ocr",
		"--sidecar", sidecarPath,
		"--output-type", "pdf",
	}
	if len(s.Languages) > 0 {
		args = append(args, "--language", strings.Join(s.Languages, "+"))
	}
	args = append(args, inputPath, outputPath)

	cmd := exec.CommandContext(ctx, s.ocrmypdf(), args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("ocrmypdf failed: %w (output: %s)", err, strings.TrimSpace(string(output)))
	}

	data, err := os.ReadFile(sidecarPath)
	if err != nil {
		return nil, fmt.Errorf("read ocrmypdf sidecar: %w", err)
	}

	return splitPages(string(data), pageCount, true), nil
}

func (s *Source) pdftotext() string {
	if s.PdftotextPath != "" {
		return s.PdftotextPath
	}
	return "pdftotext"
}

func (s *Source) ocrmypdf() string {
	if s.OCRmyPDFPath != "" {
		return s.OCRmyPDFPath
	}
	return "ocrmypdf"
}

// validatePDF confirms the bytes parse as an unencrypted PDF and returns
// the page count.
func validatePDF(pdf []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(pdf), nil)
	if err != nil {
		return 0, &ocr.InvalidInputError{Reason: "malformed or unreadable PDF", Err: err}
	}
	if count == 0 {
		return 0, &ocr.InvalidInputError{Reason: "PDF has no pages"}
	}
	return count, nil
}

// splitPages splits form-feed separated toolchain output into page records.
// The toolchain emits one segment per page in document order; missing
// trailing segments become empty pages so the page count always matches
// the document.
func splitPages(text string, pageCount int, ocrApplied bool) []ocr.PageText {
	segments := strings.Split(text, "\f")
	pages := make([]ocr.PageText, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		var pageText string
		if i < len(segments) {
			pageText = strings.TrimSpace(segments[i])
		}
		confidence := textLayerConfidence
		if ocrApplied {
			// The sidecar reports no per-page confidence.
			confidence = 0.0
		}
		pages = append(pages, ocr.PageText{
			PageNumber: i + 1,
			Text:       pageText,
			Confidence: confidence,
			OCRApplied: ocrApplied,
		})
	}
	return pages
}

// Available reports whether the external PDF toolchain is on PATH.
func (s *Source) Available() bool {
	if _, err := exec.LookPath(s.pdftotext()); err != nil {
		return false
	}
	if _, err := exec.LookPath(s.ocrmypdf()); err != nil {
		return false
	}
	return true
}
