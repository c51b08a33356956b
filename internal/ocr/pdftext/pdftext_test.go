package pdftext

import (
	"errors"
	"testing"

	"github.com/docsift/docsift/internal/ocr"
)

func TestSplitPages(t *testing.T) {
	t.Run("splits on form feeds", func(t *testing.T) {
		pages := splitPages("first page\ftext on second\fthird", 3, false)
		if len(pages) != 3 {
			t.Fatalf("expected 3 pages, got %d", len(pages))
		}
		if pages[0].Text != "first page" || pages[2].Text != "third" {
			t.Errorf("unexpected page text: %+v", pages)
		}
		for i, p := range pages {
			if p.PageNumber != i+1 {
				t.Errorf("page %d numbered %d", i, p.PageNumber)
			}
			if p.Confidence != 1.0 {
				t.Errorf("text layer page should have confidence 1.0, got %v", p.Confidence)
			}
			if p.OCRApplied {
				t.Error("text layer page should not be marked OCR applied")
			}
		}
	})

	t.Run("pads missing trailing pages", func(t *testing.T) {
		pages := splitPages("only one", 3, false)
		if len(pages) != 3 {
			t.Fatalf("expected 3 pages, got %d", len(pages))
		}
		if pages[1].Text != "" || pages[2].Text != "" {
			t.Errorf("missing pages should be empty: %+v", pages)
		}
	})

	t.Run("OCR pages report zero confidence", func(t *testing.T) {
		pages := splitPages("recognized", 1, true)
		if pages[0].Confidence != 0.0 {
			t.Errorf("OCR page should have confidence 0.0, got %v", pages[0].Confidence)
		}
		if !pages[0].OCRApplied {
			t.Error("expected OCRApplied flag")
		}
	})

	t.Run("trims page whitespace", func(t *testing.T) {
		pages := splitPages("  padded text \n\f", 1, false)
		if pages[0].Text != "padded text" {
			t.Errorf("expected trimmed text, got %q", pages[0].Text)
		}
	})
}

func TestValidatePDF(t *testing.T) {
	t.Run("garbage bytes are invalid input", func(t *testing.T) {
		_, err := validatePDF([]byte("definitely not a pdf"))
		var invalid *ocr.InvalidInputError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidInputError, got %v", err)
		}
	})
}

func TestSourceDefaults(t *testing.T) {
	s := &Source{}
	if s.pdftotext() != "pdftotext" {
		t.Errorf("unexpected default pdftotext path: %q", s.pdftotext())
	}
	if s.ocrmypdf() != "ocrmypdf" {
		t.Errorf("unexpected default ocrmypdf path: %q", s.ocrmypdf())
	}

	s = &Source{PdftotextPath: "/opt/poppler/pdftotext", OCRmyPDFPath: "/opt/ocrmypdf"}
	if s.pdftotext() != "/opt/poppler/pdftotext" {
		t.Errorf("configured path ignored: %q", s.pdftotext())
	}
	if s.ocrmypdf() != "/opt/ocrmypdf" {
		t.Errorf("configured path ignored: %q", s.ocrmypdf())
	}
}
