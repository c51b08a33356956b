package ocr

import (
	"context"
	"errors"
	"strings"
	"time"
)

// PageText is the per-page output of a PDF page source.
type PageText struct {
	PageNumber int
	Text       string
	Confidence float64
	OCRApplied bool
}

// PageSource produces per-page text from a PDF, either from embedded text
// layers or by re-recognizing every page. Implementations must be safe for
// concurrent use from independent requests.
type PageSource interface {
	// ExtractText reads embedded text layers without running OCR.
	ExtractText(ctx context.Context, pdf []byte) ([]PageText, error)
	// ExtractOCR re-recognizes every page as if it were an image.
	ExtractOCR(ctx context.Context, pdf []byte) ([]PageText, error)
}

// PDFExtractor turns raw PDF bytes into a page-per-PDF-page Result.
type PDFExtractor struct {
	Source  PageSource
	Timeout time.Duration
}

// Extract produces one Page per PDF page, numbered sequentially from 1 in
// document order. With forceOCR false the embedded text layer is preferred;
// if no page yields any text the whole document is re-recognized, matching
// the behavior a caller gets from forceOCR true.
func (e *PDFExtractor) Extract(ctx context.Context, pdf []byte, forceOCR bool) (*Result, error) {
	if len(pdf) == 0 {
		return nil, &InvalidInputError{Reason: "empty PDF upload"}
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	var (
		pages []PageText
		err   error
	)
	if forceOCR {
		pages, err = e.Source.ExtractOCR(ctx, pdf)
	} else {
		pages, err = e.Source.ExtractText(ctx, pdf)
		if err == nil && !anyPageHasText(pages) {
			pages, err = e.Source.ExtractOCR(ctx, pdf)
		}
	}
	if err != nil {
		var invalid *InvalidInputError
		if errors.As(err, &invalid) {
			return nil, err
		}
		stage := "pdf-text"
		if forceOCR {
			stage = "pdf-ocr"
		}
		return nil, &EngineError{
			Stage:     stage,
			Transient: errors.Is(err, context.DeadlineExceeded),
			Err:       err,
		}
	}

	result := &Result{
		FileType: FileTypePDF,
		Pages:    make([]Page, 0, len(pages)),
	}
	for i, p := range pages {
		result.Pages = append(result.Pages, Page{
			PageNumber: i + 1,
			Text:       p.Text,
			Confidence: p.Confidence,
		})
	}
	result.Text = JoinPages(result.Pages)

	return result, nil
}

func anyPageHasText(pages []PageText) bool {
	for _, p := range pages {
		if strings.TrimSpace(p.Text) != "" {
			return true
		}
	}
	return false
}
