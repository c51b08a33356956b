package ocr

import (
	"context"
	"errors"
	"time"
)

// Region is one recognized span of text as reported by the recognition
// capability, before it is folded into the page model.
type Region struct {
	Text       string
	Confidence float64 // [0,1]
	Box        BoundingBox
}

// RegionRecognizer recognizes text regions in a single image.
// Implementations must be safe for concurrent use from independent requests.
type RegionRecognizer interface {
	Name() string
	RecognizeRegions(ctx context.Context, image []byte, languages []string) ([]Region, error)
}

// ImageExtractor turns raw image bytes into a single-page Result.
type ImageExtractor struct {
	Recognizer       RegionRecognizer
	DefaultLanguages []string
	Timeout          time.Duration
}

// Extract recognizes text regions in the image and groups them into exactly
// one page. Images have no page structure, so page_number is always 1 and
// the page confidence is the mean block confidence (0.0 with zero blocks).
func (e *ImageExtractor) Extract(ctx context.Context, image []byte, languages []string) (*Result, error) {
	if len(image) == 0 {
		return nil, &InvalidInputError{Reason: "empty image upload"}
	}
	if len(languages) == 0 {
		languages = e.DefaultLanguages
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	regions, err := e.Recognizer.RecognizeRegions(ctx, image, languages)
	if err != nil {
		var invalid *InvalidInputError
		if errors.As(err, &invalid) {
			return nil, err
		}
		return nil, &EngineError{
			Stage:     "recognize",
			Transient: errors.Is(err, context.DeadlineExceeded),
			Err:       err,
		}
	}

	blocks := make([]TextBlock, 0, len(regions))
	for _, r := range regions {
		blocks = append(blocks, TextBlock{
			Text:        r.Text,
			Confidence:  r.Confidence,
			BoundingBox: r.Box,
		})
	}

	page := Page{
		PageNumber: 1,
		Text:       joinBlocks(blocks),
		Confidence: meanConfidence(blocks),
		Blocks:     blocks,
	}

	return &Result{
		FileType: FileTypeImage,
		Text:     page.Text,
		Pages:    []Page{page},
	}, nil
}
