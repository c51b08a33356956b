// Package tesseract implements region recognition on top of the gosseract
// bindings to the Tesseract OCR engine.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/otiai10/gosseract/v2"

	"github.com/docsift/docsift/internal/ocr"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Recognizer recognizes word-level text regions using Tesseract.
// A fresh gosseract client is created per call, so a single Recognizer is
// safe for concurrent use from independent requests.
type Recognizer struct {
	// TessdataPrefix overrides the tessdata directory when set.
	TessdataPrefix string

	clientFactory func() *gosseract.Client
}

// New constructs a Tesseract-backed recognizer.
func New() *Recognizer {
	return &Recognizer{clientFactory: gosseract.NewClient}
}

func (r *Recognizer) Name() string { return "tesseract" }

// RecognizeRegions runs Tesseract on the image and returns one region per
// recognized word, with confidence normalized to [0,1].
func (r *Recognizer) RecognizeRegions(ctx context.Context, img []byte, languages []string) ([]ocr.Region, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Reject bytes that do not decode as a supported image before handing
	// them to the engine, so codec problems surface as client errors.
	if _, _, err := image.DecodeConfig(bytes.NewReader(img)); err != nil {
		return nil, &ocr.InvalidInputError{Reason: "unsupported or corrupt image", Err: err}
	}

	factory := r.clientFactory
	if factory == nil {
		factory = gosseract.NewClient
	}
	c := factory()
	defer c.Close()

	if r.TessdataPrefix != "" {
		if err := c.SetTessdataPrefix(r.TessdataPrefix); err != nil {
			return nil, fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if len(languages) > 0 {
		if err := c.SetLanguage(languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}
	if err := c.SetImageFromBytes(img); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("recognize regions: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	regions := make([]ocr.Region, 0, len(boxes))
	for _, b := range boxes {
		if b.Word == "" {
			continue
		}
		regions = append(regions, ocr.Region{
			Text:       b.Word,
			Confidence: b.Confidence / 100.0,
			Box: ocr.BoundingBox{
				XMin: float64(b.Box.Min.X),
				YMin: float64(b.Box.Min.Y),
				XMax: float64(b.Box.Max.X),
				YMax: float64(b.Box.Max.Y),
			},
		})
	}
	return regions, nil
}

// Available reports whether the Tesseract engine can be initialized.
func Available() bool {
	c := gosseract.NewClient()
	defer c.Close()
	return c.Version() != ""
}

var _ ocr.RegionRecognizer = (*Recognizer)(nil)
