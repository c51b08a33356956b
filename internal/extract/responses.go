package extract

import (
	"errors"
	"net/http"

	"github.com/docsift/docsift/internal/docfields"
	"github.com/docsift/docsift/internal/docval"
	"github.com/docsift/docsift/internal/ocr"
	"github.com/docsift/docsift/internal/providers"
)

// OCRResponse is the raw-text extraction response body.
type OCRResponse struct {
	Success               bool            `json:"success"`
	Filename              string          `json:"filename"`
	FileType              string          `json:"file_type"`
	Text                  string          `json:"text,omitempty"`
	Pages                 []ocr.Page      `json:"pages,omitempty"`
	Blocks                []ocr.TextBlock `json:"blocks,omitempty"` // images only
	ProcessingTimeSeconds float64         `json:"processing_time_seconds"`
	RequestID             string          `json:"request_id,omitempty"`
	Error                 string          `json:"error,omitempty"`
}

// FieldResponse is the structured-field extraction response body. The
// canonical fields are flattened to top-level keys.
type FieldResponse struct {
	Success bool `json:"success"`
	docfields.DocumentFields
	MissingFields         []string `json:"missing_fields,omitempty"`
	ProcessingTimeSeconds float64  `json:"processing_time_seconds"`
	RequestID             string   `json:"request_id,omitempty"`
	Error                 string   `json:"error,omitempty"`
}

// ValidationResponse extends the field response with plausibility checks.
type ValidationResponse struct {
	FieldResponse
	ValidationSummary *docval.Summary `json:"validation_summary,omitempty"`
	ValidationResults []docval.Result `json:"validation_results,omitempty"`
}

// HTTPStatus maps pipeline errors to response status codes. Vision-model
// failures never reach this: they collapse into a success=false body.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var invalid *ocr.InvalidInputError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest
	}
	var engine *ocr.EngineError
	if errors.As(err, &engine) {
		return http.StatusBadGateway
	}
	var vision *providers.VisionError
	if errors.As(err, &vision) {
		return http.StatusOK
	}
	return http.StatusInternalServerError
}
