// Package extract coordinates the extraction pipeline: raw OCR, vision-model
// field extraction, and document validation, producing the response bodies
// the HTTP endpoints return.
package extract

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"

	"github.com/docsift/docsift/internal/docfields"
	"github.com/docsift/docsift/internal/docval"
	"github.com/docsift/docsift/internal/ocr"
	"github.com/docsift/docsift/internal/providers"
)

// engineAttempts bounds retries of the OCR toolchain. Transient engine
// failures get exactly one retry; everything else fails immediately.
const engineAttempts = 2

// Orchestrator wires the extractors together and shapes their output into
// response bodies. It owns request IDs, timing, retry of transient engine
// failures, and the collapse of vision-model failures into success=false
// responses.
type Orchestrator struct {
	Images    *ocr.ImageExtractor
	PDFs      *ocr.PDFExtractor
	Fields    *FieldExtractor
	Validator *docfields.Validator
	Checks    *docval.Service
	Logger    *slog.Logger
}

// OCRImage extracts raw text from an uploaded image. Returns a non-nil
// response together with a non-nil error when the request itself failed;
// HTTPStatus maps the error to a status code.
func (o *Orchestrator) OCRImage(ctx context.Context, filename string, image []byte, languages []string) (*OCRResponse, error) {
	start := time.Now()
	requestID := uuid.NewString()

	resp := &OCRResponse{
		Filename:  filename,
		FileType:  ocr.FileTypeImage,
		RequestID: requestID,
	}

	result, err := retryEngine(ctx, func() (*ocr.Result, error) {
		return o.Images.Extract(ctx, image, languages)
	})
	resp.ProcessingTimeSeconds = elapsedSeconds(start)
	if err != nil {
		resp.Error = err.Error()
		o.logFailure("image ocr failed", requestID, filename, err)
		return resp, err
	}

	resp.Success = true
	resp.Text = result.Text
	resp.Pages = result.Pages
	if len(result.Pages) == 1 {
		resp.Blocks = result.Pages[0].Blocks
	}

	o.logSuccess("image ocr complete", requestID, filename, start,
		"blocks", len(resp.Blocks))
	return resp, nil
}

// OCRPDF extracts raw text from an uploaded PDF, one page per PDF page.
func (o *Orchestrator) OCRPDF(ctx context.Context, filename string, pdf []byte, forceOCR bool) (*OCRResponse, error) {
	start := time.Now()
	requestID := uuid.NewString()

	resp := &OCRResponse{
		Filename:  filename,
		FileType:  ocr.FileTypePDF,
		RequestID: requestID,
	}

	result, err := retryEngine(ctx, func() (*ocr.Result, error) {
		return o.PDFs.Extract(ctx, pdf, forceOCR)
	})
	resp.ProcessingTimeSeconds = elapsedSeconds(start)
	if err != nil {
		resp.Error = err.Error()
		o.logFailure("pdf ocr failed", requestID, filename, err)
		return resp, err
	}

	resp.Success = true
	resp.Text = result.Text
	resp.Pages = result.Pages

	o.logSuccess("pdf ocr complete", requestID, filename, start,
		"pages", len(resp.Pages), "force_ocr", forceOCR)
	return resp, nil
}

// ExtractFields runs the vision model over an uploaded image and validates
// the result against the required-field policy.
//
// Vision-model failures do not produce an error status: the response carries
// success=false, the full required-field list as missing, and the failure
// message, with a nil error. Only invalid input surfaces as an error.
func (o *Orchestrator) ExtractFields(ctx context.Context, filename string, image []byte, contentType, tier string) (*FieldResponse, error) {
	start := time.Now()
	requestID := uuid.NewString()

	resp := &FieldResponse{RequestID: requestID}

	normalized, mediaType, err := NormalizeImage(image, contentType)
	if err != nil {
		resp.ProcessingTimeSeconds = elapsedSeconds(start)
		resp.Error = err.Error()
		o.logFailure("field extraction rejected", requestID, filename, err)
		return resp, err
	}

	fields, result, err := o.Fields.Extract(ctx, normalized, mediaType, tier)
	resp.ProcessingTimeSeconds = elapsedSeconds(start)
	if err != nil {
		var invalid *ocr.InvalidInputError
		if errors.As(err, &invalid) {
			resp.Error = err.Error()
			return resp, err
		}
		// The upload was fine; the model was not. Report the failure in
		// the body so callers can distinguish it from a bad request.
		resp.Error = err.Error()
		resp.MissingFields = o.Validator.Required()
		var vision *providers.VisionError
		if errors.As(err, &vision) {
			o.logFailure("vision model failed", requestID, filename, err)
			return resp, nil
		}
		o.logFailure("field extraction failed", requestID, filename, err)
		return resp, nil
	}

	missing, ok := o.Validator.Validate(fields)
	resp.DocumentFields = fields
	resp.MissingFields = missing
	resp.Success = ok
	if !ok {
		resp.Error = "Could not extract required fields: " + strings.Join(missing, ", ")
	}

	o.logSuccess("field extraction complete", requestID, filename, start,
		"tier", tier,
		"provider", result.Provider,
		"model", result.ModelUsed,
		"missing", len(missing))
	return resp, nil
}

// ValidateDocument extracts fields and then runs the plausibility checks
// over whatever was extracted, even a partial set. Checks are advisory and
// never change the success flag.
func (o *Orchestrator) ValidateDocument(ctx context.Context, filename string, image []byte, contentType, tier string) (*ValidationResponse, error) {
	start := time.Now()

	fieldResp, err := o.ExtractFields(ctx, filename, image, contentType, tier)
	resp := &ValidationResponse{FieldResponse: *fieldResp}
	if err != nil {
		return resp, err
	}

	summary, results := o.Checks.Validate(ctx, resp.DocumentFields)
	resp.ValidationSummary = &summary
	resp.ValidationResults = results
	resp.ProcessingTimeSeconds = elapsedSeconds(start)

	o.logSuccess("document validation complete", resp.RequestID, filename, start,
		"overall", summary.OverallStatus,
		"score", summary.Score)
	return resp, nil
}

// retryEngine retries transient engine failures once. Invalid input and
// permanent engine errors are never retried.
func retryEngine(ctx context.Context, fn func() (*ocr.Result, error)) (*ocr.Result, error) {
	return retry.DoWithData(fn,
		retry.Context(ctx),
		retry.Attempts(engineAttempts),
		retry.Delay(100*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var engine *ocr.EngineError
			return errors.As(err, &engine) && engine.Transient
		}),
	)
}

// elapsedSeconds reports wall time since start, rounded to milliseconds.
func elapsedSeconds(start time.Time) float64 {
	return math.Round(time.Since(start).Seconds()*1000) / 1000
}

func (o *Orchestrator) logSuccess(msg, requestID, filename string, start time.Time, args ...any) {
	if o.Logger == nil {
		return
	}
	base := []any{"request_id", requestID, "filename", filename, "elapsed", time.Since(start).Round(time.Millisecond)}
	o.Logger.Info(msg, append(base, args...)...)
}

func (o *Orchestrator) logFailure(msg, requestID, filename string, err error) {
	if o.Logger == nil {
		return
	}
	o.Logger.Warn(msg, "request_id", requestID, "filename", filename, "error", err)
}
