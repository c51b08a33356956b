package ocr

import "fmt"

// InvalidInputError indicates the uploaded bytes themselves are bad:
// corrupt, encrypted, or in an unsupported codec. Always a client error,
// never retried.
type InvalidInputError struct {
	Reason string
	Err    error
}

func (e *InvalidInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid input: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return e.Err }

// EngineError indicates the OCR or PDF toolchain failed on valid input.
// Transient failures (timeouts) are eligible for a single retry by the
// orchestrator.
type EngineError struct {
	Stage     string // "recognize", "pdf-text", "pdf-ocr"
	Transient bool
	Err       error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("extraction engine failed (%s): %v", e.Stage, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }
