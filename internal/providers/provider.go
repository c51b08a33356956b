// Package providers contains the vision-model clients used for structured
// field extraction, a config-driven registry over them, and the parsing
// helpers that recover JSON from free-form model output.
package providers

import (
	"context"
	"fmt"
	"time"
)

// VisionProvider sends an image to a vision-capable model and returns its
// best-effort structured guess of named fields. The response shape is not
// guaranteed; callers must treat Raw as untrusted.
type VisionProvider interface {
	// Name returns the provider identifier (e.g. "anthropic", "openai").
	Name() string

	// GuessFields asks the model for the fields described by the prompt.
	GuessFields(ctx context.Context, req *GuessRequest) (*GuessResult, error)
}

// GuessRequest is a single vision extraction call.
type GuessRequest struct {
	Image     []byte // raw image bytes
	MediaType string // "image/png", "image/jpeg", "image/webp", "image/gif"
	Model     string // model identifier (uses provider default if empty)
	Prompt    string
	MaxTokens int
	Timeout   time.Duration
}

// GuessResult carries the parsed model output alongside call metadata.
type GuessResult struct {
	// Raw is the model's guess as an untyped mapping. Keys and value
	// types are whatever the model produced.
	Raw map[string]any

	// Content is the unparsed text the model returned.
	Content string

	Provider      string
	ModelUsed     string
	ExecutionTime time.Duration
}

// VisionError indicates the vision-model call itself failed: transport,
// auth, quota, timeout, or an unparseable response. Never retried
// automatically; the orchestrator collapses it into success=false.
type VisionError struct {
	Provider string
	Err      error
}

func (e *VisionError) Error() string {
	return fmt.Sprintf("vision model call failed (%s): %v", e.Provider, e.Err)
}

func (e *VisionError) Unwrap() error { return e.Err }
