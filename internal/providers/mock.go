package providers

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// MockProvider is a configurable VisionProvider for tests.
type MockProvider struct {
	// RawResponse is returned as the model's field guess.
	RawResponse map[string]any
	// Content overrides the unparsed text attached to results.
	Content string
	// ShouldFail makes every call fail with a VisionError.
	ShouldFail bool
	// FailAfter fails calls after N successes (0 = disabled).
	FailAfter int
	// Delay simulates call latency.
	Delay time.Duration

	requestCount atomic.Int64
}

// NewMockProvider creates a mock with an empty guess.
func NewMockProvider() *MockProvider {
	return &MockProvider{RawResponse: map[string]any{}}
}

func (m *MockProvider) Name() string { return "mock" }

// GuessFields returns the configured response, honoring cancellation.
func (m *MockProvider) GuessFields(ctx context.Context, req *GuessRequest) (*GuessResult, error) {
	count := m.requestCount.Add(1)

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, &VisionError{Provider: m.Name(), Err: ctx.Err()}
		}
	} else if err := ctx.Err(); err != nil {
		return nil, &VisionError{Provider: m.Name(), Err: err}
	}

	if m.ShouldFail || (m.FailAfter > 0 && count > int64(m.FailAfter)) {
		return nil, &VisionError{Provider: m.Name(), Err: fmt.Errorf("mock failure")}
	}

	return &GuessResult{
		Raw:       m.RawResponse,
		Content:   m.Content,
		Provider:  m.Name(),
		ModelUsed: req.Model,
	}, nil
}

// RequestCount returns how many calls were made.
func (m *MockProvider) RequestCount() int {
	return int(m.requestCount.Load())
}

var _ VisionProvider = (*MockProvider)(nil)
