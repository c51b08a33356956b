// Package docval runs plausibility checks over extracted identity-document
// fields: expiry, age, document-number format, and date consistency. Checks
// are advisory; they never block the extraction response, they annotate it.
package docval

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/docsift/docsift/internal/docfields"
)

// Status is the outcome of a single check or of the whole run.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusWarning Status = "warning"
	StatusSkipped Status = "skipped"
)

// Result is one check's outcome.
type Result struct {
	Name      string         `json:"validator_name"`
	Status    Status         `json:"status"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	ElapsedMS float64        `json:"execution_time_ms"`
}

// Summary aggregates a validation run.
type Summary struct {
	OverallStatus Status  `json:"overall_status"`
	Score         float64 `json:"validation_score"` // 0-1
	TotalChecks   int     `json:"total_checks"`
	PassedChecks  int     `json:"passed_checks"`
	FailedChecks  int     `json:"failed_checks"`
	WarningChecks int     `json:"warning_checks"`
	SkippedChecks int     `json:"skipped_checks"`
}

// Check is a single validation over extracted fields. Implementations must
// be pure with respect to their input and safe for concurrent use.
type Check interface {
	Name() string
	Run(ctx context.Context, fields docfields.DocumentFields) Result
}

// Service runs a fixed set of checks concurrently per request.
type Service struct {
	checks []Check
}

// NewService builds a service with the default check set.
func NewService(minimumAge int) *Service {
	return &Service{
		checks: []Check{
			&ConsistencyCheck{},
			&ExpiryCheck{},
			&AgeCheck{MinimumAge: minimumAge},
			&FormatCheck{},
		},
	}
}

// NewServiceWithChecks builds a service over an explicit check set.
func NewServiceWithChecks(checks ...Check) *Service {
	return &Service{checks: checks}
}

// Validate runs every check concurrently and summarizes the outcomes.
// Result order matches the configured check order regardless of which
// check finishes first.
func (s *Service) Validate(ctx context.Context, fields docfields.DocumentFields) (Summary, []Result) {
	results := make([]Result, len(s.checks))

	var wg sync.WaitGroup
	for i, check := range s.checks {
		wg.Add(1)
		go func(i int, check Check) {
			defer wg.Done()
			start := time.Now()
			r := check.Run(ctx, fields)
			if r.ElapsedMS == 0 {
				r.ElapsedMS = float64(time.Since(start).Microseconds()) / 1000.0
			}
			results[i] = r
		}(i, check)
	}
	wg.Wait()

	return summarize(results), results
}

// summarize scores a run: passed = 1, warning = 0.5, failed = 0, skipped
// excluded from the denominator.
func summarize(results []Result) Summary {
	var passed, failed, warnings, skipped int
	for _, r := range results {
		switch r.Status {
		case StatusPassed:
			passed++
		case StatusFailed:
			failed++
		case StatusWarning:
			warnings++
		case StatusSkipped:
			skipped++
		}
	}

	total := len(results)
	active := total - skipped

	var score float64
	if active > 0 {
		score = (float64(passed) + float64(warnings)*0.5) / float64(active)
	}

	overall := StatusSkipped
	switch {
	case failed > 0:
		overall = StatusFailed
	case warnings > 0:
		overall = StatusWarning
	case passed > 0:
		overall = StatusPassed
	}

	return Summary{
		OverallStatus: overall,
		Score:         roundTo(score, 2),
		TotalChecks:   total,
		PassedChecks:  passed,
		FailedChecks:  failed,
		WarningChecks: warnings,
		SkippedChecks: skipped,
	}
}

// skipIfMissing builds a skipped result when any of the named fields is
// absent.
func skipIfMissing(name string, fields docfields.DocumentFields, required ...string) (Result, bool) {
	var missing []string
	for _, f := range required {
		if fields.Get(f) == nil {
			missing = append(missing, f)
		}
	}
	if len(missing) == 0 {
		return Result{}, false
	}
	return Result{
		Name:    name,
		Status:  StatusSkipped,
		Message: "required fields missing: " + strings.Join(missing, ", "),
		Details: map[string]any{"missing_fields": missing},
	}, true
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
