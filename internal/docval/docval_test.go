package docval

import (
	"context"
	"testing"
	"time"

	"github.com/docsift/docsift/internal/docfields"
)

func strptr(s string) *string { return &s }

// fixedNow pins check clocks for deterministic assertions.
var fixedNow = func() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func newFixedService(minimumAge int) *Service {
	return NewServiceWithChecks(
		&ConsistencyCheck{Now: fixedNow},
		&ExpiryCheck{Now: fixedNow},
		&AgeCheck{MinimumAge: minimumAge, Now: fixedNow},
		&FormatCheck{},
	)
}

func TestService_Validate(t *testing.T) {
	t.Run("valid document passes every check", func(t *testing.T) {
		svc := newFixedService(18)
		fields := docfields.DocumentFields{
			FirstName:      strptr("Jane"),
			LastName:       strptr("Doe"),
			DocumentNumber: strptr("AB123456"),
			DateOfBirth:    strptr("1990-05-01"),
			IssueDate:      strptr("2020-05-01"),
			ExpiryDate:     strptr("2030-05-01"),
		}

		summary, results := svc.Validate(context.Background(), fields)
		if summary.OverallStatus != StatusPassed {
			t.Errorf("expected overall passed, got %s (%+v)", summary.OverallStatus, results)
		}
		if summary.Score != 1.0 {
			t.Errorf("expected score 1.0, got %v", summary.Score)
		}
		if summary.PassedChecks != 4 {
			t.Errorf("expected 4 passed, got %+v", summary)
		}
	})

	t.Run("result order matches check order", func(t *testing.T) {
		svc := newFixedService(18)
		_, results := svc.Validate(context.Background(), docfields.DocumentFields{})

		want := []string{"data_consistency", "document_expiry", "age_validation", "document_format"}
		if len(results) != len(want) {
			t.Fatalf("expected %d results, got %d", len(want), len(results))
		}
		for i, name := range want {
			if results[i].Name != name {
				t.Errorf("result %d: expected %s, got %s", i, name, results[i].Name)
			}
		}
	})

	t.Run("empty fields skip everything", func(t *testing.T) {
		svc := newFixedService(18)
		summary, _ := svc.Validate(context.Background(), docfields.DocumentFields{})

		if summary.OverallStatus != StatusSkipped {
			t.Errorf("expected overall skipped, got %s", summary.OverallStatus)
		}
		if summary.SkippedChecks != summary.TotalChecks {
			t.Errorf("expected all skipped, got %+v", summary)
		}
		if summary.Score != 0 {
			t.Errorf("expected score 0 with no active checks, got %v", summary.Score)
		}
	})

	t.Run("any failure dominates the overall status", func(t *testing.T) {
		svc := newFixedService(18)
		fields := docfields.DocumentFields{
			DocumentNumber: strptr("AB123456"),
			DateOfBirth:    strptr("1990-05-01"),
			ExpiryDate:     strptr("2020-01-01"), // expired
		}

		summary, _ := svc.Validate(context.Background(), fields)
		if summary.OverallStatus != StatusFailed {
			t.Errorf("expected overall failed, got %s", summary.OverallStatus)
		}
		if summary.FailedChecks == 0 {
			t.Errorf("expected at least one failure, got %+v", summary)
		}
	})
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{Status: StatusPassed},
		{Status: StatusPassed},
		{Status: StatusWarning},
		{Status: StatusSkipped},
	}
	summary := summarize(results)

	// (2 + 0.5) / 3 active checks.
	if summary.Score != 0.83 {
		t.Errorf("expected score 0.83, got %v", summary.Score)
	}
	if summary.OverallStatus != StatusWarning {
		t.Errorf("expected overall warning, got %s", summary.OverallStatus)
	}
	if summary.TotalChecks != 4 || summary.SkippedChecks != 1 {
		t.Errorf("unexpected counts: %+v", summary)
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		ok   bool
		want string
	}{
		{"1990-05-01", true, "1990-05-01"},
		{"01/05/1990", true, "1990-05-01"},
		{"May 1, 1990", true, "1990-05-01"},
		{"1 May 1990", true, "1990-05-01"},
		{"19900501", true, "1990-05-01"},
		{"  1990-05-01  ", true, "1990-05-01"},
		{"not a date", false, ""},
		{"", false, ""},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := parseDate(&tc.in)
			if ok != tc.ok {
				t.Fatalf("parseDate(%q) ok=%v, want %v", tc.in, ok, tc.ok)
			}
			if ok && got.Format("2006-01-02") != tc.want {
				t.Errorf("parseDate(%q) = %s, want %s", tc.in, got.Format("2006-01-02"), tc.want)
			}
		})
	}

	if _, ok := parseDate(nil); ok {
		t.Error("nil input should not parse")
	}
}
