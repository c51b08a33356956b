package docval

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/docsift/docsift/internal/docfields"
)

// expiryWarningWindow flags documents that are valid but close to expiry.
const expiryWarningWindow = 30 * 24 * time.Hour

// ExpiryCheck fails documents whose expiry date has passed.
type ExpiryCheck struct {
	// Now overrides the clock in tests.
	Now func() time.Time
}

func (c *ExpiryCheck) Name() string { return "document_expiry" }

func (c *ExpiryCheck) Run(_ context.Context, fields docfields.DocumentFields) Result {
	if r, skip := skipIfMissing(c.Name(), fields, docfields.FieldExpiryDate); skip {
		return r
	}

	expiry, ok := parseDate(fields.ExpiryDate)
	if !ok {
		return Result{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: "could not parse expiry date format",
			Details: map[string]any{"raw_expiry_date": *fields.ExpiryDate},
		}
	}

	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}
	remaining := expiry.Sub(now)
	days := int(remaining.Hours() / 24)

	switch {
	case remaining < 0:
		return Result{
			Name:    c.Name(),
			Status:  StatusFailed,
			Message: fmt.Sprintf("document expired %d days ago", -days),
			Details: map[string]any{
				"expiry_date":  expiry.Format("2006-01-02"),
				"days_expired": -days,
			},
		}
	case remaining < expiryWarningWindow:
		return Result{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: fmt.Sprintf("document expires in %d days", days),
			Details: map[string]any{
				"expiry_date":       expiry.Format("2006-01-02"),
				"days_until_expiry": days,
			},
		}
	default:
		return Result{
			Name:    c.Name(),
			Status:  StatusPassed,
			Message: fmt.Sprintf("document valid for %d days", days),
			Details: map[string]any{
				"expiry_date":       expiry.Format("2006-01-02"),
				"days_until_expiry": days,
			},
		}
	}
}

// AgeCheck verifies the holder meets a minimum age.
type AgeCheck struct {
	MinimumAge int
	// Now overrides the clock in tests.
	Now func() time.Time
}

func (c *AgeCheck) Name() string { return "age_validation" }

func (c *AgeCheck) Run(_ context.Context, fields docfields.DocumentFields) Result {
	if r, skip := skipIfMissing(c.Name(), fields, docfields.FieldDateOfBirth); skip {
		return r
	}

	dob, ok := parseDate(fields.DateOfBirth)
	if !ok {
		return Result{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: "could not parse date of birth format",
			Details: map[string]any{"raw_dob": *fields.DateOfBirth},
		}
	}

	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}
	age := yearsBetween(dob, now)

	if age < c.MinimumAge {
		return Result{
			Name:    c.Name(),
			Status:  StatusFailed,
			Message: fmt.Sprintf("person is %d years old, minimum required is %d", age, c.MinimumAge),
			Details: map[string]any{
				"calculated_age": age,
				"minimum_age":    c.MinimumAge,
				"date_of_birth":  dob.Format("2006-01-02"),
			},
		}
	}

	return Result{
		Name:    c.Name(),
		Status:  StatusPassed,
		Message: fmt.Sprintf("age verification passed (%d years old)", age),
		Details: map[string]any{
			"calculated_age": age,
			"minimum_age":    c.MinimumAge,
		},
	}
}

// yearsBetween computes whole years from dob to now, calendar-aware.
func yearsBetween(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	anniversary := dob.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

// documentNumberPatterns are known document-number formats. Generic
// patterns come last as fallbacks.
var documentNumberPatterns = []struct {
	name        string
	re          *regexp.Regexp
	description string
}{
	{"CA_ONTARIO_DL", regexp.MustCompile(`^[A-Z]\d{4}-?\d{5}-?\d{5}$`), "Ontario Driver's Licence"},
	{"CA_BC_DL", regexp.MustCompile(`^(DL:?)?\d{6,7}$`), "BC Driver's Licence"},
	{"CA_ALBERTA_DL", regexp.MustCompile(`^\d{6}-?\d{3}$`), "Alberta Driver's Licence"},
	{"CA_QUEBEC_DL", regexp.MustCompile(`^[A-Z]\d{12}$`), "Quebec Driver's Licence"},
	{"CA_PASSPORT", regexp.MustCompile(`^[A-Z]{2}\d{6}$`), "Canadian Passport"},
	{"US_PASSPORT", regexp.MustCompile(`^[A-Z]\d{8}$`), "US Passport"},
	{"US_DL_CALIFORNIA", regexp.MustCompile(`^[A-Z]\d{7}$`), "California Driver's License"},
	{"US_DL_TEXAS", regexp.MustCompile(`^\d{8}$`), "Texas Driver's License"},
	{"US_DL_FLORIDA", regexp.MustCompile(`^[A-Z]\d{12}$`), "Florida Driver's License"},
	{"US_DL_NEW_YORK", regexp.MustCompile(`^\d{9}$`), "New York Driver's License"},
	{"US_DL_OHIO", regexp.MustCompile(`^[A-Z]{2}\d{6}$`), "Ohio Driver's License"},
	{"US_DRIVERS_LICENSE", regexp.MustCompile(`^[A-Z]{1,2}\d{6,14}$`), "US Driver's License (generic)"},
	{"UK_PASSPORT", regexp.MustCompile(`^\d{9}$`), "UK Passport"},
	{"UK_DRIVERS_LICENSE", regexp.MustCompile(`^[A-Z]{5}\d{6}[A-Z]{2}\d{2}$`), "UK Driver's License"},
	{"EU_ID", regexp.MustCompile(`^[A-Z]{2}\d{7}$`), "European ID Card"},
	{"GENERIC_NUMERIC", regexp.MustCompile(`^\d{6,12}$`), "Generic numeric ID"},
	{"GENERIC_ALPHANUMERIC", regexp.MustCompile(`^[A-Z0-9]{6,15}$`), "Generic alphanumeric ID"},
}

var docNumberSeparators = regexp.MustCompile(`[\s\-]`)

// FormatCheck matches the document number against known formats.
// No match is a warning, not a failure: the pattern table is not complete.
type FormatCheck struct{}

func (c *FormatCheck) Name() string { return "document_format" }

func (c *FormatCheck) Run(_ context.Context, fields docfields.DocumentFields) Result {
	if r, skip := skipIfMissing(c.Name(), fields, docfields.FieldDocumentNumber); skip {
		return r
	}

	number := strings.ToUpper(strings.TrimSpace(*fields.DocumentNumber))
	clean := docNumberSeparators.ReplaceAllString(number, "")

	var matched []map[string]any
	for _, p := range documentNumberPatterns {
		if p.re.MatchString(number) || p.re.MatchString(clean) {
			matched = append(matched, map[string]any{
				"pattern_name": p.name,
				"description":  p.description,
			})
		}
	}

	if len(matched) > 0 {
		return Result{
			Name:    c.Name(),
			Status:  StatusPassed,
			Message: fmt.Sprintf("document number matches %d known format(s)", len(matched)),
			Details: map[string]any{
				"document_number":  number,
				"matched_patterns": matched,
			},
		}
	}

	return Result{
		Name:    c.Name(),
		Status:  StatusWarning,
		Message: "document number does not match common formats",
		Details: map[string]any{
			"document_number": number,
			"note":            "may still be valid - format not in known patterns",
		},
	}
}

// maxPlausibleAge bounds sanity checks on the date of birth.
const maxPlausibleAge = 150

// maxValidityYears bounds the issue-to-expiry window.
const maxValidityYears = 50

// ConsistencyCheck verifies logical ordering of the document dates.
type ConsistencyCheck struct {
	// Now overrides the clock in tests.
	Now func() time.Time
}

func (c *ConsistencyCheck) Name() string { return "data_consistency" }

func (c *ConsistencyCheck) Run(_ context.Context, fields docfields.DocumentFields) Result {
	if r, skip := skipIfMissing(c.Name(), fields, docfields.FieldDateOfBirth, docfields.FieldExpiryDate); skip {
		return r
	}

	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}

	dob, hasDOB := parseDate(fields.DateOfBirth)
	issued, hasIssue := parseDate(fields.IssueDate)
	expiry, hasExpiry := parseDate(fields.ExpiryDate)

	var issues []string
	if hasDOB && hasIssue && !dob.Before(issued) {
		issues = append(issues, "date of birth is not before issue date")
	}
	if hasIssue && hasExpiry && !issued.Before(expiry) {
		issues = append(issues, "issue date is not before expiry date")
	}
	if hasDOB {
		age := yearsBetween(dob, now)
		if age > maxPlausibleAge || age < 0 {
			issues = append(issues, fmt.Sprintf("unrealistic age calculated: %d years", age))
		}
	}
	if hasIssue && hasExpiry {
		validity := yearsBetween(issued, expiry)
		if validity > maxValidityYears {
			issues = append(issues, fmt.Sprintf("unusual document validity period: %d years", validity))
		}
	}

	if len(issues) > 0 {
		return Result{
			Name:    c.Name(),
			Status:  StatusFailed,
			Message: fmt.Sprintf("found %d consistency issue(s)", len(issues)),
			Details: map[string]any{"issues": issues},
		}
	}

	return Result{
		Name:    c.Name(),
		Status:  StatusPassed,
		Message: "document dates are logically consistent",
	}
}
