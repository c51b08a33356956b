// Package docfields defines the canonical identity-document field schema,
// the normalization applied to untrusted model output, and the
// required-field validator.
package docfields

import (
	"fmt"
	"strconv"
	"strings"
)

// Canonical field names, in declared order. This order is the response
// contract: missing_fields listings and serialized output follow it.
const (
	FieldFirstName      = "first_name"
	FieldLastName       = "last_name"
	FieldFullName       = "full_name"
	FieldDocumentNumber = "document_number"
	FieldDateOfBirth    = "date_of_birth"
	FieldIssueDate      = "issue_date"
	FieldExpiryDate     = "expiry_date"
	FieldGender         = "gender"
	FieldAddress        = "address"
)

// Names returns the canonical field names in declared order.
func Names() []string {
	return []string{
		FieldFirstName,
		FieldLastName,
		FieldFullName,
		FieldDocumentNumber,
		FieldDateOfBirth,
		FieldIssueDate,
		FieldExpiryDate,
		FieldGender,
		FieldAddress,
	}
}

// DefaultRequired is the required-field policy the original service shipped
// with. It is configuration, not a constant of the pipeline: callers inject
// their own list at construction time.
func DefaultRequired() []string {
	return []string{
		FieldFirstName,
		FieldLastName,
		FieldDocumentNumber,
		FieldDateOfBirth,
		FieldExpiryDate,
	}
}

// DocumentFields maps the canonical attributes to values. A nil pointer
// means the field is absent, which is distinct from an empty string the
// model actually produced; normalization collapses the latter into absent
// before validation ever sees it.
type DocumentFields struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	FullName       *string `json:"full_name"`
	DocumentNumber *string `json:"document_number"`
	DateOfBirth    *string `json:"date_of_birth"`
	IssueDate      *string `json:"issue_date"`
	ExpiryDate     *string `json:"expiry_date"`
	Gender         *string `json:"gender"`
	Address        *string `json:"address"`
}

// Get returns the value for a canonical field name, or nil when absent.
func (f *DocumentFields) Get(name string) *string {
	switch name {
	case FieldFirstName:
		return f.FirstName
	case FieldLastName:
		return f.LastName
	case FieldFullName:
		return f.FullName
	case FieldDocumentNumber:
		return f.DocumentNumber
	case FieldDateOfBirth:
		return f.DateOfBirth
	case FieldIssueDate:
		return f.IssueDate
	case FieldExpiryDate:
		return f.ExpiryDate
	case FieldGender:
		return f.Gender
	case FieldAddress:
		return f.Address
	default:
		return nil
	}
}

func (f *DocumentFields) set(name string, value *string) {
	switch name {
	case FieldFirstName:
		f.FirstName = value
	case FieldLastName:
		f.LastName = value
	case FieldFullName:
		f.FullName = value
	case FieldDocumentNumber:
		f.DocumentNumber = value
	case FieldDateOfBirth:
		f.DateOfBirth = value
	case FieldIssueDate:
		f.IssueDate = value
	case FieldExpiryDate:
		f.ExpiryDate = value
	case FieldGender:
		f.Gender = value
	case FieldAddress:
		f.Address = value
	}
}

// FromRaw projects an untrusted key/value mapping through the canonical
// allow-list. Unknown keys are dropped, scalar non-string values are
// coerced to strings, and everything else (objects, arrays, nil) is
// treated as absent. Values are normalized on the way in.
func FromRaw(raw map[string]any) DocumentFields {
	var fields DocumentFields
	for _, name := range Names() {
		v, ok := raw[name]
		if !ok {
			continue
		}
		fields.set(name, NormalizeValue(coerceString(v)))
	}
	return fields
}

// coerceString turns a scalar value into its string form; non-scalar
// values return nil.
func coerceString(v any) *string {
	switch t := v.(type) {
	case string:
		return &t
	case bool:
		s := strconv.FormatBool(t)
		return &s
	case float64:
		s := strconv.FormatFloat(t, 'f', -1, 64)
		return &s
	case int:
		s := strconv.Itoa(t)
		return &s
	case fmt.Stringer:
		s := t.String()
		return &s
	default:
		return nil
	}
}

// absentSentinels are literal strings models emit for "no value". Matched
// case-insensitively after trimming.
var absentSentinels = map[string]struct{}{
	"":     {},
	"n/a":  {},
	"null": {},
	"none": {},
}

// NormalizeValue trims whitespace and collapses sentinel not-a-value
// strings into absent. Idempotent: normalizing an already-normalized value
// returns it unchanged.
func NormalizeValue(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if _, absent := absentSentinels[strings.ToLower(trimmed)]; absent {
		return nil
	}
	return &trimmed
}

// Normalize returns a copy of the fields with every value normalized.
func (f DocumentFields) Normalize() DocumentFields {
	var out DocumentFields
	for _, name := range Names() {
		out.set(name, NormalizeValue(f.Get(name)))
	}
	return out
}
