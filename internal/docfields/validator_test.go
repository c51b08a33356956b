package docfields

import (
	"reflect"
	"testing"
)

func TestValidator_Validate(t *testing.T) {
	t.Run("all required present", func(t *testing.T) {
		v := NewValidator(DefaultRequired())
		fields := DocumentFields{
			FirstName:      strptr("Jane"),
			LastName:       strptr("Doe"),
			DocumentNumber: strptr("D1234-56789-01234"),
			DateOfBirth:    strptr("1990-05-01"),
			ExpiryDate:     strptr("2030-05-01"),
		}

		missing, ok := v.Validate(fields)
		if !ok {
			t.Errorf("expected ok, missing: %v", missing)
		}
		if len(missing) != 0 {
			t.Errorf("expected no missing fields, got %v", missing)
		}
	})

	t.Run("missing fields reported in policy order", func(t *testing.T) {
		v := NewValidator(DefaultRequired())
		fields := DocumentFields{
			FirstName: strptr("Jane"),
			LastName:  strptr("Doe"),
		}

		missing, ok := v.Validate(fields)
		if ok {
			t.Error("expected validation failure")
		}
		want := []string{FieldDocumentNumber, FieldDateOfBirth, FieldExpiryDate}
		if !reflect.DeepEqual(missing, want) {
			t.Errorf("expected %v, got %v", want, missing)
		}
	})

	t.Run("whitespace-only value counts as missing", func(t *testing.T) {
		v := NewValidator([]string{FieldFirstName})
		fields := DocumentFields{FirstName: strptr("   ")}

		missing, ok := v.Validate(fields)
		if ok || len(missing) != 1 {
			t.Errorf("expected first_name missing, got ok=%v missing=%v", ok, missing)
		}
	})

	t.Run("custom policy order preserved", func(t *testing.T) {
		v := NewValidator([]string{FieldExpiryDate, FieldFirstName, FieldGender})

		missing, _ := v.Validate(DocumentFields{})
		want := []string{FieldExpiryDate, FieldFirstName, FieldGender}
		if !reflect.DeepEqual(missing, want) {
			t.Errorf("expected %v, got %v", want, missing)
		}
	})

	t.Run("policy slice is copied", func(t *testing.T) {
		policy := []string{FieldFirstName}
		v := NewValidator(policy)
		policy[0] = FieldAddress

		missing, _ := v.Validate(DocumentFields{})
		if len(missing) != 1 || missing[0] != FieldFirstName {
			t.Errorf("validator must not observe caller mutations: %v", missing)
		}
	})
}
