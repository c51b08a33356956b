package docfields

import "testing"

func strptr(s string) *string { return &s }

func TestFromRaw(t *testing.T) {
	t.Run("projects known keys and drops the rest", func(t *testing.T) {
		fields := FromRaw(map[string]any{
			"first_name":      "Jane",
			"last_name":       "Doe",
			"document_number": "D1234-56789-01234",
			"confidence":      0.93,
			"notes":           "extra model chatter",
		})

		if fields.FirstName == nil || *fields.FirstName != "Jane" {
			t.Errorf("expected first name Jane, got %v", fields.FirstName)
		}
		if fields.DocumentNumber == nil || *fields.DocumentNumber != "D1234-56789-01234" {
			t.Errorf("unexpected document number: %v", fields.DocumentNumber)
		}
		if fields.DateOfBirth != nil {
			t.Error("absent key should stay nil")
		}
	})

	t.Run("coerces scalar non-strings", func(t *testing.T) {
		fields := FromRaw(map[string]any{
			"document_number": float64(12345678),
			"gender":          true,
		})
		if fields.DocumentNumber == nil || *fields.DocumentNumber != "12345678" {
			t.Errorf("expected numeric coercion, got %v", fields.DocumentNumber)
		}
		if fields.Gender == nil || *fields.Gender != "true" {
			t.Errorf("expected bool coercion, got %v", fields.Gender)
		}
	})

	t.Run("non-scalar values become absent", func(t *testing.T) {
		fields := FromRaw(map[string]any{
			"address":   map[string]any{"street": "1 Main St"},
			"full_name": []any{"Jane", "Doe"},
			"gender":    nil,
		})
		if fields.Address != nil || fields.FullName != nil || fields.Gender != nil {
			t.Errorf("non-scalar values should project to nil: %+v", fields)
		}
	})
}

func TestNormalizeValue(t *testing.T) {
	cases := []struct {
		name string
		in   *string
		want *string
	}{
		{"nil stays nil", nil, nil},
		{"trims whitespace", strptr("  Jane  "), strptr("Jane")},
		{"empty becomes absent", strptr(""), nil},
		{"whitespace becomes absent", strptr("   "), nil},
		{"n/a becomes absent", strptr("n/a"), nil},
		{"N/A becomes absent", strptr("N/A"), nil},
		{"null becomes absent", strptr("null"), nil},
		{"none becomes absent", strptr("NONE"), nil},
		{"real value kept", strptr("Doe"), strptr("Doe")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeValue(tc.in)
			switch {
			case tc.want == nil && got != nil:
				t.Errorf("expected nil, got %q", *got)
			case tc.want != nil && got == nil:
				t.Errorf("expected %q, got nil", *tc.want)
			case tc.want != nil && got != nil && *got != *tc.want:
				t.Errorf("expected %q, got %q", *tc.want, *got)
			}
		})
	}

	t.Run("idempotent", func(t *testing.T) {
		once := NormalizeValue(strptr("  value  "))
		twice := NormalizeValue(once)
		if once == nil || twice == nil || *once != *twice {
			t.Errorf("normalization is not idempotent: %v vs %v", once, twice)
		}
	})
}

func TestNormalize(t *testing.T) {
	fields := DocumentFields{
		FirstName: strptr(" Jane "),
		LastName:  strptr("n/a"),
		Gender:    strptr("M"),
	}

	out := fields.Normalize()
	if out.FirstName == nil || *out.FirstName != "Jane" {
		t.Errorf("expected trimmed first name, got %v", out.FirstName)
	}
	if out.LastName != nil {
		t.Error("sentinel should collapse to absent")
	}
	if out.Gender == nil || *out.Gender != "M" {
		t.Errorf("unexpected gender: %v", out.Gender)
	}

	// Input untouched.
	if *fields.FirstName != " Jane " {
		t.Error("Normalize must not mutate its receiver")
	}
}
