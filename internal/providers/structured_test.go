package providers

import (
	"strings"
	"testing"

	"github.com/docsift/docsift/internal/docfields"
)

func TestParseStructuredJSON(t *testing.T) {
	t.Run("plain JSON object", func(t *testing.T) {
		parsed, err := ParseStructuredJSON(`{"first_name": "Jane", "last_name": null}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if parsed["first_name"] != "Jane" {
			t.Errorf("unexpected first_name: %v", parsed["first_name"])
		}
		if v, ok := parsed["last_name"]; !ok || v != nil {
			t.Errorf("expected explicit null, got %v (present=%v)", v, ok)
		}
	})

	t.Run("json code fence", func(t *testing.T) {
		content := "```json\n{\"document_number\": \"AB123456\"}\n```"
		parsed, err := ParseStructuredJSON(content)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if parsed["document_number"] != "AB123456" {
			t.Errorf("unexpected value: %v", parsed["document_number"])
		}
	})

	t.Run("bare code fence", func(t *testing.T) {
		content := "```\n{\"gender\": \"F\"}\n```"
		parsed, err := ParseStructuredJSON(content)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if parsed["gender"] != "F" {
			t.Errorf("unexpected value: %v", parsed["gender"])
		}
	})

	t.Run("object embedded in prose", func(t *testing.T) {
		content := "Here are the extracted fields:\n{\"expiry_date\": \"2030-01-01\"}\nLet me know if you need anything else."
		parsed, err := ParseStructuredJSON(content)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if parsed["expiry_date"] != "2030-01-01" {
			t.Errorf("unexpected value: %v", parsed["expiry_date"])
		}
	})

	t.Run("empty output fails", func(t *testing.T) {
		if _, err := ParseStructuredJSON("   "); err == nil {
			t.Error("expected error for empty output")
		}
	})

	t.Run("no object fails", func(t *testing.T) {
		if _, err := ParseStructuredJSON("I cannot read this image."); err == nil {
			t.Error("expected error when no JSON object exists")
		}
	})
}

func TestFieldGuessSchema(t *testing.T) {
	schema := FieldGuessSchema(docfields.Names())
	if len(schema) == 0 {
		t.Fatal("expected non-empty schema")
	}
	if !strings.Contains(string(schema), `"first_name"`) {
		t.Error("schema should name the canonical fields")
	}
}

func TestValidateFieldGuess(t *testing.T) {
	schema := FieldGuessSchema(docfields.Names())

	t.Run("accepts strings and nulls", func(t *testing.T) {
		guess := map[string]any{
			"first_name": "Jane",
			"last_name":  nil,
		}
		if err := ValidateFieldGuess(schema, guess); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("accepts extra keys", func(t *testing.T) {
		guess := map[string]any{"first_name": "Jane", "confidence": 0.9}
		if err := ValidateFieldGuess(schema, guess); err != nil {
			t.Errorf("extra keys should pass: %v", err)
		}
	})

	t.Run("flags wrong value types", func(t *testing.T) {
		guess := map[string]any{"first_name": 42}
		if err := ValidateFieldGuess(schema, guess); err == nil {
			t.Error("expected schema violation for numeric field")
		}
	})

	t.Run("empty schema is a no-op", func(t *testing.T) {
		if err := ValidateFieldGuess(nil, map[string]any{"anything": 1}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
