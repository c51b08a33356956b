package providers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ParseStructuredJSON parses a JSON object from model output, with
// lightweight recovery for markdown code fences and surrounding prose.
func ParseStructuredJSON(content string) (map[string]any, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("empty model output")
	}

	candidates := []string{content}
	if stripped := stripCodeFences(content); stripped != "" && stripped != content {
		candidates = append(candidates, stripped)
	}
	if extracted := extractObjectCandidate(content); extracted != "" && extracted != content {
		candidates = append(candidates, extracted)
	}

	seen := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}

		var parsed map[string]any
		if err := json.Unmarshal([]byte(candidate), &parsed); err == nil {
			return parsed, nil
		}
	}

	return nil, fmt.Errorf("failed to parse structured JSON from model output")
}

func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return ""
	}

	// Drop the opening fence line.
	lines = lines[1:]
	// Drop the closing fence if present.
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func extractObjectCandidate(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return ""
	}
	return strings.TrimSpace(content[start : end+1])
}

// FieldGuessSchema builds a JSON schema for a field guess: an object whose
// listed properties are strings or null. Extra keys are permitted here and
// dropped later by the allow-list projection.
func FieldGuessSchema(fieldNames []string) json.RawMessage {
	properties := make(map[string]any, len(fieldNames))
	for _, name := range fieldNames {
		properties[name] = map[string]any{
			"type": []string{"string", "null"},
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	raw, _ := json.Marshal(schema)
	return raw
}

// ValidateFieldGuess checks a parsed guess against the schema. A failure
// means the guess needs coercive handling, not that the call failed.
func ValidateFieldGuess(schemaRaw json.RawMessage, guess map[string]any) error {
	if len(schemaRaw) == 0 {
		return nil
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("guess.json", bytes.NewReader(schemaRaw)); err != nil {
		return fmt.Errorf("load field guess schema: %w", err)
	}
	schema, err := compiler.Compile("guess.json")
	if err != nil {
		return fmt.Errorf("compile field guess schema: %w", err)
	}

	// Round-trip through json so the validator sees canonical types.
	encoded, err := json.Marshal(guess)
	if err != nil {
		return fmt.Errorf("encode guess for validation: %w", err)
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return fmt.Errorf("decode guess for validation: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("field guess does not match schema: %w", err)
	}
	return nil
}
