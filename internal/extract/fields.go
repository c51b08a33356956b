package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/docsift/docsift/internal/docfields"
	"github.com/docsift/docsift/internal/ocr"
	"github.com/docsift/docsift/internal/providers"
)

// Model tiers selectable per request. Tiers decouple caller intent
// (cheap/fast vs thorough) from concrete model identifiers, which live in
// configuration.
const (
	TierMobile  = "mobile"
	TierDesktop = "desktop"
)

// visionPrompt instructs the model to return exactly the canonical fields.
const visionPrompt = `Analyze this identity document image and extract the following fields.

Return a JSON object with these exact fields:
- first_name: The person's first name
- last_name: The person's last name
- full_name: The complete name as shown on the document
- document_number: The ID/document/license number
- date_of_birth: Date of birth (format as shown in document)
- issue_date: Document issue date (format as shown in document)
- expiry_date: Document expiry date (format as shown in document)
- gender: Gender (M, F, or as shown)
- address: Full address if present

If a field cannot be found or is not visible, use null for that field.
Return ONLY the JSON object, no additional text or markdown formatting.`

// TierConfig maps a tier to a provider and model identifier.
type TierConfig struct {
	Provider string
	Model    string
}

// FieldExtractor asks a vision model for the canonical document fields and
// coerces the untrusted reply into the canonical schema.
type FieldExtractor struct {
	Registry  *providers.Registry
	Tiers     map[string]TierConfig
	MaxTokens int
	Timeout   time.Duration
	Logger    *slog.Logger

	schemaOnce sync.Once
	schema     json.RawMessage
}

// Extract sends the image to the tier's configured model and projects the
// guess through the canonical allow-list. The returned fields are already
// normalized: trimmed, with sentinel not-a-value strings collapsed to
// absent. A *providers.VisionError is returned when the call itself fails.
func (x *FieldExtractor) Extract(ctx context.Context, image []byte, mediaType, tier string) (docfields.DocumentFields, *providers.GuessResult, error) {
	var fields docfields.DocumentFields

	tierCfg, ok := x.Tiers[tier]
	if !ok {
		return fields, nil, &ocr.InvalidInputError{Reason: fmt.Sprintf("unknown model tier %q", tier)}
	}

	provider, err := x.Registry.Get(tierCfg.Provider)
	if err != nil {
		return fields, nil, &providers.VisionError{Provider: tierCfg.Provider, Err: err}
	}

	result, err := provider.GuessFields(ctx, &providers.GuessRequest{
		Image:     image,
		MediaType: mediaType,
		Model:     tierCfg.Model,
		Prompt:    visionPrompt,
		MaxTokens: x.MaxTokens,
		Timeout:   x.Timeout,
	})
	if err != nil {
		return fields, nil, err
	}

	// A schema mismatch is an expected operating condition, not a call
	// failure: the allow-list projection below coerces what it can.
	x.schemaOnce.Do(func() {
		x.schema = providers.FieldGuessSchema(docfields.Names())
	})
	if err := providers.ValidateFieldGuess(x.schema, result.Raw); err != nil && x.Logger != nil {
		x.Logger.Debug("field guess deviates from schema, coercing",
			"provider", result.Provider,
			"model", result.ModelUsed,
			"issue", err)
	}

	return docfields.FromRaw(result.Raw), result, nil
}
