package config

import "github.com/docsift/docsift/internal/docfields"

// Config holds docsift configuration.
type Config struct {
	Server     ServerCfg              `mapstructure:"server" yaml:"server"`
	Providers  map[string]ProviderCfg `mapstructure:"providers" yaml:"providers"`
	Tiers      map[string]TierCfg     `mapstructure:"tiers" yaml:"tiers"`
	OCR        OCRCfg                 `mapstructure:"ocr" yaml:"ocr"`
	Extraction ExtractionCfg          `mapstructure:"extraction" yaml:"extraction"`
	Validation ValidationCfg          `mapstructure:"validation" yaml:"validation"`
}

// ServerCfg configures the HTTP listener.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
	// APIKey guards every non-health endpoint. Supports ${ENV_VAR} syntax.
	// Empty disables authentication.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
}

// ProviderCfg configures a vision provider.
type ProviderCfg struct {
	Type           string `mapstructure:"type" yaml:"type"`       // "anthropic", "openai"
	Model          string `mapstructure:"model" yaml:"model"`     // Default model name
	APIKey         string `mapstructure:"api_key" yaml:"api_key"` // API key (supports ${ENV_VAR} syntax)
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
}

// TierCfg maps a request tier to a provider and model.
type TierCfg struct {
	Provider string `mapstructure:"provider" yaml:"provider"`
	Model    string `mapstructure:"model" yaml:"model"`
}

// OCRCfg configures the text extraction toolchain.
type OCRCfg struct {
	Languages      []string `mapstructure:"languages" yaml:"languages"`
	TessdataPrefix string   `mapstructure:"tessdata_prefix" yaml:"tessdata_prefix"`
	PdftotextPath  string   `mapstructure:"pdftotext_path" yaml:"pdftotext_path"`
	OCRmyPDFPath   string   `mapstructure:"ocrmypdf_path" yaml:"ocrmypdf_path"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// ExtractionCfg configures vision-model field extraction.
type ExtractionCfg struct {
	RequiredFields []string `mapstructure:"required_fields" yaml:"required_fields"`
	MaxTokens      int      `mapstructure:"max_tokens" yaml:"max_tokens"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// ValidationCfg configures the document plausibility checks.
type ValidationCfg struct {
	MinimumAge int `mapstructure:"minimum_age" yaml:"minimum_age"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerCfg{
			Host:   "0.0.0.0",
			Port:   8000,
			APIKey: "${DOCSIFT_API_KEY}",
		},
		Providers: map[string]ProviderCfg{
			"anthropic": {
				Type:           "anthropic",
				Model:          "claude-3-haiku-20240307",
				APIKey:         "${ANTHROPIC_API_KEY}",
				TimeoutSeconds: 60,
				Enabled:        true,
			},
			"openai": {
				Type:           "openai",
				Model:          "gpt-4o-mini",
				APIKey:         "${OPENAI_API_KEY}",
				TimeoutSeconds: 60,
				Enabled:        false,
			},
		},
		Tiers: map[string]TierCfg{
			"mobile": {
				Provider: "anthropic",
				Model:    "claude-3-haiku-20240307",
			},
			"desktop": {
				Provider: "anthropic",
				Model:    "claude-3-5-sonnet-20241022",
			},
		},
		OCR: OCRCfg{
			Languages:      []string{"en"},
			PdftotextPath:  "pdftotext",
			OCRmyPDFPath:   "ocrmypdf",
			TimeoutSeconds: 120,
		},
		Extraction: ExtractionCfg{
			RequiredFields: docfields.DefaultRequired(),
			MaxTokens:      1000,
			TimeoutSeconds: 60,
		},
		Validation: ValidationCfg{
			MinimumAge: 18,
		},
	}
}

// GetProvider returns a provider config by name.
func (c *Config) GetProvider(name string) (ProviderCfg, bool) {
	cfg, ok := c.Providers[name]
	return cfg, ok
}

// EnabledProviders returns all enabled vision providers.
func (c *Config) EnabledProviders() map[string]ProviderCfg {
	result := make(map[string]ProviderCfg)
	for name, cfg := range c.Providers {
		if cfg.Enabled {
			result[name] = cfg
		}
	}
	return result
}
