package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/docsift/docsift/internal/docfields"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 8000 {
		t.Errorf("unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.Server.APIKey != "${DOCSIFT_API_KEY}" {
		t.Errorf("unexpected api key default: %s", cfg.Server.APIKey)
	}

	anthropic, ok := cfg.GetProvider("anthropic")
	if !ok || !anthropic.Enabled {
		t.Fatalf("anthropic should be enabled by default: %+v", anthropic)
	}
	if anthropic.Model != "claude-3-haiku-20240307" {
		t.Errorf("unexpected anthropic model: %s", anthropic.Model)
	}

	openai, ok := cfg.GetProvider("openai")
	if !ok || openai.Enabled {
		t.Errorf("openai should be present but disabled: %+v", openai)
	}

	enabled := cfg.EnabledProviders()
	if len(enabled) != 1 {
		t.Errorf("expected exactly one enabled provider, got %v", enabled)
	}

	if cfg.Tiers["mobile"].Provider != "anthropic" {
		t.Errorf("unexpected mobile tier: %+v", cfg.Tiers["mobile"])
	}
	if cfg.Tiers["desktop"].Model != "claude-3-5-sonnet-20241022" {
		t.Errorf("unexpected desktop tier: %+v", cfg.Tiers["desktop"])
	}

	if !reflect.DeepEqual(cfg.Extraction.RequiredFields, docfields.DefaultRequired()) {
		t.Errorf("unexpected required fields: %v", cfg.Extraction.RequiredFields)
	}
	if cfg.Validation.MinimumAge != 18 {
		t.Errorf("unexpected minimum age: %d", cfg.Validation.MinimumAge)
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("DOCSIFT_TEST_KEY", "secret-value")

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"set variable", "${DOCSIFT_TEST_KEY}", "secret-value"},
		{"unset variable resolves empty", "${DOCSIFT_TEST_UNSET}", ""},
		{"literal passes through", "plain-key", "plain-key"},
		{"empty string", "", ""},
		{"embedded reference", "prefix-${DOCSIFT_TEST_KEY}", "prefix-secret-value"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveEnvVars(tc.input); got != tc.want {
				t.Errorf("ResolveEnvVars(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestToVisionRegistryConfig(t *testing.T) {
	t.Setenv("DOCSIFT_TEST_ANTHROPIC_KEY", "sk-ant-test")

	cfg := &Config{
		Providers: map[string]ProviderCfg{
			"anthropic": {
				Type:           "anthropic",
				Model:          "claude-3-haiku-20240307",
				APIKey:         "${DOCSIFT_TEST_ANTHROPIC_KEY}",
				TimeoutSeconds: 30,
				Enabled:        true,
			},
		},
	}

	reg := cfg.ToVisionRegistryConfig()
	p, ok := reg.Providers["anthropic"]
	if !ok {
		t.Fatal("anthropic missing from registry config")
	}
	if p.APIKey != "sk-ant-test" {
		t.Errorf("api key not resolved: %q", p.APIKey)
	}
	if p.Timeout != 30*time.Second {
		t.Errorf("unexpected timeout: %v", p.Timeout)
	}
	if !p.Enabled || p.Type != "anthropic" {
		t.Errorf("unexpected provider config: %+v", p)
	}
}

func TestToTierConfigs(t *testing.T) {
	cfg := DefaultConfig()
	tiers := cfg.ToTierConfigs()

	if len(tiers) != 2 {
		t.Fatalf("expected 2 tiers, got %d", len(tiers))
	}
	if tiers["mobile"].Provider != "anthropic" || tiers["mobile"].Model != "claude-3-haiku-20240307" {
		t.Errorf("unexpected mobile tier: %+v", tiers["mobile"])
	}
}

func TestResolvedAPIKey(t *testing.T) {
	t.Setenv("DOCSIFT_TEST_SERVER_KEY", "hunter2")

	cfg := &Config{Server: ServerCfg{APIKey: "${DOCSIFT_TEST_SERVER_KEY}"}}
	if got := cfg.ResolvedAPIKey(); got != "hunter2" {
		t.Errorf("unexpected resolved key: %q", got)
	}

	cfg.Server.APIKey = ""
	if got := cfg.ResolvedAPIKey(); got != "" {
		t.Errorf("empty key should stay empty, got %q", got)
	}
}

func TestNewManager(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`server:
  host: 127.0.0.1
  port: 9100
providers:
  anthropic:
    type: anthropic
    model: claude-3-5-sonnet-20241022
    api_key: direct-key
    timeout_seconds: 45
    enabled: true
validation:
  minimum_age: 21
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	mgr, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	cfg := mgr.Get()
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9100 {
		t.Errorf("file values not loaded: %+v", cfg.Server)
	}
	if cfg.Validation.MinimumAge != 21 {
		t.Errorf("expected minimum age 21, got %d", cfg.Validation.MinimumAge)
	}

	p, ok := cfg.GetProvider("anthropic")
	if !ok || p.Model != "claude-3-5-sonnet-20241022" || p.TimeoutSeconds != 45 {
		t.Errorf("unexpected provider config: %+v", p)
	}

	// Defaults fill in sections the file omits.
	if len(cfg.OCR.Languages) == 0 {
		t.Error("OCR defaults should apply when the file omits them")
	}
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}
	for _, want := range []string{"server:", "providers:", "${ANTHROPIC_API_KEY}", "# Docsift configuration"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("written config missing %q", want)
		}
	}
}
