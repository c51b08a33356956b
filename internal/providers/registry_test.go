package providers

import (
	"context"
	"testing"
)

func TestRegistry(t *testing.T) {
	t.Run("register and get", func(t *testing.T) {
		r := NewRegistry()
		mock := NewMockProvider()
		r.Register("mock", mock)

		got, err := r.Get("mock")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != mock {
			t.Error("expected the registered provider")
		}
		if !r.Has("mock") {
			t.Error("Has should report the provider")
		}
	})

	t.Run("get unknown provider fails", func(t *testing.T) {
		r := NewRegistry()
		if _, err := r.Get("nope"); err == nil {
			t.Error("expected error for unknown provider")
		}
	})

	t.Run("list returns registered names", func(t *testing.T) {
		r := NewRegistry()
		r.Register("a", NewMockProvider())
		r.Register("b", NewMockProvider())
		if names := r.List(); len(names) != 2 {
			t.Errorf("expected 2 names, got %v", names)
		}
	})
}

func TestNewRegistryFromConfig(t *testing.T) {
	cfg := RegistryConfig{
		Providers: map[string]VisionProviderConfig{
			"anthropic": {Type: "anthropic", APIKey: "sk-1", Model: "claude-3-haiku-20240307", Enabled: true},
			"openai":    {Type: "openai", APIKey: "sk-2", Model: "gpt-4o-mini", Enabled: false},
			"keyless":   {Type: "anthropic", Enabled: true},
			"unknown":   {Type: "llamafile", APIKey: "x", Enabled: true},
		},
	}

	r := NewRegistryFromConfig(cfg)

	if !r.Has("anthropic") {
		t.Error("enabled provider with key should be registered")
	}
	if r.Has("openai") {
		t.Error("disabled provider should not be registered")
	}
	if r.Has("keyless") {
		t.Error("provider without API key should not be registered")
	}
	if r.Has("unknown") {
		t.Error("unknown provider type should not be registered")
	}
}

func TestRegistry_Reload(t *testing.T) {
	r := NewRegistryFromConfig(RegistryConfig{
		Providers: map[string]VisionProviderConfig{
			"anthropic": {Type: "anthropic", APIKey: "sk-1", Model: "m1", Enabled: true},
			"openai":    {Type: "openai", APIKey: "sk-2", Model: "m2", Enabled: true},
		},
	})

	t.Run("removes providers dropped from config", func(t *testing.T) {
		r.Reload(RegistryConfig{
			Providers: map[string]VisionProviderConfig{
				"anthropic": {Type: "anthropic", APIKey: "sk-1", Model: "m1", Enabled: true},
			},
		})
		if r.Has("openai") {
			t.Error("dropped provider should be unregistered")
		}
		if !r.Has("anthropic") {
			t.Error("kept provider should survive reload")
		}
	})

	t.Run("recreates provider on key rotation", func(t *testing.T) {
		before, _ := r.Get("anthropic")
		r.Reload(RegistryConfig{
			Providers: map[string]VisionProviderConfig{
				"anthropic": {Type: "anthropic", APIKey: "sk-rotated", Model: "m1", Enabled: true},
			},
		})
		after, _ := r.Get("anthropic")
		if before == after {
			t.Error("provider should be recreated when the API key changes")
		}
	})

	t.Run("keeps provider when config is unchanged", func(t *testing.T) {
		before, _ := r.Get("anthropic")
		r.Reload(RegistryConfig{
			Providers: map[string]VisionProviderConfig{
				"anthropic": {Type: "anthropic", APIKey: "sk-rotated", Model: "m1", Enabled: true},
			},
		})
		after, _ := r.Get("anthropic")
		if before != after {
			t.Error("unchanged provider should not be recreated")
		}
	})
}

func TestMockProvider(t *testing.T) {
	t.Run("returns configured guess", func(t *testing.T) {
		m := &MockProvider{RawResponse: map[string]any{"first_name": "Jane"}}
		result, err := m.GuessFields(context.Background(), &GuessRequest{Model: "test-model"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Raw["first_name"] != "Jane" {
			t.Errorf("unexpected raw response: %v", result.Raw)
		}
		if result.ModelUsed != "test-model" {
			t.Errorf("unexpected model: %s", result.ModelUsed)
		}
		if m.RequestCount() != 1 {
			t.Errorf("expected 1 request, got %d", m.RequestCount())
		}
	})

	t.Run("fails with vision error", func(t *testing.T) {
		m := &MockProvider{ShouldFail: true}
		_, err := m.GuessFields(context.Background(), &GuessRequest{})
		if _, ok := err.(*VisionError); !ok {
			t.Fatalf("expected VisionError, got %T", err)
		}
	})

	t.Run("honors cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		m := NewMockProvider()
		if _, err := m.GuessFields(ctx, &GuessRequest{}); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}
