package providers

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Registry holds references to vision providers. It supports config-driven
// instantiation, hot reload, and thread-safe access.
type Registry struct {
	mu      sync.RWMutex
	visions map[string]VisionProvider
	logger  *slog.Logger
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		visions: make(map[string]VisionProvider),
		logger:  slog.Default(),
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Register adds a vision provider by name.
func (r *Registry) Register(name string, provider VisionProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visions[name] = provider
	if r.logger != nil {
		r.logger.Info("registered vision provider", "name", name)
	}
}

// Get returns a vision provider by name.
func (r *Registry) Get(name string) (VisionProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.visions[name]
	if !ok {
		return nil, fmt.Errorf("vision provider not found: %s", name)
	}
	return provider, nil
}

// Has checks if a vision provider is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.visions[name]
	return ok
}

// List returns all registered provider names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.visions))
	for name := range r.visions {
		names = append(names, name)
	}
	return names
}

// RegistryConfig defines the providers to instantiate from config.
type RegistryConfig struct {
	// Providers maps provider names to their config.
	Providers map[string]VisionProviderConfig
}

// VisionProviderConfig holds one provider entry with a resolved API key.
type VisionProviderConfig struct {
	Type    string // "anthropic", "openai"
	Model   string // default model for the provider
	APIKey  string // resolved API key
	Timeout time.Duration
	Enabled bool
}

// NewRegistryFromConfig creates a registry with providers based on
// configuration. Only enabled providers with API keys are registered.
func NewRegistryFromConfig(cfg RegistryConfig) *Registry {
	r := NewRegistry()
	for name, provCfg := range cfg.Providers {
		if !provCfg.Enabled || provCfg.APIKey == "" {
			continue
		}
		if provider := createVisionProvider(provCfg); provider != nil {
			r.visions[name] = provider
		}
	}
	return r
}

// Reload updates the registry from new configuration. Providers no longer
// configured are unregistered; changed providers are recreated.
func (r *Registry) Reload(cfg RegistryConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := make(map[string]bool)
	for name, provCfg := range cfg.Providers {
		if !provCfg.Enabled || provCfg.APIKey == "" {
			continue
		}
		want[name] = true

		existing, hasExisting := r.visions[name]
		if !hasExisting || needsUpdate(existing, provCfg) {
			provider := createVisionProvider(provCfg)
			if provider != nil {
				r.visions[name] = provider
				if r.logger != nil {
					if hasExisting {
						r.logger.Info("updated vision provider", "name", name, "type", provCfg.Type)
					} else {
						r.logger.Info("registered vision provider", "name", name, "type", provCfg.Type)
					}
				}
			}
		}
	}

	for name := range r.visions {
		if !want[name] {
			delete(r.visions, name)
			if r.logger != nil {
				r.logger.Info("unregistered vision provider", "name", name)
			}
		}
	}
}

// createVisionProvider creates a provider based on its configured type.
func createVisionProvider(cfg VisionProviderConfig) VisionProvider {
	switch cfg.Type {
	case "anthropic":
		return NewAnthropicClient(AnthropicConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
	case "openai":
		return NewOpenAIClient(OpenAIConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
	default:
		return nil
	}
}

// needsUpdate checks if a provider must be recreated for the new config.
func needsUpdate(provider VisionProvider, cfg VisionProviderConfig) bool {
	switch p := provider.(type) {
	case *AnthropicClient:
		return p.apiKey != cfg.APIKey || p.model != cfg.Model
	case *OpenAIClient:
		return p.apiKey != cfg.APIKey || p.model != cfg.Model
	default:
		return true
	}
}
