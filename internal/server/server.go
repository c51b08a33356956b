// Package server assembles the docsift HTTP server: the OCR extractors, the
// vision provider registry, and the endpoint routes.
package server

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/docsift/docsift/internal/api"
	"github.com/docsift/docsift/internal/config"
	"github.com/docsift/docsift/internal/docfields"
	"github.com/docsift/docsift/internal/docval"
	"github.com/docsift/docsift/internal/extract"
	"github.com/docsift/docsift/internal/ocr"
	"github.com/docsift/docsift/internal/ocr/pdftext"
	"github.com/docsift/docsift/internal/ocr/tesseract"
	"github.com/docsift/docsift/internal/providers"
	"github.com/docsift/docsift/internal/server/endpoints"
	"github.com/docsift/docsift/internal/svcctx"
)

// Server is the main docsift HTTP server.
type Server struct {
	httpServer   *http.Server
	registry     *providers.Registry
	configMgr    *config.Manager
	orchestrator *extract.Orchestrator
	pdfSource    *pdftext.Source
	logger       *slog.Logger
	apiKey       string

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 0.0.0.0)
	Host string
	// Port is the port to listen on (default: 8000)
	Port int
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.ConfigManager == nil {
		return nil, errors.New("config manager is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	appCfg := cfg.ConfigManager.Get()
	if cfg.Host == "" {
		cfg.Host = appCfg.Server.Host
	}
	if cfg.Port == 0 {
		cfg.Port = appCfg.Server.Port
	}

	// Create provider registry with hot reload
	registry := providers.NewRegistry()
	registry.SetLogger(cfg.Logger)
	registry.Reload(appCfg.ToVisionRegistryConfig())
	cfg.ConfigManager.OnChange(func(c *config.Config) {
		registry.Reload(c.ToVisionRegistryConfig())
		cfg.Logger.Info("provider registry reloaded from config")
	})

	s := &Server{
		registry:  registry,
		configMgr: cfg.ConfigManager,
		logger:    cfg.Logger,
		apiKey:    appCfg.ResolvedAPIKey(),
	}

	s.pdfSource = &pdftext.Source{
		PdftotextPath: appCfg.OCR.PdftotextPath,
		OCRmyPDFPath:  appCfg.OCR.OCRmyPDFPath,
		Languages:     appCfg.OCR.Languages,
	}

	ocrTimeout := time.Duration(appCfg.OCR.TimeoutSeconds) * time.Second
	s.orchestrator = &extract.Orchestrator{
		Images: &ocr.ImageExtractor{
			Recognizer:       &tesseract.Recognizer{TessdataPrefix: appCfg.OCR.TessdataPrefix},
			DefaultLanguages: appCfg.OCR.Languages,
			Timeout:          ocrTimeout,
		},
		PDFs: &ocr.PDFExtractor{
			Source:  s.pdfSource,
			Timeout: ocrTimeout,
		},
		Fields: &extract.FieldExtractor{
			Registry:  registry,
			Tiers:     appCfg.ToTierConfigs(),
			MaxTokens: appCfg.Extraction.MaxTokens,
			Timeout:   time.Duration(appCfg.Extraction.TimeoutSeconds) * time.Second,
			Logger:    cfg.Logger,
		},
		Validator: docfields.NewValidator(appCfg.Extraction.RequiredFields),
		Checks:    docval.NewService(appCfg.Validation.MinimumAge),
		Logger:    cfg.Logger,
	}

	s.services = &svcctx.Services{
		Config:       cfg.ConfigManager,
		Registry:     registry,
		Orchestrator: s.orchestrator,
		Logger:       cfg.Logger,
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All(endpoints.Config{
		PDFSource:       s.pdfSource,
		SwaggerSpecPath: endpoints.GetSwaggerSpecPath(),
	}) {
		s.endpointRegistry.Register(ep)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit, s.requireAuth)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      s.withServices(mux),
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Start starts the server. It blocks until the context is cancelled or an
// error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	if s.apiKey == "" {
		s.logger.Warn("no API key configured, authentication disabled")
	}
	if !tesseract.Available() {
		s.logger.Warn("tesseract engine unavailable, image OCR will fail")
	}
	if !s.pdfSource.Available() {
		s.logger.Warn("PDF toolchain unavailable, PDF OCR will fail")
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			s.setNotRunning()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// shutdown performs graceful shutdown of the HTTP server.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Registry returns the provider registry.
func (s *Server) Registry() *providers.Registry {
	return s.registry
}

// Orchestrator returns the extraction orchestrator.
func (s *Server) Orchestrator() *extract.Orchestrator {
	return s.orchestrator
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if s.services != nil {
			ctx = svcctx.WithServices(ctx, s.services)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireInit is middleware that ensures the server is fully initialized.
// Returns 503 Service Unavailable if the orchestrator isn't ready.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.orchestrator == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"server not fully initialized"}`))
			return
		}
		next(w, r)
	}
}

// requireAuth is middleware that enforces the X-API-Key header. With no key
// configured, requests pass through.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" {
			next(w, r)
			return
		}
		got := r.Header.Get(api.APIKeyHeader)
		if got == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"missing API key"}`))
			return
		}
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.apiKey)) != 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"invalid API key"}`))
			return
		}
		next(w, r)
	}
}
