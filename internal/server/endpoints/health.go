package endpoints

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/api"
	"github.com/docsift/docsift/internal/ocr/pdftext"
	"github.com/docsift/docsift/internal/ocr/tesseract"
	"github.com/docsift/docsift/internal/svcctx"
	"github.com/docsift/docsift/version"
)

// HealthResponse is the response for health check endpoints.
type HealthResponse struct {
	Status string `json:"status"`
	Engine string `json:"engine,omitempty"`
}

// HealthEndpoint handles GET /health.
type HealthEndpoint struct{}

func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/health", e.handler
}

func (e *HealthEndpoint) RequiresInit() bool { return false }
func (e *HealthEndpoint) RequiresAuth() bool { return false }

// handler godoc
//
//	@Summary	Liveness probe
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Router		/health [get]
func (e *HealthEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (e *HealthEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL(), "")
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/health", &resp); err != nil {
				return err
			}
			fmt.Printf("Status: %s\n", resp.Status)
			return nil
		},
	}
}

// ReadyEndpoint handles GET /ready. Ready means the OCR toolchain is usable.
type ReadyEndpoint struct {
	PDFSource *pdftext.Source
}

func (e *ReadyEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/ready", e.handler
}

func (e *ReadyEndpoint) RequiresInit() bool { return false }
func (e *ReadyEndpoint) RequiresAuth() bool { return false }

// handler godoc
//
//	@Summary	Readiness probe (includes OCR toolchain)
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Failure	503	{object}	HealthResponse
//	@Router		/ready [get]
func (e *ReadyEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Engine: "ok"}

	if !tesseract.Available() {
		resp.Status = "degraded"
		resp.Engine = "tesseract_unavailable"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	if e.PDFSource != nil && !e.PDFSource.Available() {
		resp.Status = "degraded"
		resp.Engine = "pdf_toolchain_unavailable"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *ReadyEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "ready",
		Short: "Check server readiness (includes OCR toolchain)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL(), "")
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/ready", &resp); err != nil {
				return err
			}
			fmt.Printf("Status: %s\n", resp.Status)
			if resp.Engine != "" {
				fmt.Printf("Engine: %s\n", resp.Engine)
			}
			return nil
		},
	}
}

// StatusResponse is the detailed status response.
type StatusResponse struct {
	Server    string        `json:"server"`
	Version   VersionInfo   `json:"version"`
	Providers []string      `json:"providers"`
	Engines   EnginesStatus `json:"engines"`
}

// VersionInfo carries build metadata.
type VersionInfo struct {
	Release string `json:"release"`
	Commit  string `json:"commit"`
	Go      string `json:"go"`
}

// EnginesStatus shows OCR toolchain availability.
type EnginesStatus struct {
	Tesseract    string `json:"tesseract"`
	PDFToolchain string `json:"pdf_toolchain"`
}

// StatusEndpoint handles GET /status.
type StatusEndpoint struct {
	PDFSource *pdftext.Source
}

func (e *StatusEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/status", e.handler
}

func (e *StatusEndpoint) RequiresInit() bool { return false }
func (e *StatusEndpoint) RequiresAuth() bool { return false }

// handler godoc
//
//	@Summary	Detailed server status
//	@Produce	json
//	@Success	200	{object}	StatusResponse
//	@Router		/status [get]
func (e *StatusEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Server: "running",
		Version: VersionInfo{
			Release: version.GitRelease,
			Commit:  version.GitCommit,
			Go:      version.GoInfo,
		},
	}

	if registry := svcctx.RegistryFrom(r.Context()); registry != nil {
		resp.Providers = registry.List()
	}

	resp.Engines.Tesseract = availability(tesseract.Available())
	if e.PDFSource != nil {
		resp.Engines.PDFToolchain = availability(e.PDFSource.Available())
	} else {
		resp.Engines.PDFToolchain = "not_configured"
	}

	writeJSON(w, http.StatusOK, resp)
}

func availability(ok bool) string {
	if ok {
		return "available"
	}
	return "unavailable"
}

func (e *StatusEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get detailed server status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL(), apiKeyFromEnv())
			var resp StatusResponse
			if err := client.Get(cmd.Context(), "/status", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
