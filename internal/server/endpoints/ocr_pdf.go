package endpoints

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/api"
	"github.com/docsift/docsift/internal/extract"
	"github.com/docsift/docsift/internal/svcctx"
)

// OCRPDFEndpoint handles POST /ocr/pdf with a multipart PDF upload.
type OCRPDFEndpoint struct{}

var _ api.Endpoint = (*OCRPDFEndpoint)(nil)

func (e *OCRPDFEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/ocr/pdf", e.handler
}

func (e *OCRPDFEndpoint) RequiresInit() bool { return true }
func (e *OCRPDFEndpoint) RequiresAuth() bool { return true }

// handler godoc
//
//	@Summary		Extract text from a PDF
//	@Description	Reads the embedded text layer page by page, falling back to OCR when the document has no text layer
//	@Tags			ocr
//	@Accept			mpfd
//	@Produce		json
//	@Param			file		formData	file	true	"PDF to process"
//	@Param			force_ocr	query		bool	false	"Re-recognize every page even when a text layer exists"
//	@Success		200	{object}	extract.OCRResponse
//	@Failure		400	{object}	extract.OCRResponse
//	@Failure		502	{object}	extract.OCRResponse
//	@Router			/ocr/pdf [post]
func (e *OCRPDFEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	u, err := readUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !isPDFUpload(u) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported file type for %s, expected a PDF", u.Filename))
		return
	}

	orch := svcctx.OrchestratorFrom(r.Context())
	if orch == nil {
		writeError(w, http.StatusServiceUnavailable, "orchestrator not initialized")
		return
	}

	forceOCR := r.URL.Query().Get("force_ocr") == "true"
	resp, err := orch.OCRPDF(r.Context(), u.Filename, u.Data, forceOCR)
	writeJSON(w, extract.HTTPStatus(err), resp)
}

func (e *OCRPDFEndpoint) Command(getServerURL func() string) *cobra.Command {
	var forceOCR bool
	cmd := &cobra.Command{
		Use:   "ocr-pdf <file>",
		Short: "Extract text from a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL(), apiKeyFromEnv())
			path := "/ocr/pdf"
			if forceOCR {
				path += "?force_ocr=true"
			}
			var resp extract.OCRResponse
			if err := client.PostFile(cmd.Context(), path, args[0], &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().BoolVar(&forceOCR, "force-ocr", false, "Re-recognize every page even when a text layer exists")
	return cmd
}
