package endpoints

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/api"
	"github.com/docsift/docsift/internal/extract"
	"github.com/docsift/docsift/internal/svcctx"
)

// OCRImageEndpoint handles POST /ocr/image with a multipart image upload.
type OCRImageEndpoint struct{}

var _ api.Endpoint = (*OCRImageEndpoint)(nil)

func (e *OCRImageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/ocr/image", e.handler
}

func (e *OCRImageEndpoint) RequiresInit() bool { return true }
func (e *OCRImageEndpoint) RequiresAuth() bool { return true }

// handler godoc
//
//	@Summary		Extract raw text from an image
//	@Description	Runs OCR over an uploaded identity-document image and returns the recognized text with word-level blocks
//	@Tags			ocr
//	@Accept			mpfd
//	@Produce		json
//	@Param			file		formData	file	true	"Image to process (jpeg, png, gif, bmp, tiff, webp)"
//	@Param			languages	query		string	false	"Comma-separated OCR language codes (default: en)"
//	@Success		200	{object}	extract.OCRResponse
//	@Failure		400	{object}	extract.OCRResponse
//	@Failure		502	{object}	extract.OCRResponse
//	@Router			/ocr/image [post]
func (e *OCRImageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	u, err := readUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if imageContentType(u) == "" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported file type for %s, expected an image", u.Filename))
		return
	}

	orch := svcctx.OrchestratorFrom(r.Context())
	if orch == nil {
		writeError(w, http.StatusServiceUnavailable, "orchestrator not initialized")
		return
	}

	languages := parseLanguages(r.URL.Query().Get("languages"))
	resp, err := orch.OCRImage(r.Context(), u.Filename, u.Data, languages)
	writeJSON(w, extract.HTTPStatus(err), resp)
}

func (e *OCRImageEndpoint) Command(getServerURL func() string) *cobra.Command {
	var languages []string
	cmd := &cobra.Command{
		Use:   "ocr-image <file>",
		Short: "Extract raw text from an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL(), apiKeyFromEnv())
			path := "/ocr/image"
			if len(languages) > 0 {
				path += "?languages=" + strings.Join(languages, ",")
			}
			var resp extract.OCRResponse
			if err := client.PostFile(cmd.Context(), path, args[0], &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringSliceVarP(&languages, "languages", "l", nil, "OCR language codes")
	return cmd
}
