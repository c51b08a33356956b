package endpoints

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/api"
	"github.com/docsift/docsift/internal/extract"
	"github.com/docsift/docsift/internal/svcctx"
)

// ExtractImageEndpoint handles POST /ocr/extract/image: structured field
// extraction through a vision model.
type ExtractImageEndpoint struct{}

var _ api.Endpoint = (*ExtractImageEndpoint)(nil)

func (e *ExtractImageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/ocr/extract/image", e.handler
}

func (e *ExtractImageEndpoint) RequiresInit() bool { return true }
func (e *ExtractImageEndpoint) RequiresAuth() bool { return true }

// handler godoc
//
//	@Summary		Extract identity fields from an image
//	@Description	Sends the document image to a vision model and returns the canonical identity fields with required-field validation
//	@Tags			extract
//	@Accept			mpfd
//	@Produce		json
//	@Param			file	formData	file	true	"Identity document image"
//	@Param			tier	query		string	false	"Model tier (mobile or desktop, default mobile)"
//	@Success		200	{object}	extract.FieldResponse
//	@Failure		400	{object}	extract.FieldResponse
//	@Router			/ocr/extract/image [post]
func (e *ExtractImageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	u, err := readUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	contentType := imageContentType(u)
	if contentType == "" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported file type for %s, expected an image", u.Filename))
		return
	}

	orch := svcctx.OrchestratorFrom(r.Context())
	if orch == nil {
		writeError(w, http.StatusServiceUnavailable, "orchestrator not initialized")
		return
	}

	tier := r.URL.Query().Get("tier")
	if tier == "" {
		tier = extract.TierMobile
	}

	resp, err := orch.ExtractFields(r.Context(), u.Filename, u.Data, contentType, tier)
	writeJSON(w, extract.HTTPStatus(err), resp)
}

func (e *ExtractImageEndpoint) Command(getServerURL func() string) *cobra.Command {
	var tier string
	cmd := &cobra.Command{
		Use:   "extract-image <file>",
		Short: "Extract identity fields from an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL(), apiKeyFromEnv())
			path := "/ocr/extract/image"
			if tier != "" {
				path += "?tier=" + tier
			}
			var resp extract.FieldResponse
			if err := client.PostFile(cmd.Context(), path, args[0], &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVarP(&tier, "tier", "t", "", "Model tier (mobile or desktop)")
	return cmd
}
