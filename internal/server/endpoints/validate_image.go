package endpoints

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/api"
	"github.com/docsift/docsift/internal/extract"
	"github.com/docsift/docsift/internal/svcctx"
)

// ValidateImageEndpoint handles POST /ocr/validate/image: field extraction
// plus document plausibility checks.
type ValidateImageEndpoint struct{}

var _ api.Endpoint = (*ValidateImageEndpoint)(nil)

func (e *ValidateImageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/ocr/validate/image", e.handler
}

func (e *ValidateImageEndpoint) RequiresInit() bool { return true }
func (e *ValidateImageEndpoint) RequiresAuth() bool { return true }

// handler godoc
//
//	@Summary		Extract and validate an identity document
//	@Description	Extracts identity fields and runs expiry, age, format, and consistency checks over them
//	@Tags			extract
//	@Accept			mpfd
//	@Produce		json
//	@Param			file	formData	file	true	"Identity document image"
//	@Param			tier	query		string	false	"Model tier (mobile or desktop, default mobile)"
//	@Success		200	{object}	extract.ValidationResponse
//	@Failure		400	{object}	extract.ValidationResponse
//	@Router			/ocr/validate/image [post]
func (e *ValidateImageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
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

	resp, err := orch.ValidateDocument(r.Context(), u.Filename, u.Data, contentType, tier)
	writeJSON(w, extract.HTTPStatus(err), resp)
}

func (e *ValidateImageEndpoint) Command(getServerURL func() string) *cobra.Command {
	var tier string
	cmd := &cobra.Command{
		Use:   "validate-image <file>",
		Short: "Extract and validate an identity document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL(), apiKeyFromEnv())
			path := "/ocr/validate/image"
			if tier != "" {
				path += "?tier=" + tier
			}
			var resp extract.ValidationResponse
			if err := client.PostFile(cmd.Context(), path, args[0], &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVarP(&tier, "tier", "t", "", "Model tier (mobile or desktop)")
	return cmd
}
