// Package endpoints implements the HTTP API surface. Each endpoint is a
// single source of truth for its route, swagger annotations, and the CLI
// command that calls it.
package endpoints

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// maxUploadMemory bounds multipart parsing buffers.
const maxUploadMemory = 50 << 20 // 50MB

// allowedImageTypes are the upload content types accepted by the image
// endpoints. Uploads with no usable content type fall back to the filename
// extension.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/tiff": true,
	"image/webp": true,
}

var imageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
}

// upload is one file pulled out of a multipart request.
type upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// readUpload extracts the "file" form field from a multipart request.
func readUpload(r *http.Request) (*upload, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("missing file field: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	return &upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// imageContentType resolves and polices the upload's content type. Returns
// an empty string when the upload is not an accepted image.
func imageContentType(u *upload) string {
	ct := strings.ToLower(strings.TrimSpace(u.ContentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if allowedImageTypes[ct] {
		return ct
	}
	if ct == "" || ct == "application/octet-stream" {
		if byExt, ok := imageExtensions[strings.ToLower(filepath.Ext(u.Filename))]; ok {
			return byExt
		}
	}
	return ""
}

// isPDFUpload checks the upload looks like a PDF by content type or
// extension.
func isPDFUpload(u *upload) bool {
	ct := strings.ToLower(strings.TrimSpace(u.ContentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "application/pdf" {
		return true
	}
	if ct == "" || ct == "application/octet-stream" {
		return strings.EqualFold(filepath.Ext(u.Filename), ".pdf")
	}
	return false
}

// parseLanguages splits a comma-separated languages query parameter.
func parseLanguages(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	langs := make([]string, 0, len(parts))
	for _, p := range parts {
		if lang := strings.TrimSpace(p); lang != "" {
			langs = append(langs, lang)
		}
	}
	return langs
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// apiKeyFromEnv returns the API key CLI commands send to the server.
func apiKeyFromEnv() string {
	return os.Getenv("DOCSIFT_API_KEY")
}
