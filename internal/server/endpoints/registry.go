package endpoints

import (
	"github.com/docsift/docsift/internal/api"
	"github.com/docsift/docsift/internal/ocr/pdftext"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	PDFSource       *pdftext.Source
	SwaggerSpecPath string
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{PDFSource: cfg.PDFSource},
		&StatusEndpoint{PDFSource: cfg.PDFSource},

		// OCR endpoints
		&OCRImageEndpoint{},
		&OCRPDFEndpoint{},

		// Field extraction endpoints
		&ExtractImageEndpoint{},
		&ValidateImageEndpoint{},

		// Swagger/OpenAPI endpoint
		&SwaggerEndpoint{SpecPath: cfg.SwaggerSpecPath},
	}
}
