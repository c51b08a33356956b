// Package docs provides generated OpenAPI documentation.
//
// Docsift API
//
//	@title			Docsift API
//	@version		1.0
//	@description	Identity document OCR and field extraction API.
//
//	@contact.name	API Support
//	@contact.url	https://github.com/docsift/docsift
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8000
//	@BasePath	/
//
//	@schemes	http https
//
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						X-API-Key
package docs

//go:generate swag init -g ../cmd/docsift/serve.go -o ./swagger --parseDependency --parseInternal
