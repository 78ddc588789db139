// Package docs provides generated OpenAPI documentation.
//
// labextract API
//
//	@title			labextract API
//	@version		1.0
//	@description	Turns two-column laboratory report PDFs into normalized analyte records.
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	https://github.com/labworks/labextract
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/labextract/serve.go -o . --outputTypes go --parseInternal
