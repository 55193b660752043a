// Package generated holds the server interface and models generated from
// internal/api/openapi/openapi.yaml. Run `go generate ./internal/api/...`
// after editing the document.
//
// Import Path: ezcrow.dev/crowdfund/internal/api/generated
package generated

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.5.0 --config=oapi-codegen.yaml ../openapi/openapi.yaml
