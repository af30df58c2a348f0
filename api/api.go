// Package api holds the OpenAPI document of the HTTP API. The server glue in
// internal/generated/servers is generated from it.
package api

import _ "embed"

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen -generate types,server -package servers -o ../internal/generated/servers/server.gen.go openapi.yml

//go:embed openapi.yml
var Spec []byte
