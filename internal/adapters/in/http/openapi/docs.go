// Package openapi serves the API description: the raw document at
// /openapi.json and Swagger UI at /swagger/*.
package openapi

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"connectfood/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// InstanceName is the swag registry name the UI reads the document from.
const InstanceName = "connectfood"

var registerOnce sync.Once

// Docs is the parsed and validated API document.
type Docs struct {
	doc  *openapi3.T
	json []byte
}

// Load parses the embedded document and validates it.
func Load(ctx context.Context) (*Docs, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(api.Spec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi document is invalid: %w", err)
	}

	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode openapi document: %w", err)
	}
	return &Docs{doc: doc, json: raw}, nil
}

// Document returns the parsed document.
func (d *Docs) Document() *openapi3.T {
	return d.doc
}

// ReadDoc implements swag.Swagger.
func (d *Docs) ReadDoc() string {
	return string(d.json)
}

// Register mounts the document and the UI on e. The swag registry is global,
// so only the first Docs registered is served by the UI.
func (d *Docs) Register(e *echo.Echo) {
	registerOnce.Do(func() {
		if swag.GetSwagger(InstanceName) == nil {
			swag.Register(InstanceName, d)
		}
	})

	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, d.json)
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(InstanceName)))
}
