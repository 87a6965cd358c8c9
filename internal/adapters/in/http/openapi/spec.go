// Package openapi serves the API description and validates requests against it.
//
// openapi.json is the source of truth for the wire contract. It is loaded with
// kin-openapi for request validation and registered with swag so that
// echo-swagger can render it under /swagger/.
package openapi

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.json
var specJSON []byte

type document struct{}

func (document) ReadDoc() string {
	return string(specJSON)
}

func init() {
	swag.Register(swag.Name, document{})
}

// Spec returns the raw OpenAPI document.
func Spec() []byte {
	return append([]byte(nil), specJSON...)
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(specJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	return doc, nil
}
