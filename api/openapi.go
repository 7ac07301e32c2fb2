// Package api carries the OpenAPI description of the tour desk HTTP API.
package api

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var document []byte

// Raw returns the embedded YAML document
func Raw() []byte {
	return document
}

// Load parses and validates the embedded document
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("parse openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
}

// Operation identifies one documented method and path in gin syntax
type Operation struct {
	Method string
	Path   string
}

// Operations lists every documented operation, paths rewritten from
// "/tours/{id}" to "/tours/:id"
func Operations(doc *openapi3.T) []Operation {
	var ops []Operation
	for path, item := range doc.Paths.Map() {
		for method := range item.Operations() {
			ops = append(ops, Operation{Method: strings.ToUpper(method), Path: ginPath(path)})
		}
	}
	return ops
}

func ginPath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
			segments[i] = ":" + strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")
		}
	}
	return strings.Join(segments, "/")
}

// BasePath returns the path of the first server URL, or "" when none is set
func BasePath(doc *openapi3.T) string {
	if len(doc.Servers) == 0 {
		return ""
	}
	return strings.TrimSuffix(doc.Servers[0].URL, "/")
}
