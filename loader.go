package snowform

import (
	"context"

	"github.com/goliatone/go-snowform/pkg/schema"
)

// LoadSchema loads an OpenAPI document from location (a file path or an
// http(s) URL) and returns the named component schema.
func LoadSchema(ctx context.Context, location, component string, options ...schema.LoaderOption) (*schema.Schema, error) {
	src, err := schema.ParseSource(location)
	if err != nil {
		return nil, err
	}
	return schema.LoadOpenAPI(ctx, src, component, options...)
}

// LoadOperationSchema loads an OpenAPI document and returns the request body
// schema of operationID.
func LoadOperationSchema(ctx context.Context, location, operationID string, options ...schema.LoaderOption) (*schema.Schema, error) {
	src, err := schema.ParseSource(location)
	if err != nil {
		return nil, err
	}
	doc, err := schema.NewLoader(options...).Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return schema.OperationRequestSchema(doc, operationID)
}
