package schema

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem resolves SourceKindFS locations against files.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(l *Loader) {
		l.fs = files
	}
}

// WithHTTPClient enables remote documents using client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) {
		l.http = client
	}
}

// WithHTTPFallback enables remote documents with a default client capped at
// timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(l *Loader) {
		if l.http == nil {
			l.http = &http.Client{Timeout: timeout}
		}
	}
}

// Loader reads OpenAPI documents from files, an fs.FS or HTTP. Remote
// documents are disabled unless an HTTP client is configured.
type Loader struct {
	fs   fs.FS
	http *http.Client
}

// NewLoader constructs a Loader.
func NewLoader(options ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load reads and parses the document at src.
func (l *Loader) Load(ctx context.Context, src Source) (*openapi3.T, error) {
	if src == nil {
		return nil, errors.New("schema: source is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if l.fs == nil {
			return nil, errors.New("schema: filesystem is not configured")
		}
		data, err = fs.ReadFile(l.fs, src.Location())
	case SourceKindURL:
		if l.http == nil {
			return nil, errors.New("schema: http support disabled")
		}
		data, err = l.fetch(ctx, src.Location())
	default:
		err = fmt.Errorf("unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", src.Location(), err)
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("schema: parse %s: %w", src.Location(), err)
	}
	return doc, nil
}

func (l *Loader) fetch(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// LoadOpenAPI loads the document at src and wraps the named component
// schema.
func LoadOpenAPI(ctx context.Context, src Source, component string, options ...LoaderOption) (*Schema, error) {
	doc, err := NewLoader(options...).Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return ComponentSchema(doc, component)
}

// ComponentSchema wraps components.schemas[name] of doc.
func ComponentSchema(doc *openapi3.T, name string) (*Schema, error) {
	if doc == nil || doc.Components == nil {
		return nil, fmt.Errorf("schema: component %q not found", name)
	}
	ref, ok := doc.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("schema: component %q not found (have %s)", name, strings.Join(componentNames(doc), ", "))
	}
	return FromOpenAPI(ref.Value)
}

// OperationRequestSchema wraps the request body schema of the operation
// with operationID. JSON bodies win over form encodings.
func OperationRequestSchema(doc *openapi3.T, operationID string) (*Schema, error) {
	if doc == nil || doc.Paths == nil {
		return nil, errors.New("schema: document has no paths")
	}
	for _, path := range doc.Paths.InMatchingOrder() {
		item := doc.Paths.Find(path)
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op == nil || op.OperationID != operationID {
				continue
			}
			if op.RequestBody == nil || op.RequestBody.Value == nil {
				return nil, fmt.Errorf("schema: operation %q has no request body", operationID)
			}
			content := op.RequestBody.Value.Content
			for _, mime := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
				if mt := content.Get(mime); mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
					return FromOpenAPI(mt.Schema.Value)
				}
			}
			return nil, fmt.Errorf("schema: operation %q has no supported request body", operationID)
		}
	}
	return nil, fmt.Errorf("schema: operation %q not found", operationID)
}

func componentNames(doc *openapi3.T) []string {
	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
