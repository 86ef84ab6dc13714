package snowform

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"sort"
	"strings"

	"github.com/goliatone/go-snowform/pkg/render"
)

// ErrBadRequest is returned by Handle when the request body cannot be
// parsed.
var ErrBadRequest = errors.New("snowform: malformed request")

const (
	maxMultipartMemory = 32 << 20
	maxJSONBody        = 1 << 20
)

type httpOptions struct {
	hidden          func(*http.Request) []render.HiddenField
	successRedirect string
	onSuccess       func(http.ResponseWriter, *http.Request, Result)
}

// WithHiddenFields adds request-scoped hidden inputs, such as a CSRF token,
// to every render served over HTTP.
func WithHiddenFields(fn func(*http.Request) []render.HiddenField) Option {
	return func(f *Form) {
		f.httpOpts.hidden = fn
	}
}

// WithSuccessRedirect redirects valid submissions to url.
func WithSuccessRedirect(url string) Option {
	return func(f *Form) {
		f.httpOpts.successRedirect = url
	}
}

// WithSuccessHandler takes over the response for valid submissions.
func WithSuccessHandler(fn func(http.ResponseWriter, *http.Request, Result)) Option {
	return func(f *Form) {
		f.httpOpts.onSuccess = fn
	}
}

// Handle parses the request body (url-encoded, multipart or JSON), coerces
// it to the schema types and submits it. Default values only fill fields the
// request did not carry, so a field the user cleared stays empty.
func (f *Form) Handle(r *http.Request) (Result, error) {
	values, posted, err := f.requestValues(r)
	if err != nil {
		return Result{}, err
	}
	return f.submit(r.Context(), values, posted)
}

func (f *Form) requestValues(r *http.Request) (map[string]any, []string, error) {
	mediaType := ""
	if contentType := r.Header.Get("Content-Type"); contentType != "" {
		parsed, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
		mediaType = parsed
	}

	switch mediaType {
	case "application/json":
		var values map[string]any
		decoder := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
		if err := decoder.Decode(&values); err != nil && !errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
		return values, sortedKeys(values), nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
	default:
		if err := r.ParseForm(); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
	}
	form := r.PostForm
	if r.Method == http.MethodGet {
		form = r.Form
	}
	return f.Schema.Coerce(form), sortedKeys(form), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ServeHTTP renders the form on GET and handles submissions on POST, PUT,
// PATCH and DELETE. Invalid submissions are re-rendered with status 422.
// Clients that accept JSON get the errors as JSON instead.
func (f *Form) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		f.respondHTML(w, r, http.StatusOK, RenderOptions{})
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		result, err := f.Handle(r)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, ErrBadRequest) {
				status = http.StatusBadRequest
			}
			http.Error(w, http.StatusText(status), status)
			return
		}
		if !result.Valid() {
			if wantsJSON(r) {
				f.respondJSON(w, http.StatusUnprocessableEntity, f.ErrorMessages(result))
				return
			}
			f.respondHTML(w, r, http.StatusUnprocessableEntity, result.RenderOptions())
			return
		}
		f.succeed(w, r, result)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST, PUT, PATCH, DELETE")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (f *Form) succeed(w http.ResponseWriter, r *http.Request, result Result) {
	switch {
	case f.httpOpts.onSuccess != nil:
		f.httpOpts.onSuccess(w, r, result)
	case wantsJSON(r):
		f.respondJSON(w, http.StatusOK, map[string]any{"values": result.Values})
	case f.httpOpts.successRedirect != "":
		http.Redirect(w, r, f.httpOpts.successRedirect, http.StatusSeeOther)
	default:
		http.Redirect(w, r, r.URL.RequestURI(), http.StatusSeeOther)
	}
}

func (f *Form) respondHTML(w http.ResponseWriter, r *http.Request, status int, opts RenderOptions) {
	if f.httpOpts.hidden != nil {
		opts.Hidden = render.MergeHiddenFields(opts.Hidden, f.httpOpts.hidden(r)...)
	}
	body, err := f.Render(r.Context(), opts)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = w.Write(body)
	}
}

func (f *Form) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// ErrorPayload is the JSON body of a rejected submission.
type ErrorPayload struct {
	Errors     map[string]string `json:"errors,omitempty"`
	FormErrors []string          `json:"formErrors,omitempty"`
}

// ErrorMessages resolves the display message of every field error in
// result, the same text Render shows.
func (f *Form) ErrorMessages(result Result) ErrorPayload {
	payload := ErrorPayload{FormErrors: result.FormErrors}
	if len(result.Errors) > 0 {
		payload.Errors = make(map[string]string, len(result.Errors))
	}
	for name, fieldErr := range result.Errors {
		field, ok := f.Schema.Field(name)
		if !ok {
			payload.FormErrors = render.MergeFormErrors(payload.FormErrors, fieldErr.Message)
			continue
		}
		override, _ := f.Overrides.Lookup(name)
		payload.Errors[name] = f.resolver.ErrorMessage(field, override, fieldErr)
	}
	return payload
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}
