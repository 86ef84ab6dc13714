package main

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-snowform"
	"github.com/goliatone/go-snowform/pkg/i18n"
)

var pageTemplate = pongo2.Must(pongo2.FromString(`<!doctype html>
<html lang="{{ lang }}">
<head>
<meta charset="utf-8">
<title>{{ title }}</title>
<link rel="stylesheet" href="/assets/snowform.css">
</head>
<body>
{% if submitted %}<p class="snowform-success" role="status">{{ submitted }}</p>{% endif %}
{{ form|safe }}
</body>
</html>
`))

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the form over HTTP",
		Long: `Serve renders the form at / and handles its submissions. Invalid
submissions are re-rendered with status 422. The locale is negotiated from
the lang query parameter, the snowform_lang cookie or Accept-Language.

The bare form is also mounted at /form for clients that embed it or post
JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, err := c.loadResources(ctx)
			if err != nil {
				return err
			}
			srv, err := c.newServer(res)
			if err != nil {
				return err
			}
			return c.listen(ctx, srv.routes())
		},
	}
}

type server struct {
	logger   *zap.Logger
	catalog  *i18n.Catalog
	fallback string
	forms    map[string]*snowform.Form
}

func (c *cli) newServer(res *resources) (*server, error) {
	srv := &server{
		logger:   c.logger,
		catalog:  res.catalog,
		fallback: c.cfg.DefaultLocale,
		forms:    make(map[string]*snowform.Form),
	}
	locales := append(res.locales(c.cfg.DefaultLocale), c.cfg.DefaultLocale)
	for _, locale := range locales {
		if _, ok := srv.forms[locale]; ok {
			continue
		}
		form, err := c.form(res, locale)
		if err != nil {
			return nil, err
		}
		srv.forms[locale] = form
	}
	return srv, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	if s.catalog != nil {
		r.Use(i18n.Middleware(s.catalog, i18n.WithCookie("snowform_lang")))
	}

	r.Get("/", s.page)
	r.Post("/", s.page)
	r.Handle("/form", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.form(r).ServeHTTP(w, r)
	}))
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServerFS(snowform.StylesheetFS())))
	return r
}

func (s *server) form(r *http.Request) *snowform.Form {
	if form, ok := s.forms[i18n.LocaleFromContext(r.Context())]; ok {
		return form
	}
	return s.forms[s.fallback]
}

func (s *server) page(w http.ResponseWriter, r *http.Request) {
	form := s.form(r)
	if r.Method == http.MethodGet {
		s.writePage(w, r, form, http.StatusOK, snowform.RenderOptions{}, r.URL.Query().Has("submitted"))
		return
	}

	result, err := form.Handle(r)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, snowform.ErrBadRequest) {
			status = http.StatusBadRequest
		}
		s.logger.Warn("submission failed", zap.Error(err))
		http.Error(w, http.StatusText(status), status)
		return
	}
	if !result.Valid() {
		s.writePage(w, r, form, http.StatusUnprocessableEntity, result.RenderOptions(), false)
		return
	}
	fields := make([]string, 0, len(result.Values))
	for name := range result.Values {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	s.logger.Info("form submitted", zap.Strings("fields", fields))
	http.Redirect(w, r, "/?submitted=1", http.StatusSeeOther)
}

func (s *server) writePage(w http.ResponseWriter, r *http.Request, form *snowform.Form, status int, opts snowform.RenderOptions, submitted bool) {
	body, err := form.Render(r.Context(), opts)
	if err != nil {
		s.logger.Error("render failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	locale := i18n.LocaleFromContext(r.Context())
	if locale == "" {
		locale = s.fallback
	}
	t := func(key string) string { return key }
	if s.catalog != nil {
		t = s.catalog.Func(locale)
	}
	message := ""
	if submitted {
		message = translateOr(t, "form.submitted", "Thanks, your submission was received.")
	}

	page, err := pageTemplate.Execute(pongo2.Context{
		"lang":      locale,
		"title":     translateOr(t, "form.title", "Form"),
		"submitted": message,
		"form":      string(body),
	})
	if err != nil {
		s.logger.Error("page render failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(page))
}

func translateOr(t func(string) string, key, fallback string) string {
	if message := t(key); message != "" && message != key {
		return message
	}
	return fallback
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (c *cli) listen(ctx context.Context, handler http.Handler) error {
	httpServer := &http.Server{
		Addr:              c.cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.logger.Info("listening", zap.String("addr", c.cfg.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.logger.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	}
}
