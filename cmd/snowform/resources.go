package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/goliatone/go-snowform"
	"github.com/goliatone/go-snowform/pkg/behavior"
	"github.com/goliatone/go-snowform/pkg/i18n"
	"github.com/goliatone/go-snowform/pkg/overrides"
	"github.com/goliatone/go-snowform/pkg/registry"
	"github.com/goliatone/go-snowform/pkg/schema"
)

// resources are loaded once per command and shared by every locale.
type resources struct {
	schema    *schema.Schema
	overrides overrides.Form
	catalog   *i18n.Catalog
}

func (c *cli) loadResources(ctx context.Context) (*resources, error) {
	if c.cfg.SchemaPath == "" {
		return nil, errors.New("a schema is required (--schema or SNOWFORM_SCHEMA)")
	}

	var (
		s   *schema.Schema
		err error
	)
	switch {
	case c.cfg.Operation != "":
		s, err = snowform.LoadOperationSchema(ctx, c.cfg.SchemaPath, c.cfg.Operation)
	case c.cfg.Component != "":
		s, err = snowform.LoadSchema(ctx, c.cfg.SchemaPath, c.cfg.Component)
	default:
		return nil, errors.New("a component (--component) or operation (--operation) is required")
	}
	if err != nil {
		return nil, err
	}
	res := &resources{schema: s}

	if c.cfg.OverridesDir != "" {
		store, err := overrides.LoadFS(os.DirFS(c.cfg.OverridesDir))
		if err != nil {
			return nil, err
		}
		if form, ok := store.Form(c.cfg.FormID); ok {
			res.overrides = form
		} else {
			c.logger.Debug("no overrides for form",
				zap.String("form", c.cfg.FormID),
				zap.Strings("declared", store.Forms()),
			)
		}
	}

	if c.cfg.LocalesDir != "" {
		catalog, err := i18n.LoadFS(os.DirFS(c.cfg.LocalesDir), i18n.WithFallback(c.cfg.DefaultLocale))
		if err != nil {
			return nil, err
		}
		res.catalog = catalog
	}

	c.logger.Debug("resources loaded",
		zap.String("schema", c.cfg.SchemaPath),
		zap.Strings("fields", s.Names()),
		zap.Int("overrides", len(res.overrides.Fields)),
	)
	return res, nil
}

// locales lists the locales a form is built for. Without a catalog only the
// default locale exists.
func (r *resources) locales(fallback string) []string {
	if r.catalog == nil {
		return []string{fallback}
	}
	return r.catalog.Locales()
}

// form builds a Form whose registries are scoped to locale.
func (c *cli) form(res *resources, locale string, opts ...snowform.Option) (*snowform.Form, error) {
	var translate registry.TranslationFunc
	if res.catalog != nil {
		translate = res.catalog.Func(locale)
	}

	set := registry.NewSet()
	err := set.Setup(registry.SetupOptions{
		Translate: translate,
		OnError: behavior.Chain(
			behavior.FocusFirstError(),
			behavior.Summary(translate),
			behavior.Log(c.logger.With(zap.String("locale", locale))),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("setup %s: %w", locale, err)
	}

	base := []snowform.Option{
		snowform.WithID(c.cfg.FormID),
		snowform.WithRegistry(set),
		snowform.WithOverrides(res.overrides.Fields),
		snowform.WithSubmitLabel(res.overrides.SubmitLabel),
		snowform.WithDebug(c.cfg.Debug),
	}
	return snowform.New(res.schema, append(base, opts...)...)
}
