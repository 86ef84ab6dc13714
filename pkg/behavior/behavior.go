// Package behavior provides error behaviors for registry.SetupOptions.OnError.
package behavior

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-snowform/pkg/model"
	"github.com/goliatone/go-snowform/pkg/registry"
)

// FirstErrorAttr marks the wrapper of the first invalid field.
const FirstErrorAttr = "data-first-error"

// FocusFirstError focuses the first invalid field in render order and marks
// its wrapper with data-first-error.
func FocusFirstError() registry.ErrorBehavior {
	return func(_ context.Context, ref *model.FormRef, errs model.FieldErrors) {
		if ref == nil {
			return
		}
		name, _, ok := errs.First(ref.Fields)
		if !ok {
			return
		}
		ref.Focus(name)
		ref.SetFieldAttr(name, FirstErrorAttr, "true")
	}
}

// Summary adds a form-level notice with the number of invalid fields. The
// message is looked up through t under "errors.summary" with a {count}
// placeholder; an untranslated key falls back to an English sentence.
func Summary(t registry.TranslationFunc) registry.ErrorBehavior {
	return func(_ context.Context, ref *model.FormRef, errs model.FieldErrors) {
		count := len(errs)
		if count == 0 {
			return
		}
		ref.AddNotice(summaryMessage(t, count))
	}
}

func summaryMessage(t registry.TranslationFunc, count int) string {
	const key = "errors.summary"
	if t != nil {
		if message := t(key); message != "" && message != key {
			return strings.ReplaceAll(message, "{count}", strconv.Itoa(count))
		}
	}
	if count == 1 {
		return "1 field needs attention"
	}
	return fmt.Sprintf("%d fields need attention", count)
}

// Log writes one structured entry per failed submission.
func Log(logger *zap.Logger) registry.ErrorBehavior {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(_ context.Context, ref *model.FormRef, errs model.FieldErrors) {
		fields := make([]zap.Field, 0, 3)
		if ref != nil {
			fields = append(fields, zap.String("form", ref.ID))
		}
		fields = append(fields,
			zap.Strings("invalid", errs.Names()),
			zap.Int("count", len(errs)),
		)
		logger.Info("form validation failed", fields...)
	}
}

// Chain runs behaviors in order. Nil entries are skipped.
func Chain(behaviors ...registry.ErrorBehavior) registry.ErrorBehavior {
	return func(ctx context.Context, ref *model.FormRef, errs model.FieldErrors) {
		for _, behavior := range behaviors {
			if behavior != nil {
				behavior(ctx, ref, errs)
			}
		}
	}
}
