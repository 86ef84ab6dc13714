package registry

import (
	"context"
	"sync"

	"github.com/goliatone/go-snowform/pkg/model"
)

// ErrorBehavior runs when a submission fails validation. ref may be nil.
type ErrorBehavior func(ctx context.Context, ref *model.FormRef, errs model.FieldErrors)

// BehaviorRegistry holds the global validation failure behavior.
type BehaviorRegistry struct {
	mu      sync.RWMutex
	onError ErrorBehavior
}

// NewBehaviorRegistry creates an empty registry.
func NewBehaviorRegistry() *BehaviorRegistry {
	return &BehaviorRegistry{}
}

// SetOnError registers the validation failure behavior.
func (r *BehaviorRegistry) SetOnError(fn ErrorBehavior) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onError = fn
}

// Execute runs the registered behavior. It is a no-op when nothing is
// registered.
func (r *BehaviorRegistry) Execute(ctx context.Context, ref *model.FormRef, errs model.FieldErrors) {
	r.mu.RLock()
	fn := r.onError
	r.mu.RUnlock()
	if fn == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	fn(ctx, ref, errs)
}

// Reset removes the registered behavior.
func (r *BehaviorRegistry) Reset() {
	r.SetOnError(nil)
}
