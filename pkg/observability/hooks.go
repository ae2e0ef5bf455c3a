// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation is optional: the tip pipeline calls the registered hooks,
// which default to no-ops, so the core packages stay free of any particular
// metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetTipHooks(&myTipHooks{})
//	    observability.SetSurfaceHooks(&mySurfaceHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Tip().OnRender(ctx, items)
//	// ... measure and finalize ...
//	observability.Tip().OnFinalize(ctx, items, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Tip Hooks
// =============================================================================

// TipHooks receives events from the two-phase tip render pipeline.
type TipHooks interface {
	// OnRender is called after placeholders for items have been emitted.
	OnRender(ctx context.Context, items int)
	// OnFinalize is called once a deferred measurement pass has positioned
	// every item.
	OnFinalize(ctx context.Context, items int, elapsed time.Duration)
	// OnOrientation is called when auto-resolution picks a different
	// orientation than the one remembered.
	OnOrientation(ctx context.Context, previous, resolved string)
}

// =============================================================================
// Surface Hooks
// =============================================================================

// SurfaceHooks receives events from live measurement surfaces.
type SurfaceHooks interface {
	// OnAttach records a document being attached to a surface.
	OnAttach(ctx context.Context, surface string, items int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopTipHooks is a no-op implementation of TipHooks.
type NoopTipHooks struct{}

func (NoopTipHooks) OnRender(context.Context, int)                  {}
func (NoopTipHooks) OnFinalize(context.Context, int, time.Duration) {}
func (NoopTipHooks) OnOrientation(context.Context, string, string)  {}

// NoopSurfaceHooks is a no-op implementation of SurfaceHooks.
type NoopSurfaceHooks struct{}

func (NoopSurfaceHooks) OnAttach(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	tipHooks     TipHooks     = NoopTipHooks{}
	surfaceHooks SurfaceHooks = NoopSurfaceHooks{}
	hooksMu      sync.RWMutex
)

// SetTipHooks registers custom tip hooks.
// This should be called once at application startup before any rendering.
func SetTipHooks(h TipHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		tipHooks = h
	}
}

// SetSurfaceHooks registers custom surface hooks.
func SetSurfaceHooks(h SurfaceHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		surfaceHooks = h
	}
}

// Tip returns the registered tip hooks.
func Tip() TipHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return tipHooks
}

// Surface returns the registered surface hooks.
func Surface() SurfaceHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return surfaceHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	tipHooks = NoopTipHooks{}
	surfaceHooks = NoopSurfaceHooks{}
}
