// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about fragment insertion, snapshot storage, rendering and
// HTTP requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the layout core never
// imports a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCanvasHooks(&myCanvasHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Canvas().OnInsertStart(ctx, canvasID, prefix, len(frag.Nodes))
//	// ... merge and place ...
//	observability.Canvas().OnInsertComplete(ctx, canvasID, prefix, added, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Canvas Hooks
// =============================================================================

// CanvasHooks receives events from fragment insertion.
type CanvasHooks interface {
	// OnInsertStart records the start of an insertion.
	OnInsertStart(ctx context.Context, canvasID, prefix string, nodeCount int)

	// OnInsertComplete records the end of an insertion. added counts new
	// nodes, containers and edges; it is zero for aborted insertions.
	OnInsertComplete(ctx context.Context, canvasID, prefix string, added int, duration time.Duration, err error)

	// OnWarning records a recovered problem such as a dropped edge.
	OnWarning(ctx context.Context, canvasID, code, subject string)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from snapshot store operations.
type StoreHooks interface {
	// OnStoreHit records a successful snapshot load.
	OnStoreHit(ctx context.Context, backend string)

	// OnStoreMiss records a load of an unknown canvas.
	OnStoreMiss(ctx context.Context, backend string)

	// OnStoreSave records a snapshot write.
	OnStoreSave(ctx context.Context, backend string, size int)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from preview rendering.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, format string, nodeCount int)
	OnRenderComplete(ctx context.Context, format string, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCanvasHooks is a no-op implementation of CanvasHooks.
type NoopCanvasHooks struct{}

func (NoopCanvasHooks) OnInsertStart(context.Context, string, string, int) {}
func (NoopCanvasHooks) OnInsertComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopCanvasHooks) OnWarning(context.Context, string, string, string) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnStoreHit(context.Context, string)       {}
func (NoopStoreHooks) OnStoreMiss(context.Context, string)      {}
func (NoopStoreHooks) OnStoreSave(context.Context, string, int) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string, int)                     {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, time.Duration, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	canvasHooks CanvasHooks = NoopCanvasHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetCanvasHooks registers custom canvas hooks.
// This should be called once at application startup before any insertions.
func SetCanvasHooks(h CanvasHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		canvasHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before serving.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Canvas returns the registered canvas hooks.
func Canvas() CanvasHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return canvasHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	canvasHooks = NoopCanvasHooks{}
	storeHooks = NoopStoreHooks{}
	renderHooks = NoopRenderHooks{}
	httpHooks = NoopHTTPHooks{}
}
