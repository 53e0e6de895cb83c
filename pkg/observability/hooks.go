// Package observability provides hooks for instrumenting the plot pipeline.
//
// The package uses a simple hooks pattern: a hook interface with a no-op
// default, replaceable at startup. This keeps the core library free of
// observability framework dependencies while allowing consumers to plug in
// their own backends.
//
// Register hooks at application startup:
//
//	observability.SetPipelineHooks(&myHooks{})
//
// The pipeline calls hooks around each stage:
//
//	observability.Pipeline().OnExtractComplete(ctx, nodes, edges, dur, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the plot pipeline stages.
type PipelineHooks interface {
	// OnExtractComplete fires after graph extraction.
	OnExtractComplete(ctx context.Context, nodeCount, edgeCount int, duration time.Duration, err error)

	// OnLayoutComplete fires after level assignment and position computation.
	OnLayoutComplete(ctx context.Context, levelCount, cyclicEdges int, duration time.Duration, err error)

	// OnRenderComplete fires after artifact generation, per format.
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// NoopPipelineHooks is a PipelineHooks implementation that does nothing.
type NoopPipelineHooks struct{}

// OnExtractComplete implements PipelineHooks.
func (NoopPipelineHooks) OnExtractComplete(context.Context, int, int, time.Duration, error) {}

// OnLayoutComplete implements PipelineHooks.
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, int, time.Duration, error) {}

// OnRenderComplete implements PipelineHooks.
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

var (
	pipelineMu    sync.RWMutex
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
)

// SetPipelineHooks replaces the global pipeline hooks.
// Call once at startup, before rendering begins.
func SetPipelineHooks(h PipelineHooks) {
	pipelineMu.Lock()
	defer pipelineMu.Unlock()
	if h == nil {
		h = NoopPipelineHooks{}
	}
	pipelineHooks = h
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	pipelineMu.RLock()
	defer pipelineMu.RUnlock()
	return pipelineHooks
}

// Reset restores the no-op hooks. Intended for tests.
func Reset() {
	SetPipelineHooks(NoopPipelineHooks{})
}
