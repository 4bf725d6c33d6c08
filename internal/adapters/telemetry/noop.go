// Package telemetry provides progress recording adapters.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/relay/internal/core/ports"
)

// Noop is a Telemetry implementation that records nothing.
type Noop struct{}

// NewNoop creates a no-op telemetry provider.
func NewNoop() ports.Telemetry {
	return Noop{}
}

// Record returns an inert vertex.
func (Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noopVertex{}
}

// Close is a no-op.
func (Noop) Close() error { return nil }

type noopVertex struct{}

func (noopVertex) Stdout() io.Writer { return io.Discard }
func (noopVertex) Stderr() io.Writer { return io.Discard }
func (noopVertex) Complete(error)    {}
func (noopVertex) Skipped()          {}
