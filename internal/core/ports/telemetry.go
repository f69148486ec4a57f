package ports

import (
	"context"
	"io"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer records pipeline stages as vertices on a progress tape.
type Tracer interface {
	// Start begins a new span for a pipeline stage.
	Start(ctx context.Context, name string) (context.Context, Span)
	// Close flushes the recording session.
	Close() error
}

// Span represents one pipeline stage in flight.
type Span interface {
	io.Writer
	// End completes the span; a non-nil err marks it failed.
	End(err error)
}
