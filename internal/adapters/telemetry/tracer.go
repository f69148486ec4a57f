// Package telemetry provides the Progrock implementation of the pipeline
// tracer.
package telemetry

import (
	"context"
	"os"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/deb2nix/internal/core/ports"
)

// Recorder implements ports.Tracer on a progrock tape. Each pipeline stage
// becomes a vertex; subprocess output can be streamed into the span.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a Recorder that renders stage progress to stderr.
func New() *Recorder {
	return NewRecorder(NewConsoleWriter(os.Stderr))
}

// NewRecorder creates a Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Start begins a vertex for a pipeline stage.
func (r *Recorder) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	d := digest.FromString(name)
	v := r.rec.Vertex(d, name)
	return ctx, &vertexSpan{vertex: v}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// vertexSpan implements ports.Span wrapping *progrock.VertexRecorder.
type vertexSpan struct {
	vertex *progrock.VertexRecorder
}

func (s *vertexSpan) Write(p []byte) (int, error) {
	return s.vertex.Stdout().Write(p)
}

func (s *vertexSpan) End(err error) {
	s.vertex.Done(err)
}
