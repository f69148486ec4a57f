package telemetry

import (
	"fmt"
	"io"
	"sync"

	"github.com/vito/progrock"
)

type vertexPhase int

const (
	phaseStarted vertexPhase = iota
	phaseDone
)

// ConsoleWriter renders pipeline progress as plain lines, one per vertex
// transition. The recorder re-sends vertices on every status update, so the
// writer keeps per-vertex state and prints each transition once.
type ConsoleWriter struct {
	mu   sync.Mutex
	out  io.Writer
	seen map[string]vertexPhase
}

// NewConsoleWriter creates a ConsoleWriter printing to out.
func NewConsoleWriter(out io.Writer) *ConsoleWriter {
	return &ConsoleWriter{
		out:  out,
		seen: make(map[string]vertexPhase),
	}
}

// WriteStatus implements progrock.Writer.
func (w *ConsoleWriter) WriteStatus(update *progrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, v := range update.Vertexes {
		phase, known := w.seen[v.Id]
		if !known {
			fmt.Fprintf(w.out, "▸ %s\n", v.Name)
			w.seen[v.Id] = phaseStarted
			phase = phaseStarted
		}
		if v.Completed == nil || phase == phaseDone {
			continue
		}
		if v.Error != nil {
			fmt.Fprintf(w.out, "✗ %s: %s\n", v.Name, *v.Error)
		} else {
			fmt.Fprintf(w.out, "✓ %s\n", v.Name)
		}
		w.seen[v.Id] = phaseDone
	}
	return nil
}

// Close implements progrock.Writer.
func (w *ConsoleWriter) Close() error {
	return nil
}
