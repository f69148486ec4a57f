package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestConsoleWriterRendersTransitions(t *testing.T) {
	var buf bytes.Buffer
	w := NewConsoleWriter(&buf)

	started := &progrock.Vertex{Id: "v1", Name: "scan binaries"}
	require.NoError(t, w.WriteStatus(&progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{started},
	}))
	assert.Equal(t, "▸ scan binaries\n", buf.String())

	// Heartbeats re-send running vertices; nothing new to print.
	require.NoError(t, w.WriteStatus(&progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{started},
	}))
	assert.Equal(t, "▸ scan binaries\n", buf.String())

	done := &progrock.Vertex{Id: "v1", Name: "scan binaries", Completed: timestamppb.Now()}
	require.NoError(t, w.WriteStatus(&progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{done},
	}))
	assert.Equal(t, "▸ scan binaries\n✓ scan binaries\n", buf.String())

	// Completion is printed once even if the final state is re-sent.
	require.NoError(t, w.WriteStatus(&progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{done},
	}))
	assert.Equal(t, "▸ scan binaries\n✓ scan binaries\n", buf.String())
}

func TestConsoleWriterRendersFailure(t *testing.T) {
	var buf bytes.Buffer
	w := NewConsoleWriter(&buf)

	msg := "dpkg-deb exited with status 2"
	failed := &progrock.Vertex{
		Id:        "v2",
		Name:      "unpack package",
		Completed: timestamppb.Now(),
		Error:     &msg,
	}
	require.NoError(t, w.WriteStatus(&progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{failed},
	}))

	assert.Contains(t, buf.String(), "▸ unpack package\n")
	assert.Contains(t, buf.String(), "✗ unpack package: dpkg-deb exited with status 2\n")
	require.NoError(t, w.Close())
}

func TestRecorderOnConsoleWriter(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(NewConsoleWriter(&buf))

	_, span := rec.Start(context.Background(), "resolve dependencies")
	span.End(nil)
	require.NoError(t, rec.Close())

	assert.Contains(t, buf.String(), "▸ resolve dependencies")
	assert.Contains(t, buf.String(), "✓ resolve dependencies")
}
