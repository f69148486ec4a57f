package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
)

func TestRecorderLifecycle(t *testing.T) {
	tape := progrock.NewTape()
	rec := NewRecorder(tape)

	_, span := rec.Start(context.Background(), "scan binaries")
	n, err := span.Write([]byte("inspected 12 files\n"))
	require.NoError(t, err)
	assert.Equal(t, 19, n)
	span.End(nil)

	require.NoError(t, rec.Close())
}

func TestNoOpTracer(t *testing.T) {
	tr := NewNoOpTracer()
	ctx, span := tr.Start(context.Background(), "anything")
	assert.NotNil(t, ctx)

	n, err := span.Write([]byte("dropped"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	span.End(nil)
	assert.NoError(t, tr.Close())
}
