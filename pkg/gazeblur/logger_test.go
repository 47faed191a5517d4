package gazeblur

import(
	"bytes"
	"context"
	"image"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerDefaultsToNop(t *testing.T) {
	require.NotNil(t, Logger())
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	f := NewSyntheticFrame(8, 8, 2, 150, 2000)
	f.DebugPixels = []image.Point{{1, 1}, {500, 500}}
	require.NoError(t, f.Filter(context.Background()))

	assert.Contains(t, buf.String(), "depth of field prepared")
	assert.Contains(t, buf.String(), "frame filtered")
	assert.Contains(t, buf.String(), "Pixel @(1,1)")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
