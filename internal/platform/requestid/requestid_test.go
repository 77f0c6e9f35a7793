package requestid

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Length(t *testing.T) {
	id := New()
	assert.Len(t, id, 8)
}

func TestNew_Unique(t *testing.T) {
	ids := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		ids[New()] = struct{}{}
	}
	assert.Len(t, ids, 100)
}

func TestWith_and_From_Roundtrip(t *testing.T) {
	ctx := With(context.Background(), "abc12345")
	id, ok := From(ctx)
	assert.True(t, ok)
	assert.Equal(t, "abc12345", id)
}

func TestFrom_Missing(t *testing.T) {
	id, ok := From(context.Background())
	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestFrom_EmptyString(t *testing.T) {
	ctx := With(context.Background(), "")
	id, ok := From(ctx)
	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestHandler_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewHandler(inner))

	ctx := With(context.Background(), "test1234")
	logger.InfoContext(ctx, "test message", "key", "value")

	output := buf.String()
	assert.Contains(t, output, "request_id=test1234")
	assert.Contains(t, output, "key=value")
	assert.Contains(t, output, "test message")
}

func TestHandler_NoRequestID_WhenMissing(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewHandler(inner))

	logger.InfoContext(context.Background(), "no request id")

	output := buf.String()
	assert.NotContains(t, output, "request_id")
}
