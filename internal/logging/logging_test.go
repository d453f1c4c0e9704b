package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBufferedPGHandler returns a handler without the flush loop or a database.
func newBufferedPGHandler() *PGHandler {
	return &PGHandler{}
}

func TestPGHandlerCapturesErrorFields(t *testing.T) {
	pg := newBufferedPGHandler()
	logger := slog.New(pg).With("action", "candidate.register")

	ctx := WithTraceID(context.Background(), "req-123")
	logger.InfoContext(ctx, "ignored below error level")
	logger.ErrorContext(ctx, "candidate store failure",
		"kind", "permission",
		"code", "42501",
		"error", "permission denied for table candidates",
		"op", "insert",
	)

	logs := pg.snapshot()
	require.Len(t, logs, 1)
	entry := logs[0]
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "req-123", entry.TraceID)
	assert.Equal(t, "candidate.register", entry.Action)
	assert.Equal(t, "permission", entry.Kind)
	assert.Equal(t, "42501", entry.Code)
	assert.Equal(t, "permission denied for table candidates", entry.Error)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(entry.Extra, &extra))
	assert.Equal(t, "insert", extra["op"])
}

func TestMultiHandlerFansOut(t *testing.T) {
	var buf bytes.Buffer
	pg := newBufferedPGHandler()
	logger := slog.New(NewTraceHandler(NewMultiHandler(
		slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pg,
	)))

	ctx := WithTraceID(context.Background(), "trace-9")
	logger.InfoContext(ctx, "candidate registered")
	logger.ErrorContext(ctx, "boom", "error", "x")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	assert.Equal(t, "trace-9", first["trace_id"])

	logs := pg.snapshot()
	require.Len(t, logs, 1)
	assert.Equal(t, "trace-9", logs[0].TraceID)
}

func TestTraceID(t *testing.T) {
	assert.Empty(t, TraceID(context.Background()))
	assert.Equal(t, "abc", TraceID(WithTraceID(context.Background(), "abc")))
}
