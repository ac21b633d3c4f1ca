// internal/observability/logger_test.go
package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONCarriesServiceAndContextIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{
		Level:          LogLevelInfo,
		Format:         LogFormatJSON,
		Output:         &buf,
		ServiceName:    "basket",
		ServiceVersion: "1.2.3",
	})

	ctx := WithCorrelationID(context.Background(), "corr-42")
	ctx = WithRequestID(ctx, "req-7")
	logger.InfoContext(ctx, "added item", "basket_id", "b-1")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "added item", record["msg"])
	assert.Equal(t, "basket", record["service"])
	assert.Equal(t, "1.2.3", record["version"])
	assert.Equal(t, "corr-42", record[CorrelationIDKey])
	assert.Equal(t, "req-7", record[RequestIDKey])
	assert.Equal(t, "b-1", record["basket_id"])
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: LogLevelWarn, Format: LogFormatText, Output: &buf})

	logger.Info("dropped")
	logger.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewLogger_WithAttrsKeepsContextIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Format: LogFormatJSON, Output: &buf}).With("component", "store")

	logger.InfoContext(WithCorrelationID(context.Background(), "corr-1"), "saved")

	assert.Contains(t, buf.String(), `"component":"store"`)
	assert.Contains(t, buf.String(), `"correlation_id":"corr-1"`)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		in   LogLevel
		want slog.Level
	}{
		{LogLevelDebug, slog.LevelDebug},
		{LogLevelInfo, slog.LevelInfo},
		{LogLevelWarn, slog.LevelWarn},
		{LogLevelError, slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseSlogLevel(tt.in), string(tt.in))
	}
}

func TestContextIDs(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, CorrelationIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(ctx))

	generated := WithCorrelationID(ctx, "")
	assert.NotEmpty(t, CorrelationIDFromContext(generated))

	generated = WithRequestID(ctx, "")
	assert.NotEmpty(t, RequestIDFromContext(generated))
}
