package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_LevelServiceAndRedaction(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Service: "ecommerce", Level: "warn", Writer: &buf})

	ctx := IntoContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))

	l.Info("dropped")
	l.Warn("kept", "password", "Secret#123", "email", "a@b.test")
	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `"msg":"kept"`)
	assert.Contains(t, out, `"service":"ecommerce"`)
	assert.Contains(t, out, `"password":"[redacted]"`)
	assert.NotContains(t, out, "Secret#123")
	assert.Contains(t, out, `"email":"a@b.test"`)
}

func TestWith_EnrichesContextLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := IntoContext(context.Background(), New(Options{Writer: &buf}))

	ctx = With(ctx, "user_id", "u-1")
	FromContext(ctx).Info("checkout")
	assert.Contains(t, buf.String(), `"user_id":"u-1"`)
}
