package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newPlainHandler(buf *bytes.Buffer, level slog.Level) *PrettyHandler {
	return NewPrettyHandler(buf, &slog.HandlerOptions{Level: level}, false)
}

func TestNew_FormatAutoDetection(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		wantJSON    bool
	}{
		{name: "production uses json", environment: "production", wantJSON: true},
		{name: "development uses pretty", environment: "development"},
		{name: "staging uses pretty", environment: "staging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{
				Level:       slog.LevelInfo,
				Environment: tt.environment,
				Writer:      &buf,
				NoColor:     true,
			})
			log.Info("catalog ready")

			if tt.wantJSON {
				assert.Contains(t, buf.String(), `"msg":"catalog ready"`)
			} else {
				assert.Contains(t, buf.String(), "INF catalog ready")
			}
		})
	}
}

func TestNew_ExplicitFormatWins(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Level:       slog.LevelInfo,
		Format:      "json",
		Environment: "development",
		Writer:      &buf,
	})
	log.Info("test")

	assert.Contains(t, buf.String(), `"msg":"test"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer
	h := newPlainHandler(&buf, slog.LevelInfo)

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newPlainHandler(&buf, slog.LevelInfo))

	log.Info("person fetched", "person_id", 287, "known_for", 12)

	out := buf.String()
	assert.Contains(t, out, "INF person fetched")
	assert.Contains(t, out, "person_id=287")
	assert.Contains(t, out, "known_for=12")
}

func TestPrettyHandler_LevelLabels(t *testing.T) {
	for level, want := range map[slog.Level]string{
		slog.LevelDebug: "DBG",
		slog.LevelInfo:  "INF",
		slog.LevelWarn:  "WRN",
		slog.LevelError: "ERR",
	} {
		t.Run(want, func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(newPlainHandler(&buf, slog.LevelDebug))
			log.Log(context.Background(), level, "x")
			assert.Contains(t, buf.String(), want)
		})
	}
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	h := newPlainHandler(&buf, slog.LevelInfo)

	assert.Same(t, h, h.WithGroup(""))

	log := slog.New(h.WithAttrs([]slog.Attr{slog.String("component", "tmdb")}).WithGroup("req"))
	log.Info("done", "status", 200)

	out := buf.String()
	assert.Contains(t, out, "req.component=tmdb")
	assert.Contains(t, out, "req.status=200")
}

func TestPrettyHandler_WithSource(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo, AddSource: true}, false)

	slog.New(h).Info("test message")

	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestFormatValue(t *testing.T) {
	now := time.Now()

	assert.Equal(t, "test", formatValue(slog.StringValue("test")))
	assert.Equal(t, now.Format(time.RFC3339), formatValue(slog.TimeValue(now)))
	assert.Equal(t, "5s", formatValue(slog.DurationValue(5*time.Second)))
	assert.Equal(t, "42", formatValue(slog.IntValue(42)))
}

func TestLogger_Helpers(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})

	log.WithError(errors.New("catalog down")).
		WithField("person_id", 42).
		WithFields(map[string]any{"modal": true}).
		Info("page rendered with placeholder")

	out := buf.String()
	assert.Contains(t, out, `"error":"catalog down"`)
	assert.Contains(t, out, `"person_id":42`)
	assert.Contains(t, out, `"modal":true`)
}
