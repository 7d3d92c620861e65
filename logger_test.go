package geovec

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoggerDispatchRecords(t *testing.T) {
	tests := []struct {
		name    string
		build   func(*bytes.Buffer) *Logger
		err     error
		want    []string
		notWant []string
	}{
		{
			name:  "json debug",
			build: func(b *bytes.Buffer) *Logger { return NewJSONLogger(b, slog.LevelDebug) },
			want:  []string{`"msg":"dispatch completed"`, `"op":"area"`, `"elements":3`},
		},
		{
			name:    "text info hides completed calls",
			build:   func(b *bytes.Buffer) *Logger { return NewTextLogger(b, slog.LevelInfo) },
			notWant: []string{"dispatch completed"},
		},
		{
			name:  "text info shows failures",
			build: func(b *bytes.Buffer) *Logger { return NewTextLogger(b, slog.LevelInfo) },
			err:   errors.New("boom"),
			want:  []string{`msg="dispatch failed"`, "op=area", "error=boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.build(&buf).WithContextID("ctx-1").LogDispatch("area", 3, time.Millisecond, tt.err)

			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, buf.String(), w)
			}
		})
	}
}

func TestLoggerNoticeCarriesOp(t *testing.T) {
	var buf bytes.Buffer
	NewJSONLogger(&buf, slog.LevelWarn).LogNotice(Notice{Op: "is_valid", Message: "Self-intersection"})

	assert.Contains(t, buf.String(), `"op":"is_valid"`)
	assert.Contains(t, buf.String(), `"message":"Self-intersection"`)
}
