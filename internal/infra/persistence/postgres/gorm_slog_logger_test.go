package postgres

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"muthurwa/config"
	deliverycontext "muthurwa/internal/delivery/context"
	"muthurwa/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func recordedLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var lines []map[string]any
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}

	return lines
}

func TestGormSlogLogger_Trace(t *testing.T) {
	sqlAndRows := func() (string, int64) { return `SELECT * FROM "buyers"`, 3 }
	threshold := 50 * time.Millisecond

	tests := []struct {
		name      string
		database  config.DatabaseConfig
		elapsed   time.Duration
		err       error
		wantMsg   string
		wantLevel string
	}{
		{name: "fast query is quiet", elapsed: time.Millisecond},
		{name: "missing record is quiet", elapsed: time.Millisecond, err: gorm.ErrRecordNotFound},
		{name: "failure", elapsed: time.Millisecond, err: errors.New("disk I/O error"), wantMsg: "Database query failed", wantLevel: "ERROR"},
		{
			name:      "slow query",
			database:  config.DatabaseConfig{SlowQueryThreshold: &threshold},
			elapsed:   time.Second,
			wantMsg:   "Slow database query",
			wantLevel: "WARN",
		},
		{name: "slow check disabled", database: config.DatabaseConfig{SlowQueryThreshold: new(time.Duration)}, elapsed: time.Hour},
		{name: "every query when enabled", database: config.DatabaseConfig{LogQueries: true}, elapsed: time.Millisecond, wantMsg: "Database query", wantLevel: "DEBUG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			l := newGormSlogLogger(base, &config.Config{Database: tt.database})

			ctx := deliverycontext.WithRequest(context.Background(), "req-9", base)
			l.Trace(ctx, time.Now().Add(-tt.elapsed), sqlAndRows, tt.err)

			lines := recordedLines(t, &buf)
			if tt.wantMsg == "" {
				assert.Empty(t, lines)

				return
			}
			require.Len(t, lines, 1)
			assert.Equal(t, tt.wantMsg, lines[0]["msg"])
			assert.Equal(t, tt.wantLevel, lines[0]["level"])
			assert.Equal(t, "req-9", lines[0]["request_id"])
			assert.EqualValues(t, 3, lines[0]["rows"])
		})
	}
}

func TestGormSlogLogger_DefaultsWithoutConfig(t *testing.T) {
	var buf bytes.Buffer
	l := newGormSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)), nil)

	l.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) { return "SELECT 1", 1 }, nil)

	lines := recordedLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "Slow database query", lines[0]["msg"])
	assert.Nil(t, lines[0]["request_id"])
}
