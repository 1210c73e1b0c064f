package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/angas/weatherbot-go/database"
)

type LogAttrFormat string

const (
	LogAttrFormatText LogAttrFormat = "TEXT"
	LogAttrFormatJSON LogAttrFormat = "JSON"
)

// SQLiteHandler persists log records in the bot's sqlite database so a
// cron-driven run leaves an inspectable trail behind.
type SQLiteHandler struct {
	db       *database.Database
	minLevel slog.Level
	format   LogAttrFormat
}

func NewSQLiteHandler(db *database.Database, minLevel slog.Level, format LogAttrFormat) *SQLiteHandler {
	return &SQLiteHandler{db: db, minLevel: minLevel, format: format}
}

func (h *SQLiteHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level < h.minLevel {
		return nil
	}

	return h.db.SaveLogEntry(ctx, database.LogEntryRow{
		Timestamp: time.Now(),
		Level:     int(r.Level),
		Message:   r.Message,
		Attrs:     formatAttrs(r, h.format),
	})
}

func formatAttrs(r slog.Record, format LogAttrFormat) string {
	if format == LogAttrFormatText {
		var b strings.Builder
		r.Attrs(func(a slog.Attr) bool {
			if b.Len() > 0 {
				b.WriteString("; ")
			}
			b.WriteString(a.Key)
			b.WriteString("=")
			b.WriteString(strings.ReplaceAll(strings.ReplaceAll(a.Value.String(), "=", "\\="), ";", "\\;"))
			return true
		})
		return b.String()
	}

	var attrs []map[string]string
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, map[string]string{a.Key: a.Value.String()})
		return true
	})
	if len(attrs) == 0 {
		return ""
	}
	jsonBytes, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Sprintf(`{"error": "%v"}`, err)
	}
	return string(jsonBytes)
}

func (h *SQLiteHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *SQLiteHandler) WithGroup(name string) slog.Handler {
	return h
}

func (h *SQLiteHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.minLevel
}
