package app

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"dispatch-go-Orurh/internal/config"
	"dispatch-go-Orurh/internal/logx"
)

// NewLogger builds the service logger: JSON to stdout, or colored console
// output when LOG_FORMAT=console.
func NewLogger(cfg *config.Config) logx.Logger {
	return newLogger(os.Stdout, cfg.Log)
}

func newLogger(w io.Writer, cfg config.Log) logx.Logger {
	level := parseLevel(cfg.Level)

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "console") {
		h = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		})
	} else {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return logx.NewSlogAdapter(slog.New(h).With(slog.String("service", "service-dispatch")))
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}
