package logx

import (
	"log/slog"
	"time"
)

// SlogAdapter backs Logger with a *slog.Logger (tint on a console, JSON in
// containers).
type SlogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter wraps l.
func NewSlogAdapter(l *slog.Logger) Logger {
	return &SlogAdapter{l: l}
}

// Nop returns a Logger that drops every entry.
func Nop() Logger {
	return &SlogAdapter{l: slog.New(slog.DiscardHandler)}
}

func (s *SlogAdapter) Debug(msg string, fields ...Field) { s.l.Debug(msg, attrs(fields)...) }
func (s *SlogAdapter) Info(msg string, fields ...Field)  { s.l.Info(msg, attrs(fields)...) }
func (s *SlogAdapter) Warn(msg string, fields ...Field)  { s.l.Warn(msg, attrs(fields)...) }
func (s *SlogAdapter) Error(msg string, fields ...Field) { s.l.Error(msg, attrs(fields)...) }

// With binds fields to every later entry, e.g. job_id for one round.
func (s *SlogAdapter) With(fields ...Field) Logger {
	return &SlogAdapter{l: s.l.With(attrs(fields)...)}
}

// Sync is a no-op: slog handlers write through.
func (s *SlogAdapter) Sync() error { return nil }

// attrs maps fields to typed slog attributes so JSON output keeps
// courier ids numeric and timeouts as durations. A nil Err field is dropped.
func attrs(fields []Field) []any {
	out := make([]any, 0, len(fields))
	for _, f := range fields {
		switch v := f.Value.(type) {
		case nil:
			if f.Key == errorKey {
				continue
			}
			out = append(out, slog.Any(f.Key, nil))
		case string:
			out = append(out, slog.String(f.Key, v))
		case int:
			out = append(out, slog.Int(f.Key, v))
		case int64:
			out = append(out, slog.Int64(f.Key, v))
		case bool:
			out = append(out, slog.Bool(f.Key, v))
		case time.Duration:
			out = append(out, slog.Duration(f.Key, v))
		case time.Time:
			out = append(out, slog.Time(f.Key, v))
		case error:
			out = append(out, slog.String(f.Key, v.Error()))
		default:
			out = append(out, slog.Any(f.Key, v))
		}
	}
	return out
}

var _ Logger = (*SlogAdapter)(nil)
