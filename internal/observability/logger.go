package observability

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide JSON logger. Records are routed through
// TraceHandler so anything logged inside a traced request carries
// trace_id/span_id.
func NewLogger(env string) *slog.Logger {
	level := slog.LevelInfo

	if env == "dev" {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(NewTraceHandler(handler))
}
