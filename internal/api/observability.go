package api

import (
	"io"
	"log/slog"
	"time"
)

// CallEvent records metadata about a single API request.
type CallEvent struct {
	Method    string
	Path      string
	RequestID string
	Status    int
	Latency   time.Duration
	Err       error
}

// Observer receives events about API calls for logging.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events through a slog logger.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	attrs := []any{
		"method", event.Method,
		"path", event.Path,
		"request_id", event.RequestID,
		"status", event.Status,
		"latency_ms", event.Latency.Milliseconds(),
	}
	if event.Err != nil {
		o.logger.Error("api_call", append(attrs, "error", event.Err.Error())...)
		return
	}
	o.logger.Info("api_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
