package session

import (
	"context"
	"log/slog"
	"time"
)

// Event captures one engine transition for telemetry.
type Event struct {
	Name      string
	SessionID string
	Duration  time.Duration
	Fields    map[string]any
}

// Observer receives engine events.
type Observer interface {
	ObserveSession(ctx context.Context, event Event)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveSession(context.Context, Event) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes engine events to logger at info level.
func NewLogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		return NoopObserver{}
	}
	return &logObserver{logger: logger}
}

func (o *logObserver) ObserveSession(ctx context.Context, event Event) {
	attrs := make([]any, 0, 6+len(event.Fields)*2)
	attrs = append(attrs,
		"event", event.Name,
		"session_id", event.SessionID,
		"duration_ms", event.Duration.Milliseconds(),
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	o.logger.InfoContext(ctx, "study_session", attrs...)
}
