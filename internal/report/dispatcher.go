package report

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/flashbox/internal/domain"
)

// Result is the outcome of sending one payload.
type Result struct {
	Action  string
	Skipped bool
	Err     error
}

// Dispatcher sends finished sessions to a sink without blocking the caller.
// Each payload goes out on its own goroutine.
type Dispatcher struct {
	sink   Sink
	email  func() string
	course string
	logger *slog.Logger

	wg sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. A nil sink makes every dispatch a skip.
// email is read at dispatch time so a late identity change is picked up.
func NewDispatcher(sink Sink, email func() string, course string, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if email == nil {
		email = func() string { return "" }
	}
	return &Dispatcher{sink: sink, email: email, course: course, logger: logger}
}

// Report dispatches outcome and discards the results.
func (d *Dispatcher) Report(ctx context.Context, outcome domain.SessionOutcome) {
	d.Dispatch(ctx, outcome)
}

// Dispatch sends the session summary and, when any card was rated, the card
// detail. The returned channel receives one Result per payload and is closed
// once all have been delivered; callers may ignore it.
func (d *Dispatcher) Dispatch(ctx context.Context, outcome domain.SessionOutcome) <-chan Result {
	results := make(chan Result, 2)
	email := d.email()

	if d.sink == nil {
		results <- Result{Action: ActionSession, Skipped: true}
		if len(outcome.Records) > 0 {
			results <- Result{Action: ActionCardDetail, Skipped: true}
		}
		close(results)
		d.logger.DebugContext(ctx, "report_skipped", "session_id", outcome.SessionID)
		return results
	}

	// Sends outlive the interaction that finished the session.
	ctx = context.WithoutCancel(ctx)

	var sends sync.WaitGroup
	d.send(ctx, &sends, results, ActionSession, outcome.SessionID, func(ctx context.Context) error {
		return d.sink.WriteSession(ctx, NewSessionPayload(outcome, email, d.course))
	})
	if len(outcome.Records) > 0 {
		d.send(ctx, &sends, results, ActionCardDetail, outcome.SessionID, func(ctx context.Context) error {
			return d.sink.WriteCardDetail(ctx, NewCardDetailPayload(outcome, email, d.course))
		})
	}

	go func() {
		sends.Wait()
		close(results)
	}()
	return results
}

func (d *Dispatcher) send(ctx context.Context, sends *sync.WaitGroup, results chan<- Result, action, sessionID string, write func(context.Context) error) {
	sends.Add(1)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer sends.Done()

		start := time.Now()
		err := write(ctx)
		attrs := []any{
			"action", action,
			"session_id", sessionID,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if err != nil {
			d.logger.WarnContext(ctx, "report_failed", append(attrs, "error", err.Error())...)
		} else {
			d.logger.InfoContext(ctx, "report_sent", attrs...)
		}
		results <- Result{Action: action, Err: err}
	}()
}

// Wait blocks until in-flight sends finish or ctx is done. It reports
// whether everything finished.
func (d *Dispatcher) Wait(ctx context.Context) bool {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}

// Configured reports whether any sink is attached.
func (d *Dispatcher) Configured() bool {
	return d.sink != nil
}
