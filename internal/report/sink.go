package report

import (
	"context"
	"errors"
)

// ErrSinkStatus indicates a sink endpoint answered with a non-success status.
var ErrSinkStatus = errors.New("report sink returned error status")

// Sink accepts finished-session payloads.
type Sink interface {
	WriteSession(ctx context.Context, p SessionPayload) error
	WriteCardDetail(ctx context.Context, p CardDetailPayload) error
}

// MultiSink writes each payload to every sink in order. A failing sink does
// not stop the others; their errors are joined.
type MultiSink []Sink

// NewMultiSink drops nil sinks. It returns nil when none remain, which the
// dispatcher treats as unconfigured.
func NewMultiSink(sinks ...Sink) Sink {
	var m MultiSink
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	switch len(m) {
	case 0:
		return nil
	case 1:
		return m[0]
	}
	return m
}

func (m MultiSink) WriteSession(ctx context.Context, p SessionPayload) error {
	var errs []error
	for _, s := range m {
		if err := s.WriteSession(ctx, p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiSink) WriteCardDetail(ctx context.Context, p CardDetailPayload) error {
	var errs []error
	for _, s := range m {
		if err := s.WriteCardDetail(ctx, p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
