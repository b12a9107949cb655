package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// DefaultHTTPTimeout bounds one POST to the spreadsheet endpoint.
const DefaultHTTPTimeout = 10 * time.Second

// HTTPSink posts payloads as JSON to a spreadsheet web endpoint. The body is
// sent as text/plain, which the endpoint accepts without a preflight.
type HTTPSink struct {
	url     string
	timeout time.Duration
	http    *http.Client
}

// NewHTTPSink creates a sink posting to url. A nil client gets a default
// with a short dial timeout; a non-positive timeout uses DefaultHTTPTimeout.
func NewHTTPSink(url string, timeout time.Duration, client *http.Client) *HTTPSink {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		}
	}
	return &HTTPSink{url: url, timeout: timeout, http: client}
}

func (s *HTTPSink) WriteSession(ctx context.Context, p SessionPayload) error {
	return s.post(ctx, p)
}

func (s *HTTPSink) WriteCardDetail(ctx context.Context, p CardDetailPayload) error {
	return s.post(ctx, p)
}

func (s *HTTPSink) post(ctx context.Context, payload any) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("posting report: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrSinkStatus, resp.StatusCode)
	}
	return nil
}
