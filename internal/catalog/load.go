package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/flashbox/internal/domain"
)

// ErrCatalogUnavailable indicates the catalog source could not be read.
// It is the only failure that blocks a study session from starting.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Loader reads catalogs from a file path or an http(s) URL.
type Loader struct {
	http *http.Client
}

// NewLoader creates a Loader. A nil client gets a default with a short dial
// timeout.
func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		}
	}
	return &Loader{http: client}
}

// Load reads and parses the catalog at source.
func (l *Loader) Load(ctx context.Context, source string) (*domain.Catalog, ParseStats, error) {
	data, err := l.read(ctx, source)
	if err != nil {
		return nil, ParseStats{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	cat, stats, err := ParseWithStats(bytes.NewReader(data))
	if err != nil {
		return nil, ParseStats{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return cat, stats, nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if source == "" {
		return nil, errors.New("no catalog source configured")
	}
	if !isURL(source) {
		return os.ReadFile(source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: status %d", source, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
