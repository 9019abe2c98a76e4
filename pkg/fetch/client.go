package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/spencer-p/tidewidget/pkg/metrics"
)

const (
	DefaultTimeout = 5 * time.Second
	DefaultRetries = 1
	defaultBackoff = 500 * time.Millisecond

	// Feeds are a few hundred bytes. Anything far larger is not a feed.
	maxBodyBytes = 1 << 20
)

// TransportError is a failure to obtain text from the upstream, as opposed to
// text that could not be parsed.
type TransportError struct {
	URL string
	// StatusCode is the HTTP status, or 0 if no response arrived.
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

var errStatus = errors.New("unexpected status")

// Client fetches feeds over HTTP.
type Client struct {
	// TidesURL is a format string taking the location ID and the
	// yyyy-MM-dd date, in that order.
	TidesURL     string
	LocationsURL string

	HTTPClient *http.Client
	// Retries is how many times a failed request is repeated.
	Retries int
	Backoff time.Duration
}

// NewClient creates a Client whose requests each time out after timeout.
func NewClient(tidesURL, locationsURL string, timeout time.Duration, retries int) *Client {
	return &Client{
		TidesURL:     tidesURL,
		LocationsURL: locationsURL,
		HTTPClient:   &http.Client{Timeout: timeout},
		Retries:      retries,
		Backoff:      defaultBackoff,
	}
}

// TideFeed returns the raw tide feed of one location and day.
func (c *Client) TideFeed(ctx context.Context, locationID, date string) (string, error) {
	addr := fmt.Sprintf(c.TidesURL, url.PathEscape(locationID), url.PathEscape(date))
	return c.get(ctx, "tides", addr)
}

// LocationsCatalog returns the raw locations catalog.
func (c *Client) LocationsCatalog(ctx context.Context) (string, error) {
	return c.get(ctx, "locations", c.LocationsURL)
}

func (c *Client) get(ctx context.Context, target, addr string) (string, error) {
	var lastErr *TransportError
	for attempt := 0; attempt <= max(c.Retries, 0); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", &TransportError{URL: addr, Err: ctx.Err()}
			case <-time.After(c.Backoff):
			}
		}

		body, err := c.once(ctx, target, addr)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable(err) || ctx.Err() != nil {
			break
		}
	}
	return "", lastErr
}

func (c *Client) once(ctx context.Context, target, addr string) (string, *TransportError) {
	start := time.Now()
	code := "error"
	defer func() {
		metrics.ObserveUpstreamLatency(target, code, time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return "", &TransportError{URL: addr, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", &TransportError{URL: addr, Err: err}
	}
	defer resp.Body.Close()
	code = strconv.Itoa(resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return "", &TransportError{URL: addr, StatusCode: resp.StatusCode, Err: errStatus}
	}

	buf, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &TransportError{URL: addr, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading body: %w", err)}
	}
	return string(buf), nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

// retryable reports whether repeating the request could help. Client errors
// will not go away on their own.
func retryable(err *TransportError) bool {
	return err.StatusCode == 0 || err.StatusCode >= 500
}
