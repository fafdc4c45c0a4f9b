// Package httpretry sends provider requests with client-side rate limiting
// and exponential backoff on 429 and 5xx responses.
package httpretry

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/shantanugsharp/chatbot-be/internal/logging"
	"github.com/shantanugsharp/chatbot-be/internal/metrics"
)

const defaultBackoff = 500 * time.Millisecond

// Client wraps an *http.Client. MaxRetries counts attempts after the first.
type Client struct {
	HTTP       *http.Client
	Name       string // adapter name used in errors, logs and metrics
	MaxRetries int
	Backoff    time.Duration
	Limiter    *rate.Limiter // nil means unlimited
}

// NewLimiter returns a limiter for rps requests per second, or nil when rps
// is not positive.
func NewLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	burst := max(int(rps), 1)
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// Do sends req, retrying transport errors and retryable statuses. The final
// non-retryable response is returned with its body open.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	attempts := max(c.MaxRetries, 0) + 1
	backoff := c.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	if req.Body != nil && req.GetBody == nil {
		bodyBytes, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: read request body: %w", c.Name, err)
		}
		_ = req.Body.Close()
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(bodyBytes)), nil
		}
	}

	ctx := req.Context()
	for attempt := 0; attempt < attempts; attempt++ {
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("%s: rate limit wait: %w", c.Name, err)
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: request canceled: %w", c.Name, err)
		}

		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("%s: reset request body: %w", c.Name, err)
			}
			req.Body = body
		}

		resp, err := c.HTTP.Do(req)
		retryAfter, retry := shouldRetry(ctx, resp, err)
		if !retry {
			return resp, err
		}

		status := 0
		if resp != nil {
			status = resp.StatusCode
			_ = resp.Body.Close()
		}

		if attempt == attempts-1 {
			if err != nil {
				return nil, fmt.Errorf("%s: request failed after %d attempts: %w", c.Name, attempts, err)
			}
			return nil, fmt.Errorf("%s: request failed after %d attempts: status %d", c.Name, attempts, status)
		}

		logging.Ctx(ctx).Warn().
			Err(err).
			Str("provider", c.Name).
			Int("attempt", attempt+1).
			Int("max_attempts", attempts).
			Int("status", status).
			Msg("retrying provider request")
		metrics.ProviderRetries.WithLabelValues(c.Name).Inc()

		delay := backoff * time.Duration(1<<attempt)
		if retryAfter > 0 {
			delay = retryAfter
		}
		if err := sleepWithContext(ctx, delay); err != nil {
			return nil, fmt.Errorf("%s: %w", c.Name, err)
		}
	}

	return nil, fmt.Errorf("%s: request failed after %d attempts", c.Name, attempts)
}

func shouldRetry(ctx context.Context, resp *http.Response, err error) (time.Duration, bool) {
	if err != nil {
		// A cancelled or expired context is final.
		return 0, ctx.Err() == nil
	}
	if resp == nil {
		return 0, false
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return parseRetryAfter(resp), true
	}
	return 0, false
}

func parseRetryAfter(resp *http.Response) time.Duration {
	retryAfter := resp.Header.Get("Retry-After")
	if retryAfter == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if when, err := http.ParseTime(retryAfter); err == nil {
		if until := time.Until(when); until > 0 {
			return until
		}
	}
	return 0
}

func sleepWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("request canceled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
