package youtrack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/trackbot/internal/core/domain"
	"github.com/custodia-labs/trackbot/internal/core/ports/driven"
	"github.com/custodia-labs/trackbot/internal/logger"
)

const (
	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// MaxRetries is the maximum number of retries for transient errors.
	MaxRetries = 3

	// ProactiveRate is the request budget in requests per second.
	ProactiveRate = 5

	// ProactiveBurst is the rate limiter burst size.
	ProactiveBurst = 10
)

// Ensure Client implements the interface.
var _ driven.Tracker = (*Client)(nil)

// Client is a YouTrack REST API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client for the given API base URL, e.g.
// https://example.myjetbrains.com/youtrack/api
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(ProactiveRate), ProactiveBurst),
	}
}

// apiError is YouTrack's error response body.
type apiError struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

// do performs one API call with rate limiting and retry. out, when
// non-nil, receives the decoded response body.
func (c *Client) do(ctx context.Context, token, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	}

	var result []byte
	op := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			logger.Debug("tracker request failed, will retry: %v", err)
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		switch {
		case resp.StatusCode >= 500:
			logger.Debug("tracker returned %d, will retry", resp.StatusCode)
			return fmt.Errorf("%w: status %d", domain.ErrTrackerUnavailable, resp.StatusCode)
		case resp.StatusCode >= 400:
			return backoff.Permanent(trackerError(resp.StatusCode, data))
		}
		result = data
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), MaxRetries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return err
	}

	if out != nil {
		if err := json.Unmarshal(result, out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", domain.ErrTrackerUnavailable, err)
		}
	}
	return nil
}

// trackerError turns a non-2xx response into a user-presentable error.
func trackerError(status int, body []byte) error {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Description != "" {
		return fmt.Errorf("%w: %s", domain.ErrTrackerUnavailable, apiErr.Description)
	}
	return fmt.Errorf("%w: status %d", domain.ErrTrackerUnavailable, status)
}
