// Package client is the Go SDK for the InfringeScope HTTP API.
//
//	c, err := client.NewClient("http://localhost:8000", client.WithRetryMax(2))
//	a, err := c.Infringement().Check(ctx, "US-RE49889-E1", "Walmart Inc.")
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/InfringeScope/pkg/errors"
)

const Version = "0.1.0"

// apiPrefix is prepended to every resource path.
const apiPrefix = "/api/v1"

// ErrInvalidConfig is returned by NewClient for an unusable base URL.
var ErrInvalidConfig = errors.New(errors.ErrCodeValidation, "invalid client configuration")

// Logger defines the logging interface used by the Client.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Infof(string, ...interface{})  {}
func (noopLogger) Errorf(string, ...interface{}) {}

// Client talks to one InfringeScope server.  It is safe for concurrent use.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	apiKey       string
	userAgent    string
	logger       Logger
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration

	companies        *CompaniesClient
	companiesOnce    sync.Once
	patents          *PatentsClient
	patentsOnce      sync.Once
	infringement     *InfringementClient
	infringementOnce sync.Once
}

// APIError is a non-2xx response.  Code and Message come from the server's
// error body when it has one.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("infringescope: %s (HTTP %d): %s [request_id=%s]", e.Code, e.StatusCode, e.Message, e.RequestID)
}

func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func (e *APIError) IsBadRequest() bool {
	return e.StatusCode == http.StatusBadRequest
}

func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// NewClient returns a Client for baseURL, which must be an absolute http or
// https URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrInvalidConfig
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid baseURL: %v", ErrInvalidConfig, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: baseURL scheme must be http or https", ErrInvalidConfig)
	}

	c := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 2 * time.Minute},
		userAgent:    fmt.Sprintf("infringescope-go-sdk/%s", Version),
		logger:       noopLogger{},
		retryMax:     3,
		retryWaitMin: 500 * time.Millisecond,
		retryWaitMax: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Companies returns the companies sub-client.
func (c *Client) Companies() *CompaniesClient {
	c.companiesOnce.Do(func() {
		c.companies = &CompaniesClient{client: c}
	})
	return c.companies
}

// Patents returns the patents sub-client.
func (c *Client) Patents() *PatentsClient {
	c.patentsOnce.Do(func() {
		c.patents = &PatentsClient{client: c}
	})
	return c.patents
}

// Infringement returns the infringement sub-client.
func (c *Client) Infringement() *InfringementClient {
	c.infringementOnce.Do(func() {
		c.infringement = &InfringementClient{client: c}
	})
	return c.infringement
}

// do sends one request and, for GETs only, retries network errors, 5xx
// responses and 429s.  A POST is sent exactly once.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	fullURL := c.baseURL + path

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	retryMax := c.retryMax
	if method != http.MethodGet {
		retryMax = 0
	}

	var lastErr error
	var wait time.Duration
	for attempt := 0; attempt <= retryMax; attempt++ {
		if attempt > 0 {
			if wait == 0 {
				wait = c.calculateBackoff(attempt)
			}
			c.logger.Debugf("Retry attempt %d after %v", attempt, wait)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
			wait = 0
		}

		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		requestID := uuid.NewString()
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("X-Request-ID", requestID)

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Errorf("Request failed: %v", err)
			lastErr = err
			continue
		}
		c.logger.Debugf("%s %s %d (%v)", method, path, resp.StatusCode, time.Since(start))

		respBody, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode >= 400 {
			apiErr := newAPIError(resp, respBody, requestID)
			lastErr = apiErr
			switch {
			case resp.StatusCode == http.StatusTooManyRequests:
				seconds, convErr := strconv.Atoi(resp.Header.Get("Retry-After"))
				if convErr != nil || seconds < 0 {
					return apiErr
				}
				c.logger.Infof("Rate limited, retrying after %d seconds", seconds)
				wait = time.Duration(seconds) * time.Second
				if wait == 0 {
					wait = c.retryWaitMin
				}
				continue
			case apiErr.IsServerError():
				continue
			default:
				return apiErr
			}
		}

		if result != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, result); err != nil {
				return fmt.Errorf("failed to unmarshal response: %w", err)
			}
		}
		return nil
	}
	return lastErr
}

// newAPIError prefers the server's request id, which is the one in its logs.
func newAPIError(resp *http.Response, body []byte, requestID string) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, RequestID: requestID}
	if rid := resp.Header.Get("X-Request-ID"); rid != "" {
		apiErr.RequestID = rid
	}
	if len(body) > 0 {
		var errResp struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil && (errResp.Code != "" || errResp.Message != "") {
			apiErr.Code = errResp.Code
			apiErr.Message = errResp.Message
		} else {
			apiErr.Message = string(body)
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.retryWaitMin * time.Duration(1<<uint(attempt-1))
	if backoff > c.retryWaitMax {
		backoff = c.retryWaitMax
	}
	if quarter := int64(backoff / 4); quarter > 0 {
		backoff += time.Duration(rand.Int63n(quarter))
	}
	return backoff
}

// pagePath renders path?skip=&limit=.  Zero values are left to the server
// defaults.
func pagePath(path string, opts *ListOptions) string {
	if opts == nil {
		return path
	}
	q := url.Values{}
	if opts.Skip > 0 {
		q.Set("skip", strconv.Itoa(opts.Skip))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

//Personal.AI order the ending
