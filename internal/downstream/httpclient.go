package downstream

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/bookaroo/create-event-service/internal/logger"
	"github.com/bookaroo/create-event-service/middleware"
)

var (
	ErrTimeout     = errors.New("downstream_timeout")
	ErrUnavailable = errors.New("downstream_unavailable")
)

// ClientConfig holds configuration for the HTTP client wrapper.
type ClientConfig struct {
	// ReadTimeout is used for GET requests
	ReadTimeout time.Duration
	// WriteTimeout is used for POST, PUT, PATCH, DELETE requests
	WriteTimeout time.Duration
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// Client is the shared HTTP client wrapper for all collaborator calls:
// it injects X-Request-Id from the context, enforces a method-based
// timeout on every call, maps transport failures to sentinel errors,
// and logs each call with its correlation id. Safe for concurrent use.
type Client struct {
	baseClient *http.Client
	config     ClientConfig
}

func NewClient(config ClientConfig) *Client {
	return &Client{
		baseClient: &http.Client{
			// per-request timeouts via context, no global timeout
			Timeout: 0,
		},
		config: config,
	}
}

func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if reqID := middleware.GetRequestID(ctx); reqID != "" {
		req.Header.Set(middleware.HeaderXRequestID, reqID)
	}

	timeout := c.config.ReadTimeout
	if isWriteMethod(req.Method) {
		timeout = c.config.WriteTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req = req.WithContext(ctx)

	log := logger.Log.With().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("request_id", middleware.GetRequestID(ctx)).
		Logger()

	start := time.Now()

	resp, err := c.baseClient.Do(req)

	duration := time.Since(start)
	if err != nil {
		log.Warn().
			Err(err).
			Dur("duration", duration).
			Msg("downstream_request_failed")
		return nil, c.mapError(err)
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Msg("downstream_request_completed")

	return resp, nil
}

func (c *Client) mapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	if errors.Is(err, context.Canceled) {
		return context.Canceled
	}
	// connection refused, DNS errors, etc.
	return ErrUnavailable
}

func isWriteMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

// DoWithBody is a convenience method for requests with a body.
func (c *Client) DoWithBody(ctx context.Context, method, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return c.Do(ctx, req)
}

// Get is a convenience method for GET requests.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return c.Do(ctx, req)
}

// isTransport reports whether err came from the connection itself
// rather than from a well-formed collaborator response.
func isTransport(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrUnavailable)
}
