package shipit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// maxResponseSize bounds how much of a vendor body is read.
const maxResponseSize = 10 * 1024 * 1024

// HTTPAPIClient is the production implementation of APIClient.
type HTTPAPIClient struct {
	httpClient *http.Client
	userAgent  string
}

// HTTPAPIClientConfig holds configuration for the HTTP client.
type HTTPAPIClientConfig struct {
	Timeout   time.Duration
	UserAgent string
	// HTTPClient overrides the underlying client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// NewHTTPAPIClient creates a new HTTP-based API client.
func NewHTTPAPIClient(cfg HTTPAPIClientConfig) *HTTPAPIClient {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "shipit-go/1.0"
	}

	return &HTTPAPIClient{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// Do sends req. A 404 yields ErrEndpointNotFound, a failure to reach the
// host yields ErrConnectionFailure, any other non-2xx status yields ErrAPI.
func (c *HTTPAPIClient) Do(ctx context.Context, req *Request) (Result, error) {
	var bodyReader io.Reader
	if req.HasBody() && req.Body != nil {
		jsonBody, err := json.Marshal(req.Body)
		if err != nil {
			return Result{}, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isConnectError(err) {
			return Result{}, NewError(CodeConnectionFailure, ErrConnectionFailure.Message).
				WithEndpoint(req.URL).
				WithCause(err)
		}
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Result{}, NewError(CodeEndpointNotFound, ErrEndpointNotFound.Message).
			WithEndpoint(req.URL).
			WithStatusCode(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return Result{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, parseError(req.URL, resp.StatusCode, body)
	}

	if len(bytes.TrimSpace(body)) > 0 && !json.Valid(body) {
		return Result{}, NewError(CodeDecodeError, ErrDecode.Message).WithEndpoint(req.URL)
	}

	return NewResult(body), nil
}

// parseError extracts the vendor's message from an error body.
func parseError(url string, status int, body []byte) error {
	msg := string(body)

	var simpleErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &simpleErr); err == nil {
		if simpleErr.Message != "" {
			msg = simpleErr.Message
		} else if simpleErr.Error != "" {
			msg = simpleErr.Error
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	return NewError(CodeAPIError, msg).
		WithEndpoint(url).
		WithStatusCode(status)
}

// isConnectError reports whether err means the host could not be reached:
// name resolution, a refused or failed dial, or a timeout.
func isConnectError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

var _ APIClient = (*HTTPAPIClient)(nil)
