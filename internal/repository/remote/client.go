package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PizzaHomicide/hypelist/internal/domain"
	"github.com/PizzaHomicide/hypelist/internal/log"
	"github.com/PizzaHomicide/hypelist/internal/version"
)

const (
	// maxResponseBytes caps how much of a response body is read
	maxResponseBytes = 4 << 20
	// maxErrorBody caps how much of an error body is kept on a RemoteError
	maxErrorBody = 200
)

// Client performs JSON requests against the collection endpoint of a REST backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the collection at baseURL.  Every request is bounded by timeout, on top of whatever
// deadline the caller's context carries.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// do sends body (if not nil) as JSON and returns the raw response body of a successful request
func (c *Client) do(ctx context.Context, op, method, url string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("Backend request failed", "op", op, "method", method, "url", url, "error", err)
		return nil, domain.NetworkError{Err: fmt.Errorf("%s: %w", op, err)}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, domain.NetworkError{Err: fmt.Errorf("%s: failed to read response: %w", op, err)}
	}

	log.Debug("Backend request complete", "op", op, "method", method, "url", url,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.RemoteError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(b[:min(len(b), maxErrorBody)])),
		}
	}
	return b, nil
}

// decode unmarshals a response body, wrapping failures as DecodeError
func decode(op string, b []byte, out any) error {
	if err := json.Unmarshal(b, out); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			log.Debug("Backend returned malformed JSON", "op", op, "offset", syntaxErr.Offset)
		}
		return &domain.DecodeError{Op: op, Err: err}
	}
	return nil
}
