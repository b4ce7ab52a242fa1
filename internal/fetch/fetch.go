// Package fetch retrieves the remote pumpkin dataset. A run performs
// exactly one timed GET; there is no retry or backoff, any failure
// aborts startup.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/AutumnThyme/PumpkinSnatcher/internal/model"
)

var (
	// ErrTimeout marks a request that hit the configured deadline.
	ErrTimeout = errors.New("request timed out")
	// ErrConnection marks a transport-level failure before any response.
	ErrConnection = errors.New("failed to connect to the endpoint")
	// ErrDecode marks a 2xx response whose body is not valid JSON.
	ErrDecode = errors.New("invalid JSON response")
)

// StatusError is returned for a non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d", e.Code)
}

type Client struct {
	url    string
	hc     *http.Client
	logger *log.Logger
}

func NewClient(url string, timeout time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		url:    url,
		hc:     &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Fetch performs the GET and decodes the ID-to-record mapping.
func (c *Client) Fetch(ctx context.Context) (model.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.hc.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{Code: res.StatusCode}
	}

	var data model.Dataset
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	c.logger.Printf("[fetch] got %d pumpkins from %s", len(data), c.url)
	return data, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
