// Package api is the single point of HTTP access to the TrackJob service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// ErrNoToken is returned by a TokenSource that has nothing to offer. The
// request then goes out without an Authorization header.
var ErrNoToken = errors.New("no token")

type Client struct {
	baseURL string
	http    *http.Client
	tokens  oauth2.TokenSource
	logger  *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient talks to the service rooted at baseURL (including the /api
// prefix). tokens may be nil for anonymous use. Requests have no deadline of
// their own; they end when the caller's context does.
func NewClient(baseURL string, tokens oauth2.TokenSource, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		logger:  logger.Named("api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// authorize attaches the bearer token when one is present.
func (c *Client) authorize(req *http.Request) error {
	if c.tokens == nil {
		return nil
	}
	tok, err := c.tokens.Token()
	if errors.Is(err, ErrNoToken) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("token: %w", err)
	}
	if tok != nil && tok.AccessToken != "" {
		tok.SetAuthHeader(req)
	}
	return nil
}

// doRequest sends payload as JSON and decodes a 2xx body into v when v is
// non-nil.
func (c *Client) doRequest(ctx context.Context, method, path string, payload, v any) error {
	d, err := c.send(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	if err := json.Unmarshal(d, v); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// send performs the request and returns the raw body of a 2xx answer.
func (c *Client) send(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.authorize(req); err != nil {
		return nil, err
	}

	c.logger.Debug("request", zap.String("method", method), zap.String("path", path))
	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, decodeError(res)
	}
	d, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return d, nil
}

func decodeError(res *http.Response) error {
	apiErr := &Error{StatusCode: res.StatusCode}
	d, err := io.ReadAll(res.Body)
	if err != nil {
		return apiErr
	}
	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if jserr := json.Unmarshal(d, &body); jserr == nil {
		apiErr.Message = body.Error
		apiErr.Fields = body.Fields
	}
	return apiErr
}
