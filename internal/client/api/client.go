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
	"time"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/logging"
	"github.com/google/uuid"
)

// TokenSource yields the current bearer token, or "" when signed out.
type TokenSource interface {
	GetToken(ctx context.Context) (string, error)
}

// Client is the shared authenticated transport behind every resource client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        logging.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		h := *c.httpClient
		h.Timeout = d
		c.httpClient = &h
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New builds a client for the API rooted at baseURL (e.g. http://localhost:3001).
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		tokens:     tokens,
		log:        logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

const defaultTimeout = 15 * time.Second

// Do sends an authenticated JSON request and decodes the response body into out.
// in may be nil for body-less requests; out may be nil to discard the body.
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	return c.send(ctx, method, path, in, out, true)
}

// DoAnonymous is Do without the bearer credential; used by login and signup.
func (c *Client) DoAnonymous(ctx context.Context, method, path string, in, out any) error {
	return c.send(ctx, method, path, in, out, false)
}

func (c *Client) send(ctx context.Context, method, path string, in, out any, withToken bool) error {
	op := method + " " + path

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: failed to marshal request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.roundTrip(ctx, req, out, withToken)
}

// roundTrip attaches credentials, executes req and maps the outcome.
func (c *Client) roundTrip(ctx context.Context, req *http.Request, out any, withToken bool) error {
	op := req.Method + " " + req.URL.Path
	requestID := uuid.NewString()

	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)

	if withToken {
		token, err := c.tokens.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("%s: read token: %w", op, err)
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "op", op, "request_id", requestID, "error", err)
		return transportError(ctx, op, requestID, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	c.log.Debug(ctx, "request done", "op", op, "status", resp.StatusCode,
		"request_id", requestID, "took", time.Since(started))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(ctx, op, requestID, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &Error{
			Kind:       kindForStatus(resp.StatusCode),
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    serverMessage(raw),
			RequestID:  requestID,
		}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Kind: KindDecode, Op: op, StatusCode: resp.StatusCode, RequestID: requestID, Err: err}
	}
	return nil
}

func transportError(ctx context.Context, op, requestID string, err error) error {
	kind := KindUnavailable
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		kind = KindCanceled
	}
	return &Error{Kind: kind, Op: op, RequestID: requestID, Err: err}
}

// serverMessage pulls a human message out of an error body. The API uses
// {"err": "..."}; {"error": "..."} and {"message": "..."} are accepted too.
func serverMessage(raw []byte) string {
	var body struct {
		Err     string `json:"err"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, s := range []string{body.Err, body.Error, body.Message} {
			if s != "" {
				return s
			}
		}
	}
	return strings.TrimSpace(string(raw))
}
