// Package gateway executes HTTP requests against the three backend
// services.  It owns the cross-cutting behavior every accessor relies
// on: JSON encoding, bearer-credential attachment, structured error
// normalization and the optional Redis read cache.  Accessors stay pure
// translation layers on top of it.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinelux-booking/internal/storage"
)

// Client talks to one service base address.  The zero value is not
// usable; construct with New.
type Client struct {
	base    string
	http    *http.Client
	session storage.SessionStore
	cache   *Cache
	log     *logrus.Entry
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport.  Tests use it to
// point the client at httptest servers with short timeouts.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithCache enables the Redis read cache for unauthenticated GETs.
// A nil cache is accepted and leaves caching off.
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// New returns a Client for the given base address.  The session store
// supplies bearer tokens for authenticated calls and is purged when a
// service answers 401.
func New(base string, session storage.SessionStore, opts ...Option) *Client {
	c := &Client{
		base:    strings.TrimRight(base, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		session: session,
		log:     logrus.WithField("component", "gateway"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request describes one call.  Body is JSON-encoded when non-nil; Out,
// when non-nil, receives the decoded response body.  Auth marks the
// call as credential-bearing: the stored token is attached if present,
// and its absence is not an error (the server enforces).
type Request struct {
	Method string
	Path   string
	Body   any
	Out    any
	Auth   bool
	Header http.Header
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, out any, auth bool) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Out: out, Auth: auth})
}

// Post performs a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any, auth bool) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body, Out: out, Auth: auth})
}

// Put performs a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any, auth bool) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body, Out: out, Auth: auth})
}

// Delete performs a DELETE request.  A 204 response yields out left
// untouched rather than a decode failure.
func (c *Client) Delete(ctx context.Context, path string, out any, auth bool) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path, Out: out, Auth: auth})
}

// Do executes the request.  Non-2xx responses come back as *APIError;
// anything else (dial failure, body read, JSON decode) is returned raw
// so callers can tell transport trouble from service rejections.
func (c *Client) Do(ctx context.Context, req Request) error {
	url := c.base + req.Path

	cacheable := c.cache != nil && req.Method == http.MethodGet && !req.Auth && req.Out != nil
	if cacheable {
		if body, ok := c.cache.get(ctx, url); ok {
			if err := json.Unmarshal(body, req.Out); err == nil {
				c.log.WithField("url", url).Debug("cache hit")
				return nil
			}
			// Undecodable cache entries are dropped and the call proceeds.
			c.cache.invalidate(ctx, url)
		}
	}

	var reader io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, reader)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if req.Auth {
		if token := c.session.Token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", req.Method, req.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.normalizeError(resp.StatusCode, body)
	}

	// Delete-style endpoints answer 204 with no body; there is nothing
	// to decode and Out keeps its zero value.
	if resp.StatusCode == http.StatusNoContent || len(body) == 0 || req.Out == nil {
		return nil
	}

	if err := json.Unmarshal(body, req.Out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", req.Method, req.Path, err)
	}

	if cacheable {
		c.cache.set(ctx, url, body)
	}
	return nil
}

// errorBody is the structured error envelope the services use.  Message
// and Error are alternatives; Code is optional.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// normalizeError builds the *APIError for a non-2xx response.  The body
// is parsed best-effort; specific status classes override the message
// with fixed wording.  A 401 additionally purges the stored session
// record so a stale token cannot produce a retry loop.
func (c *Client) normalizeError(status int, body []byte) error {
	apiErr := &APIError{Message: MsgGeneric, Status: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Message != "" {
			apiErr.Message = eb.Message
		} else if eb.Error != "" {
			apiErr.Message = eb.Error
		}
		apiErr.Code = eb.Code
	}

	switch {
	case status == http.StatusUnauthorized:
		apiErr.Message = MsgSessionGone
		if err := c.session.Purge(); err != nil {
			c.log.WithError(err).Warn("failed to purge session after 401")
		}
	case status == http.StatusForbidden:
		apiErr.Message = MsgAccessDenied
	case status == http.StatusNotFound:
		apiErr.Message = MsgNotFound
	case status >= 500:
		apiErr.Message = MsgServerError
	}

	c.log.WithFields(logrus.Fields{"status": status, "code": apiErr.Code}).
		Debug("service returned error")
	return apiErr
}
