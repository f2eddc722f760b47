// Package api talks to the remote cooperative REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"coop-console/internal/core/domain"
	"coop-console/internal/core/session"
	"coop-console/internal/pkg/envelope"

	"github.com/google/uuid"
)

// maxBody caps how much of a response is read
const maxBody = 10 << 20

// Doer is satisfied by *http.Client
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues authenticated requests against one API origin
type Client struct {
	baseURL string
	http    Doer
	debug   bool
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

// WithDebug logs every outgoing call
func WithDebug(debug bool) Option {
	return func(c *Client) { c.debug = debug }
}

// NewClient creates a client for baseURL. A zero timeout disables the client timeout.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Multipart is a form body with at most one file part
type Multipart struct {
	Fields    map[string]string
	FileField string
	FileName  string
	File      io.Reader
}

// Request describes one API call
type Request struct {
	Method    string
	Path      string
	Query     url.Values
	JSON      any
	Multipart *Multipart
}

type requestIDKey struct{}

// WithRequestID stores the inbound request id so outgoing calls reuse it
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// Do sends r with the session's bearer token and decodes the envelope.
// Transport failures return an error wrapping domain.ErrNetwork; HTTP-level
// failures come back as a ServerError result.
func (c *Client) Do(ctx context.Context, sess session.Session, r Request) (envelope.Result, error) {
	req, err := c.newRequest(ctx, sess, r)
	if err != nil {
		return envelope.Result{}, err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if c.debug {
			log.Printf("❌ API %s %s failed: %v", req.Method, req.URL.Path, err)
		}
		return envelope.Result{}, fmt.Errorf("%w: %s %s: %v", domain.ErrNetwork, req.Method, r.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return envelope.Result{}, fmt.Errorf("%w: read %s: %v", domain.ErrNetwork, r.Path, err)
	}

	if c.debug {
		log.Printf("API %s %s -> %d (%s)", req.Method, req.URL.Path, resp.StatusCode, time.Since(start).Round(time.Millisecond))
	}

	return envelope.Decode(resp.StatusCode, body), nil
}

// Get is Do for a GET request
func (c *Client) Get(ctx context.Context, sess session.Session, path string, query url.Values) (envelope.Result, error) {
	return c.Do(ctx, sess, Request{Method: http.MethodGet, Path: path, Query: query})
}

// Send issues a write and collapses the result into an error. Writes are
// never sent without a token.
func (c *Client) Send(ctx context.Context, sess session.Session, r Request) (envelope.Result, error) {
	if sess.Token == "" {
		return envelope.Result{}, domain.ErrMissingToken
	}
	res, err := c.Do(ctx, sess, r)
	if err != nil {
		return res, err
	}
	if res.Kind == envelope.ServerError {
		return res, res.Err()
	}
	// writes often answer 204 or a bare {"status":"success"}; neither is a failure
	return res, nil
}

func (c *Client) newRequest(ctx context.Context, sess session.Session, r Request) (*http.Request, error) {
	u := c.baseURL + "/" + strings.TrimLeft(r.Path, "/")
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case r.Multipart != nil:
		buf, ct, err := encodeMultipart(r.Multipart)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	case r.JSON != nil:
		b, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", r.Path, err)
		}
		body, contentType = bytes.NewReader(b), "application/json"
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID(ctx))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}
	return req, nil
}

func encodeMultipart(m *Multipart) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range m.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if m.File != nil {
		field := m.FileField
		if field == "" {
			field = "file"
		}
		part, err := w.CreateFormFile(field, m.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, m.File); err != nil {
			return nil, "", fmt.Errorf("copy file part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
