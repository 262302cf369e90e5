// Package upstream implements the HTTP client for the external secrets API.
// The API owns all real behaviour (storage, expiration, hit-count accounting,
// password verification); this package only speaks its wire contract:
//
//	POST {base}            {"secret","hitLimit","ttl","password"|null} -> {"url"}
//	GET  {base}/{code}[?password=...]  Accept: text/html
//	     200 secret text / 401 prompt text / other error text
package upstream

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
)

// CreatePayload is the request body for secret creation, exactly as the
// upstream expects it. Password serializes to JSON null when absent.
type CreatePayload struct {
	Secret   string  `json:"secret"`
	HitLimit int     `json:"hitLimit"`
	TTL      int64   `json:"ttl"`
	Password *string `json:"password"`
}

// Created is the upstream response for a successful creation. The URL is a
// fully formed shareable link and opaque to this frontend.
type Created struct {
	URL string `json:"url"`
}

// Outcome is the raw result of a retrieval attempt: the HTTP status and the
// response body as text. Interpretation (revealed / password prompt / error)
// belongs to the retrieval layer.
type Outcome struct {
	Status int
	Body   string
}

// StatusError reports a non-2xx creation response. Message carries the
// upstream-supplied message when the body contained one, else the HTTP
// status text.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Message)
}

// Doer abstracts *http.Client for testing.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the external secrets API. Safe for concurrent use.
// Construct via New; the zero value is not valid.
type Client struct {
	base string
	http Doer
}

// maxBodyBytes caps how much of an upstream response we are willing to read.
const maxBodyBytes = 1 << 20

// New returns a Client for the given API base URL. A nil doer gets a
// default http.Client with the provided timeout.
func New(base string, timeout time.Duration, doer Doer) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: timeout}
	}
	return &Client{base: strings.TrimRight(base, "/"), http: doer}
}

// Create posts a new secret and returns the shareable link. Non-2xx statuses
// surface as *StatusError; transport and decode failures return their
// underlying error.
func (c *Client) Create(ctx context.Context, p CreatePayload) (Created, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return Created{}, fmt.Errorf("encode create payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base, bytes.NewReader(body))
	if err != nil {
		return Created{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return Created{}, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Created{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Created{}, &StatusError{Status: resp.StatusCode, Message: ErrorMessage(raw, resp.StatusCode)}
	}
	var out Created
	if err := json.Unmarshal(raw, &out); err != nil {
		return Created{}, fmt.Errorf("decode create response: %w", err)
	}
	if out.URL == "" {
		return Created{}, fmt.Errorf("create response missing url")
	}
	return out, nil
}

// Retrieve fetches a secret by code, optionally presenting a password. The
// password travels URL-encoded as a query parameter. Any HTTP response,
// including 401 and errors, yields an Outcome; only transport failures
// return a non-nil error.
func (c *Client) Retrieve(ctx context.Context, code, password string) (Outcome, error) {
	target := c.base + "/" + url.PathEscape(code)
	if password != "" {
		q := url.Values{}
		q.Set("password", password)
		target += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Outcome{}, err
	}
	req.Header.Set("Accept", "text/html")
	resp, err := c.http.Do(req)
	if err != nil {
		return Outcome{}, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Status: resp.StatusCode, Body: string(raw)}, nil
}

// Ping reports whether the upstream API is reachable. Any HTTP response,
// including an error status, counts as reachable; only transport failures
// return an error.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.base, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// ErrorMessage extracts {"message": ...} from an error body when present,
// then falls back to the plain-text body, then to the HTTP status text.
func ErrorMessage(raw []byte, status int) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	if txt := strings.TrimSpace(string(raw)); txt != "" && !strings.HasPrefix(txt, "{") {
		return txt
	}
	return http.StatusText(status)
}
