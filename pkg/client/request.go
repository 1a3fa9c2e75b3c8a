package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

// Request describes one API call. It is a value: middleware that needs a
// different attempt derives a new descriptor with Retry instead of mutating
// the one it was given.
type Request struct {
	ID      uuid.UUID
	Method  string
	Path    string
	Body    []byte
	Header  http.Header
	Attempt int
}

// NewRequest builds a descriptor, encoding body as JSON when non-nil.
func NewRequest(method, path string, body any) (Request, error) {
	req := Request{
		ID:     uuid.New(),
		Method: method,
		Path:   path,
		Header: make(http.Header),
	}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return Request{}, fmt.Errorf("marshal body: %w", err)
		}
		req.Body = data
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// Retry returns a copy of r for the next attempt. Method, path, body and
// headers are carried over unchanged.
func (r Request) Retry() Request {
	next := r
	next.Header = r.Header.Clone()
	if r.Body != nil {
		next.Body = append([]byte(nil), r.Body...)
	}
	next.Attempt = r.Attempt + 1
	return next
}

func (r Request) build(ctx context.Context, baseURL string) (*http.Request, error) {
	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, baseURL+r.Path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("X-Request-ID", r.ID.String())
	return req, nil
}

// Response is a fully read 2xx response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Handler sends a request descriptor and returns the response or an error;
// non-2xx statuses are returned as *HTTPError.
type Handler func(ctx context.Context, req Request) (*Response, error)

// Middleware wraps a Handler. Hooks see every request on the way out and
// every response or failure on the way back.
type Middleware func(next Handler) Handler

func chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
