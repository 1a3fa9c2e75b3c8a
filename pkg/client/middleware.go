package client

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// logRequests records every wire attempt, including refresh calls and replays.
func (c *Client) logRequests(next Handler) Handler {
	return func(ctx context.Context, req Request) (*Response, error) {
		start := time.Now()
		resp, err := next(ctx, req)

		status := 0
		var httpErr *HTTPError
		switch {
		case resp != nil:
			status = resp.StatusCode
		case errors.As(err, &httpErr):
			status = httpErr.StatusCode
		}

		ev := c.log.Debug()
		if err != nil {
			ev = ev.Err(err)
		}
		ev.Str("request_id", req.ID.String()).
			Str("method", req.Method).
			Str("path", req.Path).
			Int("attempt", req.Attempt).
			Int("status", status).
			Dur("took", time.Since(start)).
			Msg("api request")
		return resp, err
	}
}

// WithHeader returns a hook that sets a header on every outgoing request.
func WithHeader(key, value string) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req Request) (*Response, error) {
			h := req.Header.Clone()
			if h == nil {
				h = make(http.Header)
			}
			h.Set(key, value)
			req.Header = h
			return next(ctx, req)
		}
	}
}
