package client

import (
	"context"
	"net/http"
)

const refreshPath = "/auth/refresh/"

// continuity makes an expired session invisible to callers. A first attempt
// that fails with the expiry status triggers one refresh call and one replay
// of the same descriptor. Replays (Attempt > 0) never refresh again, so a
// second expiry propagates instead of looping. The refresh call is sent to
// next directly and cannot recurse into this hook.
func (c *Client) continuity(next Handler) Handler {
	var h Handler
	h = func(ctx context.Context, req Request) (*Response, error) {
		resp, err := next(ctx, req)
		if err == nil || req.Attempt > 0 || req.Path == refreshPath || !IsStatus(err, c.expiryStatus) {
			return resp, err
		}

		c.log.Info().
			Str("request_id", req.ID.String()).
			Str("path", req.Path).
			Msg("session expired, refreshing")

		if rerr := c.refresh(ctx, next); rerr != nil {
			c.log.Warn().Err(rerr).Str("request_id", req.ID.String()).Msg("session refresh failed")
			return nil, &RefreshError{Err: rerr}
		}
		return h(ctx, req.Retry())
	}
	return h
}

func (c *Client) refresh(ctx context.Context, next Handler) error {
	do := func(ctx context.Context) error {
		req, err := NewRequest(http.MethodPost, refreshPath, nil)
		if err != nil {
			return err
		}
		_, err = next(ctx, req)
		return err
	}

	if c.refreshMode != RefreshShared {
		return do(ctx)
	}

	// The shared call must outlive any single waiter's cancellation.
	ch := c.refreshGroup.DoChan(refreshPath, func() (any, error) {
		return nil, do(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}
