package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/naveenspark/arena/pkg/domain"
)

// ErrStillPending is returned by WaitForSubmission when the judge has not
// finished within the allowed number of polls.
var ErrStillPending = errors.New("submission still pending")

// ListSubmissions returns the signed-in user's submissions for a problem,
// newest first.
func (c *Client) ListSubmissions(ctx context.Context, slug string) ([]domain.Submission, error) {
	subs, err := getData[[]domain.Submission](ctx, c, "/core/problem/"+url.PathEscape(slug)+"/submissions/")
	if err != nil {
		return nil, fmt.Errorf("client.ListSubmissions: %w", err)
	}
	return subs, nil
}

// GetSubmission fetches one submission with its test case summary.
func (c *Client) GetSubmission(ctx context.Context, slug string, id int64) (*domain.SubmissionDetail, error) {
	var resp struct {
		envelope[domain.SubmissionDetail]
		TotalTestCases       int                     `json:"totalTestCases"`
		TotalPassedTestCases int                     `json:"totalPassedTestCases"`
		FailedTestCases      []domain.TestCaseResult `json:"failedTestCases"`
	}
	path := "/core/problem/" + url.PathEscape(slug) + "/submissions/" + strconv.FormatInt(id, 10) + "/"
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("client.GetSubmission: %w", err)
	}
	if err := resp.check(); err != nil {
		return nil, fmt.Errorf("client.GetSubmission: %w", err)
	}
	detail := resp.Data
	detail.TotalTestCases = resp.TotalTestCases
	detail.TotalPassedTestCases = resp.TotalPassedTestCases
	detail.FailedTestCases = resp.FailedTestCases
	return &detail, nil
}

// Submit sends a solution to the judge and returns the submission id.
func (c *Client) Submit(ctx context.Context, req domain.SubmitRequest) (int64, error) {
	var resp struct {
		SubmissionID int64 `json:"submission_id"`
	}
	if err := c.post(ctx, "/core/problem/submit/", req, &resp); err != nil {
		return 0, fmt.Errorf("client.Submit: %w", err)
	}
	return resp.SubmissionID, nil
}

// SubmissionStatus polls the judge once for a submission's state.
func (c *Client) SubmissionStatus(ctx context.Context, id int64) (*domain.SubmissionResult, error) {
	var res domain.SubmissionResult
	if err := c.get(ctx, "/core/problem/submit/"+strconv.FormatInt(id, 10)+"/", &res); err != nil {
		return nil, fmt.Errorf("client.SubmissionStatus: %w", err)
	}
	return &res, nil
}

// WaitForSubmission polls every interval until the submission is no longer
// pending, giving up after maxPolls attempts. The last observed result is
// returned together with ErrStillPending when the judge is not done.
func (c *Client) WaitForSubmission(ctx context.Context, id int64, interval time.Duration, maxPolls uint64) (*domain.SubmissionResult, error) {
	if maxPolls == 0 {
		maxPolls = 1
	}
	var last *domain.SubmissionResult
	backoff := retry.WithMaxRetries(maxPolls-1, retry.NewConstant(interval))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		res, err := c.SubmissionStatus(ctx, id)
		if err != nil {
			return err
		}
		last = res
		if !res.Final() {
			return retry.RetryableError(ErrStillPending)
		}
		return nil
	})
	if err != nil {
		return last, fmt.Errorf("client.WaitForSubmission: %w", err)
	}
	return last, nil
}
