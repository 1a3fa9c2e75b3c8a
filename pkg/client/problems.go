package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/naveenspark/arena/pkg/domain"
)

// ListProblems fetches one page of the problem list. A nil cursor fetches the
// first page.
func (c *Client) ListProblems(ctx context.Context, limit int, cursor *domain.Cursor) (*domain.ProblemPage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	if cursor != nil {
		params.Set("cursor_date", cursor.Date)
		params.Set("cursor_id", strconv.FormatInt(cursor.ID, 10))
	}

	var page domain.ProblemPage
	if err := c.get(ctx, "/core/problem/problemset/?"+params.Encode(), &page); err != nil {
		return nil, fmt.Errorf("client.ListProblems: %w", err)
	}
	if !page.Success {
		if page.Message != "" {
			return nil, fmt.Errorf("client.ListProblems: %w: %s", ErrUnsuccessful, page.Message)
		}
		return nil, fmt.Errorf("client.ListProblems: %w", ErrUnsuccessful)
	}
	return &page, nil
}

// ListTags returns every problem tag.
func (c *Client) ListTags(ctx context.Context) ([]domain.Tag, error) {
	tags, err := getData[[]domain.Tag](ctx, c, "/core/problem/tags/")
	if err != nil {
		return nil, fmt.Errorf("client.ListTags: %w", err)
	}
	return tags, nil
}

// ProblemsByTag returns the complete, unpaginated set of problems for a tag.
func (c *Client) ProblemsByTag(ctx context.Context, slug string) ([]domain.Problem, error) {
	problems, err := getData[[]domain.Problem](ctx, c, "/core/problem/tags/"+url.PathEscape(slug)+"/")
	if err != nil {
		return nil, fmt.Errorf("client.ProblemsByTag: %w", err)
	}
	return problems, nil
}

// SearchProblems returns every problem whose title matches query.
func (c *Client) SearchProblems(ctx context.Context, query string) ([]domain.Problem, error) {
	params := url.Values{}
	params.Set("query", query)

	problems, err := getData[[]domain.Problem](ctx, c, "/core/problem/problemset/search/?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("client.SearchProblems: %w", err)
	}
	return problems, nil
}

// GetProblem fetches a single problem statement by slug.
func (c *Client) GetProblem(ctx context.Context, slug string) (*domain.ProblemDetail, error) {
	p, err := getData[domain.ProblemDetail](ctx, c, "/core/problem/"+url.PathEscape(slug)+"/")
	if err != nil {
		return nil, fmt.Errorf("client.GetProblem: %w", err)
	}
	return &p, nil
}

// ListLanguages returns the languages the judge accepts.
func (c *Client) ListLanguages(ctx context.Context) ([]domain.Language, error) {
	langs, err := getData[[]domain.Language](ctx, c, "/core/problem/languages/")
	if err != nil {
		return nil, fmt.Errorf("client.ListLanguages: %w", err)
	}
	return langs, nil
}
