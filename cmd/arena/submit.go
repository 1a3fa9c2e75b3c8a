package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/naveenspark/arena/internal/browser"
	"github.com/naveenspark/arena/pkg/client"
	"github.com/naveenspark/arena/pkg/domain"
)

// pollInterval is the wait between judge status polls. Tests shorten it.
var pollInterval = time.Second

func (c *cli) runSubmit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	fs.SetOutput(c.out)
	noWait := fs.Bool("no-wait", false, "return after the judge accepts the submission")
	polls := fs.Uint64("polls", 30, "status polls before giving up")
	pos, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 3 {
		return errors.New("usage: arena submit SLUG LANGUAGE FILE (use - to read stdin)")
	}
	slug, language, file := pos[0], pos[1], pos[2]
	if err := c.requireSession(); err != nil {
		return err
	}

	src, err := c.readSource(file)
	if err != nil {
		return err
	}

	langs, err := c.activeLanguages(ctx)
	if err != nil {
		return explain("list languages", err)
	}
	lang, ok := matchLanguage(langs, language)
	if !ok {
		names := make([]string, 0, len(langs))
		for _, l := range langs {
			names = append(names, strings.ToLower(l.Name))
		}
		return fmt.Errorf("unknown language %q (available: %s)", language, strings.Join(names, ", "))
	}

	id, err := c.api.Submit(ctx, domain.SubmitRequest{Problem: slug, Language: lang.Name, SourceCode: src})
	if err != nil {
		return explain("submit", err)
	}
	c.log.Info().Int64("submission", id).Str("slug", slug).Str("language", lang.Name).Msg("submitted")
	fmt.Fprintf(c.out, "Submitted #%d, judging...\n", id) //nolint:errcheck
	if *noWait {
		return nil
	}

	res, err := c.api.WaitForSubmission(ctx, id, pollInterval, *polls)
	if errors.Is(err, client.ErrStillPending) {
		fmt.Fprintf(c.out, "Still judging. Check later: arena submissions %s %d\n", slug, id) //nolint:errcheck
		return nil
	}
	if err != nil {
		return explain("submission status", err)
	}
	printResult(c, res)
	fmt.Fprintln(c.out, hintStyle.Render(browser.SubmissionURL(c.cfg.WebURL, slug, id))) //nolint:errcheck
	if res.Status != domain.SubmissionPassed {
		return fmt.Errorf("submission #%d %s", id, strings.ToLower(res.Status))
	}
	return nil
}

func (c *cli) readSource(file string) (string, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(c.in)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", errors.New("source file is empty")
	}
	return string(data), nil
}

// matchLanguage finds a judge language by name, ignoring case.
func matchLanguage(langs []domain.Language, name string) (domain.Language, bool) {
	for _, l := range langs {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return domain.Language{}, false
}

func statusText(status string) string {
	switch status {
	case domain.SubmissionPassed, domain.VerdictAccepted:
		return okStyle.Render(status)
	case domain.SubmissionPending:
		return hintStyle.Render(status)
	default:
		return failStyle.Render(status)
	}
}

func printResult(c *cli, res *domain.SubmissionResult) {
	fmt.Fprintf(c.out, "%s  %d/%d test cases passed\n", statusText(res.Status), res.Passed(), len(res.TestCases)) //nolint:errcheck
	for i, tc := range res.TestCases {
		fmt.Fprintf(c.out, "  #%d %s\n", i+1, statusText(tc.Status)) //nolint:errcheck
		if tc.Status == domain.VerdictAccepted {
			continue
		}
		printCase(c, tc)
	}
}

func printCase(c *cli, tc domain.TestCaseResult) {
	rows := []struct{ label, value string }{
		{"input", tc.Input},
		{"expected", tc.Expected},
		{"stdout", tc.Stdout},
		{"stderr", tc.Stderr},
	}
	for _, r := range rows {
		if strings.TrimSpace(r.value) == "" {
			continue
		}
		fmt.Fprintf(c.out, "     %s %s\n", hintStyle.Render(fmt.Sprintf("%-9s", r.label)), strings.TrimSpace(r.value)) //nolint:errcheck
	}
}

func (c *cli) runSubmissions(ctx context.Context, args []string) error {
	slug := arg(args, 0)
	if slug == "" || len(args) > 2 {
		return errors.New("usage: arena submissions SLUG [ID]")
	}
	if err := c.requireSession(); err != nil {
		return err
	}
	if raw := arg(args, 1); raw != "" {
		id, err := strconv.ParseInt(strings.TrimPrefix(raw, "#"), 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid submission id %q", raw)
		}
		return c.showSubmission(ctx, slug, id)
	}

	subs, err := c.api.ListSubmissions(ctx, slug)
	if err != nil {
		return explain("list submissions", err)
	}
	if len(subs) == 0 {
		fmt.Fprintf(c.out, "No submissions for %s yet.\n", slug) //nolint:errcheck
		return nil
	}
	for _, s := range subs {
		fmt.Fprintf(c.out, "#%-6d %-8s %-10s %-9s %-9s %s\n", //nolint:errcheck
			s.ID, statusText(s.Status), strings.ToLower(s.Language),
			metric(s.Runtime, "s"), metric(s.Memory, "KB"),
			hintStyle.Render(s.CreatedAt.Local().Format("2006-01-02 15:04")))
	}
	return nil
}

func metric(v *float64, unit string) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + unit
}

func (c *cli) showSubmission(ctx context.Context, slug string, id int64) error {
	sub, err := c.api.GetSubmission(ctx, slug, id)
	if err != nil {
		return explain("show submission", err)
	}
	fmt.Fprintf(c.out, "%s  %s  %s\n", boldStyle.Render(fmt.Sprintf("#%d", sub.ID)), statusText(sub.Status), strings.ToLower(sub.Language)) //nolint:errcheck
	if sub.TotalTestCases > 0 {
		fmt.Fprintf(c.out, "%d/%d test cases passed\n", sub.TotalPassedTestCases, sub.TotalTestCases) //nolint:errcheck
	}
	for _, tc := range sub.FailedTestCases {
		fmt.Fprintf(c.out, "  %s\n", statusText(tc.Status)) //nolint:errcheck
		printCase(c, tc)
	}
	if sub.SourceCode != "" {
		fmt.Fprintf(c.out, "\n%s\n", strings.TrimRight(sub.SourceCode, "\n")) //nolint:errcheck
	}
	fmt.Fprintln(c.out, hintStyle.Render(browser.SubmissionURL(c.cfg.WebURL, slug, id))) //nolint:errcheck
	return nil
}
