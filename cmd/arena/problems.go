package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/naveenspark/arena/internal/browse"
	"github.com/naveenspark/arena/internal/browser"
	"github.com/naveenspark/arena/internal/listing"
	"github.com/naveenspark/arena/internal/tui"
	"github.com/naveenspark/arena/pkg/domain"
)

// openURL opens a page in the desktop browser. Tests replace it.
var openURL = browser.Open

// parseArgs parses flags that may appear before or after positional
// arguments and returns the positionals in order.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
}

func (c *cli) runProblems(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("problems", flag.ContinueOnError)
	fs.SetOutput(c.out)
	tag := fs.String("tag", "", "only problems with this tag slug")
	search := fs.String("search", "", "title search")
	limit := fs.Int("limit", c.cfg.PageSize, "problems per page")
	all := fs.Bool("all", false, "fetch every page")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}
	if *tag != "" && *search != "" {
		return errors.New("use either -tag or -search, not both")
	}
	if *limit <= 0 {
		return fmt.Errorf("invalid -limit %d", *limit)
	}

	store := listing.NewStore[domain.Problem]()
	ctrl := browse.New(c.api, store, &listing.Catalog[domain.Tag]{},
		browse.WithPageSize(*limit),
		browse.WithLogger(c.log),
	)
	defer ctrl.Close()

	var err error
	switch {
	case *tag != "":
		err = ctrl.FilterByTag(ctx, *tag)
	case *search != "":
		err = ctrl.SearchNow(ctx, *search)
	default:
		err = ctrl.Reload(ctx)
		for *all && err == nil {
			err = ctrl.LoadMore(ctx)
		}
		if errors.Is(err, browse.ErrNoMorePages) {
			err = nil
		}
	}
	if err != nil {
		return explain("list problems", err)
	}

	snap := store.Snapshot()
	printProblems(c, snap.Items)
	switch {
	case len(snap.Items) == 0:
	case snap.HasMore:
		fmt.Fprintf(c.out, "\n%s\n", hintStyle.Render(plural(len(snap.Items), "problem")+" shown, more with -all")) //nolint:errcheck
	default:
		fmt.Fprintf(c.out, "\n%s\n", hintStyle.Render(plural(len(snap.Items), "problem"))) //nolint:errcheck
	}
	return nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func printProblems(c *cli, problems []domain.Problem) {
	if len(problems) == 0 {
		fmt.Fprintln(c.out, hintStyle.Render("no problems found")) //nolint:errcheck
		return
	}
	for _, p := range problems {
		mark := " "
		if p.Solved {
			mark = okStyle.Render("✓")
		}
		diff := tui.DifficultyStyle(p.Difficulty).Render(fmt.Sprintf("%-6s", p.Difficulty))
		line := fmt.Sprintf("%s %s  %-36s %s", mark, diff, p.Title, hintStyle.Render(p.Slug))
		if len(p.Tags) > 0 {
			line += "  " + hintStyle.Render(strings.Join(p.Tags, ", "))
		}
		fmt.Fprintln(c.out, line) //nolint:errcheck
	}
}

func (c *cli) runTags(ctx context.Context) error {
	tags, err := c.api.ListTags(ctx)
	if err != nil {
		return explain("list tags", err)
	}
	sort.Slice(tags, func(a, b int) bool { return tags[a].Slug < tags[b].Slug })
	for _, t := range tags {
		fmt.Fprintf(c.out, "%s  %s\n", tui.TagStyle(t.Slug).Render(fmt.Sprintf("%-24s", t.Slug)), t.Name) //nolint:errcheck
	}
	if len(tags) == 0 {
		fmt.Fprintln(c.out, hintStyle.Render("no tags")) //nolint:errcheck
	}
	return nil
}

func (c *cli) runShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(c.out)
	lang := fs.String("lang", "", "print the starter code for this language")
	pos, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return errors.New("usage: arena show SLUG [-lang LANGUAGE]")
	}
	slug := pos[0]

	p, err := c.api.GetProblem(ctx, slug)
	if err != nil {
		return explain("show "+slug, err)
	}

	if *lang != "" {
		code, ok := p.Snippet(*lang)
		if !ok {
			return fmt.Errorf("no %s starter code for %s (available: %s)", *lang, slug, strings.ToLower(strings.Join(p.Languages(), ", ")))
		}
		fmt.Fprintln(c.out, code) //nolint:errcheck
		return nil
	}

	fmt.Fprintf(c.out, "%s  %s\n", boldStyle.Render(p.Title), tui.DifficultyStyle(p.Difficulty).Render(p.Difficulty)) //nolint:errcheck
	if len(p.Tags) > 0 {
		fmt.Fprintln(c.out, hintStyle.Render(strings.Join(p.Tags, ", "))) //nolint:errcheck
	}
	fmt.Fprintf(c.out, "\n%s\n", strings.TrimSpace(p.Description)) //nolint:errcheck

	examples, err := p.ExampleList()
	if err != nil {
		c.log.Debug().Err(err).Str("slug", slug).Msg("unreadable examples")
	}
	for i, ex := range examples {
		label := ex.Label
		if label == "" {
			label = fmt.Sprintf("Example %d", i+1)
		}
		fmt.Fprintf(c.out, "\n%s\n  Input:  %s\n  Output: %s\n", boldStyle.Render(label), ex.Input, ex.Output) //nolint:errcheck
		if ex.Explanation != "" {
			fmt.Fprintf(c.out, "  %s\n", hintStyle.Render(ex.Explanation)) //nolint:errcheck
		}
	}
	if p.Constraints != "" {
		fmt.Fprintf(c.out, "\n%s\n%s\n", boldStyle.Render("Constraints"), strings.TrimSpace(p.Constraints)) //nolint:errcheck
	}
	for i, h := range p.Hints {
		fmt.Fprintf(c.out, "\n%s %s\n", boldStyle.Render(fmt.Sprintf("Hint %d:", i+1)), h) //nolint:errcheck
	}
	if langs := p.Languages(); len(langs) > 0 {
		fmt.Fprintf(c.out, "\n%s %s\n", hintStyle.Render("starter code:"), strings.ToLower(strings.Join(langs, ", "))) //nolint:errcheck
	}
	fmt.Fprintf(c.out, "%s\n", hintStyle.Render(browser.ProblemURL(c.cfg.WebURL, slug))) //nolint:errcheck
	return nil
}

// activeLanguages returns the languages the judge currently accepts,
// sorted by name.
func (c *cli) activeLanguages(ctx context.Context) ([]domain.Language, error) {
	all, err := c.api.ListLanguages(ctx)
	if err != nil {
		return nil, err
	}
	langs := make([]domain.Language, 0, len(all))
	for _, l := range all {
		if l.IsActive {
			langs = append(langs, l)
		}
	}
	sort.Slice(langs, func(a, b int) bool { return langs[a].Name < langs[b].Name })
	return langs, nil
}

func (c *cli) runLanguages(ctx context.Context) error {
	langs, err := c.activeLanguages(ctx)
	if err != nil {
		return explain("list languages", err)
	}
	if len(langs) == 0 {
		fmt.Fprintln(c.out, hintStyle.Render("no languages available")) //nolint:errcheck
		return nil
	}
	for _, l := range langs {
		fmt.Fprintln(c.out, strings.ToLower(l.Name)) //nolint:errcheck
	}
	return nil
}

func (c *cli) runOpen(args []string) error {
	slug := arg(args, 0)
	if slug == "" {
		return errors.New("usage: arena open SLUG")
	}
	target := browser.ProblemURL(c.cfg.WebURL, slug)
	if err := openURL(target); err != nil {
		fmt.Fprintf(c.out, "Could not open browser. Visit this URL manually:\n  %s\n", target) //nolint:errcheck
		return nil
	}
	fmt.Fprintf(c.out, "Opened %s\n", target) //nolint:errcheck
	return nil
}
