// Package tui is the interactive problem browser.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/naveenspark/arena/internal/browse"
	"github.com/naveenspark/arena/internal/listing"
	"github.com/naveenspark/arena/internal/session"
	"github.com/naveenspark/arena/pkg/domain"
)

type view int

const (
	viewProblems view = iota
	viewDetail
)

// API is everything the browser reads from the backend.
type API interface {
	browse.API
	ProblemAPI
}

// Config tunes the browsing session behind the app.
type Config struct {
	WebURL    string
	PageSize  int
	Debounce  time.Duration
	DropStale bool
}

// App is the root Bubbletea model.
type App struct {
	api        API
	session    *session.Service
	ctrl       *browse.Controller
	watch      *listWatch
	errs       *errorFeed
	webURL     string
	view       view
	problems   problemsModel
	detail     detailModel
	helpOpen   bool
	helpCursor int
	status     string
	width      int
	height     int
	frame      int // logo shimmer animation frame
}

// NewApp creates the TUI and the browsing session it drives. sess may be
// nil, in which case no identity is shown and expiry is not tracked.
func NewApp(api API, sess *session.Service, cfg Config, log zerolog.Logger) App {
	errs := newErrorFeed()
	opts := []browse.Option{
		browse.WithStaleDrop(cfg.DropStale),
		browse.WithLogger(log),
		browse.WithReporter(errs.report),
	}
	if cfg.PageSize > 0 {
		opts = append(opts, browse.WithPageSize(cfg.PageSize))
	}
	if cfg.Debounce > 0 {
		opts = append(opts, browse.WithDebounce(cfg.Debounce))
	}
	ctrl := browse.New(api, listing.NewStore[domain.Problem](), &listing.Catalog[domain.Tag]{}, opts...)

	return App{
		api:      api,
		session:  sess,
		ctrl:     ctrl,
		watch:    watchList(ctrl.Items()),
		errs:     errs,
		webURL:   cfg.WebURL,
		problems: newProblemsModel(ctrl, cfg.WebURL),
	}
}

// Close ends the browsing session. Results still in flight are discarded.
func (a App) Close() {
	a.watch.stop()
	a.ctrl.Close()
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.problems.Init(), a.watch.next(), a.errs.next(), shimmerTickCmd())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + status(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.problems, _ = a.problems.Update(bodyMsg)
		a.detail, _ = a.detail.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case listChangedMsg:
		a.problems, _ = a.problems.Update(msg)
		return a, a.watch.next()

	case browseDoneMsg:
		a.problems, _ = a.problems.Update(msg)
		return a, nil

	case reportedErrMsg:
		a.status = a.describe(msg.err)
		return a, a.errs.next()

	case openDetailMsg:
		a.view = viewDetail
		a.detail = newDetailModel(a.api, a.webURL, msg.slug)
		a.detail, _ = a.detail.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height - 4})
		return a, a.detail.load()

	case problemLoadedMsg:
		if msg.err != nil {
			a.status = a.describe(msg.err)
		}
		a.detail, _ = a.detail.Update(msg)
		return a, nil

	case tea.KeyMsg:
		a.status = ""
		if a.helpOpen {
			items := helpItems(a.webURL)
			switch msg.String() {
			case "?", "esc":
				a.helpOpen = false
			case "q", "ctrl+c":
				return a, tea.Quit
			case "j", "down":
				if a.helpCursor < len(items)-1 {
					a.helpCursor++
				}
			case "k", "up":
				if a.helpCursor > 0 {
					a.helpCursor--
				}
			case "enter":
				openBrowser(items[a.helpCursor].url) //nolint:errcheck // best-effort browser open
			}
			return a, nil
		}

		if !a.isEditing() {
			switch msg.String() {
			case "?":
				a.helpOpen = true
				a.helpCursor = 0
				return a, nil
			case "q", "ctrl+c":
				return a, tea.Quit
			}
		} else if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewProblems:
		a.problems, cmd = a.problems.Update(msg)
	case viewDetail:
		a.detail, cmd = a.detail.Update(msg)
		if a.detail.closed {
			a.view = viewProblems
		}
	}
	return a, cmd
}

// describe turns a failure into the status line text. An expired session
// also signs the user out of the local store.
func (a App) describe(err error) string {
	if a.session != nil && a.session.Expire(err) {
		return "session expired -- run: arena login"
	}
	return fmt.Sprintf("error: %v", err)
}

func (a App) isEditing() bool {
	return a.view == viewProblems && a.problems.editing
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)
	logoPad := max((a.width-lipgloss.Width(logo))/2, 0)
	header := strings.Repeat(" ", logoPad) + logo

	who := ""
	if a.session != nil {
		st := a.session.Store().Snapshot()
		if st.IsAuthenticated {
			who = metaStyle.Render("signed in as ") + dimStyle.Render(st.User.DisplayName())
		} else if !st.Loading {
			who = metaStyle.Render("signed out")
		}
	}
	whoPad := max((a.width-lipgloss.Width(who))/2, 0)
	header += "\n" + strings.Repeat(" ", whoPad) + who

	var body, help string
	switch a.view {
	case viewProblems:
		body = a.problems.View()
		if a.problems.editing {
			help = " " + helpEntry("enter", "search now") + "  " + helpEntry("esc", "clear")
		} else {
			help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("/", "search") + "  " + helpEntry("t/T", "tag") + "  " + helpEntry("n", "more") + "  " + helpEntry("r", "reload") + "  " + helpEntry("o", "web") + "  " + helpEntry("?", "help") + "  " + helpEntry("q", "quit")
		}
	case viewDetail:
		body = a.detail.View()
		help = " " + helpEntry("j/k", "scroll") + "  " + helpEntry("h/l", "language") + "  " + helpEntry("c", "copy") + "  " + helpEntry("o", "web") + "  " + helpEntry("esc", "back")
	}

	if a.helpOpen {
		body = helpView(helpItems(a.webURL), a.helpCursor)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("esc", "close")
	}

	status := ""
	if a.status != "" {
		status = " " + errorStyle.Render(a.status)
	}

	// Chrome budget: header(2) + status(1) + help(1)
	chrome := 4
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, body, status, help)
}
