package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/arena/internal/browse"
	"github.com/naveenspark/arena/internal/browser"
	"github.com/naveenspark/arena/internal/listing"
	"github.com/naveenspark/arena/pkg/domain"
)

// browseDoneMsg reports how a controller call triggered by a key ended.
type browseDoneMsg struct {
	op  string
	err error
}

// openDetailMsg asks the app to show one problem.
type openDetailMsg struct {
	slug string
}

type openResultMsg struct{ err error }

type problemsModel struct {
	ctrl    *browse.Controller
	webURL  string
	list    listing.State[domain.Problem]
	started bool
	cursor  int
	search  string
	editing bool // true when typing in search
	tagIdx  int  // index into the tag catalog, -1 for every problem
	status  string
	width   int
	height  int
}

func newProblemsModel(ctrl *browse.Controller, webURL string) problemsModel {
	return problemsModel{
		ctrl:   ctrl,
		webURL: webURL,
		list:   ctrl.Items().Snapshot(),
		tagIdx: -1,
	}
}

func (m problemsModel) run(op string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return browseDoneMsg{op: op, err: fn(context.Background())}
	}
}

func (m problemsModel) Init() tea.Cmd {
	return m.run("start", m.ctrl.Start)
}

func (m problemsModel) Update(msg tea.Msg) (problemsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case listChangedMsg:
		m.list = msg.state
		if m.cursor >= len(m.list.Items) {
			m.cursor = max(len(m.list.Items)-1, 0)
		}
		return m, nil

	case browseDoneMsg:
		if msg.op == "start" {
			m.started = true
		}
		switch {
		case msg.err == nil:
			if msg.op == "reload" || msg.op == "tag" {
				m.cursor = 0
			}
		case errors.Is(msg.err, browse.ErrNoMorePages):
			m.status = "end of list"
		}
		// Fetch failures are shown from the reporter feed.
		return m, nil

	case openResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("open failed: %v", msg.err)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		if m.editing {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m problemsModel) updateSearch(msg tea.KeyMsg) (problemsModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editing = false
		m.cursor = 0
		ctrl := m.ctrl
		return m, func() tea.Msg {
			ctrl.FlushSearch()
			return browseDoneMsg{op: "search"}
		}
	case "esc":
		m.editing = false
		m.search = ""
		// An empty query cancels whatever search is still pending.
		m.ctrl.Search("")
		if m.ctrl.View().Mode == browse.ModeSearch {
			m.cursor = 0
			return m, m.run("reload", m.ctrl.Reload)
		}
	default:
		next := editRune(m.search, msg.String())
		if next != m.search {
			m.search = next
			m.ctrl.Search(next)
		}
	}
	return m, nil
}

func (m problemsModel) updateList(msg tea.KeyMsg) (problemsModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.list.Items)-1 {
			m.cursor++
		}
		if m.atEnd() {
			return m, m.loadMore()
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = max(len(m.list.Items)-1, 0)
		if m.atEnd() {
			return m, m.loadMore()
		}
	case "n":
		return m, m.run("more", m.ctrl.LoadMore)
	case "enter":
		if p, ok := m.selected(); ok {
			slug := p.Slug
			return m, func() tea.Msg { return openDetailMsg{slug: slug} }
		}
	case "/":
		m.editing = true
	case "t":
		return m.cycleTag(1)
	case "T":
		return m.cycleTag(-1)
	case "r":
		m.search = ""
		m.tagIdx = -1
		m.cursor = 0
		return m, m.run("reload", m.ctrl.Reload)
	case "o":
		if p, ok := m.selected(); ok {
			target := browser.ProblemURL(m.webURL, p.Slug)
			return m, func() tea.Msg { return openResultMsg{err: openBrowser(target)} }
		}
	}
	return m, nil
}

// cycleTag steps through the tag catalog; stepping past either end goes
// back to the full list.
func (m problemsModel) cycleTag(step int) (problemsModel, tea.Cmd) {
	tags := m.ctrl.Tags().Items()
	if len(tags) == 0 {
		m.status = "no tags"
		return m, nil
	}
	m.tagIdx += step
	switch {
	case m.tagIdx >= len(tags):
		m.tagIdx = -1
	case m.tagIdx < -1:
		m.tagIdx = len(tags) - 1
	}
	m.search = ""
	slug := ""
	if m.tagIdx >= 0 {
		slug = tags[m.tagIdx].Slug
	}
	return m, m.run("tag", func(ctx context.Context) error {
		return m.ctrl.FilterByTag(ctx, slug)
	})
}

// atEnd reports whether the cursor sits on the last row of a list that has
// more pages, which is where scrolling fetches the next one.
func (m problemsModel) atEnd() bool {
	n := len(m.list.Items)
	return n > 0 && m.cursor == n-1 && m.list.HasMore && !m.list.Loading
}

func (m problemsModel) loadMore() tea.Cmd {
	return m.run("more", m.ctrl.LoadMore)
}

func (m problemsModel) selected() (domain.Problem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.list.Items) {
		return domain.Problem{}, false
	}
	return m.list.Items[m.cursor], true
}

func (m problemsModel) View() string {
	var b strings.Builder

	view := m.ctrl.View()
	title := " " + sectionHeaderStyle.Render("PROBLEMS")
	switch view.Mode {
	case browse.ModeTag:
		title += "  " + TagStyle(view.Label).Render("#"+view.Label)
	case browse.ModeSearch:
		title += "  " + searchStyle.Render(fmt.Sprintf("%q", view.Label))
	}
	b.WriteString(title + "\n")

	if m.editing {
		b.WriteString(" " + searchStyle.Render("/ "+m.search+"█"))
	} else if m.search != "" {
		b.WriteString(" " + searchStyle.Render("/ "+m.search))
	} else {
		b.WriteString(" " + dimStyle.Render("/ search..."))
	}
	b.WriteString("\n")

	b.WriteString(m.tagBar() + "\n")

	sepW := m.width - 2
	if sepW < 4 {
		sepW = 4
	}
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", sepW)) + "\n")

	if m.status != "" {
		b.WriteString(" " + statusStyle.Render(m.status) + "\n")
	}

	if len(m.list.Items) == 0 {
		switch {
		case m.list.Loading || !m.started:
			b.WriteString(" " + dimStyle.Render("loading..."))
		default:
			b.WriteString(" " + dimStyle.Render("no problems found"))
		}
		return b.String()
	}

	b.WriteString(m.viewRows())
	b.WriteString(m.footer())
	return truncateToHeight(b.String(), m.height)
}

func (m problemsModel) tagBar() string {
	tags := m.ctrl.Tags().Items()
	if len(tags) == 0 {
		return " " + dimStyle.Render("t tags")
	}
	var b strings.Builder
	b.WriteString(" ")
	used := 1
	if m.tagIdx == -1 {
		b.WriteString(selectedStyle.Render("all"))
	} else {
		b.WriteString(dimStyle.Render("all"))
	}
	used += 3
	for i, tag := range tags {
		needed := 2 + len(tag.Name)
		if m.width > 0 && used+needed > m.width {
			break
		}
		b.WriteString("  ")
		if i == m.tagIdx {
			b.WriteString(TagStyle(tag.Slug).Render(tag.Name))
		} else {
			b.WriteString(dimStyle.Render(tag.Name))
		}
		used += needed
	}
	return b.String()
}

func (m problemsModel) viewRows() string {
	var b strings.Builder

	const chrome = 6 // title + search + tags + separator + status + footer
	maxVisible := m.height - chrome
	if maxVisible < 3 {
		maxVisible = 3
	}
	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}

	showTags := m.width >= 70
	for i := start; i < len(m.list.Items) && i < start+maxVisible; i++ {
		p := m.list.Items[i]

		cursor := "  "
		titleStyle := dimStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			titleStyle = normalStyle.Bold(true)
		}

		mark := "  "
		if p.Solved {
			mark = solvedStyle.Render("✓") + " "
		}

		diff := DifficultyStyle(p.Difficulty).Render(fmt.Sprintf("%-6s", p.Difficulty))

		right := ""
		rightWidth := 0
		if showTags && len(p.Tags) > 0 {
			tagText := truncStr(strings.Join(p.Tags, ", "), 24)
			right = " " + metaStyle.Render(tagText)
			rightWidth = 1 + lipgloss.Width(tagText)
		}

		titleWidth := m.width - 2 - 2 - 7 - rightWidth - 1 // cursor + mark + difficulty + gaps
		if titleWidth < 10 {
			titleWidth = 10
		}
		titleText := fmt.Sprintf("%-*s", titleWidth, truncStr(oneLine(p.Title), titleWidth))

		line := cursor + mark + diff + " " + titleStyle.Render(titleText) + right
		if i == m.cursor {
			padded := line + strings.Repeat(" ", max(m.width-lipgloss.Width(line), 0))
			b.WriteString(selectedRowBg.Render(padded) + "\n")
		} else {
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

func (m problemsModel) footer() string {
	count := fmt.Sprintf("%d problems", len(m.list.Items))
	switch {
	case m.list.Loading:
		return " " + metaStyle.Render(count) + "  " + dimStyle.Render("loading...")
	case m.list.HasMore:
		return " " + metaStyle.Render(count) + "  " + dimStyle.Render("more below (n)")
	default:
		return " " + metaStyle.Render(count)
	}
}
