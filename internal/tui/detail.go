package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/arena/internal/browser"
	"github.com/naveenspark/arena/pkg/domain"
)

// Desktop integrations; tests replace them.
var (
	writeClipboard = clipboard.WriteAll
	openBrowser    = browser.Open
)

// ProblemAPI fetches a full problem statement.
type ProblemAPI interface {
	GetProblem(ctx context.Context, slug string) (*domain.ProblemDetail, error)
}

type problemLoadedMsg struct {
	slug    string
	problem *domain.ProblemDetail
	err     error
}

type copyResultMsg struct {
	lang string
	err  error
}

type detailModel struct {
	api     ProblemAPI
	webURL  string
	slug    string
	problem *domain.ProblemDetail
	langs   []string
	langIdx int
	offset  int // first body line shown
	loading bool
	err     error
	status  string
	closed  bool
	width   int
	height  int
}

func newDetailModel(api ProblemAPI, webURL, slug string) detailModel {
	return detailModel{
		api:     api,
		webURL:  webURL,
		slug:    slug,
		loading: true,
	}
}

func (m detailModel) load() tea.Cmd {
	api, slug := m.api, m.slug
	return func() tea.Msg {
		p, err := api.GetProblem(context.Background(), slug)
		return problemLoadedMsg{slug: slug, problem: p, err: err}
	}
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case problemLoadedMsg:
		if msg.slug != m.slug {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.problem = msg.problem
			m.langs = msg.problem.Languages()
			m.langIdx = 0
		}
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.status = "copied " + strings.ToLower(msg.lang) + " starter code"
		}
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
		switch msg.String() {
		case "esc", "backspace":
			m.closed = true
		case "j", "down":
			m.offset++
		case "k", "up":
			if m.offset > 0 {
				m.offset--
			}
		case "l", "right":
			if len(m.langs) > 0 {
				m.langIdx = (m.langIdx + 1) % len(m.langs)
			}
		case "h", "left":
			if len(m.langs) > 0 {
				m.langIdx = (m.langIdx - 1 + len(m.langs)) % len(m.langs)
			}
		case "c":
			lang, code, ok := m.snippet()
			if !ok {
				m.status = "no starter code"
				return m, nil
			}
			return m, func() tea.Msg {
				return copyResultMsg{lang: lang, err: writeClipboard(code)}
			}
		case "o":
			target := browser.ProblemURL(m.webURL, m.slug)
			return m, func() tea.Msg { return openResultMsg{err: openBrowser(target)} }
		case "r":
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

// snippet returns the starter code for the selected language.
func (m detailModel) snippet() (lang, code string, ok bool) {
	if m.problem == nil || len(m.langs) == 0 {
		return "", "", false
	}
	lang = m.langs[m.langIdx]
	code, ok = m.problem.Snippet(lang)
	return lang, code, ok
}

func (m detailModel) View() string {
	var b strings.Builder
	b.WriteString(" " + dimStyle.Render("<- back (esc)") + "\n")

	if m.loading {
		b.WriteString(" " + dimStyle.Render("loading..."))
		return b.String()
	}
	if m.err != nil {
		b.WriteString(" " + errorStyle.Render(fmt.Sprintf("error: %v", m.err)))
		return b.String()
	}
	p := m.problem
	if p == nil {
		return b.String()
	}

	b.WriteString(" " + selectedStyle.Render(p.Title) + "  " + DifficultyStyle(p.Difficulty).Render(p.Difficulty) + "\n")
	meta := " "
	for i, tag := range p.Tags {
		if i > 0 {
			meta += metaStyle.Render(" · ")
		}
		meta += TagStyle(tag).Render(tag)
	}
	if when := formatTime(p.UpdatedAt); when != "" {
		meta += metaStyle.Render("  updated " + when)
	}
	b.WriteString(meta + "\n")
	if m.status != "" {
		b.WriteString(" " + statusStyle.Render(m.status) + "\n")
	}

	header := b.String()
	body := skipLines(m.body(), m.offset)
	return truncateToHeight(header+body, m.height)
}

// body renders the scrollable part of the statement.
func (m detailModel) body() string {
	p := m.problem
	var b strings.Builder

	width := m.width - 4
	if width < 40 {
		width = 40
	}
	wrap := lipgloss.NewStyle().Width(width)

	b.WriteString("\n")
	for _, line := range strings.Split(wrap.Render(p.Description), "\n") {
		b.WriteString(" " + normalStyle.Render(line) + "\n")
	}

	examples, err := p.ExampleList()
	if err == nil && len(examples) > 0 {
		b.WriteString("\n " + sectionHeaderStyle.Render("EXAMPLES") + "\n")
		for i, ex := range examples {
			label := fmt.Sprintf("%d", i+1)
			if ex.Label != "" {
				label += " (" + ex.Label + ")"
			}
			b.WriteString(" " + accentStyle.Render("example "+label) + "\n")
			b.WriteString("   " + metaStyle.Render("input:  ") + codeStyle.Render(ex.Input) + "\n")
			b.WriteString("   " + metaStyle.Render("output: ") + codeStyle.Render(ex.Output) + "\n")
			if ex.Explanation != "" {
				b.WriteString("   " + dimStyle.Render(ex.Explanation) + "\n")
			}
		}
	}

	if p.Constraints != "" {
		b.WriteString("\n " + sectionHeaderStyle.Render("CONSTRAINTS") + "\n")
		for _, line := range strings.Split(wrap.Render(p.Constraints), "\n") {
			b.WriteString(" " + normalStyle.Render(line) + "\n")
		}
	}

	for i, hint := range p.Hints {
		if i == 0 {
			b.WriteString("\n " + sectionHeaderStyle.Render("HINTS") + "\n")
		}
		b.WriteString(" " + dimStyle.Render(fmt.Sprintf("%d. %s", i+1, hint)) + "\n")
	}

	if lang, code, ok := m.snippet(); ok {
		b.WriteString("\n " + sectionHeaderStyle.Render("STARTER CODE") + "  ")
		for i, l := range m.langs {
			if i > 0 {
				b.WriteString(" ")
			}
			if l == lang {
				b.WriteString(searchStyle.Render("[" + strings.ToLower(l) + "]"))
			} else {
				b.WriteString(dimStyle.Render(strings.ToLower(l)))
			}
		}
		b.WriteString("\n")
		for _, line := range strings.Split(code, "\n") {
			b.WriteString("   " + codeStyle.Render(line) + "\n")
		}
	}
	return b.String()
}
