package tui

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/arena/pkg/domain"
)

// Shimmer animation for the ARENA logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// logoFrames is one spotlight pass over the logo plus the rest after it.
const logoFrames = 48

var (
	logoDim    = [3]float64{0x31, 0x2e, 0x81}
	logoBright = [3]float64{0xc7, 0xd2, 0xfe}
)

// renderShimmerLogo renders "A R E N A" with a spotlight that sweeps across
// the letters and rests between passes.
func renderShimmerLogo(frame int) string {
	const text = "ARENA"
	centre := float64(frame%logoFrames)/6 - 1

	var b strings.Builder
	for i, r := range text {
		d := float64(i) - centre
		glow := math.Exp(-d * d / 1.5)
		if i > 0 {
			b.WriteString("  ")
		}
		style := lipgloss.NewStyle().Bold(true).Foreground(lerpColor(logoDim, logoBright, 0.25+0.75*glow))
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

func lerpColor(from, to [3]float64, t float64) lipgloss.Color {
	t = math.Max(0, math.Min(1, t))
	var rgb [3]int
	for i := range rgb {
		rgb[i] = int(math.Round(from[i] + (to[i]-from[i])*t))
	}
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", rgb[0], rgb[1], rgb[2]))
}

var (
	// Base styles
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b8fb0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#eef0ff")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c3c6dc"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565a78"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b8fb0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565a78"))

	searchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#818cf8")).
			Bold(true)

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#818cf8"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a5b4fc"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	solvedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8b8fb0")).
				Bold(true)

	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	selectedRowBg = lipgloss.NewStyle().
			Background(lipgloss.Color("#1e1b4b"))

	difficultyColors = map[string]lipgloss.Color{
		domain.DifficultyEasy:   lipgloss.Color("#4ade80"),
		domain.DifficultyMedium: lipgloss.Color("#facc15"),
		domain.DifficultyHard:   lipgloss.Color("#f87171"),
	}

	// Tags are open-ended, so each one hashes onto this palette.
	tagPalette = []lipgloss.Color{
		lipgloss.Color("#60a5fa"),
		lipgloss.Color("#f472b6"),
		lipgloss.Color("#34d399"),
		lipgloss.Color("#fb923c"),
		lipgloss.Color("#a78bfa"),
		lipgloss.Color("#22d3ee"),
		lipgloss.Color("#e879f9"),
		lipgloss.Color("#fbbf24"),
	}
)

// DifficultyStyle returns the color for a difficulty level.
func DifficultyStyle(d string) lipgloss.Style {
	if c, ok := difficultyColors[d]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#606878")).Bold(true)
}

// TagStyle returns a bold style colored for the given tag. The same tag
// always gets the same color.
func TagStyle(tag string) lipgloss.Style {
	if tag == "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#606878")).Bold(true)
	}
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(tag))) //nolint:errcheck // hash writes never fail
	return lipgloss.NewStyle().Foreground(tagPalette[h.Sum32()%uint32(len(tagPalette))]).Bold(true)
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpItem is a selectable link in the help overlay.
type helpItem struct {
	label string
	desc  string
	url   string
}

// helpItems lists the web pages reachable from the help overlay.
func helpItems(webURL string) []helpItem {
	base := strings.TrimRight(webURL, "/")
	return []helpItem{
		{"Problems", "problem set on the web", base + "/problems/"},
		{"Website", base, base + "/"},
	}
}

// helpView renders the interactive help overlay with a cursor.
func helpView(items []helpItem, cursor int) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#818cf8")).
		Bold(true).
		Render("A R E N A")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#818cf8"))
	linkDescStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	commands := []struct{ cmd, desc string }{
		{"arena", "Browse problems (interactive TUI)"},
		{"arena login", "Sign in with email and password"},
		{"arena problems", "List problems in the terminal"},
		{"arena submit", "Submit a solution file"},
		{"arena logout", "Clear your session"},
		{"arena version", "Show version"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", title)

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Links (enter to open)"))
	for i, item := range items {
		label := cmdStyle.Render(fmt.Sprintf("%-20s", item.label))
		prefix := "    "
		if i == cursor {
			label = selectedStyle.Render(fmt.Sprintf("%-20s", item.label))
			prefix = "  > "
		}
		fmt.Fprintf(&b, "%s%s  %s\n", prefix, label, linkDescStyle.Render(item.desc))
	}
	return b.String()
}
