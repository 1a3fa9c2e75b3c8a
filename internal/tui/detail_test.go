package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/arena/pkg/domain"
)

type stubProblemAPI struct {
	problem *domain.ProblemDetail
	err     error
}

func (s stubProblemAPI) GetProblem(context.Context, string) (*domain.ProblemDetail, error) {
	return s.problem, s.err
}

func testProblemDetail() *domain.ProblemDetail {
	return &domain.ProblemDetail{
		Title:       "Two Sum",
		Slug:        "two-sum",
		Description: "Find two numbers that add up to target.",
		Difficulty:  domain.DifficultyEasy,
		Tags:        []string{"arrays", "hash-table"},
		Examples:    json.RawMessage(`[{"input":"[2,7,11,15], 9","output":"[0,1]","explanation":"2 + 7 = 9"}]`),
		Constraints: "2 <= nums.length <= 10^4",
		Hints:       []string{"Use a map."},
		CodeSnippets: map[string]string{
			"PYTHON": "def two_sum(nums, target):\n    pass",
			"CPP":    "vector<int> twoSum(vector<int>& nums, int target) {}",
		},
	}
}

func loadedDetail(t *testing.T, p *domain.ProblemDetail) detailModel {
	t.Helper()
	m := newDetailModel(stubProblemAPI{problem: p}, "https://arena.test", "two-sum")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	m, _ = m.Update(m.load()())
	if m.loading {
		t.Fatal("expected loading=false after problemLoadedMsg")
	}
	return m
}

func TestDetailRendersStatement(t *testing.T) {
	m := loadedDetail(t, testProblemDetail())

	view := m.View()
	for _, want := range []string{
		"Two Sum", "Easy", "hash-table",
		"Find two numbers", "[2,7,11,15], 9", "2 + 7 = 9",
		"CONSTRAINTS", "Use a map.",
		"[cpp]", "vector<int> twoSum",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in detail view, got:\n%s", want, view)
		}
	}
}

func TestDetailLanguageCycling(t *testing.T) {
	m := loadedDetail(t, testProblemDetail())

	if lang, _, _ := m.snippet(); lang != "CPP" {
		t.Fatalf("initial language = %q, want CPP", lang)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	if lang, _, _ := m.snippet(); lang != "PYTHON" {
		t.Errorf("after 'l' language = %q, want PYTHON", lang)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	if lang, _, _ := m.snippet(); lang != "CPP" {
		t.Errorf("'l' should wrap, got %q", lang)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	if lang, _, _ := m.snippet(); lang != "PYTHON" {
		t.Errorf("'h' should wrap backwards, got %q", lang)
	}
}

func TestDetailCopySnippet(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	m := loadedDetail(t, testProblemDetail())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	if cmd == nil {
		t.Fatal("expected copy command")
	}
	m, _ = m.Update(cmd())

	if copied != "def two_sum(nums, target):\n    pass" {
		t.Errorf("copied %q", copied)
	}
	if !strings.Contains(m.View(), "copied python starter code") {
		t.Errorf("expected copy status, got:\n%s", m.View())
	}
}

func TestDetailCopyFailure(t *testing.T) {
	orig := writeClipboard
	writeClipboard = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { writeClipboard = orig })

	m := loadedDetail(t, testProblemDetail())
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	m, _ = m.Update(cmd())
	if !strings.Contains(m.status, "no clipboard") {
		t.Errorf("status = %q, want clipboard error", m.status)
	}
}

func TestDetailCopyWithoutSnippet(t *testing.T) {
	p := testProblemDetail()
	p.CodeSnippets = nil
	m := loadedDetail(t, p)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	if cmd != nil {
		t.Error("expected no command without starter code")
	}
	if m.status != "no starter code" {
		t.Errorf("status = %q", m.status)
	}
}

func TestDetailOpenInBrowser(t *testing.T) {
	var opened string
	orig := openBrowser
	openBrowser = func(target string) error { opened = target; return nil }
	t.Cleanup(func() { openBrowser = orig })

	m := loadedDetail(t, testProblemDetail())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	if cmd == nil {
		t.Fatal("expected open command")
	}
	cmd()
	if opened != "https://arena.test/problems/two-sum/" {
		t.Errorf("opened %q", opened)
	}
}

func TestDetailScrollAndBack(t *testing.T) {
	m := loadedDetail(t, testProblemDetail())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	if m.offset != 0 {
		t.Errorf("offset must not go negative, got %d", m.offset)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if m.offset != 2 {
		t.Errorf("offset = %d, want 2", m.offset)
	}
	if strings.Contains(m.View(), "Find two numbers") {
		t.Error("description should have scrolled out of view")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.closed {
		t.Error("expected closed=true after esc")
	}
}

func TestDetailIgnoresOtherSlug(t *testing.T) {
	m := newDetailModel(stubProblemAPI{}, "", "two-sum")
	m, _ = m.Update(problemLoadedMsg{slug: "other", problem: testProblemDetail()})
	if !m.loading || m.problem != nil {
		t.Error("a result for another problem must be ignored")
	}
}
