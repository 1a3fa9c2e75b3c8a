package domain

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// Difficulty levels as the backend spells them.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Problem is a row of the problem list.
type Problem struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	Difficulty string   `json:"difficulty"`
	Slug       string   `json:"slug"`
	Tags       []string `json:"tags"`
	Solved     bool     `json:"user_submission_passed"`
}

// ProblemDetail is the full problem statement.
type ProblemDetail struct {
	ID           int64             `json:"id"`
	Title        string            `json:"title"`
	Slug         string            `json:"slug"`
	Description  string            `json:"description"`
	Difficulty   string            `json:"difficulty"`
	Tags         []string          `json:"tags"`
	Examples     json.RawMessage   `json:"examples,omitempty"`
	Constraints  string            `json:"constraints,omitempty"`
	Hints        []string          `json:"hints,omitempty"`
	Editorial    string            `json:"editorial,omitempty"`
	CodeSnippets map[string]string `json:"code_snippets,omitempty"`
	Author       string            `json:"user,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// Snippet returns the starter code for a language. Snippet keys are stored
// upper-cased by the backend.
func (p *ProblemDetail) Snippet(language string) (string, bool) {
	if p == nil || p.CodeSnippets == nil {
		return "", false
	}
	s, ok := p.CodeSnippets[strings.ToUpper(language)]
	return s, ok
}

// Languages returns the languages that have starter code, sorted.
func (p *ProblemDetail) Languages() []string {
	if p == nil {
		return nil
	}
	out := make([]string, 0, len(p.CodeSnippets))
	for lang := range p.CodeSnippets {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// Example is one worked input/output pair of a problem statement.
type Example struct {
	Label       string `json:"-"`
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

// ExampleList decodes the examples field. The backend stores either a list
// or an object keyed by label; keyed examples come back sorted by key.
func (p *ProblemDetail) ExampleList() ([]Example, error) {
	if p == nil || len(p.Examples) == 0 || string(p.Examples) == "null" {
		return nil, nil
	}
	var list []Example
	if err := json.Unmarshal(p.Examples, &list); err == nil {
		return list, nil
	}
	var keyed map[string]Example
	if err := json.Unmarshal(p.Examples, &keyed); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	list = make([]Example, 0, len(keys))
	for _, k := range keys {
		ex := keyed[k]
		ex.Label = k
		list = append(list, ex)
	}
	return list, nil
}

// Cursor is the opaque position after the last fetched item. Date and ID are
// always set together; the ID breaks ties between equal creation dates.
type Cursor struct {
	Date string `json:"date"`
	ID   int64  `json:"id"`
}

// ProblemPage is one page of the cursor-paginated problem list.
type ProblemPage struct {
	Success        bool      `json:"success"`
	Message        string    `json:"message,omitempty"`
	Data           []Problem `json:"data"`
	NextCursorDate *string   `json:"next_cursor_date"`
	NextCursorID   *int64    `json:"next_cursor_id"`
	HasMore        bool      `json:"has_more"`
}

// NextCursor returns the cursor to resume after this page, or nil when the
// server did not return one.
func (p *ProblemPage) NextCursor() *Cursor {
	if p == nil || p.NextCursorDate == nil || p.NextCursorID == nil {
		return nil
	}
	return &Cursor{Date: *p.NextCursorDate, ID: *p.NextCursorID}
}

var difficultySet = map[string]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

// ValidDifficulty returns true if d is a known difficulty level.
func ValidDifficulty(d string) bool {
	return difficultySet[d]
}
