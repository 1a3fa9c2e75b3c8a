package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeArena is a minimal backend: cookie auth with refresh, a paginated
// problem set and a judge that finishes after a few polls.
type fakeArena struct {
	mu        sync.Mutex
	access    string
	expired   bool
	stuck     bool // refresh succeeds but the session stays expired
	noRefresh bool // refresh is rejected
	refreshes int
	loggedOut bool
	polls     int
	verdict   string
	submitted map[string]string
}

func newFakeArena(t *testing.T) (*fakeArena, *httptest.Server) {
	t.Helper()
	f := &fakeArena{access: "tok-1", verdict: "Passed", submitted: map[string]string{}}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "ada@example.com" || body["password"] != "secret" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid credentials"})
			return
		}
		f.setCookies(w)
		writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{
			"email": "ada@example.com", "username": "ada", "first_name": "Ada", "last_name": "Lovelace",
		}})
	})
	mux.HandleFunc("POST /api/auth/register/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Invalid data",
			"error":   map[string][]string{"email": {"user with this email already exists."}},
		})
	})
	mux.HandleFunc("POST /api/auth/logout/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.loggedOut = true
		f.mu.Unlock()
		http.SetCookie(w, &http.Cookie{Name: "access", Path: "/", MaxAge: -1})
		http.SetCookie(w, &http.Cookie{Name: "refresh", Path: "/", MaxAge: -1})
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})
	mux.HandleFunc("POST /api/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		noRefresh := f.noRefresh
		f.mu.Unlock()
		if c, err := r.Cookie("refresh"); err != nil || c.Value != "ref" || noRefresh {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Refresh token missing"})
			return
		}
		f.mu.Lock()
		f.refreshes++
		if !f.stuck {
			f.expired = false
		}
		f.access = "tok-" + strconv.Itoa(f.refreshes+1)
		f.mu.Unlock()
		f.setCookies(w)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})
	mux.HandleFunc("GET /api/auth/profile/", f.authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{
			"email": "ada@example.com", "username": "ada", "first_name": "Ada", "last_name": "Lovelace", "role": "user",
		}})
	}))
	mux.HandleFunc("PATCH /api/auth/profile/", f.authed(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, map[string]any{"updated_data": map[string]any{
			"email": "ada@example.com", "username": "ada", "first_name": "Ada", "last_name": "Lovelace", "bio": body["bio"],
		}})
	}))

	mux.HandleFunc("GET /api/core/problem/problemset/", func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		start := 0
		if id := r.URL.Query().Get("cursor_id"); id != "" {
			n, _ := strconv.Atoi(id)
			start = n
		}
		var data []map[string]any
		for i := start; i < 5 && len(data) < limit; i++ {
			data = append(data, problemJSON(i+1))
		}
		page := map[string]any{"success": true, "data": data, "has_more": start+len(data) < 5}
		if len(data) > 0 {
			page["next_cursor_date"] = "2025-01-01T00:00:00Z"
			page["next_cursor_id"] = start + len(data)
		}
		writeJSON(w, http.StatusOK, page)
	})
	mux.HandleFunc("GET /api/core/problem/problemset/search/", func(w http.ResponseWriter, r *http.Request) {
		var data []map[string]any
		if strings.Contains("problem 3", r.URL.Query().Get("query")) {
			data = append(data, problemJSON(3))
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
	})
	mux.HandleFunc("GET /api/core/problem/tags/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": []map[string]any{
			{"id": 2, "name": "Graphs", "slug": "graphs"},
			{"id": 1, "name": "Arrays", "slug": "arrays"},
		}})
	})
	mux.HandleFunc("GET /api/core/problem/tags/{slug}/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": []map[string]any{problemJSON(2), problemJSON(4)}})
	})
	mux.HandleFunc("GET /api/core/problem/languages/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": []map[string]any{
			{"id": 1, "langId": 71, "name": "Python", "isActive": true},
			{"id": 2, "langId": 54, "name": "Cpp", "isActive": true},
			{"id": 3, "langId": 62, "name": "Java", "isActive": false},
		}})
	})
	mux.HandleFunc("POST /api/core/problem/submit/", f.authed(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.submitted = body
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"submission_id": 42})
	}))
	// Slug routes overlap with the fixed ones above, so they share one
	// handler.
	mux.HandleFunc("GET /api/core/problem/{path...}", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.PathValue("path"), "/"), "/")
		switch {
		case len(parts) == 2 && parts[0] == "submit":
			f.authed(f.status)(w, r)
		case len(parts) == 1:
			f.problem(w, parts[0])
		case len(parts) == 2 && parts[1] == "submissions":
			f.authed(f.submissions)(w, r)
		case len(parts) == 3 && parts[1] == "submissions":
			f.authed(f.submission)(w, r)
		default:
			http.NotFound(w, r)
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeArena) problem(w http.ResponseWriter, slug string) {
	if slug != "two-sum" {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Problem not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{
		"title":       "Two Sum",
		"slug":        "two-sum",
		"difficulty":  "Easy",
		"description": "Find two numbers that add up to target.",
		"tags":        []string{"arrays"},
		"examples":    []map[string]string{{"input": "[2,7], 9", "output": "[0,1]"}},
		"constraints": "2 <= n",
		"hints":       []string{"Use a map."},
		"code_snippets": map[string]string{
			"PYTHON": "def two_sum(nums, target):\n    pass",
		},
	}})
}

// status reports Pending for the first two polls and the verdict after.
func (f *fakeArena) status(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.polls++
	polls, verdict := f.polls, f.verdict
	f.mu.Unlock()
	if polls < 3 {
		writeJSON(w, http.StatusOK, map[string]any{"submission_id": 42, "status": "Pending"})
		return
	}
	second := "Accepted"
	if verdict != "Passed" {
		second = "Wrong Answer"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"submission_id": 42,
		"status":        verdict,
		"testcases": []map[string]any{
			{"id": 1, "status": "Accepted"},
			{"id": 2, "status": second, "input": "[3,3], 6", "expected": "[0,1]", "stdout": "[1,0]"},
		},
	})
}

func (f *fakeArena) submissions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": []map[string]any{
		{"id": 42, "language": "Python", "status": "Passed", "runtime": 0.04, "created_at": "2025-03-01T10:00:00Z"},
		{"id": 41, "language": "Python", "status": "Failed", "created_at": "2025-03-01T09:00:00Z"},
	}})
}

func (f *fakeArena) submission(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":              true,
		"data":                 map[string]any{"id": 41, "status": "Failed", "language": "Python", "source_code": "print(1)\n"},
		"totalTestCases":       2,
		"totalPassedTestCases": 1,
		"failedTestCases":      []map[string]any{{"id": 2, "status": "Wrong Answer", "expected": "[0,1]", "stdout": "1"}},
	})
}

func (f *fakeArena) counts() (refreshes, polls int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshes, f.polls
}

func (f *fakeArena) lastSubmission() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitted
}

func (f *fakeArena) setCookies(w http.ResponseWriter) {
	f.mu.Lock()
	access := f.access
	f.mu.Unlock()
	http.SetCookie(w, &http.Cookie{Name: "access", Value: access, Path: "/", HttpOnly: true})
	http.SetCookie(w, &http.Cookie{Name: "refresh", Value: "ref", Path: "/", HttpOnly: true})
}

// authed rejects requests whose access cookie is missing, stale or
// expired with 403, the backend's expiry status.
func (f *fakeArena) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		access, expired := f.access, f.expired
		f.mu.Unlock()
		c, err := r.Cookie("access")
		if err != nil || c.Value != access || expired {
			writeJSON(w, http.StatusForbidden, map[string]any{"detail": "Given token not valid for any token type"})
			return
		}
		next(w, r)
	}
}

func problemJSON(n int) map[string]any {
	return map[string]any{
		"id":         n,
		"title":      fmt.Sprintf("Problem %d", n),
		"slug":       fmt.Sprintf("problem-%d", n),
		"difficulty": "Medium",
		"tags":       []string{"arrays"},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// setupEnv points the CLI at srv with a private home directory.
func setupEnv(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("ARENA_HOME", home)
	t.Setenv("ARENA_API_URL", srv.URL+"/api")
	t.Setenv("ARENA_WEB_URL", "https://arena.test")
	t.Setenv("ARENA_LOG_FILE", filepath.Join(home, "arena.log"))
	return home
}

func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(int) ([]byte, error) {
		if len(answers) == 0 {
			return nil, errors.New("no more passwords")
		}
		next := answers[0]
		answers = answers[1:]
		return []byte(next), nil
	}
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &out)
	return out.String(), err
}

func signIn(t *testing.T) {
	t.Helper()
	stubPasswords(t, "secret")
	_, err := runCLI(t, "ada@example.com\n", "login")
	require.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "arena dev\n", out)
}

func TestHelpListsCommands(t *testing.T) {
	_, srv := newFakeArena(t)
	setupEnv(t, srv)

	out, err := runCLI(t, "", "help")
	require.NoError(t, err)
	for _, cmd := range []string{"arena login", "arena problems", "arena submit", "https://arena.test"} {
		assert.Contains(t, out, cmd)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, srv := newFakeArena(t)
	setupEnv(t, srv)

	_, err := runCLI(t, "", "frobnicate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "frobnicate"`)
}

func TestNoSessionPrintsGreeting(t *testing.T) {
	_, srv := newFakeArena(t)
	setupEnv(t, srv)

	out, err := runCLI(t, "")
	require.NoError(t, err)
	assert.Contains(t, out, "arena login")
}

func TestLoginSavesCookies(t *testing.T) {
	_, srv := newFakeArena(t)
	home := setupEnv(t, srv)
	stubPasswords(t, "secret")

	out, err := runCLI(t, "ada@example.com\n", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as")
	assert.Contains(t, out, "Ada Lovelace")

	data, err := os.ReadFile(filepath.Join(home, "cookies.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "tok-1")
	info, err := os.Stat(filepath.Join(home, "cookies.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoginFailureShowsServerMessage(t *testing.T) {
	_, srv := newFakeArena(t)
	home := setupEnv(t, srv)
	stubPasswords(t, "wrong")

	_, err := runCLI(t, "ada@example.com\n", "login")
	require.Error(t, err)
	assert.Equal(t, "login failed: Invalid credentials", err.Error())
	assert.NoFileExists(t, filepath.Join(home, "cookies.json"))
}

func TestLoginEmailFromArgument(t *testing.T) {
	_, srv := newFakeArena(t)
	setupEnv(t, srv)
	stubPasswords(t, "secret")

	out, err := runCLI(t, "", "login", "ada@example.com")
	require.NoError(t, err)
	assert.NotContains(t, out, "Email:")
}

func TestSignupShowsFieldErrors(t *testing.T) {
	_, srv := newFakeArena(t)
	setupEnv(t, srv)
	stubPasswords(t, "pw", "pw")

	_, err := runCLI(t, "taken@example.com\n", "signup")
	require.Error(t, err)
	assert.Equal(t, "signup failed: email: user with this email already exists.", err.Error())
}

func TestSignupPasswordMismatch(t *testing.T) {
	_, srv := newFakeArena(t)
	setupEnv(t, srv)
	stubPasswords(t, "one", "two")

	_, err := runCLI(t, "", "signup", "new@example.com")
	require.EqualError(t, err, "passwords do not match")
}

func TestWhoamiRequiresSession(t *testing.T) {
	_, srv := newFakeArena(t)
	setupEnv(t, srv)

	_, err := runCLI(t, "", "whoami")
	require.ErrorIs(t, err, errSignedOut)
}

func TestWhoamiShowsTokenExpiry(t *testing.T) {
	f, srv := newFakeArena(t)
	setupEnv(t, srv)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(5 * time.Minute).Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	f.access = token
	signIn(t)

	out, err := runCLI(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "access token expires")
}

func TestExpiredSessionIsRefreshedAndSaved(t *testing.T) {
	f, srv := newFakeArena(t)
	home := setupEnv(t, srv)
	signIn(t)

	f.mu.Lock()
	f.expired = true
	f.mu.Unlock()

	out, err := runCLI(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "ada@example.com")
	refreshes, _ := f.counts()
	assert.Equal(t, 1, refreshes)

	data, err := os.ReadFile(filepath.Join(home, "cookies.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "tok-2")
	assert.NotContains(t, string(data), "tok-1")
}

func TestReplayedExpiryIsNotRefreshedAgain(t *testing.T) {
	f, srv := newFakeArena(t)
	setupEnv(t, srv)
	signIn(t)

	f.mu.Lock()
	f.expired, f.stuck = true, true
	f.mu.Unlock()

	_, err := runCLI(t, "", "profile")
	require.Error(t, err)
	assert.Equal(t, "profile: Given token not valid for any token type", err.Error())
	refreshes, _ := f.counts()
	assert.Equal(t, 1, refreshes, "a replayed request must not refresh again")
}

func TestFailedRefreshAsksForLogin(t *testing.T) {
	f, srv := newFakeArena(t)
	home := setupEnv(t, srv)
	signIn(t)

	f.mu.Lock()
	f.expired, f.noRefresh = true, true
	f.mu.Unlock()

	_, err := runCLI(t, "", "whoami")
	require.EqualError(t, err, "whoami: session expired, run: arena login")
	// The cookies are kept: the server did not clear them.
	assert.FileExists(t, filepath.Join(home, "cookies.json"))
}

func TestLogoutClearsCookieFile(t *testing.T) {
	f, srv := newFakeArena(t)
	home := setupEnv(t, srv)
	signIn(t)
	require.FileExists(t, filepath.Join(home, "cookies.json"))

	out, err := runCLI(t, "", "logout")
	require.NoError(t, err)
	assert.Equal(t, "Logged out.\n", out)
	f.mu.Lock()
	assert.True(t, f.loggedOut)
	f.mu.Unlock()
	assert.NoFileExists(t, filepath.Join(home, "cookies.json"))

	out, err = runCLI(t, "", "logout")
	require.NoError(t, err)
	assert.Equal(t, "Already logged out.\n", out)
}

func TestProfileUpdate(t *testing.T) {
	_, srv := newFakeArena(t)
	setupEnv(t, srv)
	signIn(t)

	out, err := runCLI(t, "", "profile", "-bio", "Analytical engines")
	require.NoError(t, err)
	assert.Contains(t, out, "Profile updated.")
	assert.Contains(t, out, "Analytical engines")
}

func TestProblemsFirstPage(t *testing.T) {
	_, srv := newFakeArena(t)
	setupEnv(t, srv)

	out, err := runCLI(t, "", "problems", "-limit", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Problem 1")
	assert.Contains(t, out, "Problem 2")
	assert.NotContains(t, out, "Problem 3")
	assert.Contains(t, out, "2 problems shown, more with -all")
}

func TestProblemsAllPages(t *testing.T) {
	_, srv := newFakeArena(t)
	setupEnv(t, srv)

	out, err := runCLI(t, "", "problems", "-all", "-limit", "2")
	require.NoError(t, err)
	for i := 1; i <= 5; i++ {
		assert.Contains(t, out, fmt.Sprintf("Problem %d", i))
	}
	assert.Contains(t, out, "5 problems")
	assert.NotContains(t, out, "more with -all")
}

func TestProblemsByTagAndSearch(t *testing.T) {
	_, srv := newFakeArena(t)
	setupEnv(t, srv)

	out, err := runCLI(t, "", "problems", "-tag", "arrays")
	require.NoError(t, err)
	assert.Contains(t, out, "Problem 2")
	assert.Contains(t, out, "Problem 4")
	assert.Contains(t, out, "2 problems")

	out, err = runCLI(t, "", "problems", "-search", "problem 3")
	require.NoError(t, err)
	assert.Contains(t, out, "Problem 3")
	assert.Contains(t, out, "1 problem\n")

	_, err = runCLI(t, "", "problems", "-tag", "arrays", "-search", "x")
	require.Error(t, err)
}

func TestTagsSorted(t *testing.T) {
	_, srv := newFakeArena(t)
	setupEnv(t, srv)

	out, err := runCLI(t, "", "tags")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "arrays"), strings.Index(out, "graphs"))
}

func TestShowProblem(t *testing.T) {
	_, srv := newFakeArena(t)
	setupEnv(t, srv)

	out, err := runCLI(t, "", "show", "two-sum")
	require.NoError(t, err)
	for _, want := range []string{"Two Sum", "Find two numbers", "[2,7], 9", "Constraints", "Use a map.", "python", "https://arena.test/problems/two-sum/"} {
		assert.Contains(t, out, want)
	}

	out, err = runCLI(t, "", "show", "two-sum", "-lang", "python")
	require.NoError(t, err)
	assert.Equal(t, "def two_sum(nums, target):\n    pass\n", out)

	_, err = runCLI(t, "", "show", "missing")
	require.EqualError(t, err, "show missing: Problem not found")
}

func TestLanguagesListsActiveOnly(t *testing.T) {
	_, srv := newFakeArena(t)
	setupEnv(t, srv)

	out, err := runCLI(t, "", "languages")
	require.NoError(t, err)
	assert.Equal(t, "cpp\npython\n", out)
}

func TestSubmitWaitsForVerdict(t *testing.T) {
	f, srv := newFakeArena(t)
	setupEnv(t, srv)
	pollInterval = time.Millisecond
	t.Cleanup(func() { pollInterval = time.Second })
	signIn(t)

	src := filepath.Join(t.TempDir(), "solution.py")
	require.NoError(t, os.WriteFile(src, []byte("print(1)\n"), 0o600))

	out, err := runCLI(t, "", "submit", "two-sum", "PYTHON", src)
	require.NoError(t, err)
	assert.Contains(t, out, "Submitted #42")
	assert.Contains(t, out, "2/2 test cases passed")
	assert.Contains(t, out, "https://arena.test/problems/two-sum/submissions/42")
	assert.Equal(t, map[string]string{"problem": "two-sum", "language": "Python", "source_code": "print(1)\n"}, f.lastSubmission())
	_, polls := f.counts()
	assert.Equal(t, 3, polls)
}

func TestSubmitFailedVerdict(t *testing.T) {
	f, srv := newFakeArena(t)
	setupEnv(t, srv)
	f.verdict = "Failed"
	pollInterval = time.Millisecond
	t.Cleanup(func() { pollInterval = time.Second })
	signIn(t)

	out, err := runCLI(t, "print(2)\n", "submit", "two-sum", "python", "-")
	require.EqualError(t, err, "submission #42 failed")
	assert.Contains(t, out, "1/2 test cases passed")
	assert.Contains(t, out, "Wrong Answer")
	assert.Contains(t, out, "[3,3], 6")
}

func TestSubmitStillPending(t *testing.T) {
	_, srv := newFakeArena(t)
	setupEnv(t, srv)
	pollInterval = time.Millisecond
	t.Cleanup(func() { pollInterval = time.Second })
	signIn(t)

	out, err := runCLI(t, "print(1)\n", "submit", "-polls", "1", "two-sum", "python", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Still judging")
}

func TestSubmitUnknownLanguage(t *testing.T) {
	f, srv := newFakeArena(t)
	setupEnv(t, srv)
	signIn(t)

	_, err := runCLI(t, "x\n", "submit", "two-sum", "java", "-")
	require.EqualError(t, err, `unknown language "java" (available: cpp, python)`)
	assert.Empty(t, f.lastSubmission())
}

func TestSubmitRequiresSession(t *testing.T) {
	_, srv := newFakeArena(t)
	setupEnv(t, srv)

	_, err := runCLI(t, "x\n", "submit", "two-sum", "python", "-")
	require.ErrorIs(t, err, errSignedOut)
}

func TestSubmissions(t *testing.T) {
	_, srv := newFakeArena(t)
	setupEnv(t, srv)
	signIn(t)

	out, err := runCLI(t, "", "submissions", "two-sum")
	require.NoError(t, err)
	assert.Contains(t, out, "#42")
	assert.Contains(t, out, "0.04s")
	assert.Contains(t, out, "#41")

	out, err = runCLI(t, "", "submissions", "two-sum", "#41")
	require.NoError(t, err)
	assert.Contains(t, out, "1/2 test cases passed")
	assert.Contains(t, out, "Wrong Answer")
	assert.Contains(t, out, "print(1)")

	_, err = runCLI(t, "", "submissions", "two-sum", "abc")
	require.EqualError(t, err, `invalid submission id "abc"`)
}

func TestOpenFallsBackToPrintingURL(t *testing.T) {
	_, srv := newFakeArena(t)
	setupEnv(t, srv)
	orig := openURL
	t.Cleanup(func() { openURL = orig })
	openURL = func(string) error { return errors.New("no display") }

	out, err := runCLI(t, "", "open", "two-sum")
	require.NoError(t, err)
	assert.Contains(t, out, "Visit this URL manually")
	assert.Contains(t, out, "https://arena.test/problems/two-sum/")
}
