// Package credentials keeps the session cookies between CLI runs.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Cookie names set by the backend.
const (
	AccessCookie  = "access"
	RefreshCookie = "refresh"
)

// ErrNoAccessToken is returned when no access cookie is held.
var ErrNoAccessToken = errors.New("no access token")

// Jar is an http.CookieJar that also records the full attributes of the
// cookies set by one endpoint so they can be saved and restored.
type Jar struct {
	mu       sync.Mutex
	inner    *cookiejar.Jar
	endpoint *url.URL
	saved    map[string]*http.Cookie
	now      func() time.Time
}

// NewJar returns an empty jar persisting cookies of apiURL's host.
func NewJar(apiURL string) (*Jar, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("credentials.NewJar: %w", err)
	}
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("credentials.NewJar: %w", err)
	}
	return &Jar{
		inner:    inner,
		endpoint: u,
		saved:    make(map[string]*http.Cookie),
		now:      time.Now,
	}, nil
}

// SetCookies implements http.CookieJar.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	cookies = relaxSecure(u, cookies)
	j.inner.SetCookies(u, cookies)

	if !strings.EqualFold(u.Hostname(), j.endpoint.Hostname()) {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	now := j.now()
	for _, c := range cookies {
		cp := *c
		if cp.MaxAge > 0 {
			cp.Expires = now.Add(time.Duration(cp.MaxAge) * time.Second)
			cp.MaxAge = 0
		}
		if c.MaxAge < 0 || cp.Value == "" || (!cp.Expires.IsZero() && !cp.Expires.After(now)) {
			delete(j.saved, cp.Name)
			continue
		}
		cp.Raw = ""
		j.saved[cp.Name] = &cp
	}
}

// Cookies implements http.CookieJar.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

// Value returns the value of a live cookie for the endpoint.
func (j *Jar) Value(name string) (string, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	c, ok := j.saved[name]
	if !ok || (!c.Expires.IsZero() && !c.Expires.After(j.now())) {
		return "", false
	}
	return c.Value, true
}

// HasSession reports whether any session cookie is held.
func (j *Jar) HasSession() bool {
	_, access := j.Value(AccessCookie)
	_, refresh := j.Value(RefreshCookie)
	return access || refresh
}

// AccessExpiry reads the expiry claim of the access token. The signature is
// not checked: the server is the only party that verifies it.
func (j *Jar) AccessExpiry() (time.Time, error) {
	token, ok := j.Value(AccessCookie)
	if !ok {
		return time.Time{}, ErrNoAccessToken
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("credentials.AccessExpiry: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("credentials.AccessExpiry: %w", err)
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("credentials.AccessExpiry: token has no exp claim")
	}
	return exp.Time, nil
}

type fileFormat struct {
	Endpoint string         `json:"endpoint"`
	Cookies  []storedCookie `json:"cookies"`
}

type storedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitzero"`
	Secure   bool      `json:"secure,omitempty"`
	HTTPOnly bool      `json:"http_only,omitempty"`
}

// Save writes the endpoint's live cookies to path with owner-only
// permissions.
func (j *Jar) Save(path string) error {
	j.mu.Lock()
	ff := fileFormat{Endpoint: j.endpoint.String()}
	now := j.now()
	for _, c := range j.saved {
		if !c.Expires.IsZero() && !c.Expires.After(now) {
			continue
		}
		ff.Cookies = append(ff.Cookies, storedCookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HTTPOnly: c.HttpOnly,
		})
	}
	j.mu.Unlock()
	sort.Slice(ff.Cookies, func(a, b int) bool { return ff.Cookies[a].Name < ff.Cookies[b].Name })

	data, err := json.MarshalIndent(ff, "", "  ")
	if err != nil {
		return fmt.Errorf("credentials.Save: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("credentials.Save: create dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("credentials.Save: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("credentials.Save: %w", err)
	}
	return nil
}

// Load restores cookies saved by Save. A missing file, or one written for a
// different endpoint, leaves the jar empty.
func (j *Jar) Load(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("credentials.Load: %w", err)
	}
	var ff fileFormat
	if err := json.Unmarshal(data, &ff); err != nil {
		return fmt.Errorf("credentials.Load: %w", err)
	}
	if ff.Endpoint != j.endpoint.String() {
		return nil
	}

	cookies := make([]*http.Cookie, 0, len(ff.Cookies))
	for _, c := range ff.Cookies {
		cookies = append(cookies, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HTTPOnly,
		})
	}
	j.SetCookies(j.endpoint, cookies)
	return nil
}

// Clear removes the saved cookie file. A missing file is not an error.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("credentials.Clear: %w", err)
	}
	return nil
}

// relaxSecure drops the Secure flag for plain-HTTP loopback endpoints.
// Browsers treat loopback as a secure context; cookiejar does not, and
// would never send the cookies back to a local backend.
func relaxSecure(u *url.URL, cookies []*http.Cookie) []*http.Cookie {
	if u.Scheme != "http" || !isLoopback(u.Hostname()) {
		return cookies
	}
	out := make([]*http.Cookie, len(cookies))
	for i, c := range cookies {
		cp := *c
		cp.Secure = false
		out[i] = &cp
	}
	return out
}

func isLoopback(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
