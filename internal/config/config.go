// Package config reads the client configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultAPIURL is the API endpoint of a local development backend.
const DefaultAPIURL = "http://localhost:8000/api"

type Config struct {
	APIURL         string
	WebURL         string
	PageSize       int
	SearchDebounce time.Duration
	RequestTimeout time.Duration
	ExpiryStatus   int
	SharedRefresh  bool
	DropStale      bool
	Home           string
	LogFile        string
	LogLevel       zerolog.Level
}

// CookieFile is where the session cookies are kept between runs.
func (c Config) CookieFile() string {
	return filepath.Join(c.Home, "cookies.json")
}

type Env interface {
	Getenv(key string) string
}

type osEnv struct{}

func (osEnv) Getenv(key string) string { return os.Getenv(key) }

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return LoadFromEnv(osEnv{})
}

func LoadFromEnv(env Env) (Config, error) {
	cfg := Config{
		APIURL:         DefaultAPIURL,
		PageSize:       10,
		SearchDebounce: 500 * time.Millisecond,
		RequestTimeout: 30 * time.Second,
		ExpiryStatus:   403,
		DropStale:      true,
		LogLevel:       zerolog.InfoLevel,
	}

	if raw := env.Getenv("ARENA_API_URL"); raw != "" {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return Config{}, fmt.Errorf("invalid ARENA_API_URL %q", raw)
		}
		cfg.APIURL = strings.TrimRight(raw, "/")
	}

	cfg.WebURL = strings.TrimRight(env.Getenv("ARENA_WEB_URL"), "/")
	if cfg.WebURL == "" {
		cfg.WebURL = webURLFromAPI(cfg.APIURL)
	}

	if raw := env.Getenv("ARENA_PAGE_SIZE"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 100 {
			return Config{}, fmt.Errorf("invalid ARENA_PAGE_SIZE")
		}
		cfg.PageSize = n
	}

	if raw := env.Getenv("ARENA_SEARCH_DEBOUNCE_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 0 {
			return Config{}, fmt.Errorf("invalid ARENA_SEARCH_DEBOUNCE_MS")
		}
		cfg.SearchDebounce = time.Duration(ms) * time.Millisecond
	}

	if raw := env.Getenv("ARENA_REQUEST_TIMEOUT_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("invalid ARENA_REQUEST_TIMEOUT_SECONDS")
		}
		cfg.RequestTimeout = time.Duration(seconds) * time.Second
	}

	if raw := env.Getenv("ARENA_EXPIRY_STATUS"); raw != "" {
		code, err := strconv.Atoi(raw)
		if err != nil || code < 400 || code > 599 {
			return Config{}, fmt.Errorf("invalid ARENA_EXPIRY_STATUS")
		}
		cfg.ExpiryStatus = code
	}

	var err error
	if cfg.SharedRefresh, err = boolEnv(env, "ARENA_SHARED_REFRESH", false); err != nil {
		return Config{}, err
	}
	if cfg.DropStale, err = boolEnv(env, "ARENA_DROP_STALE", true); err != nil {
		return Config{}, err
	}

	cfg.Home = env.Getenv("ARENA_HOME")
	if cfg.Home == "" {
		home := env.Getenv("HOME")
		if home == "" {
			home = env.Getenv("USERPROFILE")
		}
		if home == "" {
			return Config{}, fmt.Errorf("cannot determine home directory, set ARENA_HOME")
		}
		cfg.Home = filepath.Join(home, ".arena")
	}

	cfg.LogFile = env.Getenv("ARENA_LOG_FILE")
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.Home, "arena.log")
	}

	if raw := env.Getenv("ARENA_LOG_LEVEL"); raw != "" {
		lvl, err := zerolog.ParseLevel(strings.ToLower(raw))
		if err != nil {
			return Config{}, fmt.Errorf("invalid ARENA_LOG_LEVEL %q", raw)
		}
		cfg.LogLevel = lvl
	}

	return cfg, nil
}

func boolEnv(env Env, key string, def bool) (bool, error) {
	raw := env.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s", key)
	}
	return v, nil
}

// webURLFromAPI guesses the web UI address: an "/api" path suffix and an
// "api." host prefix are dropped.
func webURLFromAPI(apiURL string) string {
	u, err := url.Parse(apiURL)
	if err != nil {
		return apiURL
	}
	u.Path = strings.TrimSuffix(strings.TrimRight(u.Path, "/"), "/api")
	if host := u.Hostname(); strings.HasPrefix(host, "api.") {
		u.Host = strings.TrimPrefix(host, "api.")
		if port := u.Port(); port != "" {
			u.Host += ":" + port
		}
	}
	return strings.TrimRight(u.String(), "/")
}
