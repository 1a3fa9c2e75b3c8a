// Package browser opens arena pages in the desktop browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// command builds the OS-specific opener. Tests replace it.
var command = func(goos, target string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", target), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", target), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}

// Open opens the specified URL in the user's default browser.
func Open(target string) error {
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("refusing to open %q: not an http(s) URL", target)
	}
	cmd, err := command(runtime.GOOS, target)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// ProblemURL returns the web page of a problem.
func ProblemURL(webURL, slug string) string {
	return strings.TrimRight(webURL, "/") + "/problems/" + url.PathEscape(slug) + "/"
}

// SubmissionURL returns the web page of one submission.
func SubmissionURL(webURL, slug string, id int64) string {
	return ProblemURL(webURL, slug) + "submissions/" + strconv.FormatInt(id, 10)
}
