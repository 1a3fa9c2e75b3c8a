package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/naveenspark/arena/internal/credentials"
	"github.com/naveenspark/arena/pkg/client"
	"github.com/naveenspark/arena/pkg/domain"
)

var errSignedOut = errors.New("not signed in, run: arena login")

// explain turns an API failure into a one-line message for the terminal.
func explain(action string, err error) error {
	if client.IsSessionExpired(err) {
		return fmt.Errorf("%s: session expired, run: arena login", action)
	}
	var httpErr *client.HTTPError
	if !errors.As(err, &httpErr) {
		return fmt.Errorf("%s: %w", action, err)
	}
	msg := httpErr.Message
	if msg == "" {
		msg = strings.ToLower(http.StatusText(httpErr.StatusCode))
	}
	if fields := httpErr.FieldErrors(); len(fields) > 0 {
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, 0, len(names))
		for _, name := range names {
			parts = append(parts, name+": "+strings.Join(fields[name], " "))
		}
		msg = strings.Join(parts, "; ")
	}
	return fmt.Errorf("%s: %s", action, msg)
}

func (c *cli) requireSession() error {
	if !c.jar.HasSession() {
		return errSignedOut
	}
	return nil
}

func arg(args []string, i int) string {
	if i < len(args) {
		return strings.TrimSpace(args[i])
	}
	return ""
}

func (c *cli) runLogin(ctx context.Context, args []string) error {
	email, err := requireText(c.in, c.out, arg(args, 0), "Email")
	if err != nil {
		return err
	}
	password, err := promptPassword(c.out, "Password")
	if err != nil {
		return err
	}
	u, err := c.auth.Login(ctx, email, password)
	if err != nil {
		return explain("login failed", err)
	}
	fmt.Fprintf(c.out, "%s Signed in as %s\n", okStyle.Render("✓"), boldStyle.Render(u.DisplayName())) //nolint:errcheck
	return nil
}

func (c *cli) runSignup(ctx context.Context, args []string) error {
	email, err := requireText(c.in, c.out, arg(args, 0), "Email")
	if err != nil {
		return err
	}
	password, err := promptNewPassword(c.out)
	if err != nil {
		return err
	}
	if err := c.auth.Signup(ctx, email, password); err != nil {
		return explain("signup failed", err)
	}
	fmt.Fprintf(c.out, "%s Account created. Check %s for a verification link, then run: arena verify-email TOKEN\n", //nolint:errcheck
		okStyle.Render("✓"), email)
	return nil
}

func (c *cli) runLogout(ctx context.Context) error {
	if !c.jar.HasSession() {
		fmt.Fprintln(c.out, "Already logged out.") //nolint:errcheck
		return nil
	}
	// A session the server already dropped counts as logged out.
	if err := c.auth.Logout(ctx); err != nil && !client.IsSessionExpired(err) {
		return explain("logout failed", err)
	}
	c.forget = true
	fmt.Fprintln(c.out, "Logged out.") //nolint:errcheck
	return nil
}

func (c *cli) runWhoami(ctx context.Context) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	u, err := c.auth.Check(ctx)
	if err != nil {
		return explain("whoami", err)
	}
	printUser(c, u)

	exp, err := c.jar.AccessExpiry()
	switch {
	case errors.Is(err, credentials.ErrNoAccessToken):
		fmt.Fprintln(c.out, hintStyle.Render("  access token: none (renewed on next request)")) //nolint:errcheck
	case err != nil:
		c.log.Debug().Err(err).Msg("read access token expiry")
	default:
		left := time.Until(exp).Round(time.Second)
		fmt.Fprintf(c.out, "  %s %s (in %s)\n", hintStyle.Render("access token expires"), //nolint:errcheck
			exp.Local().Format("15:04:05"), left)
	}
	return nil
}

func printUser(c *cli, u *domain.User) {
	fmt.Fprintf(c.out, "%s\n", boldStyle.Render(u.DisplayName())) //nolint:errcheck
	rows := []struct{ label, value string }{
		{"email", u.Email},
		{"username", u.Username},
		{"role", u.Role},
		{"bio", u.Bio},
	}
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		fmt.Fprintf(c.out, "  %s %s\n", hintStyle.Render(fmt.Sprintf("%-9s", r.label)), r.value) //nolint:errcheck
	}
	if u.IsAdmin() {
		fmt.Fprintf(c.out, "  %s %s\n", hintStyle.Render(fmt.Sprintf("%-9s", "access")), "admin") //nolint:errcheck
	}
}

func (c *cli) runVerifyEmail(ctx context.Context, args []string) error {
	token, err := requireText(c.in, c.out, arg(args, 0), "Token")
	if err != nil {
		return err
	}
	if err := c.auth.VerifyEmail(ctx, token); err != nil {
		return explain("verification failed", err)
	}
	fmt.Fprintf(c.out, "%s Email verified. Run: arena login\n", okStyle.Render("✓")) //nolint:errcheck
	return nil
}

func (c *cli) runForgotPassword(ctx context.Context, args []string) error {
	email, err := requireText(c.in, c.out, arg(args, 0), "Email")
	if err != nil {
		return err
	}
	if err := c.auth.ForgotPassword(ctx, email); err != nil {
		return explain("password reset request failed", err)
	}
	fmt.Fprintf(c.out, "If an account exists for %s, a reset link is on its way.\n", email) //nolint:errcheck
	return nil
}

func (c *cli) runResetPassword(ctx context.Context, args []string) error {
	token, err := requireText(c.in, c.out, arg(args, 0), "Token")
	if err != nil {
		return err
	}
	password, err := promptNewPassword(c.out)
	if err != nil {
		return err
	}
	if err := c.auth.ResetPassword(ctx, token, password); err != nil {
		return explain("password reset failed", err)
	}
	fmt.Fprintf(c.out, "%s Password updated. Run: arena login\n", okStyle.Render("✓")) //nolint:errcheck
	return nil
}

func (c *cli) runProfile(ctx context.Context, args []string) error {
	var upd client.ProfileUpdate
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	fs.SetOutput(c.out)
	fs.StringVar(&upd.FirstName, "first-name", "", "new first name")
	fs.StringVar(&upd.LastName, "last-name", "", "new last name")
	fs.StringVar(&upd.Bio, "bio", "", "new bio")
	fs.StringVar(&upd.Email, "email", "", "new email address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.requireSession(); err != nil {
		return err
	}

	u, err := c.auth.Check(ctx)
	if err != nil {
		return explain("profile", err)
	}
	if !upd.Empty() {
		if u, err = c.auth.UpdateProfile(ctx, upd); err != nil {
			return explain("profile update failed", err)
		}
		fmt.Fprintf(c.out, "%s Profile updated.\n", okStyle.Render("✓")) //nolint:errcheck
	}
	printUser(c, u)
	return nil
}
