package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/naveenspark/arena/internal/config"
	"github.com/naveenspark/arena/internal/credentials"
	"github.com/naveenspark/arena/internal/logging"
	"github.com/naveenspark/arena/internal/session"
	"github.com/naveenspark/arena/internal/tui"
	"github.com/naveenspark/arena/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "version", "-v":
			fmt.Fprintln(stdout, "arena "+version) //nolint:errcheck
			return nil
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		switch args[0] {
		case "help", "--help", "-h":
			printHelp(stdout, cfg.WebURL)
			return nil
		}
	}

	log, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	c, err := newCLI(cfg, log, stdin, stdout)
	if err != nil {
		return err
	}
	return c.dispatch(ctx, args)
}

// openLogger writes to the configured log file, or to stderr in console
// format when the file is "-".
func openLogger(cfg config.Config) (zerolog.Logger, func(), error) {
	if cfg.LogFile == "-" {
		return logging.Console(os.Stderr, cfg.LogLevel), func() {}, nil
	}
	log, f, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	return log, func() {
		f.Close() //nolint:errcheck // nowhere left to report it
	}, nil
}

// cli carries what every command needs for one invocation.
type cli struct {
	cfg  config.Config
	log  zerolog.Logger
	jar  *credentials.Jar
	api  *client.Client
	auth *session.Service
	in   *bufio.Reader
	out  io.Writer

	// forget drops the saved cookies on exit instead of writing them back.
	forget bool
}

func newCLI(cfg config.Config, log zerolog.Logger, stdin io.Reader, stdout io.Writer) (*cli, error) {
	jar, err := credentials.NewJar(cfg.APIURL)
	if err != nil {
		return nil, err
	}
	if err := jar.Load(cfg.CookieFile()); err != nil {
		log.Warn().Err(err).Str("path", cfg.CookieFile()).Msg("ignoring unreadable cookie file")
	}

	mode := client.RefreshPerRequest
	if cfg.SharedRefresh {
		mode = client.RefreshShared
	}
	api := client.New(cfg.APIURL,
		client.WithCookieJar(jar),
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(log),
		client.WithExpiryStatus(cfg.ExpiryStatus),
		client.WithRefreshMode(mode),
		client.WithMiddleware(client.WithHeader("User-Agent", "arena-cli/"+version)),
	)

	return &cli{
		cfg:  cfg,
		log:  log,
		jar:  jar,
		api:  api,
		auth: session.NewService(api, session.NewStore(), log),
		in:   bufio.NewReader(stdin),
		out:  stdout,
	}, nil
}

func (c *cli) dispatch(ctx context.Context, args []string) error {
	// Any request may rotate the session cookies, so the jar is written
	// back whatever the command.
	defer c.persist()

	if len(args) == 0 {
		return c.runTUI(ctx)
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return c.runLogin(ctx, rest)
	case "signup", "register":
		return c.runSignup(ctx, rest)
	case "logout":
		return c.runLogout(ctx)
	case "whoami":
		return c.runWhoami(ctx)
	case "verify-email":
		return c.runVerifyEmail(ctx, rest)
	case "forgot-password":
		return c.runForgotPassword(ctx, rest)
	case "reset-password":
		return c.runResetPassword(ctx, rest)
	case "profile":
		return c.runProfile(ctx, rest)
	case "problems", "ls":
		return c.runProblems(ctx, rest)
	case "show":
		return c.runShow(ctx, rest)
	case "tags":
		return c.runTags(ctx)
	case "languages":
		return c.runLanguages(ctx)
	case "submit":
		return c.runSubmit(ctx, rest)
	case "submissions":
		return c.runSubmissions(ctx, rest)
	case "open":
		return c.runOpen(rest)
	default:
		return fmt.Errorf("unknown command %q, run: arena help", cmd)
	}
}

// persist mirrors the jar on disk. A jar without session cookies removes
// the file so an expired session is not replayed on the next run.
func (c *cli) persist() {
	path := c.cfg.CookieFile()
	if c.forget || !c.jar.HasSession() {
		if err := credentials.Clear(path); err != nil {
			c.log.Warn().Err(err).Msg("clear cookie file")
		}
		return
	}
	if err := c.jar.Save(path); err != nil {
		c.log.Warn().Err(err).Msg("save cookie file")
	}
}

func (c *cli) runTUI(ctx context.Context) error {
	if !c.jar.HasSession() {
		printGreeting(c.out)
		return nil
	}
	// Only a rejected session sends the user back to login. Network and
	// server errors still open the problem browser, which reports them itself.
	if _, err := c.auth.Check(ctx); err != nil {
		if client.IsSessionExpired(err) || client.IsStatus(err, 401) {
			printGreeting(c.out)
			return nil
		}
		c.log.Warn().Err(err).Msg("session check failed, starting anyway")
	}

	app := tui.NewApp(c.api, c.auth, tui.Config{
		WebURL:    c.cfg.WebURL,
		PageSize:  c.cfg.PageSize,
		Debounce:  c.cfg.SearchDebounce,
		DropStale: c.cfg.DropStale,
	}, c.log)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
