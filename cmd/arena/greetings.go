package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"
	"github.com/common-nighthawk/go-figure"
)

var arenaGreetings = [...]string{
	"The judge is awake. Your solutions are not.",
	"Two Sum will not solve itself. It has tried.",
	"Somewhere a test case is waiting to be the one you forgot.",
	"The problem set grew while you were away.",
	"Off-by-one errors miss you. Mostly the one.",
	"Every accepted submission started as a wrong answer.",
	"Your streak is zero. Zero is also a valid array index.",
	"The time limit is one second. This greeting took longer.",
	"Hard problems are just medium problems you have not met yet.",
	"Compilation error: user not found.",
	"The hash map is ready. Bring a key.",
	"Recursion works best when you eventually come back. Welcome back.",
}

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#818CF8")).Bold(true)
	quoteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ADE80"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171"))
	boldStyle  = lipgloss.NewStyle().Bold(true)
)

func printHelp(w io.Writer, webURL string) {
	commands := []struct{ cmd, desc string }{
		{"arena", "Browse problems (interactive TUI)"},
		{"arena login", "Sign in with email and password"},
		{"arena signup", "Create an account"},
		{"arena verify-email TOKEN", "Confirm your email address"},
		{"arena forgot-password", "Mail a password reset link"},
		{"arena reset-password TOKEN", "Set a new password"},
		{"arena logout", "End your session"},
		{"arena whoami", "Show the signed-in user"},
		{"arena profile", "Show or update your profile"},
		{"arena problems", "List problems (-tag, -search, -limit, -all)"},
		{"arena tags", "List problem tags"},
		{"arena show SLUG", "Print a problem statement (-lang for starter code)"},
		{"arena languages", "List judge languages"},
		{"arena submit SLUG LANG FILE", "Submit a solution and wait for the verdict"},
		{"arena submissions SLUG [ID]", "Show your submissions for a problem"},
		{"arena open SLUG", "Open a problem in the browser"},
		{"arena version", "Show version"},
		{"arena help", "You are here"},
	}

	fmt.Fprintf(w, "\n  %s\n\n  Commands:\n", titleStyle.Render("A R E N A")) //nolint:errcheck
	for _, c := range commands {
		fmt.Fprintf(w, "    %s  %s\n", boldStyle.Render(fmt.Sprintf("%-28s", c.cmd)), hintStyle.Render(c.desc)) //nolint:errcheck
	}
	if webURL != "" {
		fmt.Fprintf(w, "\n  %s\n", hintStyle.Render(webURL)) //nolint:errcheck
	}
	fmt.Fprintln(w) //nolint:errcheck
}

func printGreeting(w io.Writer) {
	msg := arenaGreetings[rand.IntN(len(arenaGreetings))]
	banner := figure.NewFigure("arena", "cybermedium", true).String()

	fmt.Fprintf(w, "\n%s\n%s\n\n%s\n\n", //nolint:errcheck
		titleStyle.Render(banner),
		quoteStyle.Render(msg),
		hintStyle.Render("To enter: arena login  (new here? arena signup)"))
}
