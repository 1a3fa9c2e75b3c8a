package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword reads a line without echo. Tests replace it.
var readPassword = term.ReadPassword

// promptText prints label and reads one trimmed line. A final line without
// a newline is accepted.
func promptText(r *bufio.Reader, w io.Writer, label string) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", label); err != nil {
		return "", err
	}
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword prints label and reads a password from the terminal
// without echo.
func promptPassword(w io.Writer, label string) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", label); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w) //nolint:errcheck // cosmetic newline after hidden input
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return string(pw), nil
}

// promptNewPassword asks for a password twice and fails when the entries
// differ or are empty.
func promptNewPassword(w io.Writer) (string, error) {
	pw, err := promptPassword(w, "Password")
	if err != nil {
		return "", err
	}
	if pw == "" {
		return "", errors.New("password must not be empty")
	}
	confirm, err := promptPassword(w, "Confirm password")
	if err != nil {
		return "", err
	}
	if pw != confirm {
		return "", errors.New("passwords do not match")
	}
	return pw, nil
}

// requireText returns v, or prompts for it when v is empty.
func requireText(r *bufio.Reader, w io.Writer, v, label string) (string, error) {
	if v != "" {
		return v, nil
	}
	v, err := promptText(r, w, label)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", fmt.Errorf("%s is required", strings.ToLower(label))
	}
	return v, nil
}
