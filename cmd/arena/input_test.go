package main

import (
	"bufio"
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/arena/pkg/client"
	"github.com/naveenspark/arena/pkg/domain"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestPromptText(t *testing.T) {
	var out bytes.Buffer
	got, err := promptText(rdr("  ada@example.com \n"), &out, "Email")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got)
	assert.Equal(t, "Email: ", out.String())
}

func TestPromptTextLastLineWithoutNewline(t *testing.T) {
	got, err := promptText(rdr("token-123"), io.Discard, "Token")
	require.NoError(t, err)
	assert.Equal(t, "token-123", got)
}

func TestPromptTextEOF(t *testing.T) {
	_, err := promptText(rdr(""), io.Discard, "Email")
	require.ErrorIs(t, err, io.EOF)
}

func TestRequireText(t *testing.T) {
	got, err := requireText(rdr("ignored\n"), io.Discard, "given", "Email")
	require.NoError(t, err)
	assert.Equal(t, "given", got)

	_, err = requireText(rdr("\n"), io.Discard, "", "Email")
	require.EqualError(t, err, "email is required")
}

func TestPromptPasswordError(t *testing.T) {
	stubPasswords(t)
	_, err := promptPassword(io.Discard, "Password")
	require.Error(t, err)
}

func TestPromptNewPassword(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		want    string
		wantErr string
	}{
		{"match", []string{"s3cret", "s3cret"}, "s3cret", ""},
		{"mismatch", []string{"one", "two"}, "", "passwords do not match"},
		{"empty", []string{""}, "", "password must not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubPasswords(t, tt.answers...)
			got, err := promptNewPassword(io.Discard)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExplain(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "server message",
			err:  fmt.Errorf("wrapped: %w", &client.HTTPError{StatusCode: 400, Message: "Invalid credentials"}),
			want: "login: Invalid credentials",
		},
		{
			name: "status text when message is empty",
			err:  &client.HTTPError{StatusCode: 404},
			want: "login: not found",
		},
		{
			name: "field errors sorted by field",
			err: &client.HTTPError{StatusCode: 400, Message: "Invalid data",
				Body: []byte(`{"errors":{"password":["too short"],"email":["invalid"]}}`)},
			want: "login: email: invalid; password: too short",
		},
		{
			name: "expired session",
			err:  &client.RefreshError{Err: errors.New("HTTP 401")},
			want: "login: session expired, run: arena login",
		},
		{
			name: "transport error",
			err:  errors.New("connection refused"),
			want: "login: connection refused",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, explain("login", tt.err).Error())
		})
	}
}

func TestParseArgsInterspersed(t *testing.T) {
	fs := flag.NewFlagSet("t", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	lang := fs.String("lang", "", "")
	polls := fs.Int("polls", 0, "")

	pos, err := parseArgs(fs, []string{"-polls", "3", "two-sum", "-lang", "go", "extra"})
	require.NoError(t, err)
	assert.Equal(t, []string{"two-sum", "extra"}, pos)
	assert.Equal(t, "go", *lang)
	assert.Equal(t, 3, *polls)

	_, err = parseArgs(fs, []string{"-nope"})
	require.Error(t, err)
}

func TestMatchLanguage(t *testing.T) {
	langs := []domain.Language{{Name: "Python", IsActive: true}, {Name: "Cpp", IsActive: true}}
	l, ok := matchLanguage(langs, "PYTHON")
	require.True(t, ok)
	assert.Equal(t, "Python", l.Name)

	_, ok = matchLanguage(langs, "rust")
	assert.False(t, ok)
}

func TestPluralAndMetric(t *testing.T) {
	assert.Equal(t, "1 problem", plural(1, "problem"))
	assert.Equal(t, "0 problems", plural(0, "problem"))
	assert.Equal(t, "7 problems", plural(7, "problem"))

	v := 0.125
	assert.Equal(t, "0.125s", metric(&v, "s"))
	assert.Equal(t, "-", metric(nil, "s"))
}
