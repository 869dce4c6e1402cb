package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/zanachka/quickpin-api/pkg/client"
)

// Environment variables consulted when flags are absent.
const (
	envURL      = "QUICKPIN_URL"
	envToken    = "QUICKPIN_TOKEN"
	envUser     = "QUICKPIN_USER"
	envPassword = "QUICKPIN_PASSWORD"
)

// clientConfig resolves the client configuration from flags, environment
// variables, and interactive prompts, in that order. The library itself
// never reads the environment; all ambient lookup happens here.
func clientConfig() (client.Config, error) {
	baseURL := flagURL
	if baseURL == "" {
		baseURL = os.Getenv(envURL)
	}
	if baseURL == "" {
		baseURL = promptString("QuickPin URL")
	}
	if baseURL == "" {
		return client.Config{}, fmt.Errorf("no QuickPin URL configured (set %s or pass --url)", envURL)
	}

	cfg := client.DefaultConfig(baseURL)
	cfg.InsecureSkipVerify = flagInsecure

	cfg.Token = flagToken
	if cfg.Token == "" {
		cfg.Token = os.Getenv(envToken)
	}
	if cfg.Token == "" {
		// No token anywhere: fall back to a credential exchange.
		cfg.Username = os.Getenv(envUser)
		cfg.Password = os.Getenv(envPassword)
		if cfg.Username == "" {
			cfg.Username = promptString("Username")
		}
		if cfg.Password == "" {
			cfg.Password = promptPassword("Password")
		}
	}

	return cfg, nil
}

// newClient builds an authenticated client, translating construction
// failures into exit codes.
func newClient(ctx context.Context) (*client.Client, int) {
	cfg, err := clientConfig()
	if err != nil {
		return nil, outputError(ExitConfigError, "%v", err)
	}

	c, err := client.New(ctx, cfg)
	if err != nil {
		switch {
		case client.IsAuthentication(err):
			return nil, outputError(ExitAuthError,
				"%v (check your username/password, or set %s)", err, envToken)
		case client.IsInvalidArgument(err):
			return nil, outputError(ExitConfigError, "%v", err)
		default:
			return nil, outputError(ExitError, "%v", err)
		}
	}
	return c, 0
}

// commandContext returns the context used for one CLI invocation.
func commandContext() (context.Context, context.CancelFunc) {
	// Submission runs can legitimately take a long time; per-request
	// timeouts live in the client configuration instead.
	return context.WithCancel(context.Background())
}

// promptString reads a line of input with a visible echo.
func promptString(label string) string {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

// promptPassword reads a line of input without echo when attached to a
// terminal, falling back to a plain read for pipes.
func promptPassword(label string) string {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	if term.IsTerminal(int(syscall.Stdin)) {
		value, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(value))
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

// parseInterval converts a whole-second flag value to a duration.
func parseInterval(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
