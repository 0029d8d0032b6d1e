// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/finsightlabs/finctl/internal/config"
)

var ErrNoToken = errors.New("no API token available")

// ResolveToken returns the API token using standard precedence:
// FINCTL_TOKEN env, then config api.token, then an interactive prompt when
// stdin is a terminal.
func ResolveToken() (string, error) {
	if t := os.Getenv("FINCTL_TOKEN"); t != "" {
		return t, nil
	}

	if t, err := config.GetString("api.token"); err == nil && t != "" {
		return t, nil
	}

	return promptToken()
}

// promptToken reads the token from the terminal without echo.
func promptToken() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("set FINCTL_TOKEN or api.token in finctl.yaml: %w", ErrNoToken)
	}

	fmt.Fprint(os.Stderr, "FinSight API token: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}
