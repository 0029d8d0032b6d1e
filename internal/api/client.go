// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

// Package api is the REST client for the FinSight backend. Every endpoint
// answers with the same envelope; transport failures, non-2xx statuses,
// success=false and malformed bodies all collapse into one error per call.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/apex/log"
)

// DefaultBaseURL is used when neither flag, env nor config provide one.
const DefaultBaseURL = "https://api.finsight.dev/v1"

// envelope is the wire shape of every backend response.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func New(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	// No explicit timeout beyond the client defaults.
	return http.DefaultClient
}

// get performs a GET against path and unwraps the envelope.
func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("GET %s failed: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	log.Debugf("GET %s", u)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s failed: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s failed: %s", path, resp.Status)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("GET %s failed: %w", path, err)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "backend reported failure"
		}
		return nil, fmt.Errorf("GET %s failed: %s", path, msg)
	}

	return env.Data, nil
}
