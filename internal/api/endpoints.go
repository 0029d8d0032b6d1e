// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Portfolio is one entry from the portfolio list endpoint.
type Portfolio struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Holdings int    `json:"holdings"`
}

// Holdings fetches the holdings document. An empty portfolioID means the
// account default.
func (c *Client) Holdings(ctx context.Context, portfolioID string) (json.RawMessage, error) {
	query := url.Values{}
	if portfolioID != "" {
		query.Set("portfolio", portfolioID)
	}
	return c.get(ctx, "/portfolio/holdings", query)
}

// Portfolios lists the account's portfolios.
func (c *Client) Portfolios(ctx context.Context) ([]Portfolio, error) {
	data, err := c.get(ctx, "/portfolio/list", nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Portfolios []Portfolio `json:"portfolios"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("GET /portfolio/list failed: %w", err)
	}
	return payload.Portfolios, nil
}

// Score fetches the current analysis score document.
func (c *Client) Score(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/score", nil)
}

// ReverseScore asks the backend what inputs would be needed to reach the
// target score. All computation happens server-side.
func (c *Client) ReverseScore(ctx context.Context, target float64) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("target", strconv.FormatFloat(target, 'f', -1, 64))
	return c.get(ctx, "/score/reverse", query)
}

// Plans fetches the pricing plan catalog.
func (c *Client) Plans(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/billing/plans", nil)
}

// Profile fetches the account profile.
func (c *Client) Profile(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/account/profile", nil)
}
