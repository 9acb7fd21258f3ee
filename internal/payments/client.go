// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

// Package payments talks to the external payment-intent collaborator.
// Calls are wrapped in a circuit breaker so a degraded collaborator
// cannot stall checkout for every customer.
package payments

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/norwoodhouse/storefront/internal/config"
)

// ErrPaymentsUnavailable is returned when the collaborator is down or
// the circuit is open. Checkout proceeds without an intent in that case.
var ErrPaymentsUnavailable = errors.New("payment collaborator unavailable")

// Intent is the collaborator's payment intent.
type Intent struct {
	ID           string  `json:"id"`
	ClientSecret string  `json:"client_secret,omitempty"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	Status       string  `json:"status"`
}

// intentRequest is the collaborator's create-intent payload.
type intentRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	OrderID  string  `json:"order_id"`
}

// Client creates payment intents against the configured collaborator.
// A nil Client (payments disabled) is valid; CreateIntent then returns
// ErrPaymentsUnavailable without any network call.
type Client struct {
	cfg    config.PaymentsConfig
	http   *http.Client
	cb     *gobreaker.CircuitBreaker[*Intent]
	logger zerolog.Logger
}

// NewClient creates a payments client. Returns nil when payments are
// disabled in configuration.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg config.PaymentsConfig, logger zerolog.Logger) *Client {
	if !cfg.Enabled {
		return nil
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	componentLogger := logger.With().Str("component", "payments").Logger()

	cb := gobreaker.NewCircuitBreaker[*Intent](gobreaker.Settings{
		Name:        "payment-intents",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 &&
				float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			componentLogger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})

	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		cb:     cb,
		logger: componentLogger,
	}
}

// CreateIntent asks the collaborator to create a payment intent for the
// given order total. Failures and open-circuit rejections both surface
// as ErrPaymentsUnavailable.
func (c *Client) CreateIntent(ctx context.Context, orderID string, amount float64, currency string) (*Intent, error) {
	if c == nil {
		return nil, ErrPaymentsUnavailable
	}

	intent, err := c.cb.Execute(func() (*Intent, error) {
		return c.createIntent(ctx, orderID, amount, currency)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.logger.Warn().Err(err).Msg("intent request rejected by circuit breaker")
		} else {
			c.logger.Error().Err(err).Str("order_id", orderID).Msg("intent creation failed")
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentsUnavailable, err)
	}
	return intent, nil
}

// createIntent performs the HTTP call without breaker protection.
func (c *Client) createIntent(ctx context.Context, orderID string, amount float64, currency string) (*Intent, error) {
	body, err := json.Marshal(intentRequest{
		Amount:   amount,
		Currency: currency,
		OrderID:  orderID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal intent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.IntentURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build intent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post intent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("intent endpoint returned %d", resp.StatusCode)
	}

	var intent Intent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("decode intent response: %w", err)
	}
	if intent.ID == "" {
		return nil, fmt.Errorf("intent response missing id")
	}
	return &intent, nil
}
