// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

// Package billing reads the account balance from the Stripe REST API.
package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.stripe.com"

// Amount is a balance entry in the smallest currency unit (cents).
type Amount struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Balance is the read-only account balance.
type Balance struct {
	Available []Amount `json:"available"`
	Pending   []Amount `json:"pending"`
	LiveMode  bool     `json:"livemode"`
}

// Client calls the Stripe balance endpoint.
type Client struct {
	secretKey string
	baseURL   string
	http      *http.Client
}

// New creates a client. It returns nil when no secret key is configured.
func New(secretKey, baseURL string) *Client {
	if secretKey == "" {
		return nil
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		secretKey: secretKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

// Balance fetches GET /v1/balance.
func (client *Client) Balance(context context.Context) (*Balance, error) {
	request, err := http.NewRequestWithContext(context, http.MethodGet, client.baseURL+"/v1/balance", nil)
	if err != nil {
		return nil, fmt.Errorf("stripe request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+client.secretKey)

	response, err := client.http.Do(request)
	if err != nil {
		return nil, fmt.Errorf("stripe http: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(response.Body, 4096))
		return nil, fmt.Errorf("stripe API error (status %d): %s", response.StatusCode, body)
	}

	balance := &Balance{}
	if err := json.NewDecoder(response.Body).Decode(balance); err != nil {
		return nil, fmt.Errorf("stripe unmarshal: %w", err)
	}

	if balance.Available == nil {
		balance.Available = []Amount{}
	}
	if balance.Pending == nil {
		balance.Pending = []Amount{}
	}
	return balance, nil
}
