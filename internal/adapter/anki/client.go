// Package anki reads the learner's vocabulary from a local AnkiConnect
// endpoint.
package anki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultURL = "http://127.0.0.1:8765"

// apiVersion is the AnkiConnect protocol version this client speaks.
const apiVersion = 6

// Client is a minimal AnkiConnect JSON client.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type request struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// invoke posts one action and decodes the result envelope, retrying once
// on transport errors and 5xx responses.
func (c *Client) invoke(ctx context.Context, action string, params any, result any) error {
	body, err := json.Marshal(request{Action: action, Version: apiVersion, Params: params})
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", action, err)
	}
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying ankiconnect action", "action", action, "error", lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(200 * time.Millisecond):
			}
		}
		data, retryable, err := c.post(ctx, body)
		if err != nil {
			lastErr = err
			if retryable {
				continue
			}
			return err
		}
		var envelope response
		if err := json.Unmarshal(data, &envelope); err != nil {
			return fmt.Errorf("failed to parse %s response: %w", action, err)
		}
		if envelope.Error != nil && *envelope.Error != "" {
			return fmt.Errorf("ankiconnect error for %s: %s", action, *envelope.Error)
		}
		if result == nil || len(envelope.Result) == 0 {
			return nil
		}
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", action, err)
		}
		return nil
	}
	return lastErr
}

func (c *Client) post(ctx context.Context, body []byte) (data []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("ankiconnect request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("ankiconnect returned status %d: %s", resp.StatusCode, preview(data))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("ankiconnect returned status %d: %s", resp.StatusCode, preview(data))
	}
	return data, false, nil
}

func preview(data []byte) string {
	const max = 200
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}

// Version returns the AnkiConnect API version. Used as a connectivity check.
func (c *Client) Version(ctx context.Context) (int, error) {
	var version int
	if err := c.invoke(ctx, "version", nil, &version); err != nil {
		return 0, err
	}
	return version, nil
}

// FindCards returns the IDs of cards matching an Anki search query.
func (c *Client) FindCards(ctx context.Context, query string) ([]int64, error) {
	var ids []int64
	params := map[string]string{"query": query}
	if err := c.invoke(ctx, "findCards", params, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// CardField is one note field value with its display order.
type CardField struct {
	Value string `json:"value"`
	Order int    `json:"order"`
}

// CardInfo is the subset of AnkiConnect card data the provider reads.
// Interval is the current review interval in days; 0 means the card has
// never been reviewed.
type CardInfo struct {
	CardID   int64                `json:"cardId"`
	Interval int                  `json:"interval"`
	DeckName string               `json:"deckName"`
	Fields   map[string]CardField `json:"fields"`
}

// CardsInfo fetches card details for a batch of IDs.
func (c *Client) CardsInfo(ctx context.Context, ids []int64) ([]CardInfo, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var cards []CardInfo
	params := map[string]any{"cards": ids}
	if err := c.invoke(ctx, "cardsInfo", params, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}
