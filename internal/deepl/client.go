// Package deepl implements a minimal client for the DeepL translation API,
// used for the scheduled quota report.
package deepl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	freeBaseURL = "https://api-free.deepl.com/v2"
	proBaseURL  = "https://api.deepl.com/v2"
)

var (
	ErrUnavailable = errors.New("deepl service unavailable")
	ErrRejected    = errors.New("deepl request rejected")
)

// Usage reports the account's character quota consumption.
type Usage struct {
	CharacterCount int64 `json:"character_count"`
	CharacterLimit int64 `json:"character_limit"`
}

// Client issues authenticated requests to the DeepL REST API. Safe for
// concurrent use.
type Client struct {
	authKey string
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// NewClient creates a DeepL client. Keys issued for the free tier end in
// ":fx" and route to the free API host.
func NewClient(authKey string, timeout time.Duration, log *slog.Logger) *Client {
	baseURL := proBaseURL
	if strings.HasSuffix(authKey, ":fx") {
		baseURL = freeBaseURL
	}
	return &Client{
		authKey: authKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log.With("component", "deepl_client"),
	}
}

// Translate translates text into targetLang (e.g. "EN-US", "HE").
// sourceLang may be empty to let the service detect it.
func (c *Client) Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error) {
	payload := map[string]any{
		"text":        []string{text},
		"target_lang": targetLang,
	}
	if sourceLang != "" {
		payload["source_lang"] = sourceLang
	}

	var resp struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := c.do(ctx, http.MethodPost, "/translate", payload, &resp); err != nil {
		return "", err
	}
	if len(resp.Translations) == 0 {
		return "", fmt.Errorf("%w: no translation in response", ErrRejected)
	}
	return resp.Translations[0].Text, nil
}

// GetUsage returns the account's quota consumption.
func (c *Client) GetUsage(ctx context.Context) (*Usage, error) {
	var usage Usage
	if err := c.do(ctx, http.MethodGet, "/usage", nil, &usage); err != nil {
		return nil, err
	}
	return &usage, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%w: encoding payload: %v", ErrRejected, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: building request: %v", ErrRejected, err)
	}
	req.Header.Set("Authorization", "DeepL-Auth-Key "+c.authKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "DeepL request failed", "path", path, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.ErrorContext(ctx, "DeepL returned non-success status", "path", path, "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrRejected, err)
	}
	return nil
}
