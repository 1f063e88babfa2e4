// Package nakdan implements the client for the Dicta Nakdan web API, which
// inserts niqqud into Hebrew text and produces morphological analysis.
package nakdan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alephbot/alephbot/internal/hebrew"
)

// Client defines the Nakdan operations used by the command handlers.
type Client interface {
	Vowelize(ctx context.Context, text string) (*Result, error)
	Analyze(ctx context.Context, text string) (*Result, error)
	Lemmatize(ctx context.Context, text string) ([]Lemma, error)
}

// Config carries the client settings.
type Config struct {
	// BaseURL serves the plain vowelization task.
	BaseURL string
	// MorphBaseURL serves the morphological analysis task.
	MorphBaseURL string
	APIKey       string
	Genre        string
	Timeout      time.Duration
}

type httpClient struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
}

// NewClient creates a Nakdan client. The underlying http.Client is shared
// across invocations and safe for concurrent use. The configured timeout
// bounds each request; there is exactly one attempt per call.
func NewClient(cfg Config, log *slog.Logger) Client {
	if cfg.Genre == "" {
		cfg.Genre = "modern"
	}
	return &httpClient{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log.With("component", "nakdan_client"),
	}
}

// Vowelize sends text to the Nakdan service and returns it with niqqud,
// preserving the original inter-word spacing.
func (c *httpClient) Vowelize(ctx context.Context, text string) (*Result, error) {
	payload := map[string]any{
		"task":   "nakdan",
		"apiKey": c.cfg.APIKey,
		"data":   text,
		"genre":  c.cfg.Genre,
	}

	entries, err := c.post(ctx, c.cfg.BaseURL+"/api", payload)
	if err != nil {
		return nil, err
	}

	words := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.sep {
			words = append(words, entry.Word)
			continue
		}
		words = append(words, entry.firstOption())
	}

	return &Result{Text: hebrew.Normalize(joinWithOriginalSpacing(text, words))}, nil
}

// Analyze sends text to the morphology endpoint and returns the vowelized
// text along with per-word morphological features.
func (c *httpClient) Analyze(ctx context.Context, text string) (*Result, error) {
	payload := map[string]any{
		"task":                "analyze",
		"apiKey":              c.cfg.APIKey,
		"data":                text,
		"genre":               c.cfg.Genre,
		"addmorph":            true,
		"freturnfullmorphstr": true,
		"keepmetagim":         true,
		"keepnikud":           true,
		"keepqq":              true,
		"newjson":             true,
	}

	entries, err := c.post(ctx, c.cfg.MorphBaseURL+"/addnikud", payload)
	if err != nil {
		return nil, err
	}

	var (
		forms []string
		words []Morphology
	)
	for _, entry := range entries {
		if entry.sep {
			forms = append(forms, entry.Word)
			continue
		}
		forms = append(forms, entry.firstOption())
		words = append(words, parseMorphology(entry))
	}

	return &Result{
		Text:  hebrew.Normalize(strings.Join(forms, "")),
		Words: words,
	}, nil
}

// Lemmatize returns the base form of each word in the text.
func (c *httpClient) Lemmatize(ctx context.Context, text string) ([]Lemma, error) {
	result, err := c.Analyze(ctx, text)
	if err != nil {
		return nil, err
	}

	lemmas := make([]Lemma, 0, len(result.Words))
	for _, w := range result.Words {
		if strings.TrimSpace(w.Word) == "" {
			continue
		}
		lemma := w.Lemma
		if lemma == "" {
			lemma = w.Word
		}
		lemmas = append(lemmas, Lemma{Word: w.Word, Lemma: lemma})
	}
	return lemmas, nil
}

func (c *httpClient) post(ctx context.Context, url string, payload map[string]any) ([]wordEntry, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding payload: %v", ErrRejected, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrRejected, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "Nakdan request failed", "url", url, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.ErrorContext(ctx, "Nakdan returned non-success status", "url", url, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	entries, err := decodeEntries(raw)
	if err != nil {
		c.log.ErrorContext(ctx, "Nakdan response did not decode", "url", url, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrRejected, err)
	}

	c.log.DebugContext(ctx, "Nakdan request completed",
		"url", url, "status", resp.StatusCode, "entries", len(entries), "duration", time.Since(start))
	return entries, nil
}

// joinWithOriginalSpacing rebuilds the vowelized text using the whitespace
// runs of the original input, so "a  b" keeps its double space after
// vowelization.
func joinWithOriginalSpacing(original string, words []string) string {
	fields := strings.Fields(original)
	if len(fields) == 0 {
		return strings.Join(words, "")
	}

	// Collect the whitespace preceding each original word plus any
	// trailing run.
	spaces := make([]string, 0, len(fields)+1)
	pos := 0
	for _, f := range fields {
		idx := strings.Index(original[pos:], f)
		if idx < 0 {
			return strings.Join(words, " ")
		}
		spaces = append(spaces, original[pos:pos+idx])
		pos += idx + len(f)
	}
	spaces = append(spaces, original[pos:])

	// The service may tokenize differently than strings.Fields; fall back
	// to plain concatenation of its own separators in that case.
	var vowelized []string
	for _, w := range words {
		if strings.TrimSpace(w) != "" {
			vowelized = append(vowelized, w)
		}
	}
	if len(vowelized) != len(fields) {
		return strings.Join(words, "")
	}

	var b strings.Builder
	for i, w := range vowelized {
		b.WriteString(spaces[i])
		b.WriteString(w)
	}
	b.WriteString(spaces[len(spaces)-1])
	return b.String()
}
