// Package dicta implements the client for the Dicta translation service,
// which translates between Hebrew and English over a WebSocket endpoint.
package dicta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/alephbot/alephbot/internal/hebrew"
)

// Direction of translation, as the service expects it on the wire.
type Direction string

const (
	HebrewToEnglish Direction = "he2en"
	EnglishToHebrew Direction = "en2he"
)

// Translation genres accepted by the service.
const (
	GenreModernFancy      = "modern-fancy"
	GenreModernFormal     = "modern-formal"
	GenreModernColloquial = "modern-colloquial"
	GenreBiblical         = "biblical"
	GenreTechnical        = "technical"
	GenreLegal            = "legal"

	DefaultGenre = GenreModernFancy
)

// Genres maps each genre to its human-readable description, in the order
// they are presented to users.
var Genres = []struct {
	Name        string
	Description string
}{
	{GenreModernFancy, "Standard modern translation style"},
	{GenreModernFormal, "Formal/professional translation style"},
	{GenreModernColloquial, "Casual/conversational style"},
	{GenreBiblical, "Biblical/archaic style translation"},
	{GenreTechnical, "Technical/scientific translation style"},
	{GenreLegal, "Legal/official document style"},
}

var (
	// ErrUnavailable covers connection and deadline failures on the
	// WebSocket endpoint.
	ErrUnavailable = errors.New("translation service unavailable")
	// ErrRejected covers error payloads and responses that do not decode.
	ErrRejected = errors.New("translation request rejected")
)

// Translator is the interface the command handlers consume.
type Translator interface {
	Translate(ctx context.Context, text, genre string) (string, error)
}

// Config carries the client settings.
type Config struct {
	WSURL   string
	Timeout time.Duration
}

type wsClient struct {
	cfg Config
	log *slog.Logger
}

// NewClient creates a Dicta translation client. Each Translate call opens
// its own connection, so the client is safe for concurrent use.
func NewClient(cfg Config, log *slog.Logger) Translator {
	return &wsClient{cfg: cfg, log: log.With("component", "dicta_client")}
}

// DetectDirection picks the translation direction from the text: Hebrew
// input translates to English, anything else to Hebrew.
func DetectDirection(text string) Direction {
	if hebrew.ContainsHebrew(text) {
		return HebrewToEnglish
	}
	return EnglishToHebrew
}

// ValidGenre reports whether the service accepts the given genre name.
func ValidGenre(genre string) bool {
	for _, g := range Genres {
		if g.Name == genre {
			return true
		}
	}
	return false
}

type wireRequest struct {
	Text        string  `json:"text"`
	Direction   string  `json:"direction"`
	Genre       string  `json:"genre"`
	Temperature float64 `json:"temperature"`
}

type wireResponse struct {
	Out   string `json:"out"`
	Error string `json:"error"`
}

// Translate sends one translation request and waits for the final
// response. The configured timeout bounds dial, write, and read together.
func (c *wsClient) Translate(ctx context.Context, text, genre string) (string, error) {
	if genre == "" {
		genre = DefaultGenre
	}
	direction := DetectDirection(text)

	dialCtx := ctx
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, c.cfg.WSURL, nil)
	if err != nil {
		c.log.ErrorContext(ctx, "Dicta WebSocket dial failed", "url", c.cfg.WSURL, "error", err)
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer conn.Close()

	if deadline, ok := dialCtx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
		_ = conn.SetReadDeadline(deadline)
	}

	req := wireRequest{
		Text:      text,
		Direction: string(direction),
		Genre:     genre,
	}
	if err := conn.WriteJSON(req); err != nil {
		return "", fmt.Errorf("%w: sending request: %v", ErrUnavailable, err)
	}

	_, raw, err := conn.ReadMessage()
	if err != nil {
		c.log.ErrorContext(ctx, "Dicta WebSocket read failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var resp wireResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		c.log.ErrorContext(ctx, "Dicta response did not decode", "error", err)
		return "", fmt.Errorf("%w: %v", ErrRejected, err)
	}
	if resp.Error != "" {
		c.log.ErrorContext(ctx, "Dicta reported translation error", "error", resp.Error)
		return "", fmt.Errorf("%w: %s", ErrRejected, resp.Error)
	}

	out := strings.TrimSpace(resp.Out)
	if out == "" {
		return "", fmt.Errorf("%w: empty translation", ErrRejected)
	}

	c.log.DebugContext(ctx, "Translation completed", "direction", direction, "genre", genre)
	return out, nil
}
