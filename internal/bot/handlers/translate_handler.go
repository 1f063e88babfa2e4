package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/alephbot/alephbot/internal/dicta"
	"github.com/alephbot/alephbot/internal/discord"
	"github.com/alephbot/alephbot/internal/hebrew"
)

// NewTranslateHandler returns the handler for /translate.
func NewTranslateHandler(deps HandlerDeps) HandlerFunc {
	return translateHandler{deps}.Handle
}

type translateHandler struct {
	deps HandlerDeps
}

// Handle translates between Hebrew and English, direction detected from
// the input. Unlike the Hebrew-only commands, English input is valid here.
func (h translateHandler) Handle(ctx context.Context, _ *discordgo.InteractionCreate, opts discord.CommandOptions) (*discord.Response, error) {
	text := opts.String(OptText)
	if strings.TrimSpace(text) == "" {
		return nil, hebrew.ErrEmptyText
	}
	if len([]rune(text)) > h.deps.Config.Nakdan.MaxTextLength {
		return nil, hebrew.ErrTextTooLong
	}

	genre := opts.String(OptGenre)
	if genre == "" {
		genre = dicta.DefaultGenre
	}

	translated, err := h.deps.Translator.Translate(ctx, text, genre)
	if err != nil {
		return nil, err
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Translation (%s)", genreTitle(genre)),
		Color: discord.ColorBlue,
		Description: fmt.Sprintf("**Original Text:**\n%s\n\n**Translated Text:**\n%s",
			text, translated),
	}
	return &discord.Response{Embed: embed}, nil
}

func genreTitle(genre string) string {
	parts := strings.Split(genre, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ") + " Style"
}
