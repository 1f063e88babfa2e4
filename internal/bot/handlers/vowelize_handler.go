package handlers

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/alephbot/alephbot/internal/discord"
	"github.com/alephbot/alephbot/internal/hebrew"
)

// NewVowelizeHandler returns the handler for /vowelize.
func NewVowelizeHandler(deps HandlerDeps) HandlerFunc {
	return vowelizeHandler{deps}.Handle
}

type vowelizeHandler struct {
	deps HandlerDeps
}

// Handle relays the text to the Nakdan service and replies with the
// niqqud-bearing rendition, unmodified.
func (h vowelizeHandler) Handle(ctx context.Context, _ *discordgo.InteractionCreate, opts discord.CommandOptions) (*discord.Response, error) {
	text := opts.String(OptText)
	if err := hebrew.CheckText(text, h.deps.Config.Nakdan.MaxTextLength); err != nil {
		return nil, err
	}

	result, err := h.deps.Nakdan.Vowelize(ctx, text)
	if err != nil {
		return nil, err
	}

	embed := discord.NewHebrewEmbed(hebrew.TitleVowelize, text, discord.ColorBlue)
	embed.Description += fmt.Sprintf("\n**Result:**\n%s", result.Text)
	return &discord.Response{Embed: embed}, nil
}
