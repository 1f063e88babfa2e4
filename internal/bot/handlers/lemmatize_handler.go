package handlers

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/alephbot/alephbot/internal/discord"
	"github.com/alephbot/alephbot/internal/hebrew"
)

// NewLemmatizeHandler returns the handler for /lemmatize.
func NewLemmatizeHandler(deps HandlerDeps) HandlerFunc {
	return lemmatizeHandler{deps}.Handle
}

type lemmatizeHandler struct {
	deps HandlerDeps
}

// Handle replies with the base form of each word in the text.
func (h lemmatizeHandler) Handle(ctx context.Context, _ *discordgo.InteractionCreate, opts discord.CommandOptions) (*discord.Response, error) {
	text := opts.String(OptText)
	if err := hebrew.CheckText(text, h.deps.Config.Nakdan.MaxTextLength); err != nil {
		return nil, err
	}

	lemmas, err := h.deps.Nakdan.Lemmatize(ctx, text)
	if err != nil {
		return nil, err
	}

	embed := discord.NewHebrewEmbed(hebrew.TitleLemmatize, text, discord.ColorPurple)
	for _, l := range lemmas {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   l.Word,
			Value:  fmt.Sprintf("Base form: %s", l.Lemma),
			Inline: true,
		})
	}

	return &discord.Response{Embed: embed}, nil
}
