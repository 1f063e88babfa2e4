package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// InteractionHandler receives every application command interaction from
// the gateway.
type InteractionHandler func(s Session, ic *discordgo.InteractionCreate)

// Bot owns the discordgo session lifecycle: gateway connection, slash
// command registration, and handler wiring.
type Bot struct {
	dg       *discordgo.Session
	log      *slog.Logger
	guildID  string
	commands []*discordgo.ApplicationCommand
}

// New creates the session without connecting. commands are registered in
// bulk once the gateway connection is up; a non-empty guildID registers
// them in that guild only (instant propagation), otherwise globally.
func New(token, guildID string, log *slog.Logger, commands []*discordgo.ApplicationCommand) (*Bot, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	return &Bot{
		dg:       dg,
		log:      log.With("component", "discord"),
		guildID:  guildID,
		commands: commands,
	}, nil
}

// OnInteraction wires the interaction handler. Each interaction is handled
// on its own goroutine by discordgo; handlers share no mutable state.
func (b *Bot) OnInteraction(handler InteractionHandler) {
	b.dg.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		if ic.Type != discordgo.InteractionApplicationCommand {
			return
		}
		handler(s, ic)
	})
	b.dg.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		b.log.Info("gateway ready", "username", r.User.Username, "guilds", len(r.Guilds))
	})
}

// Start opens the gateway connection, registers the slash commands, and
// blocks until ctx is cancelled, then closes the session.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open discord connection: %w", err)
	}

	appID := b.dg.State.User.ID
	registered, err := b.dg.ApplicationCommandBulkOverwrite(appID, b.guildID, b.commands)
	if err != nil {
		if closeErr := b.dg.Close(); closeErr != nil {
			b.log.Error("error closing session after registration failure", "error", closeErr)
		}
		return fmt.Errorf("failed to register slash commands: %w", err)
	}
	b.log.Info("slash commands registered", "count", len(registered), "guild_id", b.guildID)

	<-ctx.Done()

	if err := b.dg.Close(); err != nil {
		return fmt.Errorf("failed to close discord connection: %w", err)
	}
	b.log.Info("discord session closed")
	return nil
}
