package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/alephbot/alephbot/internal/database"
	"github.com/alephbot/alephbot/internal/dicta"
	"github.com/alephbot/alephbot/internal/discord"
	"github.com/alephbot/alephbot/internal/hebrew"
	"github.com/alephbot/alephbot/internal/nakdan"
)

// Dispatcher routes application command interactions to their registered
// handlers. Each invocation is stateless: acknowledge, run the handler
// under its own timeout, send exactly one reply. Handler errors become
// user-facing messages; nothing crashes the process.
type Dispatcher struct {
	deps     HandlerDeps
	registry map[string]RegisteredCommand
	cooldown *Cooldown
}

// NewDispatcher creates a dispatcher over the registration table.
func NewDispatcher(deps HandlerDeps, registry map[string]RegisteredCommand) *Dispatcher {
	return &Dispatcher{
		deps:     deps,
		registry: registry,
		cooldown: NewCooldown(deps.Config.Bot.CommandCooldown),
	}
}

// HandleInteraction processes one application command interaction.
func (d *Dispatcher) HandleInteraction(s discord.Session, ic *discordgo.InteractionCreate) {
	name := ic.ApplicationCommandData().Name
	log := d.deps.Logger.With("handler", name)

	cmd, ok := d.registry[name]
	if !ok {
		log.Warn("received interaction for unknown command")
		return
	}

	userID := interactionUserID(ic)
	log.Info("command invoked", "user_id", userID, "guild_id", ic.GuildID, "channel_id", ic.ChannelID)

	ctx, cancel := context.WithTimeout(context.Background(), d.deps.Config.Bot.RequestTimeout)
	defer cancel()

	if err := d.ack(s, ic, cmd.Ephemeral); err != nil {
		log.ErrorContext(ctx, "failed to acknowledge interaction", "error", err)
		return
	}

	start := time.Now()

	var (
		resp *discord.Response
		err  error
	)
	if !cmd.NoCooldown {
		err = d.cooldown.Check(name, userID)
	}
	if err == nil {
		opts := discord.OptionMap(ic.ApplicationCommandData().Options)
		resp, err = cmd.Handler(ctx, ic, opts)
	}

	errKind := ""
	if err != nil {
		var text string
		text, errKind = d.failureText(err)
		resp = &discord.Response{Content: text}
		log.WarnContext(ctx, "command failed", "kind", errKind, "error", err)
	}

	if editErr := d.edit(s, ic, resp); editErr != nil {
		log.ErrorContext(ctx, "failed to send reply", "error", editErr)
	}

	d.record(ctx, &database.Invocation{
		Command:    name,
		UserID:     userID,
		GuildID:    ic.GuildID,
		ChannelID:  ic.ChannelID,
		DurationMS: time.Since(start).Milliseconds(),
		OK:         err == nil,
		ErrorKind:  errKind,
	})
}

func (d *Dispatcher) ack(s discord.Session, ic *discordgo.InteractionCreate, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
}

func (d *Dispatcher) edit(s discord.Session, ic *discordgo.InteractionCreate, resp *discord.Response) error {
	if resp == nil {
		return errors.New("handler produced no response")
	}

	edit := &discordgo.WebhookEdit{}
	if resp.Content != "" {
		content := resp.Content
		edit.Content = &content
	}
	if resp.Embed != nil {
		embeds := []*discordgo.MessageEmbed{resp.Embed}
		edit.Embeds = &embeds
	}

	_, err := s.InteractionResponseEdit(ic.Interaction, edit)
	return err
}

// failureText maps the error taxonomy to the configured user-facing
// message and names the error category for the usage record. Raw error
// text never reaches the user.
func (d *Dispatcher) failureText(err error) (string, string) {
	cfg := d.deps.Config

	var cdErr *CooldownError
	switch {
	case errors.As(err, &cdErr):
		return fmt.Sprintf(cfg.Bot.MsgCooldown, cdErr.Retry.Seconds()), "cooldown"
	case errors.Is(err, hebrew.ErrEmptyText):
		return cfg.Bot.MsgProvideText, "input"
	case errors.Is(err, hebrew.ErrTextTooLong):
		return fmt.Sprintf(cfg.Bot.MsgTextTooLong, cfg.Nakdan.MaxTextLength), "input"
	case errors.Is(err, hebrew.ErrNotHebrew):
		return cfg.Bot.MsgProvideHebrew, "input"
	case errors.Is(err, nakdan.ErrUnavailable),
		errors.Is(err, dicta.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return cfg.Bot.MsgServiceUnavailable, "unavailable"
	case errors.Is(err, nakdan.ErrRejected),
		errors.Is(err, dicta.ErrRejected):
		return cfg.Bot.MsgCouldNotProcess, "rejected"
	default:
		return cfg.Bot.MsgGeneralError, "internal"
	}
}

// record stores the invocation for the usage report; failures are logged
// only, the user has already been answered.
func (d *Dispatcher) record(_ context.Context, inv *database.Invocation) {
	if d.deps.Store == nil {
		return
	}
	// The invocation context may already be past its deadline; give the
	// write its own brief one.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.deps.Store.RecordInvocation(ctx, inv); err != nil {
		d.deps.Logger.ErrorContext(ctx, "failed to record invocation", "command", inv.Command, "error", err)
	}
}

// interactionUserID extracts the invoking user's ID from a guild or DM
// interaction.
func interactionUserID(ic *discordgo.InteractionCreate) string {
	if ic.Member != nil && ic.Member.User != nil {
		return ic.Member.User.ID
	}
	if ic.User != nil {
		return ic.User.ID
	}
	return ""
}
