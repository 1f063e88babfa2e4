package handlers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/alephbot/alephbot/internal/discord"
)

// invitePermissions are the permissions requested in the invite link.
const invitePermissions = discordgo.PermissionSendMessages |
	discordgo.PermissionEmbedLinks |
	discordgo.PermissionUseSlashCommands

// NewInviteHandler returns the handler for /invite.
func NewInviteHandler(deps HandlerDeps) HandlerFunc {
	return inviteHandler{deps}.Handle
}

type inviteHandler struct {
	deps HandlerDeps
}

// Handle replies with an OAuth2 authorize link built from the
// interaction's application ID.
func (h inviteHandler) Handle(_ context.Context, ic *discordgo.InteractionCreate, _ discord.CommandOptions) (*discord.Response, error) {
	inviteURL := oauthURL(ic.AppID)

	embed := &discordgo.MessageEmbed{
		Title:       "Invite AlephBot",
		Color:       discord.ColorBlue,
		Description: fmt.Sprintf("[Click here to invite AlephBot](%s)", inviteURL),
	}
	return &discord.Response{Embed: embed}, nil
}

func oauthURL(appID string) string {
	q := url.Values{}
	q.Set("client_id", appID)
	q.Set("permissions", strconv.Itoa(invitePermissions))
	q.Set("scope", "bot applications.commands")
	return "https://discord.com/api/oauth2/authorize?" + q.Encode()
}
