// Package discord wraps the discordgo session: connection lifecycle, slash
// command registration, and the narrow session surface handlers consume.
package discord

import "github.com/bwmarrin/discordgo"

// Session abstracts the discordgo.Session methods used when answering an
// interaction, so handlers and the dispatcher can be tested against a fake.
// *discordgo.Session satisfies this interface.
type Session interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ Session = (*discordgo.Session)(nil)

// Response is what a command handler produces for the user. Either field
// may be empty, not both.
type Response struct {
	Content string
	Embed   *discordgo.MessageEmbed
}
