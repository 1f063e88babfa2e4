package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Embed colors.
const (
	ColorBlue   = 0x3498db
	ColorGreen  = 0x2ecc71
	ColorPurple = 0x9b59b6
)

// DefaultFooter credits the upstream service on every Hebrew text reply.
const DefaultFooter = "Powered by Nakdan API"

// NewHebrewEmbed creates the standard embed for Hebrew text responses:
// title, quoted original text, and the service footer.
func NewHebrewEmbed(title, originalText string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Color:       color,
		Description: fmt.Sprintf("**Original Text:**\n```%s```\n➖➖➖➖➖", originalText),
		Footer:      &discordgo.MessageEmbedFooter{Text: DefaultFooter},
	}
}
