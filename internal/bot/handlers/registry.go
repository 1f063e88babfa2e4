package handlers

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/alephbot/alephbot/internal/dicta"
	"github.com/alephbot/alephbot/internal/discord"
)

// Command names as registered with Discord.
const (
	CmdVowelize  = "vowelize"
	CmdAnalyze   = "analyze"
	CmdLemmatize = "lemmatize"
	CmdTranslate = "translate"
	CmdInvite    = "invite"
)

// Option names.
const (
	OptText  = "text"
	OptGenre = "genre"
)

// HandlerFunc is the signature every command handler implements. The
// interaction has already been deferred; the returned response is written
// as the deferred reply, and a returned error is mapped to a user-facing
// failure message by the dispatcher.
type HandlerFunc func(ctx context.Context, ic *discordgo.InteractionCreate, opts discord.CommandOptions) (*discord.Response, error)

// RegisteredCommand pairs a slash command definition with its handler.
type RegisteredCommand struct {
	Command *discordgo.ApplicationCommand
	Handler HandlerFunc
	// Ephemeral replies are visible only to the invoking user.
	Ephemeral bool
	// NoCooldown exempts the command from the per-user cooldown.
	NoCooldown bool
}

// RegisterAllCommands builds the registration table mapping command name to
// definition and handler.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredCommand {
	textOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        OptText,
		Description: "The text to process",
		Required:    true,
	}

	genreChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(dicta.Genres))
	for _, g := range dicta.Genres {
		genreChoices = append(genreChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  g.Description,
			Value: g.Name,
		})
	}

	commands := make(map[string]RegisteredCommand)

	commands[CmdVowelize] = RegisteredCommand{
		Command: &discordgo.ApplicationCommand{
			Name:        CmdVowelize,
			Description: "Add niqqud (vowel points) to Hebrew text",
			Options:     []*discordgo.ApplicationCommandOption{textOption},
		},
		Handler: NewVowelizeHandler(deps),
	}
	commands[CmdAnalyze] = RegisteredCommand{
		Command: &discordgo.ApplicationCommand{
			Name:        CmdAnalyze,
			Description: "Analyze Hebrew text and show morphological information",
			Options:     []*discordgo.ApplicationCommandOption{textOption},
		},
		Handler: NewAnalyzeHandler(deps),
	}
	commands[CmdLemmatize] = RegisteredCommand{
		Command: &discordgo.ApplicationCommand{
			Name:        CmdLemmatize,
			Description: "Get the base/root forms of Hebrew words",
			Options:     []*discordgo.ApplicationCommandOption{textOption},
		},
		Handler: NewLemmatizeHandler(deps),
	}
	commands[CmdTranslate] = RegisteredCommand{
		Command: &discordgo.ApplicationCommand{
			Name:        CmdTranslate,
			Description: "Translate text between Hebrew and English",
			Options: []*discordgo.ApplicationCommandOption{
				textOption,
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        OptGenre,
					Description: "Translation style",
					Required:    false,
					Choices:     genreChoices,
				},
			},
		},
		Handler: NewTranslateHandler(deps),
	}
	commands[CmdInvite] = RegisteredCommand{
		Command: &discordgo.ApplicationCommand{
			Name:        CmdInvite,
			Description: "Get an invite link to add the bot to your server",
		},
		Handler:    NewInviteHandler(deps),
		Ephemeral:  true,
		NoCooldown: true,
	}

	deps.Logger.Info("initialized command handlers", "count", len(commands))
	return commands
}

// Definitions extracts the slash command definitions for bulk registration.
func Definitions(commands map[string]RegisteredCommand) []*discordgo.ApplicationCommand {
	defs := make([]*discordgo.ApplicationCommand, 0, len(commands))
	for _, c := range commands {
		defs = append(defs, c.Command)
	}
	return defs
}
