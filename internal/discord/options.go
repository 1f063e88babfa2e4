package discord

import "github.com/bwmarrin/discordgo"

// CommandOptions flattens an interaction's options into a map keyed by
// option name.
type CommandOptions map[string]*discordgo.ApplicationCommandInteractionDataOption

// OptionMap builds a CommandOptions from the raw option slice.
func OptionMap(options []*discordgo.ApplicationCommandInteractionDataOption) CommandOptions {
	m := make(CommandOptions, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// String returns the named option's string value, or "" when absent or not
// a string.
func (opts CommandOptions) String(key string) string {
	opt, found := opts[key]
	if !found {
		return ""
	}
	val, ok := opt.Value.(string)
	if !ok {
		return ""
	}
	return val
}
