package presentation

import (
	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/emotebot/internal/command"
)

// Commands returns the command tree of the emotes module.
func Commands() []*command.Node {
	return []*command.Node{
		command.NewLeafCommand("emotes", "Lists out all the emotes the bot currently has access to",
			&discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "regex",
				Description: "The regex pattern to filter emotes by",
			},
			&discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "is-case-sensitive",
				Description: "Whether or not to check the pattern for case-sensitivity (false by default)",
			},
		),
	}
}
