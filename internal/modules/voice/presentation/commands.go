package presentation

import (
	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/emotebot/internal/command"
)

// Commands returns the command tree of the voice module.
func Commands() []*command.Node {
	return []*command.Node{
		command.NewLeafCommand("voice", "Changes the name of the current voice channel you're in",
			&discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "name",
				Description: "The channel name to change to (resets to the default if empty)",
				MaxLength:   100,
			},
		),
	}
}
