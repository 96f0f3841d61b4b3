package presentation

import (
	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/emotebot/internal/command"
)

// Commands returns the command tree of the welcome module.
func Commands() []*command.Node {
	return []*command.Node{
		command.NewCommand("welcome", "Welcome a user",
			command.NewSubcommand("lmao", "git rekt",
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "not a bot",
				},
			),
			command.NewGroup("group", "sample text",
				command.NewSubcommand("fah", "rohdah"),
			),
		),
	}
}
