package presentation

import (
	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/emotebot/internal/command"
)

// MenuName is the message context menu entry of the react module.
const MenuName = "React with Emotes"

// Commands returns the command trees of the react module.
func Commands() []*command.Node {
	return []*command.Node{
		command.NewLeafCommand("react",
			"Reacts to the targeted message with any emotes the bot currently has access to",
			&discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "emotes",
				Description: "The list of space-separated emote names to react with",
				Required:    true,
			},
			&discordgo.ApplicationCommandOption{
				Type: discordgo.ApplicationCommandOptionString,
				Name: "target",
				Description: "The message to target " +
					"(distance / message ID / channel-message ID pair / message link)",
			},
		),
		command.NewMessageCommand(MenuName),
	}
}
