package presentation

import (
	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/emotebot/internal/command"
	"github.com/sglre6355/emotebot/internal/modules/stream/domain"
)

// Commands returns the command tree of the stream module.
func Commands() []*command.Node {
	return []*command.Node{
		command.NewLeafCommand("stream", "Modifies your current stream embed",
			&discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "title",
				Description: "The title of your stream embed",
				MaxLength:   domain.MaxTitleLength,
			},
			&discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "description",
				Description: "The description of your stream embed (supports Markdown formatting)",
			},
			&discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "thumbnail",
				Description: "The link to an image to set as the thumbnail",
			},
		),
	}
}
