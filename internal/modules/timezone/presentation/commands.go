package presentation

import (
	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/emotebot/internal/command"
	"github.com/sglre6355/emotebot/internal/modules/timezone/domain"
)

// Commands returns the command tree of the timezone module.
func Commands() []*command.Node {
	return []*command.Node{
		command.NewCommand("time", "Share local times across timezones",
			command.NewSubcommand("show",
				"Display a user's current local time (or your own if no user is specified)",
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The user to check (if any)",
				},
			),
			command.NewSubcommand("setup", "Registers your timezone info to the bot",
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "offset",
					Description: "Your standard UTC offset, e.g. -5, +05:30 or UTC+9",
					Required:    true,
				},
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "dst",
					Description: "The daylight saving rules you follow (none by default)",
					Choices:     regionChoices(),
				},
			),
			command.NewSubcommand("delete", "Removes your timezone info from the bot"),
			command.NewSubcommand("utc", "Displays the current time in UTC"),
			command.NewSubcommand("dst-info",
				"Displays the different options for configuring daylight saving info"),
		),
	}
}

func regionChoices() []*discordgo.ApplicationCommandOptionChoice {
	regions := domain.Regions()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(regions))
	for i, r := range regions {
		choices[i] = &discordgo.ApplicationCommandOptionChoice{Name: r.Label(), Value: r.String()}
	}
	return choices
}
