package presentation

import (
	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/emotebot/internal/command"
)

// Commands returns the command tree of the config module. /config is
// restricted: only guild owners and the bot owner are granted it.
func Commands() []*command.Node {
	return []*command.Node{
		command.NewCommand("config", "Configure the bot for this server",
			command.NewSubcommand("default-voice", "Sets the default name for a voice channel",
				&discordgo.ApplicationCommandOption{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "channel",
					Description:  "The voice channel to target",
					Required:     true,
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildVoice},
				},
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "The channel name to reset to (removes the default name if empty)",
					MaxLength:   100,
				},
			),
			command.NewSubcommand("stream-embeds-channel",
				"Configures a text channel to receive stream embeds",
				&discordgo.ApplicationCommandOption{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "channel",
					Description:  "The channel to target (disables stream embeds if empty)",
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
				},
			),
		).Restrict(),
	}
}
