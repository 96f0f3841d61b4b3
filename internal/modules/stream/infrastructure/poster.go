package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/emotebot/internal/modules/stream/application"
	"github.com/sglre6355/emotebot/internal/modules/stream/domain"
)

// Twitch purple.
const colorStream = 0x9146FF

type embedSender interface {
	ChannelMessageSendEmbed(
		channelID string,
		embed *discordgo.MessageEmbed,
		options ...discordgo.RequestOption,
	) (*discordgo.Message, error)
}

// Poster sends stream embeds to Discord channels.
type Poster struct {
	session embedSender
}

// NewPoster creates a new Poster.
func NewPoster(session embedSender) *Poster {
	return &Poster{session: session}
}

// PostStream sends the stream embed and returns the message ID.
func (p *Poster) PostStream(
	ctx context.Context,
	channelID snowflake.ID,
	stream *domain.StreamEmbed,
) (snowflake.ID, error) {
	msg, err := p.session.ChannelMessageSendEmbed(
		channelID.String(),
		buildEmbed(stream),
		discordgo.WithContext(ctx),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to post stream embed to %s: %w", channelID, err)
	}
	return snowflake.Parse(msg.ID)
}

func buildEmbed(stream *domain.StreamEmbed) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{
			Name:    stream.Streamer.Name,
			IconURL: stream.Streamer.AvatarURL,
		},
		Title:       stream.Title,
		Description: stream.Description,
		Color:       colorStream,
		Timestamp:   stream.PostedAt.UTC().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Streamer",
				Value:  fmt.Sprintf("<@%s>", stream.Streamer.ID),
				Inline: true,
			},
		},
	}

	if stream.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{
			URL: stream.ThumbnailURL,
		}
	}

	return embed
}

var _ application.EmbedPoster = (*Poster)(nil)
