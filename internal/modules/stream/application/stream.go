package application

import (
	"context"
	"errors"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/emotebot/internal/modules/stream/domain"
	"github.com/sglre6355/emotebot/internal/storage"
)

// Errors reported to the invoker.
var (
	ErrNotInGuild                 = errors.New("this command can only be used in a server")
	ErrStreamChannelNotConfigured = errors.New(
		"stream embeds are disabled in this server; ask the owner to run /config stream-embeds-channel",
	)
)

// GuildReader reads guild settings. *storage.Store satisfies it.
type GuildReader interface {
	Guild(id snowflake.ID) (*storage.Guild, error)
}

// EmbedPoster posts stream embeds to a channel.
type EmbedPoster interface {
	PostStream(ctx context.Context, channelID snowflake.ID, embed *domain.StreamEmbed) (snowflake.ID, error)
}

// PostInput contains the input for the Post use case.
type PostInput struct {
	GuildID     snowflake.ID
	Streamer    domain.Streamer
	Title       string
	Description string
	Thumbnail   string
}

// PostOutput contains the result of the Post use case.
type PostOutput struct {
	ChannelID snowflake.ID
	MessageID snowflake.ID
}

// StreamService announces streams in the configured channel.
type StreamService struct {
	guilds GuildReader
	poster EmbedPoster
	now    func() time.Time
}

// NewStreamService creates a new StreamService. A nil clock uses time.Now.
func NewStreamService(guilds GuildReader, poster EmbedPoster, now func() time.Time) *StreamService {
	if now == nil {
		now = time.Now
	}
	return &StreamService{guilds: guilds, poster: poster, now: now}
}

// Post validates the announcement and posts it.
func (s *StreamService) Post(ctx context.Context, input PostInput) (*PostOutput, error) {
	if input.GuildID == 0 {
		return nil, ErrNotInGuild
	}

	embed, err := domain.NewStreamEmbed(
		input.Streamer,
		input.Title,
		input.Description,
		input.Thumbnail,
		s.now(),
	)
	if err != nil {
		return nil, err
	}

	guild, err := s.guilds.Guild(input.GuildID)
	if err != nil {
		return nil, err
	}
	if guild.StreamChannelID == 0 {
		return nil, ErrStreamChannelNotConfigured
	}

	messageID, err := s.poster.PostStream(ctx, guild.StreamChannelID, embed)
	if err != nil {
		return nil, err
	}

	return &PostOutput{ChannelID: guild.StreamChannelID, MessageID: messageID}, nil
}
