package application

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/emotebot/internal/storage"
)

// VoiceStateProvider defines the interface for getting Discord voice state information.
type VoiceStateProvider interface {
	// UserVoiceChannel returns the voice channel ID the user is currently in.
	// Returns 0 if the user is not in a voice channel.
	UserVoiceChannel(guildID, userID snowflake.ID) (snowflake.ID, error)
}

// ChannelRenamer renames guild channels.
type ChannelRenamer interface {
	RenameChannel(ctx context.Context, channelID snowflake.ID, name string) error
}

// GuildReader reads guild settings. *storage.Store satisfies it.
type GuildReader interface {
	Guild(id snowflake.ID) (*storage.Guild, error)
}
