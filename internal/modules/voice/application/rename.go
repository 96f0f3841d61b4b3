package application

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/disgoorg/snowflake/v2"
)

const maxChannelNameLength = 100

// RenameInput contains the input for the Rename use case.
type RenameInput struct {
	GuildID snowflake.ID
	UserID  snowflake.ID
	Name    string // empty resets to the stored default
}

// RenameOutput contains the result of the Rename use case.
type RenameOutput struct {
	ChannelID snowflake.ID
	Name      string
	Reset     bool
}

// RenameService renames the voice channel a user is in.
type RenameService struct {
	voiceState VoiceStateProvider
	renamer    ChannelRenamer
	guilds     GuildReader
}

// NewRenameService creates a new RenameService.
func NewRenameService(
	voiceState VoiceStateProvider,
	renamer ChannelRenamer,
	guilds GuildReader,
) *RenameService {
	return &RenameService{
		voiceState: voiceState,
		renamer:    renamer,
		guilds:     guilds,
	}
}

// Rename renames the user's current voice channel.
func (s *RenameService) Rename(ctx context.Context, input RenameInput) (*RenameOutput, error) {
	if input.GuildID == 0 {
		return nil, ErrNotInGuild
	}

	channelID, err := s.voiceState.UserVoiceChannel(input.GuildID, input.UserID)
	if err != nil {
		return nil, err
	}
	if channelID == 0 {
		return nil, ErrUserNotInVoice
	}

	name := strings.TrimSpace(input.Name)
	reset := name == ""
	if reset {
		guild, err := s.guilds.Guild(input.GuildID)
		if err != nil {
			return nil, err
		}
		defaultName, ok := guild.DefaultVoiceName(channelID)
		if !ok {
			return nil, ErrNoDefaultName
		}
		name = defaultName
	}
	if utf8.RuneCountInString(name) > maxChannelNameLength {
		return nil, ErrNameTooLong
	}

	if err := s.renamer.RenameChannel(ctx, channelID, name); err != nil {
		return nil, err
	}

	return &RenameOutput{ChannelID: channelID, Name: name, Reset: reset}, nil
}
