package application

import (
	"strings"
	"unicode/utf8"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/emotebot/internal/storage"
)

// MaxChannelNameLength is Discord's limit on channel names.
const MaxChannelNameLength = 100

// GuildStore persists guild settings. *storage.Store satisfies it.
type GuildStore interface {
	UpdateGuild(id snowflake.ID, fn func(g *storage.Guild)) (*storage.Guild, error)
}

// SetDefaultVoiceInput contains the input for the SetDefaultVoice use case.
type SetDefaultVoiceInput struct {
	GuildID   snowflake.ID
	ChannelID snowflake.ID
	Name      string // empty removes the default
}

// SetDefaultVoiceOutput contains the result of the SetDefaultVoice use case.
type SetDefaultVoiceOutput struct {
	ChannelID snowflake.ID
	Name      string
	Removed   bool
}

// SetStreamChannelInput contains the input for the SetStreamChannel use case.
type SetStreamChannelInput struct {
	GuildID   snowflake.ID
	ChannelID snowflake.ID // zero disables stream embeds
}

// SetStreamChannelOutput contains the result of the SetStreamChannel use case.
type SetStreamChannelOutput struct {
	ChannelID snowflake.ID
	Disabled  bool
}

// SettingsService changes per-guild settings.
type SettingsService struct {
	store GuildStore
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(store GuildStore) *SettingsService {
	return &SettingsService{store: store}
}

// SetDefaultVoice stores or removes the name a voice channel resets to.
func (s *SettingsService) SetDefaultVoice(input SetDefaultVoiceInput) (*SetDefaultVoiceOutput, error) {
	if input.GuildID == 0 {
		return nil, ErrNotInGuild
	}
	if input.ChannelID == 0 {
		return nil, ErrInvalidChannel
	}

	name := strings.TrimSpace(input.Name)
	if utf8.RuneCountInString(name) > MaxChannelNameLength {
		return nil, ErrNameTooLong
	}

	if _, err := s.store.UpdateGuild(input.GuildID, func(g *storage.Guild) {
		g.SetDefaultVoiceName(input.ChannelID, name)
	}); err != nil {
		return nil, err
	}

	return &SetDefaultVoiceOutput{
		ChannelID: input.ChannelID,
		Name:      name,
		Removed:   name == "",
	}, nil
}

// SetStreamChannel stores or clears the channel that receives stream embeds.
func (s *SettingsService) SetStreamChannel(input SetStreamChannelInput) (*SetStreamChannelOutput, error) {
	if input.GuildID == 0 {
		return nil, ErrNotInGuild
	}

	if _, err := s.store.UpdateGuild(input.GuildID, func(g *storage.Guild) {
		g.StreamChannelID = input.ChannelID
	}); err != nil {
		return nil, err
	}

	return &SetStreamChannelOutput{
		ChannelID: input.ChannelID,
		Disabled:  input.ChannelID == 0,
	}, nil
}
