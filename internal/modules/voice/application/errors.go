package application

import "errors"

// Domain errors for the voice module.
var (
	// ErrNotInGuild is returned when /voice is used outside a guild.
	ErrNotInGuild = errors.New("this command can only be used in a server")

	// ErrUserNotInVoice is returned when the user is not in a voice channel.
	ErrUserNotInVoice = errors.New("you must be in a voice channel")

	// ErrNoDefaultName is returned when resetting a channel without a stored default.
	ErrNoDefaultName = errors.New("this channel has no default name")

	// ErrNameTooLong is returned when the new name exceeds Discord's limit.
	ErrNameTooLong = errors.New("channel names can be at most 100 characters")
)
