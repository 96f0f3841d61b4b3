package application

import "errors"

// Domain errors for the config module.
var (
	// ErrNotInGuild is returned when a setting is changed outside a guild.
	ErrNotInGuild = errors.New("this command can only be used in a server")

	// ErrInvalidChannel is returned when the channel option is missing or malformed.
	ErrInvalidChannel = errors.New("you must pick a valid channel")

	// ErrNameTooLong is returned when a default voice name exceeds Discord's limit.
	ErrNameTooLong = errors.New("channel names can be at most 100 characters")
)
