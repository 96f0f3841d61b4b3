package application

import "errors"

// Errors reported back to the invoker.
var (
	// ErrNoEmotes is returned when the emote list is empty.
	ErrNoEmotes = errors.New("you must name at least one emote to react with")
	// ErrTooManyEmotes is returned when more emotes are requested than a message can hold.
	ErrTooManyEmotes = errors.New("a message can hold at most 20 distinct reactions")
	// ErrMessageNotFound is returned when the target message does not exist.
	ErrMessageNotFound = errors.New("I couldn't find the message you targeted")
	// ErrMissingPermissions is returned when the bot may not react in the channel.
	ErrMissingPermissions = errors.New(
		"I don't have permissions to add reactions in the channel or server you tried to use this in")
)
