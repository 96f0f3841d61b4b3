package application

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

// EmoteSource provides the cached emojis. *bot.EmoteCache satisfies it.
type EmoteSource interface {
	All() []*discordgo.Emoji
}

// MessageFinder locates messages by their distance from the newest one.
type MessageFinder interface {
	// MessageAt returns the id of the nth newest message of a channel,
	// counting from 1. It returns ErrMessageNotFound if there are fewer.
	MessageAt(ctx context.Context, channelID snowflake.ID, n int) (snowflake.ID, error)
}

// Reactor adds and removes the bot's own reactions.
type Reactor interface {
	React(ctx context.Context, channelID, messageID snowflake.ID, emoji string) error
	Unreact(ctx context.Context, channelID, messageID snowflake.ID, emoji string) error
}
