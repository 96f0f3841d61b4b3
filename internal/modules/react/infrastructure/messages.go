package infrastructure

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/emotebot/internal/modules/react/application"
)

type messageSession interface {
	ChannelMessages(
		channelID string,
		limit int,
		beforeID, afterID, aroundID string,
		options ...discordgo.RequestOption,
	) ([]*discordgo.Message, error)
	MessageReactionAdd(
		channelID, messageID, emojiID string,
		options ...discordgo.RequestOption,
	) error
	MessageReactionRemove(
		channelID, messageID, emojiID, userID string,
		options ...discordgo.RequestOption,
	) error
}

// Messages finds and reacts to channel messages over REST.
type Messages struct {
	session messageSession
}

// NewMessages creates a new Messages.
func NewMessages(session messageSession) *Messages {
	return &Messages{session: session}
}

// MessageAt returns the id of the nth newest message of a channel.
func (m *Messages) MessageAt(ctx context.Context, channelID snowflake.ID, n int) (snowflake.ID, error) {
	msgs, err := m.session.ChannelMessages(channelID.String(), n, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to fetch messages of %s: %w", channelID, classify(err))
	}
	// Messages come newest first.
	if len(msgs) < n {
		return 0, application.ErrMessageNotFound
	}
	return snowflake.Parse(msgs[n-1].ID)
}

// React adds the bot's reaction to a message.
func (m *Messages) React(ctx context.Context, channelID, messageID snowflake.ID, emoji string) error {
	err := m.session.MessageReactionAdd(
		channelID.String(), messageID.String(), emoji, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to react to %s with %s: %w", messageID, emoji, classify(err))
	}
	return nil
}

// Unreact removes the bot's reaction from a message.
func (m *Messages) Unreact(ctx context.Context, channelID, messageID snowflake.ID, emoji string) error {
	err := m.session.MessageReactionRemove(
		channelID.String(), messageID.String(), emoji, "@me", discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to remove reaction %s from %s: %w", emoji, messageID, classify(err))
	}
	return nil
}

// classify maps the Discord error codes the invoker can act on to
// application errors.
func classify(err error) error {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Message == nil {
		return err
	}

	switch restErr.Message.Code {
	case discordgo.ErrCodeMissingPermissions, discordgo.ErrCodeMissingAccess:
		return fmt.Errorf("%w: %w", application.ErrMissingPermissions, err)
	case discordgo.ErrCodeUnknownMessage, discordgo.ErrCodeUnknownChannel:
		return fmt.Errorf("%w: %w", application.ErrMessageNotFound, err)
	default:
		return err
	}
}

var (
	_ application.MessageFinder = (*Messages)(nil)
	_ application.Reactor       = (*Messages)(nil)
)
