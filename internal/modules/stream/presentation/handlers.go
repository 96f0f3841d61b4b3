package presentation

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/emotebot/internal/bot"
	"github.com/sglre6355/emotebot/internal/modules/stream/application"
	"github.com/sglre6355/emotebot/internal/modules/stream/domain"
)

// Embed colors.
const (
	colorSuccess = 0x08c404
	colorError   = 0xE74C3C
)

// CommandHandlers holds the /stream handler.
type CommandHandlers struct {
	stream *application.StreamService
}

// NewCommandHandlers creates new CommandHandlers.
func NewCommandHandlers(stream *application.StreamService) *CommandHandlers {
	return &CommandHandlers{stream: stream}
}

// HandleStream handles /stream. The embed is posted after a deferred
// response and the confirmation is sent as a follow-up.
func (h *CommandHandlers) HandleStream(ctx context.Context, it *bot.Interaction) error {
	if err := bot.Defer(it.Responder, true); err != nil {
		return err
	}

	opts := it.Options()
	title, _ := opts.String("title")
	description, _ := opts.String("description")
	thumbnail, _ := opts.String("thumbnail")

	output, err := h.stream.Post(ctx, application.PostInput{
		GuildID:     it.GuildID,
		Streamer:    streamer(it),
		Title:       title,
		Description: description,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrNotInGuild),
			errors.Is(err, application.ErrStreamChannelNotConfigured),
			errors.Is(err, domain.ErrTitleTooLong),
			errors.Is(err, domain.ErrDescriptionTooLong),
			errors.Is(err, domain.ErrInvalidThumbnail):
			return respondError(it.Responder, err.Error())
		default:
			return err
		}
	}

	return respondSuccess(it.Responder,
		fmt.Sprintf("Posted your stream embed in <#%s>.", output.ChannelID))
}

// streamer describes the invoker, preferring the guild member's display name
// and avatar.
func streamer(it *bot.Interaction) domain.Streamer {
	s := domain.Streamer{ID: it.InvokerID, Name: it.InvokerID.String()}
	if it.Event == nil || it.Event.Interaction == nil {
		return s
	}

	if m := it.Event.Member; m != nil && m.User != nil {
		s.Name = m.DisplayName()
		s.AvatarURL = m.AvatarURL("")
	} else if u := it.Event.User; u != nil {
		s.Name = u.DisplayName()
		s.AvatarURL = u.AvatarURL("")
	}
	return s
}

func respondSuccess(r bot.Responder, message string) error {
	return bot.FollowupEmbed(r, &discordgo.MessageEmbed{
		Description: message,
		Color:       colorSuccess,
	}, true)
}

func respondError(r bot.Responder, message string) error {
	return bot.FollowupEmbed(r, &discordgo.MessageEmbed{
		Title:       "Error",
		Description: message,
		Color:       colorError,
	}, true)
}
