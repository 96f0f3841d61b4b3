package presentation

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/emotebot/internal/bot"
	"github.com/sglre6355/emotebot/internal/modules/config/application"
)

// Embed colors.
const (
	colorSuccess = 0x08c404
	colorError   = 0xE74C3C
)

// CommandHandlers holds the /config handlers.
type CommandHandlers struct {
	settings *application.SettingsService
}

// NewCommandHandlers creates new CommandHandlers.
func NewCommandHandlers(settings *application.SettingsService) *CommandHandlers {
	return &CommandHandlers{settings: settings}
}

// HandleDefaultVoice handles /config default-voice.
func (h *CommandHandlers) HandleDefaultVoice(_ context.Context, it *bot.Interaction) error {
	opts := it.Options()
	channelID, ok := opts.ID("channel")
	if !ok {
		return respondError(it.Responder, application.ErrInvalidChannel.Error())
	}
	name, _ := opts.String("name")

	output, err := h.settings.SetDefaultVoice(application.SetDefaultVoiceInput{
		GuildID:   it.GuildID,
		ChannelID: channelID,
		Name:      name,
	})
	if err != nil {
		return respondUsecaseError(it.Responder, err)
	}

	if output.Removed {
		return respondSuccess(it.Responder,
			fmt.Sprintf("Removed the default name of <#%s>.", output.ChannelID))
	}
	return respondSuccess(it.Responder,
		fmt.Sprintf("<#%s> now resets to **%s**.", output.ChannelID, output.Name))
}

// HandleStreamEmbedsChannel handles /config stream-embeds-channel.
func (h *CommandHandlers) HandleStreamEmbedsChannel(_ context.Context, it *bot.Interaction) error {
	// A missing channel clears the setting; a malformed one is rejected.
	opts := it.Options()
	channelID, ok := opts.ID("channel")
	if _, present := opts.Get("channel"); present && !ok {
		return respondError(it.Responder, application.ErrInvalidChannel.Error())
	}

	output, err := h.settings.SetStreamChannel(application.SetStreamChannelInput{
		GuildID:   it.GuildID,
		ChannelID: channelID,
	})
	if err != nil {
		return respondUsecaseError(it.Responder, err)
	}

	if output.Disabled {
		return respondSuccess(it.Responder, "Stream embeds are now disabled.")
	}
	return respondSuccess(it.Responder,
		fmt.Sprintf("Stream embeds will be posted in <#%s>.", output.ChannelID))
}

// respondUsecaseError tells the invoker about expected failures and hands
// anything else back to the dispatcher.
func respondUsecaseError(r bot.Responder, err error) error {
	switch {
	case errors.Is(err, application.ErrNotInGuild),
		errors.Is(err, application.ErrInvalidChannel),
		errors.Is(err, application.ErrNameTooLong):
		return respondError(r, err.Error())
	default:
		return err
	}
}

// Response helpers.

func respondSuccess(r bot.Responder, message string) error {
	return bot.ReplyEmbed(r, &discordgo.MessageEmbed{
		Description: message,
		Color:       colorSuccess,
	}, true)
}

func respondError(r bot.Responder, message string) error {
	return bot.ReplyEmbed(r, &discordgo.MessageEmbed{
		Title:       "Error",
		Description: message,
		Color:       colorError,
	}, true)
}
