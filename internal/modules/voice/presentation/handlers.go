package presentation

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/emotebot/internal/bot"
	"github.com/sglre6355/emotebot/internal/modules/voice/application"
)

// Embed colors.
const (
	colorSuccess = 0x08c404
	colorError   = 0xE74C3C
)

// CommandHandlers holds the /voice handler.
type CommandHandlers struct {
	rename *application.RenameService
}

// NewCommandHandlers creates new CommandHandlers.
func NewCommandHandlers(rename *application.RenameService) *CommandHandlers {
	return &CommandHandlers{rename: rename}
}

// HandleVoice handles /voice. Channel renames are heavily rate limited, so
// the interaction is deferred before the rename and answered by follow-up.
func (h *CommandHandlers) HandleVoice(ctx context.Context, it *bot.Interaction) error {
	if err := bot.Defer(it.Responder, true); err != nil {
		return err
	}

	name, _ := it.Options().String("name")

	output, err := h.rename.Rename(ctx, application.RenameInput{
		GuildID: it.GuildID,
		UserID:  it.InvokerID,
		Name:    name,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrNotInGuild),
			errors.Is(err, application.ErrUserNotInVoice),
			errors.Is(err, application.ErrNoDefaultName),
			errors.Is(err, application.ErrNameTooLong):
			return respondError(it.Responder, err.Error())
		default:
			return err
		}
	}

	if output.Reset {
		return respondSuccess(it.Responder,
			fmt.Sprintf("Reset <#%s> to **%s**.", output.ChannelID, output.Name))
	}
	return respondSuccess(it.Responder,
		fmt.Sprintf("Renamed <#%s> to **%s**.", output.ChannelID, output.Name))
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
