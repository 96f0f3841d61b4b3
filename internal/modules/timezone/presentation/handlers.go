package presentation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/emotebot/internal/bot"
	"github.com/sglre6355/emotebot/internal/modules/timezone/application"
	"github.com/sglre6355/emotebot/internal/modules/timezone/domain"
)

// Embed colors.
const (
	colorInfo    = 0x3498DB
	colorSuccess = 0x08c404
	colorError   = 0xE74C3C
)

const timeLayout = "15:04 (Mon, Jan 2)"

// CommandHandlers holds the /time handlers.
type CommandHandlers struct {
	timezones *application.TimezoneService
}

// NewCommandHandlers creates new CommandHandlers.
func NewCommandHandlers(timezones *application.TimezoneService) *CommandHandlers {
	return &CommandHandlers{timezones: timezones}
}

// HandleShow handles /time show.
func (h *CommandHandlers) HandleShow(_ context.Context, it *bot.Interaction) error {
	userID, ok := it.Options().ID("user")
	if !ok {
		userID = it.InvokerID
	}

	output, err := h.timezones.Show(userID)
	if errors.Is(err, application.ErrNoTimezone) {
		if userID == it.InvokerID {
			return respondError(it.Responder, "You have not registered a timezone. Use `/time setup` first.")
		}
		return respondError(it.Responder, fmt.Sprintf("<@%s> has not registered a timezone.", userID))
	}
	if err != nil {
		return err
	}

	offset := domain.FormatOffset(output.Zone.CurrentOffset(output.Local))
	if output.InDST {
		offset += ", daylight saving"
	}

	return bot.ReplyEmbed(it.Responder, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("It is **%s** for <@%s>.", output.Local.Format(timeLayout), userID),
		Footer:      &discordgo.MessageEmbedFooter{Text: offset},
		Color:       colorInfo,
	}, false)
}

// HandleSetup handles /time setup.
func (h *CommandHandlers) HandleSetup(_ context.Context, it *bot.Interaction) error {
	opts := it.Options()
	offset, _ := opts.String("offset")
	region, _ := opts.String("dst")

	zone, err := h.timezones.Setup(application.SetupInput{
		UserID: it.InvokerID,
		Offset: offset,
		Region: region,
	})
	switch {
	case errors.Is(err, domain.ErrInvalidOffset),
		errors.Is(err, domain.ErrOffsetRange),
		errors.Is(err, domain.ErrUnknownRegion):
		return respondError(it.Responder, err.Error())
	case err != nil:
		return err
	}

	return bot.ReplyEmbed(it.Responder, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("Saved your timezone as **%s** (%s).",
			domain.FormatOffset(zone.OffsetMinutes), zone.Region.Label()),
		Color: colorSuccess,
	}, true)
}

// HandleDelete handles /time delete.
func (h *CommandHandlers) HandleDelete(_ context.Context, it *bot.Interaction) error {
	if err := h.timezones.Delete(it.InvokerID); err != nil {
		if errors.Is(err, application.ErrNoTimezone) {
			return respondError(it.Responder, "You have no timezone to delete.")
		}
		return err
	}

	return bot.ReplyEmbed(it.Responder, &discordgo.MessageEmbed{
		Description: "Removed your timezone.",
		Color:       colorSuccess,
	}, true)
}

// HandleUTC handles /time utc.
func (h *CommandHandlers) HandleUTC(_ context.Context, it *bot.Interaction) error {
	now := h.timezones.UTC()
	return bot.Reply(it.Responder, fmt.Sprintf("It is **%s** UTC.", now.Format(timeLayout)))
}

// HandleDSTInfo handles /time dst-info.
func (h *CommandHandlers) HandleDSTInfo(_ context.Context, it *bot.Interaction) error {
	fields := make([]*discordgo.MessageEmbedField, 0, len(domain.Regions()))
	for _, r := range domain.Regions() {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s (`%s`)", r.Label(), r),
			Value: r.Rule(),
		})
	}
	return bot.ReplyEmbed(it.Responder, &discordgo.MessageEmbed{
		Title:       "Daylight saving regions",
		Description: "Pass one of these as `dst` to `/time setup`.",
		Fields:      fields,
		Color:       colorInfo,
		Timestamp:   h.timezones.UTC().Format(time.RFC3339),
	}, true)
}

func respondError(r bot.Responder, message string) error {
	return bot.ReplyEmbed(r, &discordgo.MessageEmbed{
		Title:       "Error",
		Description: message,
		Color:       colorError,
	}, true)
}
