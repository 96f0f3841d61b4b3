package presentation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/emotebot/internal/bot"
	"github.com/sglre6355/emotebot/internal/modules/react/application"
	"github.com/sglre6355/emotebot/internal/modules/react/domain"
)

// Embed colors.
const (
	colorSuccess = 0x08c404
	colorError   = 0xE74C3C
)

// Modal component ids. The modal id carries the targeted message as a
// channel-message pair after the prefix.
const (
	modalPrefix  = "react-query="
	modalInputID = "react-query-input"
)

// CommandHandlers holds the react handlers.
type CommandHandlers struct {
	react *application.ReactService
}

// NewCommandHandlers creates new CommandHandlers.
func NewCommandHandlers(react *application.ReactService) *CommandHandlers {
	return &CommandHandlers{react: react}
}

// HandleReact handles /react.
func (h *CommandHandlers) HandleReact(ctx context.Context, it *bot.Interaction) error {
	if err := bot.Defer(it.Responder, true); err != nil {
		return err
	}

	opts := it.Options()
	emotes, _ := opts.String("emotes")
	raw, _ := opts.String("target")

	target, err := domain.ParseTarget(raw, it.ChannelID())
	if err != nil {
		return respondError(it.Responder, err.Error())
	}
	return h.reactTo(ctx, it.Responder, target, emotes)
}

// HandleReactMenu handles the message context menu by asking for the emotes
// in a modal.
func (h *CommandHandlers) HandleReactMenu(_ context.Context, it *bot.Interaction) error {
	messageID := it.Invocation.TargetID
	channelID := it.ChannelID()
	if messageID == 0 || channelID == 0 {
		return bot.ReplyEphemeral(it.Responder, "**Error:** This menu only works on messages.")
	}

	return it.Responder.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: fmt.Sprintf("%s%s-%s", modalPrefix, channelID, messageID),
			Title:    "Enter the emotes to react with",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    modalInputID,
							Label:       "Emote Names",
							Style:       discordgo.TextInputShort,
							Placeholder: "emote1 emote2 ...",
							Required:    true,
							MinLength:   1,
						},
					},
				},
			},
		},
	})
}

// HandleModalSubmit answers the modal opened by the context menu. Other
// modal submissions are left alone.
func (h *CommandHandlers) HandleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionModalSubmit {
		return
	}
	data := i.ModalSubmitData()
	if !strings.HasPrefix(data.CustomID, modalPrefix) {
		return
	}

	h.submit(context.Background(), data, bot.NewDiscordResponder(s, i.Interaction))
}

func (h *CommandHandlers) submit(
	ctx context.Context,
	data discordgo.ModalSubmitInteractionData,
	r bot.Responder,
) {
	logger := slog.With("custom_id", data.CustomID)

	if err := bot.Defer(r, true); err != nil {
		logger.Error("failed to defer modal submission", "error", err)
		return
	}

	target, err := domain.ParseTarget(strings.TrimPrefix(data.CustomID, modalPrefix), 0)
	if err == nil && target.MessageID == 0 {
		err = domain.ErrInvalidTarget
	}
	if err == nil {
		err = h.reactTo(ctx, r, target, inputValue(data.Components, modalInputID))
	}
	if err == nil {
		return
	}

	logger.Error("failed to handle react modal", "error", err)
	if ferr := respondError(r, bot.HandlerFailureMessage); ferr != nil {
		logger.Error("failed to send failure follow-up", "error", ferr)
	}
}

func (h *CommandHandlers) reactTo(
	ctx context.Context,
	r bot.Responder,
	target domain.Target,
	emotes string,
) error {
	output, err := h.react.React(ctx, application.ReactInput{Target: target, Emotes: emotes})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrNoEmotes),
			errors.Is(err, application.ErrTooManyEmotes),
			errors.Is(err, application.ErrMessageNotFound),
			errors.Is(err, application.ErrMissingPermissions):
			return respondError(r, userMessage(err))
		default:
			return err
		}
	}

	message := "Reacted with " + strings.Join(output.Reactions, " ") + "."
	if len(output.Unmatched) > 0 {
		message += fmt.Sprintf("\nNo emote matched `%s`.", strings.Join(output.Unmatched, "`, `"))
	}
	return respondSuccess(r, message)
}

// userMessage strips the transport detail wrapped behind an application error.
func userMessage(err error) string {
	for _, known := range []error{
		application.ErrMessageNotFound,
		application.ErrMissingPermissions,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return err.Error()
}

// inputValue returns the value of the text input with the given id.
func inputValue(components []discordgo.MessageComponent, id string) string {
	for _, c := range components {
		switch c := c.(type) {
		case *discordgo.ActionsRow:
			if v := inputValue(c.Components, id); v != "" {
				return v
			}
		case *discordgo.TextInput:
			if c.CustomID == id {
				return c.Value
			}
		}
	}
	return ""
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
