package presentation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/emotebot/internal/bot"
	"github.com/sglre6355/emotebot/internal/modules/emotes/application"
	"github.com/sglre6355/emotebot/internal/modules/emotes/domain"
)

// maxMessageLength is Discord's content limit for a single message.
const maxMessageLength = 2000

// CommandHandlers holds the /emotes handler.
type CommandHandlers struct {
	lister *application.Lister
}

// NewCommandHandlers creates new CommandHandlers.
func NewCommandHandlers(lister *application.Lister) *CommandHandlers {
	return &CommandHandlers{lister: lister}
}

// HandleEmotes handles /emotes. The list is delivered as an ephemeral
// follow-up after a deferred response.
func (h *CommandHandlers) HandleEmotes(_ context.Context, it *bot.Interaction) error {
	if err := bot.Defer(it.Responder, true); err != nil {
		return err
	}

	opts := it.Options()
	pattern, _ := opts.String("regex")
	caseSensitive, _ := opts.Bool("is-case-sensitive")

	emotes, err := h.lister.List(application.ListInput{
		Pattern:       pattern,
		CaseSensitive: caseSensitive,
	})
	if errors.Is(err, application.ErrInvalidPattern) {
		return followup(it.Responder, "The regex pattern you provided was not valid.")
	}
	if err != nil {
		return err
	}

	return followup(it.Responder, formatEmotes(emotes))
}

// formatEmotes renders as many emotes as fit in one message and counts the rest.
func formatEmotes(emotes []domain.Emote) string {
	if len(emotes) == 0 {
		return "No emotes matched."
	}

	var b strings.Builder
	for i, e := range emotes {
		markup := e.String()
		remaining := len(emotes) - i - 1
		suffix := ""
		if remaining > 0 {
			suffix = fmt.Sprintf("\n…and %d more", remaining)
		}

		sep := 0
		if b.Len() > 0 {
			sep = 1
		}
		if b.Len()+sep+len(markup)+len(suffix) > maxMessageLength {
			fmt.Fprintf(&b, "\n…and %d more", len(emotes)-i)
			break
		}
		if sep == 1 {
			b.WriteByte(' ')
		}
		b.WriteString(markup)
	}
	return b.String()
}

func followup(r bot.Responder, content string) error {
	return r.Followup(&discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
}
