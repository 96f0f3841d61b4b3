package presentation

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/emotebot/internal/bot"
	"github.com/sglre6355/emotebot/internal/command"
	"github.com/sglre6355/emotebot/internal/modules/emotes/application"
	"github.com/sglre6355/emotebot/internal/modules/emotes/domain"
)

func newTestHandlers(emojis ...*discordgo.Emoji) *CommandHandlers {
	cache := bot.NewEmoteCache()
	cache.Set(1, emojis)
	return NewCommandHandlers(application.NewLister(cache))
}

func newInteraction(r bot.Responder, opts ...command.Option) *bot.Interaction {
	return &bot.Interaction{
		Context:    &bot.Context{},
		Invocation: &command.Invocation{Options: opts},
		GuildID:    1,
		InvokerID:  2,
		Responder:  r,
	}
}

func TestHandleEmotes_DefersThenLists(t *testing.T) {
	handlers := newTestHandlers(
		&discordgo.Emoji{ID: "2", Name: "pog"},
		&discordgo.Emoji{ID: "1", Name: "asdf"},
	)
	responder := &bot.MockResponder{}

	if err := handlers.HandleEmotes(context.Background(), newInteraction(responder)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(responder.Responses) != 1 {
		t.Fatalf("expected 1 response, got %d", len(responder.Responses))
	}
	resp := responder.Responses[0]
	if resp.Type != discordgo.InteractionResponseDeferredChannelMessageWithSource {
		t.Errorf("expected deferred response, got %v", resp.Type)
	}
	if resp.Data == nil || resp.Data.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Error("expected ephemeral deferral")
	}

	if len(responder.Followups) != 1 {
		t.Fatalf("expected 1 followup, got %d", len(responder.Followups))
	}
	if got := responder.Followups[0].Content; got != "<:asdf:1> <:pog:2>" {
		t.Errorf("expected sorted emotes, got %q", got)
	}
}

func TestHandleEmotes_InvalidPattern(t *testing.T) {
	handlers := newTestHandlers(&discordgo.Emoji{ID: "1", Name: "asdf"})
	responder := &bot.MockResponder{}

	it := newInteraction(responder, command.Option{
		Name:  "regex",
		Type:  discordgo.ApplicationCommandOptionString,
		Value: "(",
	})
	if err := handlers.HandleEmotes(context.Background(), it); err != nil {
		t.Fatalf("expected error to be reported to the user, got %v", err)
	}

	if len(responder.Followups) != 1 ||
		responder.Followups[0].Content != "The regex pattern you provided was not valid." {
		t.Errorf("expected invalid pattern followup, got %+v", responder.Followups)
	}
}

func TestHandleEmotes_CaseSensitive(t *testing.T) {
	handlers := newTestHandlers(
		&discordgo.Emoji{ID: "1", Name: "Pog"},
		&discordgo.Emoji{ID: "2", Name: "pog"},
	)
	responder := &bot.MockResponder{}

	it := newInteraction(responder,
		command.Option{Name: "regex", Type: discordgo.ApplicationCommandOptionString, Value: "^pog$"},
		command.Option{Name: "is-case-sensitive", Type: discordgo.ApplicationCommandOptionBoolean, Value: true},
	)
	if err := handlers.HandleEmotes(context.Background(), it); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := responder.Followups[0].Content; got != "<:pog:2>" {
		t.Errorf("expected only the lowercase emote, got %q", got)
	}
}

func TestFormatEmotes_Empty(t *testing.T) {
	if got := formatEmotes(nil); got != "No emotes matched." {
		t.Errorf("unexpected empty message %q", got)
	}
}

func TestFormatEmotes_TruncatesToMessageLimit(t *testing.T) {
	emotes := make([]domain.Emote, 200)
	for i := range emotes {
		emotes[i] = domain.Emote{ID: fmt.Sprintf("1000000000000%05d", i), Name: fmt.Sprintf("emote%03d", i)}
	}

	got := formatEmotes(emotes)
	if len(got) > maxMessageLength {
		t.Fatalf("expected at most %d bytes, got %d", maxMessageLength, len(got))
	}

	idx := strings.LastIndex(got, "…and ")
	if idx < 0 {
		t.Fatalf("expected overflow counter, got %q", got)
	}
	var more int
	if _, err := fmt.Sscanf(got[idx+len("…and "):], "%d more", &more); err != nil {
		t.Fatalf("failed to parse overflow counter: %v", err)
	}
	shown := strings.Count(got, "<:")
	if shown+more != len(emotes) {
		t.Errorf("expected shown (%d) + more (%d) to equal %d", shown, more, len(emotes))
	}
}
