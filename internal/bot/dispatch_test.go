package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/emotebot/internal/command"
)

func dispatchSchema(t *testing.T) *command.Schema {
	t.Helper()

	return command.MustSchema(
		command.NewCommand("config", "Configure the server",
			command.NewSubcommand("default-voice", "Set the default voice channel name"),
			command.NewSubcommand("stream-embeds-channel", "Set the stream embed channel"),
		).Restrict(),
		command.NewCommand("welcome", "Welcome",
			command.NewSubcommand("lmao", "lmao"),
			command.NewGroup("group", "group",
				command.NewSubcommand("fah", "fah"),
			),
		),
	)
}

func dispatchHandlers(h InteractionHandler) map[string]InteractionHandler {
	return map[string]InteractionHandler{
		"config.default-voice":         h,
		"config.stream-embeds-channel": h,
		"welcome.lmao":                 h,
		"welcome.group.fah":            h,
	}
}

func fahInteraction() command.Interaction {
	return command.Interaction{
		CommandName: "welcome",
		Options: []command.Option{{
			Name: "group",
			Kind: command.OptionSubcommandGroup,
			Options: []command.Option{{
				Name: "fah",
				Kind: command.OptionSubcommand,
			}},
		}},
		GuildID:   1,
		InvokerID: 2,
	}
}

func newTestDispatcher(t *testing.T, h InteractionHandler) *Dispatcher {
	t.Helper()

	d, err := NewDispatcher(dispatchSchema(t), dispatchHandlers(h), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return d
}

func TestNewDispatcher_MissingHandler(t *testing.T) {
	handlers := dispatchHandlers(noopHandler)
	delete(handlers, "welcome.group.fah")

	_, err := NewDispatcher(dispatchSchema(t), handlers, nil)
	if !errors.Is(err, ErrMissingHandler) {
		t.Fatalf("expected ErrMissingHandler, got %v", err)
	}
	if !strings.Contains(err.Error(), "welcome.group.fah") {
		t.Errorf("expected error to name the leaf, got %v", err)
	}
}

func TestNewDispatcher_UnboundHandler(t *testing.T) {
	handlers := dispatchHandlers(noopHandler)
	handlers["welcome.group"] = noopHandler

	_, err := NewDispatcher(dispatchSchema(t), handlers, nil)
	if !errors.Is(err, ErrUnboundHandler) {
		t.Errorf("expected ErrUnboundHandler, got %v", err)
	}
}

func TestDispatch_RoutesToLeaf(t *testing.T) {
	var got *Interaction
	d := newTestDispatcher(t, func(_ context.Context, it *Interaction) error {
		got = it
		return Reply(it.Responder, "fah")
	})
	r := &MockResponder{}

	if err := d.Dispatch(context.Background(), nil, fahInteraction(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got == nil {
		t.Fatal("expected handler to run")
	}
	if got.Invocation.HandlerKey != "welcome.group.fah" {
		t.Errorf("expected handler key welcome.group.fah, got %s", got.Invocation.HandlerKey)
	}
	if got.GuildID != 1 || got.InvokerID != 2 {
		t.Errorf("expected guild 1 and invoker 2, got %s and %s", got.GuildID, got.InvokerID)
	}
	if got.Context == nil {
		t.Error("expected a non-nil context")
	}
	if len(r.Responses) != 1 || r.LastResponse.Data.Content != "fah" {
		t.Errorf("expected one reply, got %+v", r.Responses)
	}
}

func TestDispatch_UnknownCommand(t *testing.T) {
	ran := false
	d := newTestDispatcher(t, func(context.Context, *Interaction) error {
		ran = true
		return nil
	})
	r := &MockResponder{}

	err := d.Dispatch(context.Background(), nil, command.Interaction{CommandName: "bogus"}, r)

	if !errors.Is(err, command.ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
	if ran {
		t.Error("expected no handler to run")
	}
	if len(r.Responses) != 1 {
		t.Fatalf("expected exactly one reply, got %d", len(r.Responses))
	}
	data := r.LastResponse.Data
	if data.Content != InvalidCommandMessage {
		t.Errorf("expected invalid command message, got %q", data.Content)
	}
	if data.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Error("expected reply to be ephemeral")
	}
}

func TestDispatch_MalformedTreeRepliesOnce(t *testing.T) {
	d := newTestDispatcher(t, noopHandler)
	r := &MockResponder{}

	in := command.Interaction{CommandName: "welcome"}
	err := d.Dispatch(context.Background(), nil, in, r)

	if !errors.Is(err, command.ErrMissingSubcommand) {
		t.Errorf("expected ErrMissingSubcommand, got %v", err)
	}
	if len(r.Responses) != 1 || r.LastResponse.Data.Content != InvalidCommandMessage {
		t.Errorf("expected one invalid command reply, got %+v", r.Responses)
	}
}

func TestDispatch_HandlerErrorBeforeReply(t *testing.T) {
	wantErr := errors.New("boom")
	d := newTestDispatcher(t, func(context.Context, *Interaction) error {
		return wantErr
	})
	r := &MockResponder{}

	err := d.Dispatch(context.Background(), nil, fahInteraction(), r)

	if !errors.Is(err, wantErr) {
		t.Errorf("expected handler error, got %v", err)
	}
	if len(r.Responses) != 1 {
		t.Fatalf("expected exactly one reply, got %d", len(r.Responses))
	}
	if r.LastResponse.Data.Content != HandlerFailureMessage {
		t.Errorf("expected failure message, got %q", r.LastResponse.Data.Content)
	}
}

func TestDispatch_HandlerErrorAfterReply(t *testing.T) {
	d := newTestDispatcher(t, func(_ context.Context, it *Interaction) error {
		if err := Reply(it.Responder, "done"); err != nil {
			return err
		}
		return errors.New("late failure")
	})
	r := &MockResponder{}

	if err := d.Dispatch(context.Background(), nil, fahInteraction(), r); err == nil {
		t.Fatal("expected error, got nil")
	}

	if len(r.Responses) != 1 || r.LastResponse.Data.Content != "done" {
		t.Errorf("expected only the handler reply, got %+v", r.Responses)
	}
	if len(r.Followups) != 0 {
		t.Errorf("expected no follow-ups, got %d", len(r.Followups))
	}
}

func TestDispatch_HandlerErrorAfterDefer(t *testing.T) {
	d := newTestDispatcher(t, func(_ context.Context, it *Interaction) error {
		if err := Defer(it.Responder, true); err != nil {
			return err
		}
		return errors.New("slow failure")
	})
	r := &MockResponder{}

	if err := d.Dispatch(context.Background(), nil, fahInteraction(), r); err == nil {
		t.Fatal("expected error, got nil")
	}

	if len(r.Responses) != 1 {
		t.Fatalf("expected one initial response, got %d", len(r.Responses))
	}
	if len(r.Followups) != 1 || r.Followups[0].Content != HandlerFailureMessage {
		t.Fatalf("expected failure follow-up, got %+v", r.Followups)
	}
	if r.Followups[0].Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Error("expected follow-up to be ephemeral")
	}
}

func TestDispatch_HandlerWithoutReply(t *testing.T) {
	d := newTestDispatcher(t, noopHandler)
	r := &MockResponder{}

	err := d.Dispatch(context.Background(), nil, fahInteraction(), r)

	if !errors.Is(err, ErrNoReply) {
		t.Errorf("expected ErrNoReply, got %v", err)
	}
	if len(r.Responses) != 1 || r.LastResponse.Data.Content != HandlerFailureMessage {
		t.Errorf("expected failure reply, got %+v", r.Responses)
	}
}

func TestDispatch_SecondReplyRejected(t *testing.T) {
	var second error
	d := newTestDispatcher(t, func(_ context.Context, it *Interaction) error {
		if err := Reply(it.Responder, "first"); err != nil {
			return err
		}
		second = Reply(it.Responder, "second")
		return nil
	})
	r := &MockResponder{}

	if err := d.Dispatch(context.Background(), nil, fahInteraction(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !errors.Is(second, ErrAlreadyResponded) {
		t.Errorf("expected ErrAlreadyResponded, got %v", second)
	}
	if len(r.Responses) != 1 {
		t.Errorf("expected exactly one reply, got %d", len(r.Responses))
	}
}

func TestDispatch_FollowupBeforeReplyRejected(t *testing.T) {
	d := newTestDispatcher(t, func(_ context.Context, it *Interaction) error {
		return it.Responder.Followup(&discordgo.WebhookParams{Content: "too early"})
	})
	r := &MockResponder{}

	err := d.Dispatch(context.Background(), nil, fahInteraction(), r)

	if !errors.Is(err, ErrNotResponded) {
		t.Errorf("expected ErrNotResponded, got %v", err)
	}
	if len(r.Followups) != 0 {
		t.Errorf("expected no follow-ups, got %d", len(r.Followups))
	}
}

func TestDispatch_RecoversPanic(t *testing.T) {
	d := newTestDispatcher(t, func(context.Context, *Interaction) error {
		panic("kaboom")
	})
	r := &MockResponder{}

	err := d.Dispatch(context.Background(), nil, fahInteraction(), r)

	if err == nil || !strings.Contains(err.Error(), "kaboom") {
		t.Errorf("expected panic to surface as error, got %v", err)
	}
	if len(r.Responses) != 1 || r.LastResponse.Data.Content != HandlerFailureMessage {
		t.Errorf("expected failure reply, got %+v", r.Responses)
	}
}

func TestDispatch_SharesContext(t *testing.T) {
	appCtx := &Context{Emotes: NewEmoteCache()}

	var got *Context
	d, err := NewDispatcher(dispatchSchema(t), dispatchHandlers(func(_ context.Context, it *Interaction) error {
		got = it.Context
		return Reply(it.Responder, "ok")
	}), appCtx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := d.Dispatch(context.Background(), nil, fahInteraction(), &MockResponder{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != appCtx {
		t.Error("expected handler to receive the startup context")
	}
}
