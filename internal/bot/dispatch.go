package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/emotebot/internal/command"
)

// Canonical reply texts.
const (
	InvalidCommandMessage = "**Error:** Invalid command name! This probably means that the command " +
		"definitions haven't been updated yet or there's a glaring oversight in the code."
	HandlerFailureMessage = "**Error:** Something went wrong while running this command."
)

// Dispatch table errors.
var (
	ErrMissingHandler   = errors.New("leaf has no handler")
	ErrUnboundHandler   = errors.New("handler is not bound to any leaf")
	ErrDuplicateHandler = errors.New("handler registered twice")
	ErrAlreadyResponded = errors.New("interaction already responded to")
	ErrNotResponded     = errors.New("interaction has no initial response")
	ErrNoReply          = errors.New("handler returned without replying")
)

// InteractionHandler handles one resolved interaction. It must send exactly
// one initial response through it.Responder.
type InteractionHandler func(ctx context.Context, it *Interaction) error

// Dispatcher routes resolved interactions to their handlers and guarantees
// that every interaction receives exactly one reply.
type Dispatcher struct {
	schema   *command.Schema
	handlers map[string]InteractionHandler
	appCtx   *Context
}

// NewDispatcher binds handlers to the leaves of schema. Every leaf needs
// exactly one handler and every handler must name a leaf.
func NewDispatcher(
	schema *command.Schema,
	handlers map[string]InteractionHandler,
	appCtx *Context,
) (*Dispatcher, error) {
	leaves := schema.Leaves()
	bound := make(map[string]InteractionHandler, len(leaves))

	var errs []error
	for _, key := range leaves {
		h, ok := handlers[key]
		if !ok || h == nil {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingHandler, key))
			continue
		}
		bound[key] = h
	}
	for key := range handlers {
		if _, ok := bound[key]; !ok && handlers[key] != nil {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnboundHandler, key))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if appCtx == nil {
		appCtx = &Context{}
	}

	return &Dispatcher{schema: schema, handlers: bound, appCtx: appCtx}, nil
}

// Dispatch resolves in and runs its handler. It returns the routing or handler
// error, if any, after the interaction has been answered.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	event *discordgo.InteractionCreate,
	in command.Interaction,
	r Responder,
) error {
	logger := slog.With(
		"command", in.CommandName,
		"guild_id", in.GuildID.String(),
		"user_id", in.InvokerID.String(),
	)

	inv, err := command.Resolve(d.schema, in)
	if err != nil {
		logger.Warn("failed to route interaction", "error", err)
		if rerr := ReplyEphemeral(r, InvalidCommandMessage); rerr != nil {
			logger.Error("failed to send invalid command reply", "error", rerr)
		}
		return err
	}

	logger = logger.With("handler", inv.HandlerKey)
	tracker := &replyTracker{inner: r}
	it := &Interaction{
		Context:    d.appCtx,
		Event:      event,
		Invocation: inv,
		GuildID:    in.GuildID,
		InvokerID:  in.InvokerID,
		Responder:  tracker,
		Logger:     logger,
	}

	err = d.invoke(ctx, d.handlers[inv.HandlerKey], it)
	if err == nil && !tracker.hasResponded() {
		err = ErrNoReply
	}
	if err != nil {
		logger.Error("failed to handle command", "error", err)
		tracker.fail(logger)
		return err
	}

	return nil
}

func (d *Dispatcher) invoke(ctx context.Context, h InteractionHandler, it *Interaction) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("handler %s panicked: %v", it.Invocation.HandlerKey, p)
		}
	}()
	return h(ctx, it)
}

// HandlerKeys returns the bound handler keys in schema order.
func (d *Dispatcher) HandlerKeys() []string {
	return d.schema.Leaves()
}

// replyTracker enforces the single initial response and remembers whether it
// was deferred.
type replyTracker struct {
	inner Responder

	mu        sync.Mutex
	responded bool
	deferred  bool
}

func (t *replyTracker) Respond(response *discordgo.InteractionResponse) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.responded {
		return ErrAlreadyResponded
	}
	if err := t.inner.Respond(response); err != nil {
		return err
	}

	t.responded = true
	t.deferred = response.Type == discordgo.InteractionResponseDeferredChannelMessageWithSource
	return nil
}

func (t *replyTracker) Followup(params *discordgo.WebhookParams) error {
	t.mu.Lock()
	responded := t.responded
	t.mu.Unlock()

	if !responded {
		return ErrNotResponded
	}
	return t.inner.Followup(params)
}

func (t *replyTracker) hasResponded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.responded
}

// fail tells the invoker that the handler failed: as the initial response if
// none was sent yet, otherwise as a follow-up to a deferred response.
func (t *replyTracker) fail(logger *slog.Logger) {
	t.mu.Lock()
	responded, deferred := t.responded, t.deferred
	t.mu.Unlock()

	var err error
	switch {
	case !responded:
		err = ReplyEphemeral(t, HandlerFailureMessage)
	case deferred:
		err = t.inner.Followup(&discordgo.WebhookParams{
			Content: HandlerFailureMessage,
			Flags:   discordgo.MessageFlagsEphemeral,
		})
	default:
		return
	}
	if err != nil {
		logger.Error("failed to send failure reply", "error", err)
	}
}
