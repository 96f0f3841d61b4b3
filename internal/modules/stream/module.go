package stream

import (
	"github.com/sglre6355/emotebot/internal/bot"
	"github.com/sglre6355/emotebot/internal/command"
	"github.com/sglre6355/emotebot/internal/modules/stream/application"
	"github.com/sglre6355/emotebot/internal/modules/stream/infrastructure"
	"github.com/sglre6355/emotebot/internal/modules/stream/presentation"
)

func init() {
	bot.Register(&StreamModule{})
}

// StreamModule provides the /stream command.
type StreamModule struct {
	commandHandlers *presentation.CommandHandlers
}

// Name returns the module name.
func (m *StreamModule) Name() string {
	return "stream"
}

// Commands returns the command tree for this module.
func (m *StreamModule) Commands() []*command.Node {
	return presentation.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *StreamModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"stream": m.commandHandlers.HandleStream,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *StreamModule) EventHandlers() []bot.EventHandler {
	return nil
}

// Init initializes the module.
func (m *StreamModule) Init(deps bot.ModuleDependencies) error {
	svc := application.NewStreamService(deps.Store, infrastructure.NewPoster(deps.Session), nil)
	m.commandHandlers = presentation.NewCommandHandlers(svc)
	return nil
}

// Shutdown cleans up module resources.
func (m *StreamModule) Shutdown() error {
	return nil
}
