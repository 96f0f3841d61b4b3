package emotes

import (
	"github.com/sglre6355/emotebot/internal/bot"
	"github.com/sglre6355/emotebot/internal/command"
	"github.com/sglre6355/emotebot/internal/modules/emotes/application"
	"github.com/sglre6355/emotebot/internal/modules/emotes/presentation"
)

func init() {
	bot.Register(&EmotesModule{})
}

// EmotesModule provides the /emotes command over the shared emote cache.
type EmotesModule struct {
	commandHandlers *presentation.CommandHandlers
}

// Name returns the module name.
func (m *EmotesModule) Name() string {
	return "emotes"
}

// Commands returns the command tree for this module.
func (m *EmotesModule) Commands() []*command.Node {
	return presentation.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *EmotesModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"emotes": m.commandHandlers.HandleEmotes,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *EmotesModule) EventHandlers() []bot.EventHandler {
	return nil
}

// Init initializes the module.
func (m *EmotesModule) Init(deps bot.ModuleDependencies) error {
	m.commandHandlers = presentation.NewCommandHandlers(application.NewLister(deps.Emotes))
	return nil
}

// Shutdown cleans up module resources.
func (m *EmotesModule) Shutdown() error {
	return nil
}
