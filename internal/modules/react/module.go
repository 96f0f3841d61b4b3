package react

import (
	"github.com/sglre6355/emotebot/internal/bot"
	"github.com/sglre6355/emotebot/internal/command"
	"github.com/sglre6355/emotebot/internal/modules/react/application"
	"github.com/sglre6355/emotebot/internal/modules/react/infrastructure"
	"github.com/sglre6355/emotebot/internal/modules/react/presentation"
)

func init() {
	bot.Register(&ReactModule{})
}

// ReactModule provides /react and the "React with Emotes" message menu.
type ReactModule struct {
	commandHandlers *presentation.CommandHandlers
}

// Name returns the module name.
func (m *ReactModule) Name() string {
	return "react"
}

// Commands returns the command trees for this module.
func (m *ReactModule) Commands() []*command.Node {
	return presentation.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *ReactModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"react":               m.commandHandlers.HandleReact,
		presentation.MenuName: m.commandHandlers.HandleReactMenu,
	}
}

// EventHandlers returns the modal submission handler of the menu.
func (m *ReactModule) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{m.commandHandlers.HandleModalSubmit}
}

// Init initializes the module.
func (m *ReactModule) Init(deps bot.ModuleDependencies) error {
	messages := infrastructure.NewMessages(deps.Session)
	react := application.NewReactService(deps.Emotes, messages, messages, application.DefaultLinger)
	m.commandHandlers = presentation.NewCommandHandlers(react)
	return nil
}

// Shutdown cleans up module resources.
func (m *ReactModule) Shutdown() error {
	return nil
}
