package welcome

import (
	"github.com/sglre6355/emotebot/internal/bot"
	"github.com/sglre6355/emotebot/internal/command"
	"github.com/sglre6355/emotebot/internal/modules/welcome/presentation"
)

func init() {
	bot.Register(&WelcomeModule{})
}

// WelcomeModule provides /welcome, which has a leaf at every nesting depth.
type WelcomeModule struct {
	greetHandler *presentation.GreetHandler
	chantHandler *presentation.ChantHandler
}

// Name returns the module name.
func (m *WelcomeModule) Name() string {
	return "welcome"
}

// Commands returns the command tree for this module.
func (m *WelcomeModule) Commands() []*command.Node {
	return presentation.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *WelcomeModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"welcome.lmao":      m.greetHandler.Handle,
		"welcome.group.fah": m.chantHandler.Handle,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *WelcomeModule) EventHandlers() []bot.EventHandler {
	return nil
}

// Init initializes the module.
func (m *WelcomeModule) Init(deps bot.ModuleDependencies) error {
	m.greetHandler = presentation.NewGreetHandler()
	m.chantHandler = presentation.NewChantHandler()
	return nil
}

// Shutdown cleans up module resources.
func (m *WelcomeModule) Shutdown() error {
	return nil
}
