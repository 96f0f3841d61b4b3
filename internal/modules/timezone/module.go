package timezone

import (
	"github.com/sglre6355/emotebot/internal/bot"
	"github.com/sglre6355/emotebot/internal/command"
	"github.com/sglre6355/emotebot/internal/modules/timezone/application"
	"github.com/sglre6355/emotebot/internal/modules/timezone/presentation"
)

func init() {
	bot.Register(&TimezoneModule{})
}

// TimezoneModule provides the /time command.
type TimezoneModule struct {
	commandHandlers *presentation.CommandHandlers
}

// Name returns the module name.
func (m *TimezoneModule) Name() string {
	return "timezone"
}

// Commands returns the command tree for this module.
func (m *TimezoneModule) Commands() []*command.Node {
	return presentation.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *TimezoneModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"time.show":     m.commandHandlers.HandleShow,
		"time.setup":    m.commandHandlers.HandleSetup,
		"time.delete":   m.commandHandlers.HandleDelete,
		"time.utc":      m.commandHandlers.HandleUTC,
		"time.dst-info": m.commandHandlers.HandleDSTInfo,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *TimezoneModule) EventHandlers() []bot.EventHandler {
	return nil
}

// Init initializes the module.
func (m *TimezoneModule) Init(deps bot.ModuleDependencies) error {
	m.commandHandlers = presentation.NewCommandHandlers(application.NewTimezoneService(deps.Store, nil))
	return nil
}

// Shutdown cleans up module resources.
func (m *TimezoneModule) Shutdown() error {
	return nil
}
