package config

import (
	"github.com/sglre6355/emotebot/internal/bot"
	"github.com/sglre6355/emotebot/internal/command"
	"github.com/sglre6355/emotebot/internal/modules/config/application"
	"github.com/sglre6355/emotebot/internal/modules/config/presentation"
)

func init() {
	bot.Register(&ConfigModule{})
}

// ConfigModule provides the restricted /config command.
type ConfigModule struct {
	commandHandlers *presentation.CommandHandlers
}

// Name returns the module name.
func (m *ConfigModule) Name() string {
	return "config"
}

// Commands returns the command tree for this module.
func (m *ConfigModule) Commands() []*command.Node {
	return presentation.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *ConfigModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"config.default-voice":         m.commandHandlers.HandleDefaultVoice,
		"config.stream-embeds-channel": m.commandHandlers.HandleStreamEmbedsChannel,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *ConfigModule) EventHandlers() []bot.EventHandler {
	return nil
}

// Init initializes the module.
func (m *ConfigModule) Init(deps bot.ModuleDependencies) error {
	m.commandHandlers = presentation.NewCommandHandlers(application.NewSettingsService(deps.Store))
	return nil
}

// Shutdown cleans up module resources.
func (m *ConfigModule) Shutdown() error {
	return nil
}
