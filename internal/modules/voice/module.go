package voice

import (
	"github.com/sglre6355/emotebot/internal/bot"
	"github.com/sglre6355/emotebot/internal/command"
	"github.com/sglre6355/emotebot/internal/modules/voice/application"
	"github.com/sglre6355/emotebot/internal/modules/voice/infrastructure"
	"github.com/sglre6355/emotebot/internal/modules/voice/presentation"
)

func init() {
	bot.Register(&VoiceModule{})
}

// VoiceModule provides the /voice command.
type VoiceModule struct {
	commandHandlers *presentation.CommandHandlers
}

// Name returns the module name.
func (m *VoiceModule) Name() string {
	return "voice"
}

// Commands returns the command tree for this module.
func (m *VoiceModule) Commands() []*command.Node {
	return presentation.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *VoiceModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"voice": m.commandHandlers.HandleVoice,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *VoiceModule) EventHandlers() []bot.EventHandler {
	return nil
}

// Init initializes the module.
func (m *VoiceModule) Init(deps bot.ModuleDependencies) error {
	rename := application.NewRenameService(
		infrastructure.NewVoiceStateProvider(deps.Session.State),
		infrastructure.NewChannelRenamer(deps.Session),
		deps.Store,
	)
	m.commandHandlers = presentation.NewCommandHandlers(rename)
	return nil
}

// Shutdown cleans up module resources.
func (m *VoiceModule) Shutdown() error {
	return nil
}
