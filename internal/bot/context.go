package bot

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/emotebot/internal/command"
	"github.com/sglre6355/emotebot/internal/storage"
)

// Context holds the process-wide dependencies handed to every dispatch. It is
// built once at startup and only read afterwards.
type Context struct {
	Session *discordgo.Session
	Store   *storage.Store
	Emotes  *EmoteCache
}

// Interaction is one dispatched interaction as seen by a handler.
type Interaction struct {
	*Context

	Event      *discordgo.InteractionCreate
	Invocation *command.Invocation
	GuildID    snowflake.ID
	InvokerID  snowflake.ID
	Responder  Responder
	Logger     *slog.Logger
}

// Options returns the value options of the resolved leaf.
func (it *Interaction) Options() command.Options {
	if it.Invocation == nil {
		return nil
	}
	return it.Invocation.Options
}

// ChannelID returns the channel the interaction was invoked in.
func (it *Interaction) ChannelID() snowflake.ID {
	if it.Event == nil || it.Event.Interaction == nil {
		return 0
	}
	id, _ := snowflake.Parse(it.Event.ChannelID)
	return id
}
