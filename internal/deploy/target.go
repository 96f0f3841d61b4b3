package deploy

import (
	"fmt"
	"strings"

	"github.com/disgoorg/snowflake/v2"
)

// GlobalScope is the clear-scope entry that stands for the global command set.
const GlobalScope = "*"

// Mode selects where commands are deployed.
type Mode string

const (
	ModeProduction  Mode = "production"
	ModeDevelopment Mode = "development"
)

// Validate reports whether the mode is known.
func (m Mode) Validate() error {
	switch m {
	case ModeProduction, ModeDevelopment:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, string(m))
	}
}

// Target is the scope a command set is registered in: either global or a
// single guild.
type Target struct {
	guildID snowflake.ID
}

// Global returns the global target.
func Global() Target {
	return Target{}
}

// Guild returns the target for a single guild.
func Guild(id snowflake.ID) Target {
	return Target{guildID: id}
}

// ChooseTarget picks the deployment target for the given mode.
func ChooseTarget(mode Mode, devGuildID snowflake.ID) (Target, error) {
	switch mode {
	case ModeProduction:
		return Global(), nil
	case ModeDevelopment:
		if devGuildID == 0 {
			return Target{}, ErrMissingDevGuild
		}
		return Guild(devGuildID), nil
	default:
		return Target{}, mode.Validate()
	}
}

// IsGlobal reports whether t is the global target.
func (t Target) IsGlobal() bool {
	return t.guildID == 0
}

// GuildID returns the guild of a guild target, or zero for the global target.
func (t Target) GuildID() snowflake.ID {
	return t.guildID
}

func (t Target) String() string {
	if t.IsGlobal() {
		return "global"
	}
	return "guild " + t.guildID.String()
}

// discordGuildID is the guild argument the Discord API expects; empty means global.
func (t Target) discordGuildID() string {
	if t.IsGlobal() {
		return ""
	}
	return t.guildID.String()
}

// ParseScopes parses clear-scope entries, keeping their order. "*" stands for
// the global scope; anything else must be a guild id.
func ParseScopes(entries []string) ([]Target, error) {
	scopes := make([]Target, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		switch e {
		case "":
			continue
		case GlobalScope:
			scopes = append(scopes, Global())
		default:
			id, err := snowflake.Parse(e)
			if err != nil || id == 0 {
				return nil, fmt.Errorf("%w: %q", ErrInvalidScope, e)
			}
			scopes = append(scopes, Guild(id))
		}
	}
	return scopes, nil
}
