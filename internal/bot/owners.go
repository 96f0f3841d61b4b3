package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

// guildFetcher is the subset of *discordgo.Session used to resolve owners.
type guildFetcher interface {
	Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error)
}

// sessionGuildOwners resolves guild owners from the gateway state, falling
// back to the REST API for guilds the state has not filled in yet.
type sessionGuildOwners struct {
	state *discordgo.State
	rest  guildFetcher
}

func newSessionGuildOwners(s *discordgo.Session) *sessionGuildOwners {
	return &sessionGuildOwners{state: s.State, rest: s}
}

// GuildOwner returns the owner of a guild.
func (o *sessionGuildOwners) GuildOwner(ctx context.Context, guildID snowflake.ID) (snowflake.ID, error) {
	if o.state != nil {
		if g, err := o.state.Guild(guildID.String()); err == nil && g.OwnerID != "" {
			return snowflake.Parse(g.OwnerID)
		}
	}

	g, err := o.rest.Guild(guildID.String(), discordgo.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to fetch guild %s: %w", guildID, err)
	}
	if g.OwnerID == "" {
		return 0, fmt.Errorf("guild %s has no owner", guildID)
	}

	return snowflake.Parse(g.OwnerID)
}
