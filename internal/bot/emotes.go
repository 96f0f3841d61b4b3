package bot

import (
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

// EmoteCache keeps the custom emojis of every guild the bot serves. It is
// filled on guild create and replaced wholesale on emoji updates.
type EmoteCache struct {
	mu     sync.RWMutex
	guilds map[snowflake.ID][]*discordgo.Emoji
}

// NewEmoteCache creates an empty EmoteCache.
func NewEmoteCache() *EmoteCache {
	return &EmoteCache{
		guilds: make(map[snowflake.ID][]*discordgo.Emoji),
	}
}

// Set replaces the emojis cached for a guild.
func (c *EmoteCache) Set(guildID snowflake.ID, emojis []*discordgo.Emoji) {
	cp := make([]*discordgo.Emoji, len(emojis))
	copy(cp, emojis)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.guilds[guildID] = cp
}

// Delete forgets a guild.
func (c *EmoteCache) Delete(guildID snowflake.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.guilds, guildID)
}

// Guild returns a snapshot of a guild's emojis.
func (c *EmoteCache) Guild(guildID snowflake.ID) []*discordgo.Emoji {
	c.mu.RLock()
	defer c.mu.RUnlock()

	emojis := c.guilds[guildID]
	out := make([]*discordgo.Emoji, len(emojis))
	copy(out, emojis)
	return out
}

// All returns a snapshot of every cached emoji across guilds.
func (c *EmoteCache) All() []*discordgo.Emoji {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*discordgo.Emoji
	for _, emojis := range c.guilds {
		out = append(out, emojis...)
	}
	return out
}

func (c *EmoteCache) onGuildCreate(_ *discordgo.Session, g *discordgo.GuildCreate) {
	id, err := snowflake.Parse(g.ID)
	if err != nil {
		return
	}
	c.Set(id, g.Emojis)
	slog.Debug("cached guild emotes", "guild_id", g.ID, "count", len(g.Emojis))
}

func (c *EmoteCache) onGuildEmojisUpdate(_ *discordgo.Session, e *discordgo.GuildEmojisUpdate) {
	id, err := snowflake.Parse(e.GuildID)
	if err != nil {
		return
	}
	c.Set(id, e.Emojis)
}

func (c *EmoteCache) onGuildDelete(_ *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Unavailable {
		return
	}
	id, err := snowflake.Parse(g.ID)
	if err != nil {
		return
	}
	c.Delete(id)
}
