package domain

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Emote is a custom guild emoji the bot can use.
type Emote struct {
	ID       string
	Name     string
	Animated bool
}

// FromDiscord converts a discordgo emoji.
func FromDiscord(e *discordgo.Emoji) Emote {
	return Emote{ID: e.ID, Name: e.Name, Animated: e.Animated}
}

// String renders the emote in message markup.
func (e Emote) String() string {
	if e.Animated {
		return fmt.Sprintf("<a:%s:%s>", e.Name, e.ID)
	}
	return fmt.Sprintf("<:%s:%s>", e.Name, e.ID)
}
