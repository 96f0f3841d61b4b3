package application

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/emotebot/internal/modules/emotes/domain"
)

// ErrInvalidPattern is returned when the filter is not a valid regular expression.
var ErrInvalidPattern = errors.New("the regex pattern you provided was not valid")

// EmoteSource provides the cached emojis. *bot.EmoteCache satisfies it.
type EmoteSource interface {
	All() []*discordgo.Emoji
}

// ListInput contains the input for the List use case.
type ListInput struct {
	Pattern       string
	CaseSensitive bool
}

// Lister lists the emotes the bot has access to.
type Lister struct {
	source EmoteSource
}

// NewLister creates a new Lister.
func NewLister(source EmoteSource) *Lister {
	return &Lister{source: source}
}

// List returns the cached emotes whose names match the pattern, sorted by
// name. Matching is case-insensitive unless requested otherwise.
func (l *Lister) List(input ListInput) ([]domain.Emote, error) {
	var re *regexp.Regexp
	if input.Pattern != "" {
		pattern := input.Pattern
		if !input.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
		}
		re = compiled
	}

	var emotes []domain.Emote
	for _, e := range l.source.All() {
		if e == nil || e.ID == "" {
			continue
		}
		if re != nil && !re.MatchString(e.Name) {
			continue
		}
		emotes = append(emotes, domain.FromDiscord(e))
	}

	slices.SortFunc(emotes, func(a, b domain.Emote) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	return emotes, nil
}
