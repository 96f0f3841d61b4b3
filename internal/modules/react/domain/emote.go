package domain

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// MaxAcceptedDistance is the largest edit distance at which an emote still
// counts as a match for a query.
const MaxAcceptedDistance = 3

// Unknown is reacted with when a query matches no emote.
const Unknown = "❓"

// A trailing "~N" picks the Nth closest match, for emotes sharing a name.
var selectorPattern = regexp.MustCompile(`^(.+)~(\d+)$`)

// Emote is a custom emoji the bot can react with.
type Emote struct {
	ID       string
	Name     string
	Animated bool
}

// FromDiscord converts a discordgo emoji.
func FromDiscord(e *discordgo.Emoji) Emote {
	return Emote{ID: e.ID, Name: e.Name, Animated: e.Animated}
}

// Reaction returns the emoji in the form the reactions endpoint expects.
func (e Emote) Reaction() string {
	return e.Name + ":" + e.ID
}

// String renders the emote in message markup.
func (e Emote) String() string {
	if e.Animated {
		return fmt.Sprintf("<a:%s:%s>", e.Name, e.ID)
	}
	return fmt.Sprintf("<:%s:%s>", e.Name, e.ID)
}

// ParseQueries splits space separated emote names.
func ParseQueries(input string) []string {
	return strings.Fields(input)
}

// Nearest picks the emote a query refers to. An exact name match wins;
// otherwise the candidates within MaxAcceptedDistance are ranked by distance
// and the query's selector picks among them, clamped to the last candidate.
func Nearest(emotes []Emote, query string) (Emote, bool) {
	selector := 0
	if m := selectorPattern.FindStringSubmatch(query); m != nil {
		if n, err := strconv.Atoi(m[2]); err == nil {
			query, selector = m[1], n
		}
	}

	if selector == 0 {
		for _, e := range emotes {
			if e.Name == query {
				return e, true
			}
		}
	}

	type candidate struct {
		emote    Emote
		distance int
	}
	var candidates []candidate
	for _, e := range emotes {
		if e.Name == "" {
			continue
		}
		d := levenshtein(e.Name, query)
		if d > MaxAcceptedDistance {
			continue
		}
		candidates = append(candidates, candidate{emote: e, distance: d})
	}
	if len(candidates) == 0 {
		return Emote{}, false
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return a.distance - b.distance
	})
	return candidates[min(selector, len(candidates)-1)].emote, true
}

// levenshtein returns the edit distance between a and b in runes.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	previous := make([]int, len(ra)+1)
	current := make([]int, len(ra)+1)
	for i := range previous {
		previous[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		current[0] = j
		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			current[i] = min(previous[i]+1, current[i-1]+1, previous[i-1]+cost)
		}
		previous, current = current, previous
	}

	return previous[len(ra)]
}
