package application

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/emotebot/internal/modules/react/domain"
)

const (
	// maxReactions is the number of distinct reactions a message can carry.
	maxReactions = 20

	// DefaultLinger is how long the bot keeps its reactions before removing
	// them, leaving them for others to click.
	DefaultLinger = 5 * time.Second
)

// ReactInput contains the input for the React use case.
type ReactInput struct {
	Target domain.Target
	Emotes string // space separated names
}

// ReactOutput contains the result of the React use case.
type ReactOutput struct {
	ChannelID snowflake.ID
	MessageID snowflake.ID
	// Reactions holds the markup of every distinct reaction added, in order.
	Reactions []string
	// Unmatched holds the queries that matched no emote.
	Unmatched []string
}

// ReactService reacts to messages with cached emotes.
type ReactService struct {
	emotes  EmoteSource
	finder  MessageFinder
	reactor Reactor
	linger  time.Duration
	after   func(time.Duration, func())
}

// NewReactService creates a new ReactService. Reactions are removed after
// linger; a zero linger keeps them.
func NewReactService(
	emotes EmoteSource,
	finder MessageFinder,
	reactor Reactor,
	linger time.Duration,
) *ReactService {
	return &ReactService{
		emotes:  emotes,
		finder:  finder,
		reactor: reactor,
		linger:  linger,
		after: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// React resolves every queried emote and reacts with it on the target
// message. Queries matching nothing are reacted with domain.Unknown.
func (s *ReactService) React(ctx context.Context, input ReactInput) (*ReactOutput, error) {
	queries := domain.ParseQueries(input.Emotes)
	if len(queries) == 0 {
		return nil, ErrNoEmotes
	}

	emotes := s.sortedEmotes()
	out := &ReactOutput{ChannelID: input.Target.ChannelID, MessageID: input.Target.MessageID}

	// Reacting twice with the same emoji is a no-op, so each is sent once.
	var reactions []string
	for _, q := range queries {
		reaction, markup := domain.Unknown, domain.Unknown
		if e, ok := domain.Nearest(emotes, q); ok {
			reaction, markup = e.Reaction(), e.String()
		} else {
			out.Unmatched = append(out.Unmatched, q)
		}
		if slices.Contains(reactions, reaction) {
			continue
		}
		reactions = append(reactions, reaction)
		out.Reactions = append(out.Reactions, markup)
	}
	if len(reactions) > maxReactions {
		return nil, ErrTooManyEmotes
	}

	if input.Target.Distance > 0 {
		id, err := s.finder.MessageAt(ctx, input.Target.ChannelID, input.Target.Distance)
		if err != nil {
			return nil, err
		}
		out.MessageID = id
	}

	for _, r := range reactions {
		if err := s.reactor.React(ctx, out.ChannelID, out.MessageID, r); err != nil {
			return nil, err
		}
		s.scheduleUnreact(ctx, out.ChannelID, out.MessageID, r)
	}

	return out, nil
}

func (s *ReactService) scheduleUnreact(ctx context.Context, channelID, messageID snowflake.ID, emoji string) {
	if s.linger <= 0 {
		return
	}

	// The removal outlives the interaction that asked for it.
	ctx = context.WithoutCancel(ctx)
	s.after(s.linger, func() {
		if err := s.reactor.Unreact(ctx, channelID, messageID, emoji); err != nil {
			slog.Warn("failed to remove reaction",
				"channel_id", channelID.String(),
				"message_id", messageID.String(),
				"emoji", emoji,
				"error", err,
			)
		}
	})
}

// sortedEmotes snapshots the cache in a stable order so that ties between
// equally close emotes always resolve the same way.
func (s *ReactService) sortedEmotes() []domain.Emote {
	var emotes []domain.Emote
	for _, e := range s.emotes.All() {
		if e == nil || e.ID == "" {
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
	return emotes
}
