package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/emotebot/internal/modules/react/domain"
)

type stubEmotes []*discordgo.Emoji

func (s stubEmotes) All() []*discordgo.Emoji { return s }

type stubFinder struct {
	channelID snowflake.ID
	n         int
	id        snowflake.ID
	err       error
}

func (s *stubFinder) MessageAt(_ context.Context, channelID snowflake.ID, n int) (snowflake.ID, error) {
	s.channelID, s.n = channelID, n
	return s.id, s.err
}

type reaction struct {
	channelID, messageID snowflake.ID
	emoji                string
}

type recordingReactor struct {
	added   []reaction
	removed []reaction
	err     error
}

func (r *recordingReactor) React(_ context.Context, channelID, messageID snowflake.ID, emoji string) error {
	if r.err != nil {
		return r.err
	}
	r.added = append(r.added, reaction{channelID, messageID, emoji})
	return nil
}

func (r *recordingReactor) Unreact(_ context.Context, channelID, messageID snowflake.ID, emoji string) error {
	r.removed = append(r.removed, reaction{channelID, messageID, emoji})
	return nil
}

var testEmotes = stubEmotes{
	{ID: "11", Name: "pog"},
	{ID: "12", Name: "sadge"},
	{ID: "13", Name: "catJAM", Animated: true},
}

// newTestService returns a service whose removals run when flush is called.
func newTestService(finder MessageFinder, reactor Reactor) (*ReactService, func()) {
	svc := NewReactService(testEmotes, finder, reactor, DefaultLinger)

	var pending []func()
	svc.after = func(d time.Duration, f func()) {
		if d != DefaultLinger {
			panic(fmt.Sprintf("unexpected linger %s", d))
		}
		pending = append(pending, f)
	}
	return svc, func() {
		for _, f := range pending {
			f()
		}
	}
}

func TestReactService_ReactsToMessage(t *testing.T) {
	reactor := &recordingReactor{}
	svc, flush := newTestService(&stubFinder{}, reactor)

	out, err := svc.React(context.Background(), ReactInput{
		Target: domain.Target{ChannelID: 5, MessageID: 700},
		Emotes: "pog catjam",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []reaction{{5, 700, "pog:11"}, {5, 700, "catJAM:13"}}
	if !slices.Equal(reactor.added, want) {
		t.Errorf("expected reactions %v, got %v", want, reactor.added)
	}
	if !slices.Equal(out.Reactions, []string{"<:pog:11>", "<a:catJAM:13>"}) {
		t.Errorf("unexpected reaction markup %v", out.Reactions)
	}
	if len(reactor.removed) != 0 {
		t.Fatal("expected reactions to linger before removal")
	}

	flush()
	if !slices.Equal(reactor.removed, want) {
		t.Errorf("expected every reaction to be removed, got %v", reactor.removed)
	}
}

func TestReactService_ResolvesDistance(t *testing.T) {
	finder := &stubFinder{id: 800}
	reactor := &recordingReactor{}
	svc, _ := newTestService(finder, reactor)

	out, err := svc.React(context.Background(), ReactInput{
		Target: domain.Target{ChannelID: 5, Distance: 2},
		Emotes: "sadge",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if finder.channelID != 5 || finder.n != 2 {
		t.Errorf("expected lookup of message 2 in channel 5, got %d in %s", finder.n, finder.channelID)
	}
	if out.MessageID != 800 || reactor.added[0].messageID != 800 {
		t.Errorf("expected reaction on message 800, got %+v", reactor.added)
	}
}

func TestReactService_UnmatchedQueryReactsUnknown(t *testing.T) {
	reactor := &recordingReactor{}
	svc, _ := newTestService(&stubFinder{}, reactor)

	out, err := svc.React(context.Background(), ReactInput{
		Target: domain.Target{ChannelID: 5, MessageID: 700},
		Emotes: "zzzzzzzz",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !slices.Equal(out.Unmatched, []string{"zzzzzzzz"}) {
		t.Errorf("expected unmatched query, got %v", out.Unmatched)
	}
	if len(reactor.added) != 1 || reactor.added[0].emoji != domain.Unknown {
		t.Errorf("expected a single unknown reaction, got %v", reactor.added)
	}
}

func TestReactService_Errors(t *testing.T) {
	tests := []struct {
		name    string
		finder  *stubFinder
		reactor *recordingReactor
		input   ReactInput
		wantErr error
	}{
		{
			name:    "no emotes",
			finder:  &stubFinder{},
			reactor: &recordingReactor{},
			input:   ReactInput{Target: domain.Target{ChannelID: 5, MessageID: 7}, Emotes: "   "},
			wantErr: ErrNoEmotes,
		},
		{
			name:    "message not found",
			finder:  &stubFinder{err: ErrMessageNotFound},
			reactor: &recordingReactor{},
			input:   ReactInput{Target: domain.Target{ChannelID: 5, Distance: 50}, Emotes: "pog"},
			wantErr: ErrMessageNotFound,
		},
		{
			name:    "missing permissions",
			finder:  &stubFinder{},
			reactor: &recordingReactor{err: ErrMissingPermissions},
			input:   ReactInput{Target: domain.Target{ChannelID: 5, MessageID: 7}, Emotes: "pog"},
			wantErr: ErrMissingPermissions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(tt.finder, tt.reactor)

			_, err := svc.React(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestReactService_TooManyReactions(t *testing.T) {
	var emotes stubEmotes
	var query string
	for i := range maxReactions + 1 {
		name := fmt.Sprintf("emote%02d", i)
		emotes = append(emotes, &discordgo.Emoji{ID: fmt.Sprint(100 + i), Name: name})
		query += name + " "
	}
	reactor := &recordingReactor{}
	svc := NewReactService(emotes, &stubFinder{}, reactor, 0)

	_, err := svc.React(context.Background(), ReactInput{
		Target: domain.Target{ChannelID: 5, MessageID: 7},
		Emotes: query,
	})
	if !errors.Is(err, ErrTooManyEmotes) {
		t.Errorf("expected ErrTooManyEmotes, got %v", err)
	}
	if len(reactor.added) != 0 {
		t.Errorf("expected no reactions, got %d", len(reactor.added))
	}
}

func TestReactService_UnknownReactedOnce(t *testing.T) {
	reactor := &recordingReactor{}
	svc, _ := newTestService(&stubFinder{}, reactor)

	out, err := svc.React(context.Background(), ReactInput{
		Target: domain.Target{ChannelID: 5, MessageID: 7},
		Emotes: "pog zzzzzzzz yyyyyyyy",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Unmatched) != 2 {
		t.Errorf("expected 2 unmatched queries, got %v", out.Unmatched)
	}
	if len(reactor.added) != 2 {
		t.Errorf("expected pog and a single unknown reaction, got %v", reactor.added)
	}
}
