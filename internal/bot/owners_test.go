package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

type stubGuildFetcher struct {
	guild *discordgo.Guild
	err   error
	calls int
}

func (f *stubGuildFetcher) Guild(string, ...discordgo.RequestOption) (*discordgo.Guild, error) {
	f.calls++
	return f.guild, f.err
}

func TestSessionGuildOwners_PrefersState(t *testing.T) {
	state := discordgo.NewState()
	if err := state.GuildAdd(&discordgo.Guild{ID: "1", OwnerID: "100"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rest := &stubGuildFetcher{}
	owners := &sessionGuildOwners{state: state, rest: rest}

	got, err := owners.GuildOwner(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != snowflake.ID(100) {
		t.Errorf("expected owner 100, got %s", got)
	}
	if rest.calls != 0 {
		t.Errorf("expected no REST calls, got %d", rest.calls)
	}
}

func TestSessionGuildOwners_FallsBackToREST(t *testing.T) {
	state := discordgo.NewState()
	// Unavailable guilds arrive in READY without an owner.
	if err := state.GuildAdd(&discordgo.Guild{ID: "1", Unavailable: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rest := &stubGuildFetcher{guild: &discordgo.Guild{ID: "1", OwnerID: "200"}}
	owners := &sessionGuildOwners{state: state, rest: rest}

	got, err := owners.GuildOwner(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != snowflake.ID(200) {
		t.Errorf("expected owner 200, got %s", got)
	}
}

func TestSessionGuildOwners_RESTError(t *testing.T) {
	wantErr := errors.New("forbidden")
	owners := &sessionGuildOwners{rest: &stubGuildFetcher{err: wantErr}}

	if _, err := owners.GuildOwner(context.Background(), 1); !errors.Is(err, wantErr) {
		t.Errorf("expected REST error, got %v", err)
	}
}
