package deploy

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

// fakeDiscord records registrations and permission edits in call order and
// keeps the registered command set of every scope.
type fakeDiscord struct {
	mu       sync.Mutex
	calls    []string
	scopes   map[string][]*discordgo.ApplicationCommand
	ids      map[string]string
	nextID   int
	perms    map[string][]string // "guild/command" -> user ids
	failPush map[string]error    // guild id ("" = global) -> error
	failPerm map[string]error    // guild id -> error

	delay       time.Duration
	inFlight    int
	maxInFlight int
}

func newFakeDiscord() *fakeDiscord {
	return &fakeDiscord{
		scopes:   make(map[string][]*discordgo.ApplicationCommand),
		ids:      make(map[string]string),
		nextID:   1000,
		perms:    make(map[string][]string),
		failPush: make(map[string]error),
		failPerm: make(map[string]error),
	}
}

func scopeName(guildID string) string {
	if guildID == "" {
		return "global"
	}
	return "guild " + guildID
}

func (f *fakeDiscord) ApplicationCommandBulkOverwrite(
	appID string,
	guildID string,
	commands []*discordgo.ApplicationCommand,
	_ ...discordgo.RequestOption,
) ([]*discordgo.ApplicationCommand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(commands) == 0 {
		f.calls = append(f.calls, "clear "+scopeName(guildID))
	} else {
		f.calls = append(f.calls, "push "+scopeName(guildID))
	}

	if err := f.failPush[guildID]; err != nil {
		return nil, err
	}

	created := make([]*discordgo.ApplicationCommand, len(commands))
	for i, c := range commands {
		key := guildID + "/" + c.Name
		id, ok := f.ids[key]
		if !ok {
			f.nextID++
			id = fmt.Sprint(f.nextID)
			f.ids[key] = id
		}
		cp := *c
		cp.ID = id
		cp.ApplicationID = appID
		created[i] = &cp
	}
	f.scopes[guildID] = created
	return created, nil
}

func (f *fakeDiscord) ApplicationCommandPermissionsEdit(
	_ string,
	guildID, cmdID string,
	permissions *discordgo.ApplicationCommandPermissionsList,
	_ ...discordgo.RequestOption,
) error {
	f.mu.Lock()
	f.inFlight++
	f.maxInFlight = max(f.maxInFlight, f.inFlight)
	f.calls = append(f.calls, "permissions guild "+guildID)
	err := f.failPerm[guildID]
	if err == nil {
		users := make([]string, 0, len(permissions.Permissions))
		for _, p := range permissions.Permissions {
			users = append(users, p.ID)
		}
		f.perms[guildID+"/"+cmdID] = users
	}
	delay := f.delay
	f.mu.Unlock()

	time.Sleep(delay)

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
	return err
}

func (f *fakeDiscord) registered(guildID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var names []string
	for _, c := range f.scopes[guildID] {
		names = append(names, c.Name+"#"+c.ID)
	}
	slices.Sort(names)
	return names
}

type fakeOwners map[snowflake.ID]snowflake.ID

func (f fakeOwners) GuildOwner(_ context.Context, guildID snowflake.ID) (snowflake.ID, error) {
	owner, ok := f[guildID]
	if !ok {
		return 0, errors.New("guild not found")
	}
	return owner, nil
}

func testCommands() []*discordgo.ApplicationCommand {
	disabled := false
	return []*discordgo.ApplicationCommand{
		{Name: "config", Description: "Bot configuration", DefaultPermission: &disabled},
		{Name: "voice", Description: "Renames your voice channel"},
	}
}
