package deploy

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Permission push defaults. Discord allows roughly five writes per second on
// the permissions route.
const (
	DefaultPermissionWorkers = 4
	DefaultPermissionRate    = rate.Limit(5)
)

// PermissionEditor replaces the permission overwrites of one command in one
// guild. *discordgo.Session satisfies it.
type PermissionEditor interface {
	ApplicationCommandPermissionsEdit(
		appID, guildID, cmdID string,
		permissions *discordgo.ApplicationCommandPermissionsList,
		options ...discordgo.RequestOption,
	) error
}

// GuildOwnerLookup resolves the owner of a guild.
type GuildOwnerLookup interface {
	GuildOwner(ctx context.Context, guildID snowflake.ID) (snowflake.ID, error)
}

// Grant is the set of users allowed to invoke a restricted command in a guild.
type Grant struct {
	CommandID      snowflake.ID
	Command        string
	GuildID        snowflake.ID
	AllowedUserIDs []snowflake.ID
}

// AllowedUsers returns {owner} ∪ {botOwner}, skipping zero ids, deduplicated
// and sorted.
func AllowedUsers(owner, botOwner snowflake.ID) []snowflake.ID {
	users := make([]snowflake.ID, 0, 2)
	for _, id := range []snowflake.ID{owner, botOwner} {
		if id != 0 && !slices.Contains(users, id) {
			users = append(users, id)
		}
	}
	slices.Sort(users)
	return users
}

// PermissionOptions configures a PermissionSyncer.
type PermissionOptions struct {
	Mode       Mode
	DevGuildID snowflake.ID
	BotOwnerID snowflake.ID

	// Workers bounds concurrent guilds; Rate and Burst throttle pushes.
	Workers int
	Rate    rate.Limit
	Burst   int
}

// Report is the outcome of a permission sync pass.
type Report struct {
	Granted []Grant
	Failed  map[snowflake.ID]error
}

// PermissionSyncer pushes permission grants for restricted commands.
type PermissionSyncer struct {
	editor  PermissionEditor
	owners  GuildOwnerLookup
	appID   string
	opts    PermissionOptions
	limiter *rate.Limiter
}

// NewPermissionSyncer creates a PermissionSyncer. owners may be nil in
// development mode.
func NewPermissionSyncer(
	editor PermissionEditor,
	owners GuildOwnerLookup,
	appID string,
	opts PermissionOptions,
) *PermissionSyncer {
	if opts.Workers <= 0 {
		opts.Workers = DefaultPermissionWorkers
	}
	if opts.Rate <= 0 {
		opts.Rate = DefaultPermissionRate
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}

	return &PermissionSyncer{
		editor:  editor,
		owners:  owners,
		appID:   appID,
		opts:    opts,
		limiter: rate.NewLimiter(opts.Rate, opts.Burst),
	}
}

// Sync grants every restricted command to the allowed users of each guild.
// In development mode only the development guild is considered and the grant
// holds the bot owner alone. A failure in one guild is logged and recorded in
// the report; the command stays restricted there.
func (p *PermissionSyncer) Sync(
	ctx context.Context,
	deployment *Deployment,
	restricted []string,
	guilds []snowflake.ID,
) (*Report, error) {
	report := &Report{Failed: make(map[snowflake.ID]error)}
	if len(restricted) == 0 {
		return report, nil
	}

	commandIDs := make(map[string]snowflake.ID, len(restricted))
	for _, name := range restricted {
		id, ok := deployment.CommandID(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCommandID, name)
		}
		commandIDs[name] = id
	}

	if p.opts.Mode == ModeDevelopment {
		if p.opts.BotOwnerID == 0 {
			return nil, ErrBotOwnerRequired
		}
		guilds = []snowflake.ID{p.opts.DevGuildID}
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(p.opts.Workers)

	for _, guildID := range guilds {
		g.Go(func() error {
			grants, err := p.syncGuild(ctx, guildID, restricted, commandIDs)

			mu.Lock()
			defer mu.Unlock()
			report.Granted = append(report.Granted, grants...)
			if err != nil {
				report.Failed[guildID] = err
				slog.Error("failed to sync command permissions",
					"guild_id", guildID.String(),
					"error", err,
				)
			}
			return nil
		})
	}
	_ = g.Wait()

	slices.SortFunc(report.Granted, func(a, b Grant) int {
		if c := cmp.Compare(a.GuildID, b.GuildID); c != 0 {
			return c
		}
		return cmp.Compare(a.Command, b.Command)
	})

	slog.Info("synced command permissions",
		"granted", len(report.Granted),
		"failed", len(report.Failed),
	)

	return report, nil
}

// syncGuild pushes every restricted command for one guild and returns the
// grants that were accepted.
func (p *PermissionSyncer) syncGuild(
	ctx context.Context,
	guildID snowflake.ID,
	restricted []string,
	commandIDs map[string]snowflake.ID,
) ([]Grant, error) {
	allowed, err := p.allowedUsers(ctx, guildID)
	if err != nil {
		return nil, err
	}

	grants := make([]Grant, 0, len(restricted))
	for _, name := range restricted {
		grant := Grant{
			CommandID:      commandIDs[name],
			Command:        name,
			GuildID:        guildID,
			AllowedUserIDs: allowed,
		}
		if err := p.push(ctx, grant); err != nil {
			return grants, fmt.Errorf("failed to grant %s: %w", name, err)
		}
		grants = append(grants, grant)
	}
	return grants, nil
}

func (p *PermissionSyncer) allowedUsers(ctx context.Context, guildID snowflake.ID) ([]snowflake.ID, error) {
	if p.opts.Mode == ModeDevelopment {
		return AllowedUsers(0, p.opts.BotOwnerID), nil
	}

	owner, err := p.owners.GuildOwner(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up guild owner: %w", err)
	}
	return AllowedUsers(owner, p.opts.BotOwnerID), nil
}

func (p *PermissionSyncer) push(ctx context.Context, grant Grant) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}

	perms := make([]*discordgo.ApplicationCommandPermissions, len(grant.AllowedUserIDs))
	for i, id := range grant.AllowedUserIDs {
		perms[i] = &discordgo.ApplicationCommandPermissions{
			ID:         id.String(),
			Type:       discordgo.ApplicationCommandPermissionTypeUser,
			Permission: true,
		}
	}

	return p.editor.ApplicationCommandPermissionsEdit(
		p.appID,
		grant.GuildID.String(),
		grant.CommandID.String(),
		&discordgo.ApplicationCommandPermissionsList{Permissions: perms},
		discordgo.WithContext(ctx),
	)
}
