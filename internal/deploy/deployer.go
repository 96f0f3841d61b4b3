package deploy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

// CommandRegistrar replaces the whole command set of a scope.
// *discordgo.Session satisfies it.
type CommandRegistrar interface {
	ApplicationCommandBulkOverwrite(
		appID string,
		guildID string,
		commands []*discordgo.ApplicationCommand,
		options ...discordgo.RequestOption,
	) ([]*discordgo.ApplicationCommand, error)
}

// Options configures a Deployer.
type Options struct {
	Mode       Mode
	DevGuildID snowflake.ID

	// ClearScopes are emptied before the schema push in development mode.
	ClearScopes []Target
}

// Deployment is the result of a successful schema push.
type Deployment struct {
	Target     Target
	CommandIDs map[string]snowflake.ID
}

// CommandID returns the live id of a deployed command.
func (d *Deployment) CommandID(name string) (snowflake.ID, bool) {
	id, ok := d.CommandIDs[name]
	return id, ok
}

// Deployer registers the command schema in exactly one target.
type Deployer struct {
	registrar CommandRegistrar
	appID     string
	opts      Options
	target    Target
}

// NewDeployer creates a Deployer, choosing the target from the mode.
func NewDeployer(registrar CommandRegistrar, appID string, opts Options) (*Deployer, error) {
	target, err := ChooseTarget(opts.Mode, opts.DevGuildID)
	if err != nil {
		return nil, err
	}

	return &Deployer{
		registrar: registrar,
		appID:     appID,
		opts:      opts,
		target:    target,
	}, nil
}

// Target returns the scope the schema is pushed to.
func (d *Deployer) Target() Target {
	return d.target
}

// Deploy clears stale scopes (development only) and then replaces the
// target's command set with commands. Any failure leaves the registered set
// unknown and must be treated as fatal.
func (d *Deployer) Deploy(
	ctx context.Context,
	commands []*discordgo.ApplicationCommand,
) (*Deployment, error) {
	switch {
	case d.opts.Mode == ModeDevelopment:
		if err := d.Clear(ctx, d.opts.ClearScopes...); err != nil {
			return nil, err
		}
	case len(d.opts.ClearScopes) > 0:
		slog.Warn("ignoring clear scopes outside development mode",
			"scopes", len(d.opts.ClearScopes),
		)
	}

	created, err := d.push(ctx, d.target, commands)
	if err != nil {
		return nil, fmt.Errorf("failed to register commands in %s: %w", d.target, err)
	}

	ids := make(map[string]snowflake.ID, len(created))
	for _, c := range created {
		id, err := snowflake.Parse(c.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse id of command %s: %w", c.Name, err)
		}
		ids[c.Name] = id
	}
	for _, c := range commands {
		if _, ok := ids[c.Name]; !ok {
			return nil, fmt.Errorf("%w: %s missing from %s", ErrIncompleteDeployment, c.Name, d.target)
		}
	}

	slog.Info("registered commands", "target", d.target.String(), "count", len(ids))

	return &Deployment{Target: d.target, CommandIDs: ids}, nil
}

// Clear empties the command set of each scope, in order.
func (d *Deployer) Clear(ctx context.Context, scopes ...Target) error {
	for _, scope := range scopes {
		if _, err := d.push(ctx, scope, []*discordgo.ApplicationCommand{}); err != nil {
			return fmt.Errorf("failed to clear commands in %s: %w", scope, err)
		}
		slog.Info("cleared commands", "target", scope.String())
	}
	return nil
}

func (d *Deployer) push(
	ctx context.Context,
	target Target,
	commands []*discordgo.ApplicationCommand,
) ([]*discordgo.ApplicationCommand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.registrar.ApplicationCommandBulkOverwrite(
		d.appID,
		target.discordGuildID(),
		commands,
		discordgo.WithContext(ctx),
	)
}
