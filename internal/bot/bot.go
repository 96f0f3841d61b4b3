package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/emotebot/internal/command"
	"github.com/sglre6355/emotebot/internal/deploy"
	"github.com/sglre6355/emotebot/internal/storage"
	"golang.org/x/time/rate"
)

// userGuildsPageSize is the largest page the user guilds endpoint returns.
const userGuildsPageSize = 200

// Bot manages the Discord bot lifecycle and module coordination.
type Bot struct {
	config  *Config
	session *discordgo.Session
	store   *storage.Store
	emotes  *EmoteCache
	modules []Module

	schema     *command.Schema
	dispatcher *Dispatcher
	deployment *deploy.Deployment
	syncer     *deploy.PermissionSyncer

	// synced holds the guilds whose permissions were pushed by this process.
	mu     sync.Mutex
	synced map[snowflake.ID]struct{}

	ctx    context.Context
	cancel context.CancelFunc
}

// NewBot creates a new Bot instance with the given configuration.
func NewBot(cfg *Config) *Bot {
	return &Bot{
		config:  cfg,
		emotes:  NewEmoteCache(),
		modules: make([]Module, 0),
		synced:  make(map[snowflake.ID]struct{}),
	}
}

// LoadModules loads modules from the global registry.
func (b *Bot) LoadModules() {
	b.modules = Modules()
}

// Start opens the store, initializes modules, connects to Discord, deploys
// the command schema and grants restricted commands. A failed schema push is
// fatal; permission failures are logged per guild.
func (b *Bot) Start(ctx context.Context) error {
	b.ctx, b.cancel = context.WithCancel(ctx)

	if err := b.newSession(); err != nil {
		return err
	}

	store, err := storage.Open(b.ctx, b.config.StoragePath)
	if err != nil {
		return err
	}
	b.store = store

	if err := b.loadModuleConfigs(); err != nil {
		return err
	}

	if err := b.initModules(); err != nil {
		return fmt.Errorf("failed to initialize modules: %w", err)
	}

	if err := b.buildDispatcher(); err != nil {
		return err
	}

	b.session.AddHandler(b.emotes.onGuildCreate)
	b.session.AddHandler(b.emotes.onGuildEmojisUpdate)
	b.session.AddHandler(b.emotes.onGuildDelete)
	b.registerEventHandlers()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	appID := b.applicationID()
	deployment, err := b.deploy(b.ctx, appID)
	if err != nil {
		return err
	}
	b.deployment = deployment

	// Interactions are only served once the registered command set is known.
	b.session.AddHandler(b.handleInteraction)

	b.syncer = b.newPermissionSyncer(appID)
	b.syncPermissions(b.ctx, b.stateGuildIDs())

	// Guilds joined after startup get their grants on arrival.
	b.session.AddHandler(b.onGuildCreate)

	slog.Info("started bot",
		"user_id", b.session.State.User.ID,
		"username", b.session.State.User.Username,
		"mode", string(b.config.Mode),
	)

	return nil
}

// Stop gracefully shuts down the bot.
func (b *Bot) Stop() error {
	if b.cancel != nil {
		b.cancel()
	}

	for _, mod := range b.modules {
		if err := mod.Shutdown(); err != nil {
			slog.Warn("failed to shutdown module", "module", mod.Name(), "error", err)
		}
	}

	var errs []error
	if b.session != nil {
		if err := b.session.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Discord session: %w", err))
		}
	}
	if b.store != nil {
		if err := b.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close store: %w", err))
		}
	}

	return errors.Join(errs...)
}

// Register deploys the command schema and pushes permissions over REST
// without opening a gateway connection.
func (b *Bot) Register(ctx context.Context) error {
	if err := b.newSession(); err != nil {
		return err
	}

	schema, err := BuildSchema(b.modules)
	if err != nil {
		return err
	}
	b.schema = schema

	appID, err := b.restApplicationID(ctx)
	if err != nil {
		return err
	}

	deployment, err := b.deploy(ctx, appID)
	if err != nil {
		return err
	}
	b.deployment = deployment

	guilds, err := b.restGuildIDs(ctx)
	if err != nil {
		return err
	}

	b.syncer = b.newPermissionSyncer(appID)
	b.syncPermissions(ctx, guilds)

	return nil
}

// Clear empties the command set of each scope over REST.
func (b *Bot) Clear(ctx context.Context, scopes []deploy.Target) error {
	if err := b.newSession(); err != nil {
		return err
	}

	appID, err := b.restApplicationID(ctx)
	if err != nil {
		return err
	}

	deployer, err := deploy.NewDeployer(b.session, appID, b.deployOptions())
	if err != nil {
		return err
	}

	return deployer.Clear(ctx, scopes...)
}

func (b *Bot) newSession() error {
	session, err := discordgo.New("Bot " + b.config.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildEmojis |
		discordgo.IntentsGuildVoiceStates
	b.session = session
	return nil
}

// loadModuleConfigs calls LoadConfig on modules that need configuration.
func (b *Bot) loadModuleConfigs() error {
	for _, mod := range b.modules {
		if cm, ok := mod.(ConfigurableModule); ok {
			if err := cm.LoadConfig(); err != nil {
				return fmt.Errorf("failed to load %s module config: %w", mod.Name(), err)
			}
		}
	}
	return nil
}

// initModules initializes all loaded modules.
func (b *Bot) initModules() error {
	deps := ModuleDependencies{
		Session: b.session,
		Config:  b.config,
		Store:   b.store,
		Emotes:  b.emotes,
	}

	moduleNames := make([]string, len(b.modules))
	for i, mod := range b.modules {
		if err := mod.Init(deps); err != nil {
			return fmt.Errorf("failed to initialize %s module: %w", mod.Name(), err)
		}
		slog.Debug("initialized module", "module", mod.Name())
		moduleNames[i] = mod.Name()
	}
	slog.Info("initialized modules", "modules", moduleNames)

	return nil
}

// buildDispatcher merges module schemas and handlers into the dispatch table.
func (b *Bot) buildDispatcher() error {
	schema, err := BuildSchema(b.modules)
	if err != nil {
		return err
	}

	handlers, err := CollectHandlers(b.modules)
	if err != nil {
		return err
	}

	dispatcher, err := NewDispatcher(schema, handlers, &Context{
		Session: b.session,
		Store:   b.store,
		Emotes:  b.emotes,
	})
	if err != nil {
		return fmt.Errorf("failed to build dispatch table: %w", err)
	}

	b.schema = schema
	b.dispatcher = dispatcher
	slog.Debug("built dispatch table", "handlers", dispatcher.HandlerKeys())

	return nil
}

// registerEventHandlers registers all module event handlers with the session.
func (b *Bot) registerEventHandlers() {
	for _, mod := range b.modules {
		for _, handler := range mod.EventHandlers() {
			b.session.AddHandler(handler)
		}
	}
}

func (b *Bot) deployOptions() deploy.Options {
	// Config.Validate already rejected malformed scopes.
	scopes, _ := b.config.Scopes()
	return deploy.Options{
		Mode:        b.config.Mode,
		DevGuildID:  b.config.DevGuildID,
		ClearScopes: scopes,
	}
}

func (b *Bot) deploy(ctx context.Context, appID string) (*deploy.Deployment, error) {
	deployer, err := deploy.NewDeployer(b.session, appID, b.deployOptions())
	if err != nil {
		return nil, err
	}

	deployment, err := deployer.Deploy(ctx, b.schema.ApplicationCommands())
	if err != nil {
		return nil, fmt.Errorf("failed to deploy commands: %w", err)
	}
	return deployment, nil
}

func (b *Bot) newPermissionSyncer(appID string) *deploy.PermissionSyncer {
	return deploy.NewPermissionSyncer(b.session, newSessionGuildOwners(b.session), appID,
		deploy.PermissionOptions{
			Mode:       b.config.Mode,
			DevGuildID: b.config.DevGuildID,
			BotOwnerID: b.config.BotOwnerID,
			Workers:    b.config.PermissionWorkers,
			Rate:       rate.Limit(b.config.PermissionRate),
		},
	)
}

// syncPermissions grants restricted commands in guilds and remembers which
// guilds are done.
func (b *Bot) syncPermissions(ctx context.Context, guilds []snowflake.ID) {
	report, err := b.syncer.Sync(ctx, b.deployment, b.schema.Restricted(), guilds)
	if err != nil {
		slog.Error("failed to sync command permissions", "error", err)
		return
	}

	// The syncer logs per-guild failures; only fully granted guilds count.
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, g := range report.Granted {
		if _, failed := report.Failed[g.GuildID]; !failed {
			b.synced[g.GuildID] = struct{}{}
		}
	}
}

// onGuildCreate grants restricted commands in guilds that were not part of
// the startup sync.
func (b *Bot) onGuildCreate(_ *discordgo.Session, g *discordgo.GuildCreate) {
	if b.config.Mode != deploy.ModeProduction || len(b.schema.Restricted()) == 0 {
		return
	}

	id, err := snowflake.Parse(g.ID)
	if err != nil {
		return
	}

	b.mu.Lock()
	_, done := b.synced[id]
	b.mu.Unlock()
	if done {
		return
	}

	b.syncPermissions(b.ctx, []snowflake.ID{id})
}

// handleInteraction routes incoming application commands through the dispatcher.
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if b.deployment == nil {
		slog.Warn("ignored interaction before command deployment", "interaction_id", i.ID)
		return
	}

	ctx := b.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	// Dispatch logs and answers failures itself.
	_ = b.dispatcher.Dispatch(ctx, i, command.FromDiscord(i), NewDiscordResponder(s, i.Interaction))
}

// applicationID returns the configured application id, or the bot user's id
// once the gateway is ready.
func (b *Bot) applicationID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	return b.session.State.User.ID
}

func (b *Bot) restApplicationID(ctx context.Context) (string, error) {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID, nil
	}

	u, err := b.session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to fetch bot user: %w", err)
	}
	return u.ID, nil
}

// stateGuildIDs returns the guilds announced in READY.
func (b *Bot) stateGuildIDs() []snowflake.ID {
	b.session.State.RLock()
	defer b.session.State.RUnlock()

	ids := make([]snowflake.ID, 0, len(b.session.State.Guilds))
	for _, g := range b.session.State.Guilds {
		if id, err := snowflake.Parse(g.ID); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func (b *Bot) restGuildIDs(ctx context.Context) ([]snowflake.ID, error) {
	var ids []snowflake.ID
	after := ""
	for {
		page, err := b.session.UserGuilds(userGuildsPageSize, "", after, false, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list guilds: %w", err)
		}
		for _, g := range page {
			id, err := snowflake.Parse(g.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to parse guild id %q: %w", g.ID, err)
			}
			ids = append(ids, id)
		}
		if len(page) < userGuildsPageSize {
			return ids, nil
		}
		after = page[len(page)-1].ID
	}
}
