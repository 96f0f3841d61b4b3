package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/emotebot/internal/deploy"
)

// ErrMissingBotOwner is returned when development mode runs without BOT_OWNER_ID.
var ErrMissingBotOwner = errors.New("development mode requires BOT_OWNER_ID")

// Config holds the bot configuration loaded from environment variables.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,notEmpty"`

	// ApplicationID defaults to the bot user's id once connected.
	ApplicationID string `env:"DISCORD_APPLICATION_ID"`

	Mode        deploy.Mode  `env:"BOT_MODE"     envDefault:"production"`
	DevGuildID  snowflake.ID `env:"DEV_GUILD"`
	BotOwnerID  snowflake.ID `env:"BOT_OWNER_ID"`
	ClearScopes []string     `env:"CLEAR_SCOPES" envSeparator:","`

	StoragePath string `env:"STORAGE_PATH" envDefault:"data/emotebot.json"`

	PermissionWorkers int     `env:"PERMISSION_SYNC_WORKERS" envDefault:"4"`
	PermissionRate    float64 `env:"PERMISSION_SYNC_RATE"    envDefault:"5"`

	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig loads configuration from environment variables.
// Returns an error if required fields are missing or the mode rules are violated.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	opts := env.Options{
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(snowflake.ID(0)): func(v string) (any, error) {
				return snowflake.Parse(v)
			},
		},
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the deployment mode rules.
func (c *Config) Validate() error {
	if err := c.Mode.Validate(); err != nil {
		return err
	}

	if c.Mode == deploy.ModeDevelopment {
		if c.DevGuildID == 0 {
			return deploy.ErrMissingDevGuild
		}
		if c.BotOwnerID == 0 {
			return ErrMissingBotOwner
		}
	}

	if _, err := c.Scopes(); err != nil {
		return err
	}

	if c.PermissionWorkers < 1 {
		return fmt.Errorf("PERMISSION_SYNC_WORKERS must be positive, got %d", c.PermissionWorkers)
	}
	if c.PermissionRate <= 0 {
		return fmt.Errorf("PERMISSION_SYNC_RATE must be positive, got %v", c.PermissionRate)
	}

	return nil
}

// Scopes returns the parsed clear scopes.
func (c *Config) Scopes() ([]deploy.Target, error) {
	return deploy.ParseScopes(c.ClearScopes)
}
