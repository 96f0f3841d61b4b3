package bot

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/emotebot/internal/deploy"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DISCORD_APPLICATION_ID",
		"BOT_MODE",
		"DEV_GUILD",
		"BOT_OWNER_ID",
		"CLEAR_SCOPES",
		"STORAGE_PATH",
		"PERMISSION_SYNC_WORKERS",
		"PERMISSION_SYNC_RATE",
		"LOG_LEVEL",
	} {
		// Register restoration, then unset so defaults apply.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfig_WithValidToken(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DISCORD_TOKEN", "test-token-123")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DiscordToken != "test-token-123" {
		t.Errorf("expected token %q, got %q", "test-token-123", cfg.DiscordToken)
	}
	if cfg.Mode != deploy.ModeProduction {
		t.Errorf("expected production mode by default, got %q", cfg.Mode)
	}
	if cfg.StoragePath != "data/emotebot.json" {
		t.Errorf("expected default storage path, got %q", cfg.StoragePath)
	}
	if cfg.PermissionWorkers != 4 {
		t.Errorf("expected 4 permission workers, got %d", cfg.PermissionWorkers)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info log level, got %v", cfg.LogLevel)
	}
}

func TestLoadConfig_WithEmptyToken(t *testing.T) {
	clearConfigEnv(t)
	// Clear the environment variable
	t.Setenv("DISCORD_TOKEN", "")

	_, err := LoadConfig()
	if err == nil {
		t.Error("expected error for missing token, got nil")
	}
}

func TestLoadConfig_Development(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("BOT_MODE", "development")
	t.Setenv("DEV_GUILD", "555")
	t.Setenv("BOT_OWNER_ID", "42")
	t.Setenv("CLEAR_SCOPES", "*,555")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DevGuildID != snowflake.ID(555) {
		t.Errorf("expected dev guild 555, got %v", cfg.DevGuildID)
	}
	if cfg.BotOwnerID != snowflake.ID(42) {
		t.Errorf("expected bot owner 42, got %v", cfg.BotOwnerID)
	}

	scopes, err := cfg.Scopes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scopes) != 2 || !scopes[0].IsGlobal() || scopes[1].GuildID() != snowflake.ID(555) {
		t.Errorf("expected [global, guild 555], got %v", scopes)
	}
}

func TestLoadConfig_DevelopmentRequiresGuild(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("BOT_MODE", "development")
	t.Setenv("BOT_OWNER_ID", "42")

	if _, err := LoadConfig(); !errors.Is(err, deploy.ErrMissingDevGuild) {
		t.Errorf("expected ErrMissingDevGuild, got %v", err)
	}
}

func TestLoadConfig_DevelopmentRequiresBotOwner(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("BOT_MODE", "development")
	t.Setenv("DEV_GUILD", "555")

	if _, err := LoadConfig(); !errors.Is(err, ErrMissingBotOwner) {
		t.Errorf("expected ErrMissingBotOwner, got %v", err)
	}
}

func TestLoadConfig_InvalidMode(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("BOT_MODE", "staging")

	if _, err := LoadConfig(); !errors.Is(err, deploy.ErrInvalidMode) {
		t.Errorf("expected ErrInvalidMode, got %v", err)
	}
}

func TestLoadConfig_InvalidSnowflake(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("BOT_OWNER_ID", "not-an-id")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for invalid BOT_OWNER_ID, got nil")
	}
}

func TestLoadConfig_InvalidClearScope(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("CLEAR_SCOPES", "global")

	if _, err := LoadConfig(); !errors.Is(err, deploy.ErrInvalidScope) {
		t.Errorf("expected ErrInvalidScope, got %v", err)
	}
}
