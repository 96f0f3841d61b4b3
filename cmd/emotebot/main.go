package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/sglre6355/emotebot/internal/bot"
	"github.com/sglre6355/emotebot/internal/deploy"
	_ "github.com/sglre6355/emotebot/internal/modules/config"
	_ "github.com/sglre6355/emotebot/internal/modules/emotes"
	_ "github.com/sglre6355/emotebot/internal/modules/react"
	_ "github.com/sglre6355/emotebot/internal/modules/stream"
	_ "github.com/sglre6355/emotebot/internal/modules/timezone"
	_ "github.com/sglre6355/emotebot/internal/modules/voice"
	_ "github.com/sglre6355/emotebot/internal/modules/welcome"
)

// version is set at build time via ldflags:
// go build -ldflags "-X main.version=1.0.0" ./cmd/emotebot
var version = "dev"

const usage = `Usage: emotebot [run|register|clear] [flags]

Commands:
  run        connect to Discord and serve slash commands (default)
  register   deploy commands and permissions, then exit
  clear      remove every command from the given scopes, then exit

Flags:
`

func main() {
	if err := run(); err != nil {
		slog.Error("emotebot failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var envFile string
	var scopes []string

	flagSet := pflag.NewFlagSet("emotebot", pflag.ContinueOnError)
	flagSet.StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	flagSet.StringSliceVar(&scopes, "scope", nil,
		`scopes for "clear": guild ids or "*" for global (default: CLEAR_SCOPES, then the deployment target)`)
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	// Configure JSON logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := godotenv.Load(envFile); err != nil {
		slog.Debug("no dotenv file loaded, using process environment", "path", envFile)
	}

	cfg, err := bot.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

	b := bot.NewBot(cfg)
	b.LoadModules()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := "run"
	if args := flagSet.Args(); len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "run":
		return serve(ctx, b)
	case "register":
		slog.Info("registering commands", "version", version, "mode", string(cfg.Mode))
		if err := b.Register(ctx); err != nil {
			return fmt.Errorf("failed to register commands: %w", err)
		}
		slog.Info("registered commands")
		return nil
	case "clear":
		targets, err := clearTargets(cfg, scopes)
		if err != nil {
			return err
		}
		if err := b.Clear(ctx, targets); err != nil {
			return fmt.Errorf("failed to clear commands: %w", err)
		}
		slog.Info("cleared commands", "scopes", len(targets))
		return nil
	default:
		printHelp(flagSet)
		return fmt.Errorf("unknown command %q", command)
	}
}

func serve(ctx context.Context, b *bot.Bot) error {
	slog.Info("starting emotebot", "version", version)

	if err := b.Start(ctx); err != nil {
		if stopErr := b.Stop(); stopErr != nil {
			slog.Error("failed to clean up after failed start", "error", stopErr)
		}
		return fmt.Errorf("failed to start bot: %w", err)
	}

	// Wait for shutdown signal
	<-ctx.Done()

	slog.Info("received termination signal, shutting down")
	if err := b.Stop(); err != nil {
		slog.Error("failed to shutdown", "error", err)
	}

	slog.Info("completed bot shutdown")
	return nil
}

// clearTargets resolves the scopes for "clear": flags first, then
// CLEAR_SCOPES, then the configured deployment target.
func clearTargets(cfg *bot.Config, flagScopes []string) ([]deploy.Target, error) {
	if len(flagScopes) > 0 {
		return deploy.ParseScopes(flagScopes)
	}

	configured, err := cfg.Scopes()
	if err != nil {
		return nil, err
	}
	if len(configured) > 0 {
		return configured, nil
	}

	target, err := deploy.ChooseTarget(cfg.Mode, cfg.DevGuildID)
	if err != nil {
		return nil, err
	}
	return []deploy.Target{target}, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprint(os.Stderr, usage)
	flagSet.PrintDefaults()
}
