package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/keshon/discora/pkg/loader"
)

const (
	Development = "development"
	Production  = "production"
)

// Config is the process configuration, read from the environment (and an
// optional .env file).
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN"`
	ClientID     string `env:"DISCORD_CLIENT_ID"`
	GuildID      string `env:"DISCORD_GUILD_ID"`
	Environment  string `env:"ENVIRONMENT" envDefault:"development"`

	Root          string   `env:"DISCORA_ROOT"`
	SlashFolder   string   `env:"SLASH_FOLDER" envDefault:"commands"`
	EventsFolder  string   `env:"EVENTS_FOLDER" envDefault:"events"`
	MessageFolder string   `env:"MESSAGE_FOLDER"`
	Loader        string   `env:"LOADER" envDefault:"flat"`
	SlashLoader   string   `env:"SLASH_LOADER"`
	EventsLoader  string   `env:"EVENTS_LOADER"`
	Patterns      []string `env:"MODULE_PATTERNS" envSeparator:"," envDefault:"*.yaml,*.yml,*.json"`

	RegisterCommands bool   `env:"REGISTER_COMMANDS" envDefault:"true"`
	StatusAddr       string `env:"STATUS_ADDR"`
}

// LoadEnvFile loads path (default .env) into the process environment.
// A missing file is not an error.
func LoadEnvFile(path string) {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		log.Printf("[INFO] No %s file found, falling back to system environment variables", path)
	}
}

// New parses the environment into a Config and applies defaults.
func New() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		cfg.Root = wd
	}

	switch cfg.Environment {
	case Development, Production:
	default:
		return nil, fmt.Errorf("ENVIRONMENT must be %q or %q, got %q", Development, Production, cfg.Environment)
	}

	for _, m := range []string{cfg.Loader, cfg.SlashLoader, cfg.EventsLoader} {
		if _, err := loader.ParseMode(m); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// IsDevelopment reports whether verbose logging and guild-scoped
// registration are in effect.
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// LoaderOptions returns the loader options for a folder group ("slash",
// "events" or "message"). A per-group mode overrides the global one.
func (c *Config) LoaderOptions(group string) loader.Options {
	mode := c.Loader
	switch group {
	case "slash", "message":
		if c.SlashLoader != "" {
			mode = c.SlashLoader
		}
	case "events":
		if c.EventsLoader != "" {
			mode = c.EventsLoader
		}
	}
	m, _ := loader.ParseMode(mode)
	return loader.Options{Mode: m, Patterns: c.Patterns, Verbose: c.IsDevelopment()}
}

var (
	ErrMissingToken    = errors.New("DISCORD_TOKEN is not set")
	ErrMissingClientID = errors.New("DISCORD_CLIENT_ID is required to register commands")
	ErrMissingGuildID  = errors.New("DISCORD_GUILD_ID is required to register guild commands in development")
)

// RequireToken fails when no bot token is configured.
func (c *Config) RequireToken() error {
	if c.DiscordToken == "" {
		return ErrMissingToken
	}
	return nil
}

// RegistrationTarget returns the application id and the guild to register
// commands in. The guild is empty in production, meaning global commands.
func (c *Config) RegistrationTarget() (appID, guildID string, err error) {
	if c.ClientID == "" {
		return "", "", ErrMissingClientID
	}
	if c.IsDevelopment() {
		if c.GuildID == "" {
			return "", "", ErrMissingGuildID
		}
		return c.ClientID, c.GuildID, nil
	}
	return c.ClientID, "", nil
}
