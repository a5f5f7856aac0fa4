package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/keshon/discora/internal/config"
	"github.com/keshon/discora/internal/discord"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "discora",
	Short: "Folder-driven Discord bot framework",
	Long: `Discora loads slash commands and gateway event bindings from definition
files, registers the commands with Discord and routes interactions to the
handlers compiled into this binary.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
}

// loadBot reads configuration and loads every definition folder.
func loadBot() (*config.Config, *discord.Bot, error) {
	config.LoadEnvFile(envFile)
	cfg, err := config.New()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	bot := discord.NewBot(cfg)
	bot.Load()
	log.Printf("[INFO] Environment: %s, root: %s", cfg.Environment, cfg.Root)
	return cfg, bot, nil
}
