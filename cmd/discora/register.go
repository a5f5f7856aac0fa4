package main

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Publish the command payload without connecting to the gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, bot, err := loadBot()
		if err != nil {
			return err
		}
		if err := cfg.RequireToken(); err != nil {
			return err
		}
		dg, err := discordgo.New("Bot " + cfg.DiscordToken)
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		return bot.Register(cmd.Context(), dg)
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
