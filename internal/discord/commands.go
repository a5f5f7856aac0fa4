package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/discora/pkg/retrylimit"
)

// CommandAPI is the slice of the REST client used for registration.
// *discordgo.Session satisfies it.
type CommandAPI interface {
	ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// RegisterCommands replaces the application's commands with payload in a
// single bulk overwrite. An empty guildID targets global commands.
// Rate limits and server errors are retried through lim.
func RegisterCommands(ctx context.Context, api CommandAPI, lim *retrylimit.AdaptiveLimiter, appID, guildID string, payload []*discordgo.ApplicationCommand) ([]*discordgo.ApplicationCommand, error) {
	scope := "global"
	if guildID != "" {
		scope = "guild " + guildID
	}
	log.Printf("[INFO] Started refreshing %d application (/) command(s) for %s", len(payload), scope)

	if payload == nil {
		payload = []*discordgo.ApplicationCommand{}
	}

	var created []*discordgo.ApplicationCommand
	err := retrylimit.Do(ctx, lim, retrylimit.DefaultConfig(), func() error {
		var err error
		created, err = api.ApplicationCommandBulkOverwrite(appID, guildID, payload, discordgo.WithContext(ctx))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("bulk overwrite for %s: %w", scope, err)
	}

	log.Printf("[DONE] Successfully reloaded %d application (/) command(s) for %s", len(created), scope)
	return created, nil
}
