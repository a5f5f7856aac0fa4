// Package lifecycle provides gateway lifecycle event handlers.
package lifecycle

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/discora/internal/event"
)

func init() {
	event.Handlers.Provide("lifecycle.ready", Ready)
	event.Handlers.Provide("lifecycle.guild_create", GuildCreate)
}

// Ready logs the connected user.
func Ready(_ *discordgo.Session, payload any) error {
	r, ok := payload.(*discordgo.Ready)
	if !ok || r.User == nil {
		return nil
	}
	log.Printf("[INFO] %s is online (%d guilds)", r.User.Username, len(r.Guilds))
	return nil
}

// GuildCreate logs guilds becoming available.
func GuildCreate(_ *discordgo.Session, payload any) error {
	g, ok := payload.(*discordgo.GuildCreate)
	if !ok || g.Guild == nil {
		return nil
	}
	log.Printf("[INFO] Guild available: %s (%s)", g.Name, g.ID)
	return nil
}
