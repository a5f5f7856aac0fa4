// Package topics provides the handlers behind commands/test.yaml, an
// autocomplete demo over a fixed list of documentation topics.
package topics

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/discora/internal/command"
)

// Option is the autocompleted string option.
const Option = "complete"

// Catalog lists the topics offered as suggestions.
var Catalog = []string{
	"Popular Topics: Threads",
	"Sharding: Getting started",
	"Library: Voice Connections",
	"Interactions: Replying to slash commands",
	"Popular Topics: Embed preview",
}

func init() {
	command.Handlers.Provide("test.execute", Execute)
	command.Handlers.Provide("test.autocomplete", Autocomplete)
}

// Match returns the catalog entries starting with prefix, ignoring case.
// Names keep their case, values are lower-cased.
func Match(prefix string) []*discordgo.ApplicationCommandOptionChoice {
	prefix = strings.ToLower(prefix)
	choices := []*discordgo.ApplicationCommandOptionChoice{}
	for _, topic := range Catalog {
		lower := strings.ToLower(topic)
		if strings.HasPrefix(lower, prefix) {
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: topic, Value: lower})
		}
	}
	return choices
}

func Autocomplete(ctx *command.Context) error {
	var typed string
	if opt := ctx.Focused(); opt != nil {
		typed = opt.StringValue()
	}
	return ctx.Suggest(Match(typed))
}

func Execute(ctx *command.Context) error {
	var value string
	if opt := ctx.Option(Option); opt != nil {
		value = opt.StringValue()
	}
	return ctx.Reply(fmt.Sprintf("you chose this %s", value))
}
