// Package ping provides the handlers behind commands/ping.yaml: a reply with
// two buttons, and the click handler that answers them.
package ping

import (
	"github.com/bwmarrin/discordgo"

	"github.com/keshon/discora/internal/command"
)

const (
	helloButton = "hello_button"
	hiButton    = "hi_button"
)

func init() {
	command.Handlers.Provide("ping.execute", Execute)
	command.Handlers.Provide("ping.buttons", Buttons)
}

// Execute asks the user how to respond.
func Execute(ctx *command.Context) error {
	return ctx.ReplyComponents("How do you want me to respond",
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{CustomID: command.CustomID(ctx.Command.Name, helloButton), Label: "say hello", Style: discordgo.PrimaryButton},
			discordgo.Button{CustomID: command.CustomID(ctx.Command.Name, hiButton), Label: "say hi", Style: discordgo.PrimaryButton},
		}},
	)
}

// Buttons answers a click on either button. Unknown buttons are ignored.
func Buttons(ctx *command.Context) error {
	_, suffix := command.ParseCustomID(ctx.CustomID())
	switch suffix {
	case helloButton:
		return ctx.Reply("hello world")
	case hiButton:
		return ctx.Reply("hi")
	}
	return nil
}
