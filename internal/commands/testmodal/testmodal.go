// Package testmodal provides the handlers behind commands/testmodal.yaml: a
// modal with a single text input and the handler for its submission.
package testmodal

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/discora/internal/command"
)

const (
	modalSuffix = "testmodal"
	InputID     = "test-input"
)

func init() {
	command.Handlers.Provide("testmodal.execute", Execute)
	command.Handlers.Provide("testmodal.submit", Submit)
}

// Execute shows the modal.
func Execute(ctx *command.Context) error {
	return ctx.ShowModal(command.CustomID(ctx.Command.Name, modalSuffix), "Test Modal",
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID: InputID,
				Label:    "Enter some text",
				Style:    discordgo.TextInputShort,
			},
		}},
	)
}

// Submit echoes the submitted text.
func Submit(ctx *command.Context) error {
	value := ctx.TextInput(InputID)
	log.Printf("[DEBUG] Text input received: %q", value)
	if value == "" {
		return ctx.Reply("Submission is empty or missing.")
	}
	return ctx.Reply(fmt.Sprintf("You submitted: %s", value))
}
