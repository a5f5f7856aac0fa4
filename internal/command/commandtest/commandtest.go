// Package commandtest provides helpers for testing command handlers without a
// gateway connection.
package commandtest

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/discora/internal/command"
)

// Recorder is a command.Responder that keeps every response it is sent.
type Recorder struct {
	mu        sync.Mutex
	Responses []*discordgo.InteractionResponse
	Err       error // returned from every InteractionRespond call when set
}

// InteractionRespond records resp.
func (r *Recorder) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Responses = append(r.Responses, resp)
	return r.Err
}

// Last returns the most recent response, or nil.
func (r *Recorder) Last() *discordgo.InteractionResponse {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Responses) == 0 {
		return nil
	}
	return r.Responses[len(r.Responses)-1]
}

// Context wraps e in a handler context answered by r.
func (r *Recorder) Context(e *discordgo.InteractionCreate, cmd *command.Command) *command.Context {
	return command.NewContext(context.Background(), nil, r, e, cmd)
}

// SlashCommand builds a chat input interaction for name.
func SlashCommand(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:   "interaction-" + name,
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name:        name,
			CommandType: discordgo.ChatApplicationCommand,
			Options:     opts,
		},
		User: &discordgo.User{ID: "1", Username: "tester"},
	}}
}

// Autocomplete builds an autocomplete interaction for name whose option
// called option is focused with value.
func Autocomplete(name, option, value string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:   "interaction-" + name,
		Type: discordgo.InteractionApplicationCommandAutocomplete,
		Data: discordgo.ApplicationCommandInteractionData{
			Name:        name,
			CommandType: discordgo.ChatApplicationCommand,
			Options: []*discordgo.ApplicationCommandInteractionDataOption{{
				Name:    option,
				Type:    discordgo.ApplicationCommandOptionString,
				Value:   value,
				Focused: true,
			}},
		},
		User: &discordgo.User{ID: "1", Username: "tester"},
	}}
}

// Button builds a button click interaction carrying customID.
func Button(customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:   "interaction-" + customID,
		Type: discordgo.InteractionMessageComponent,
		Data: discordgo.MessageComponentInteractionData{
			CustomID:      customID,
			ComponentType: discordgo.ButtonComponent,
		},
		User: &discordgo.User{ID: "1", Username: "tester"},
	}}
}

// ModalSubmit builds a modal submission with one text input per entry in values.
func ModalSubmit(customID string, values map[string]string) *discordgo.InteractionCreate {
	var rows []discordgo.MessageComponent
	for id, v := range values {
		rows = append(rows, &discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			&discordgo.TextInput{CustomID: id, Value: v},
		}})
	}
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:   "interaction-" + customID,
		Type: discordgo.InteractionModalSubmit,
		Data: discordgo.ModalSubmitInteractionData{
			CustomID:   customID,
			Components: rows,
		},
		User: &discordgo.User{ID: "1", Username: "tester"},
	}}
}
