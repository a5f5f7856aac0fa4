package command

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Responder sends interaction responses. *discordgo.Session satisfies it;
// tests supply a recorder.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// Context is what a handler receives for one interaction.
type Context struct {
	Ctx       context.Context
	Session   *discordgo.Session // nil outside a live gateway
	Responder Responder
	Event     *discordgo.InteractionCreate
	Command   *Command
}

// NewContext builds a handler context. When responder is nil the session is
// used to answer.
func NewContext(ctx context.Context, s *discordgo.Session, responder Responder, e *discordgo.InteractionCreate, cmd *Command) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if responder == nil && s != nil {
		responder = s
	}
	return &Context{Ctx: ctx, Session: s, Responder: responder, Event: e, Command: cmd}
}

// --- Interaction responses ---

// Respond sends a raw interaction response.
func (c *Context) Respond(resp *discordgo.InteractionResponse) error {
	return c.Responder.InteractionRespond(c.Event.Interaction, resp, discordgo.WithContext(c.Ctx))
}

// Reply sends a public message response.
func (c *Context) Reply(content string) error {
	return c.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

// ReplyEphemeral sends a message only the invoking user can see.
func (c *Context) ReplyEphemeral(content string) error {
	return c.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// ReplyComponents sends a public message with component rows attached.
func (c *Context) ReplyComponents(content string, rows ...discordgo.MessageComponent) error {
	return c.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: rows,
		},
	})
}

// ReplyEmbed sends a public embed response.
func (c *Context) ReplyEmbed(embed *discordgo.MessageEmbed) error {
	return c.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
	})
}

// ShowModal opens a modal dialog. customID should be built with CustomID so
// the submission routes back to the owning command.
func (c *Context) ShowModal(customID, title string, rows ...discordgo.MessageComponent) error {
	return c.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customID,
			Title:      title,
			Components: rows,
		},
	})
}

// Suggest answers an autocomplete interaction.
func (c *Context) Suggest(choices []*discordgo.ApplicationCommandOptionChoice) error {
	return c.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
}

// --- Interaction data ---

// CustomID returns the custom id of a component or modal interaction.
func (c *Context) CustomID() string {
	switch c.Event.Type {
	case discordgo.InteractionMessageComponent:
		return c.Event.MessageComponentData().CustomID
	case discordgo.InteractionModalSubmit:
		return c.Event.ModalSubmitData().CustomID
	}
	return ""
}

// Option returns the top-level option called name, or nil.
func (c *Context) Option(name string) *discordgo.ApplicationCommandInteractionDataOption {
	if !c.hasCommandData() {
		return nil
	}
	for _, opt := range c.Event.ApplicationCommandData().Options {
		if opt.Name == name {
			return opt
		}
	}
	return nil
}

// Focused returns the option the user is typing into during autocomplete.
func (c *Context) Focused() *discordgo.ApplicationCommandInteractionDataOption {
	if !c.hasCommandData() {
		return nil
	}
	return focused(c.Event.ApplicationCommandData().Options)
}

func focused(opts []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range opts {
		if opt.Focused {
			return opt
		}
		if f := focused(opt.Options); f != nil {
			return f
		}
	}
	return nil
}

// TextInput returns the submitted value of a modal text input, or "".
func (c *Context) TextInput(customID string) string {
	if c.Event.Type != discordgo.InteractionModalSubmit {
		return ""
	}
	for _, comp := range c.Event.ModalSubmitData().Components {
		row, ok := comp.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if input, ok := inner.(*discordgo.TextInput); ok && input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}

func (c *Context) hasCommandData() bool {
	return c.Event.Type == discordgo.InteractionApplicationCommand ||
		c.Event.Type == discordgo.InteractionApplicationCommandAutocomplete
}
