package command

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/go-playground/validator/v10"

	"github.com/keshon/discora/pkg/catalog"
)

// HandlerFunc runs a command or one of its sub-handlers.
type HandlerFunc func(ctx *Context) error

// Handlers is the catalog command code publishes itself into from init().
var Handlers = catalog.New[HandlerFunc]()

// Command is a registered application command. It is not modified once it
// has been handed to a Registry.
type Command struct {
	Name        string                           `validate:"required,commandname"`
	Description string                           `validate:"max=100"`
	Type        discordgo.ApplicationCommandType `validate:"oneof=1 2 3"`
	Options     []*discordgo.ApplicationCommandOption
	Execute     HandlerFunc `validate:"required"`
	Handlers    map[HandlerKind]HandlerFunc
	Source      string // definition file, empty for commands built in code
}

// Handler returns the sub-handler registered for kind.
func (c *Command) Handler(kind HandlerKind) (HandlerFunc, bool) {
	h, ok := c.Handlers[kind]
	if !ok || h == nil {
		return nil, false
	}
	return h, true
}

// Kinds lists the handler kinds this command answers, in allow-list order.
func (c *Command) Kinds() []HandlerKind {
	var kinds []HandlerKind
	for _, k := range HandlerKinds {
		if _, ok := c.Handler(k); ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// ApplicationCommand returns the wire form sent to the bulk registration endpoint.
func (c *Command) ApplicationCommand() *discordgo.ApplicationCommand {
	def := &discordgo.ApplicationCommand{
		Name:    c.Name,
		Type:    c.Type,
		Options: c.Options,
	}
	// context menu commands must not carry a description
	if c.Type == discordgo.ChatApplicationCommand {
		def.Description = c.Description
	}
	return def
}

var (
	ErrMissingExecute     = errors.New("execute is not set")
	ErrMissingDescription = errors.New("chat input commands need a description")
)

// Discord's naming rules minus the custom id separator. Context menu
// commands may use mixed case and spaces.
var (
	commandNamePattern     = regexp.MustCompile(`^[_\p{Ll}\p{Lo}\p{N}]{1,32}$`)
	contextMenuNamePattern = regexp.MustCompile(`^[_'\p{L}\p{N} ]{1,32}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("commandname", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		if strings.Contains(name, CustomIDSeparator) {
			return false
		}
		if cmd, ok := fl.Parent().Interface().(Command); ok && cmd.Type != discordgo.ChatApplicationCommand {
			return contextMenuNamePattern.MatchString(name)
		}
		return commandNamePattern.MatchString(name)
	})
	return v
}

// Validate checks the command can be registered and routed.
func (c *Command) Validate() error {
	if c.Execute == nil {
		return fmt.Errorf("command %q: %w", c.Name, ErrMissingExecute)
	}
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("command %q: invalid %s", c.Name, strings.Join(fields, ", "))
		}
		return fmt.Errorf("command %q: %w", c.Name, err)
	}
	if c.Type == discordgo.ChatApplicationCommand && c.Description == "" {
		return fmt.Errorf("command %q: %w", c.Name, ErrMissingDescription)
	}
	return nil
}
