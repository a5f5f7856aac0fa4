package command

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"

	"github.com/bwmarrin/discordgo"
	"gopkg.in/yaml.v3"

	"github.com/keshon/discora/pkg/catalog"
)

// Definition is the on-disk form of a command. JSON files decode the same way.
//
//	name: ping
//	description: test command
//	execute: ping.execute
//	handlers:
//	  button-click: ping.buttons
type Definition struct {
	Name        string             `yaml:"name" validate:"required"`
	Description string             `yaml:"description"`
	Type        string             `yaml:"type" validate:"omitempty,oneof=chat chat_input slash message user"`
	Options     []OptionDefinition `yaml:"options" validate:"dive"`
	Execute     string             `yaml:"execute" validate:"required"`
	Handlers    map[string]string  `yaml:"handlers"`
}

// OptionDefinition describes one slash command option.
type OptionDefinition struct {
	Name         string             `yaml:"name" validate:"required"`
	Description  string             `yaml:"description" validate:"required"`
	Type         string             `yaml:"type" validate:"required"`
	Required     bool               `yaml:"required"`
	Autocomplete bool               `yaml:"autocomplete"`
	Choices      []ChoiceDefinition `yaml:"choices" validate:"dive"`
	Options      []OptionDefinition `yaml:"options" validate:"dive"`
}

// ChoiceDefinition is a fixed option choice.
type ChoiceDefinition struct {
	Name  string `yaml:"name" validate:"required"`
	Value any    `yaml:"value"`
}

var ErrEmptyDefinition = errors.New("empty definition")

// DecodeDefinition parses a YAML or JSON command definition. It matches
// loader.Decoder so it can be handed to loader.Load directly.
func DecodeDefinition(path string, data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDefinition
		}
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &def, nil
}

var optionTypes = map[string]discordgo.ApplicationCommandOptionType{
	"subcommand":       discordgo.ApplicationCommandOptionSubCommand,
	"subcommand_group": discordgo.ApplicationCommandOptionSubCommandGroup,
	"string":           discordgo.ApplicationCommandOptionString,
	"integer":          discordgo.ApplicationCommandOptionInteger,
	"boolean":          discordgo.ApplicationCommandOptionBoolean,
	"user":             discordgo.ApplicationCommandOptionUser,
	"channel":          discordgo.ApplicationCommandOptionChannel,
	"role":             discordgo.ApplicationCommandOptionRole,
	"mentionable":      discordgo.ApplicationCommandOptionMentionable,
	"number":           discordgo.ApplicationCommandOptionNumber,
	"attachment":       discordgo.ApplicationCommandOptionAttachment,
}

var commandTypes = map[string]discordgo.ApplicationCommandType{
	"chat":       discordgo.ChatApplicationCommand,
	"chat_input": discordgo.ChatApplicationCommand,
	"slash":      discordgo.ChatApplicationCommand,
	"message":    discordgo.MessageApplicationCommand,
	"user":       discordgo.UserApplicationCommand,
}

// Build resolves the definition's catalog ids into a Command. A missing
// execute handler is an error; handler entries with an unknown kind or id
// are logged and ignored.
func (d *Definition) Build(handlers *catalog.Catalog[HandlerFunc], defaultType discordgo.ApplicationCommandType) (*Command, error) {
	if err := validate.Struct(d); err != nil {
		return nil, fmt.Errorf("definition %q: %w", d.Name, err)
	}

	execute, ok := handlers.Lookup(d.Execute)
	if !ok {
		return nil, fmt.Errorf("definition %q: execute %q: %w", d.Name, d.Execute, ErrMissingExecute)
	}

	options, err := buildOptions(d.Options)
	if err != nil {
		return nil, fmt.Errorf("definition %q: %w", d.Name, err)
	}

	cmd := &Command{
		Name:        d.Name,
		Description: d.Description,
		Type:        defaultType,
		Options:     options,
		Execute:     execute,
		Handlers:    make(map[HandlerKind]HandlerFunc),
	}
	if d.Type != "" {
		cmd.Type = commandTypes[d.Type]
	}

	// sorted so the log output is stable
	keys := make([]string, 0, len(d.Handlers))
	for k := range d.Handlers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		kind, ok := ParseHandlerKind(key)
		if !ok {
			log.Printf("[WARN] Command %q: ignoring unknown handler kind %q", d.Name, key)
			continue
		}
		id := d.Handlers[key]
		h, ok := handlers.Lookup(id)
		if !ok {
			log.Printf("[WARN] Command %q: %s handler %q is not provided", d.Name, kind, id)
			continue
		}
		cmd.Handlers[kind] = h
	}
	return cmd, nil
}

func buildOptions(defs []OptionDefinition) ([]*discordgo.ApplicationCommandOption, error) {
	if len(defs) == 0 {
		return nil, nil
	}
	opts := make([]*discordgo.ApplicationCommandOption, 0, len(defs))
	for _, od := range defs {
		typ, ok := optionTypes[od.Type]
		if !ok {
			return nil, fmt.Errorf("option %q: unknown type %q", od.Name, od.Type)
		}
		nested, err := buildOptions(od.Options)
		if err != nil {
			return nil, err
		}
		opt := &discordgo.ApplicationCommandOption{
			Type:         typ,
			Name:         od.Name,
			Description:  od.Description,
			Required:     od.Required,
			Autocomplete: od.Autocomplete,
			Options:      nested,
		}
		for _, ch := range od.Choices {
			opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{Name: ch.Name, Value: ch.Value})
		}
		opts = append(opts, opt)
	}
	return opts, nil
}
