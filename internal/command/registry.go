package command

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// Registry holds the commands discovered at startup, keyed by name.
// It is written during the load phase only and read concurrently afterwards.
type Registry struct {
	commands map[string]*Command
	order    []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command)}
}

// Register validates cmd and stores it under its name. Registering a name
// twice replaces the earlier command but keeps its position in the payload.
func (r *Registry) Register(cmd *Command) error {
	if cmd.Type == 0 {
		cmd.Type = discordgo.ChatApplicationCommand
	}
	if err := cmd.Validate(); err != nil {
		return err
	}

	if prev, exists := r.commands[cmd.Name]; exists {
		log.Printf("[WARN] Command %q from %s replaces the one from %s", cmd.Name, sourceName(cmd), sourceName(prev))
	} else {
		r.order = append(r.order, cmd.Name)
	}
	r.commands[cmd.Name] = cmd
	return nil
}

// Resolve returns the command registered under name.
func (r *Registry) Resolve(name string) (*Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// All returns the registered commands in registration order.
func (r *Registry) All() []*Command {
	list := make([]*Command, 0, len(r.order))
	for _, name := range r.order {
		list = append(list, r.commands[name])
	}
	return list
}

// Len returns the number of distinct command names.
func (r *Registry) Len() int {
	return len(r.order)
}

// Payload returns the bulk registration body, one entry per command, in
// registration order.
func (r *Registry) Payload() []*discordgo.ApplicationCommand {
	payload := make([]*discordgo.ApplicationCommand, 0, len(r.order))
	for _, cmd := range r.All() {
		payload = append(payload, cmd.ApplicationCommand())
	}
	return payload
}

func sourceName(cmd *Command) string {
	if cmd.Source == "" {
		return "code"
	}
	return cmd.Source
}
