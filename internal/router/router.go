// Package router dispatches inbound interactions to registered commands.
//
// Application commands and autocomplete requests resolve by the command name
// Discord reports. Components (buttons, select menus) and modal submissions
// resolve by the first segment of their custom id. Every invocation is
// isolated: errors and panics are logged, never returned to the gateway.
package router

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/discora/internal/command"
)

// Outcome reports what Dispatch did with an interaction.
type Outcome int

const (
	Invoked   Outcome = iota // a handler ran and returned nil
	NoCommand                // no command owns the interaction
	NoHandler                // the command has no handler of the needed kind
	Failed                   // the handler returned an error or panicked
	Ignored                  // interaction type the router does not handle
)

func (o Outcome) String() string {
	switch o {
	case Invoked:
		return "invoked"
	case NoCommand:
		return "no-command"
	case NoHandler:
		return "no-handler"
	case Failed:
		return "failed"
	default:
		return "ignored"
	}
}

// Router maps interactions onto a command registry.
type Router struct {
	commands   *command.Registry
	responder  command.Responder
	middleware []command.Middleware
	verbose    bool
}

// Option configures a Router.
type Option func(*Router)

// WithResponder answers interactions through res instead of the session.
func WithResponder(res command.Responder) Option {
	return func(r *Router) { r.responder = res }
}

// WithMiddleware appends middleware run inside the built-in recovery and logging.
func WithMiddleware(mws ...command.Middleware) Option {
	return func(r *Router) { r.middleware = append(r.middleware, mws...) }
}

// WithVerbose logs dispatch misses and successful invocations.
func WithVerbose(v bool) Option {
	return func(r *Router) { r.verbose = v }
}

// New returns a router over commands.
func New(commands *command.Registry, opts ...Option) *Router {
	r := &Router{commands: commands}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dispatch routes one interaction and reports the outcome.
func (r *Router) Dispatch(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) Outcome {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		cmd, ok := r.commands.Resolve(name)
		if !ok {
			// the command may have been removed while a client still shows it
			r.debugf("No command registered for /%s", name)
			return NoCommand
		}
		return r.invoke(ctx, s, i, cmd, cmd.Execute)

	case discordgo.InteractionApplicationCommandAutocomplete:
		name := i.ApplicationCommandData().Name
		return r.dispatchKind(ctx, s, i, name, command.Autocomplete)

	case discordgo.InteractionMessageComponent:
		name, _ := command.ParseCustomID(i.MessageComponentData().CustomID)
		return r.dispatchKind(ctx, s, i, name, command.ButtonClick)

	case discordgo.InteractionModalSubmit:
		name, _ := command.ParseCustomID(i.ModalSubmitData().CustomID)
		return r.dispatchKind(ctx, s, i, name, command.ModalSubmit)

	default:
		r.debugf("Unknown interaction type: %d", i.Type)
		return Ignored
	}
}

func (r *Router) dispatchKind(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, name string, kind command.HandlerKind) Outcome {
	cmd, ok := r.commands.Resolve(name)
	if !ok {
		log.Printf("[WARN] No command found for %s interaction: %s", kind, name)
		return NoCommand
	}
	h, ok := cmd.Handler(kind)
	if !ok {
		log.Printf("[WARN] Command %s has no %s handler", name, kind)
		return NoHandler
	}
	return r.invoke(ctx, s, i, cmd, h)
}

func (r *Router) invoke(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, cmd *command.Command, h command.HandlerFunc) Outcome {
	mws := append([]command.Middleware{command.WithRecover(), command.WithCommandLogger(r.verbose)}, r.middleware...)
	run := command.Apply(h, mws...)

	hctx := command.NewContext(ctx, s, r.responder, i, cmd)
	if err := run(hctx); err != nil {
		return Failed
	}
	return Invoked
}

func (r *Router) debugf(format string, args ...any) {
	if r.verbose {
		log.Printf("[DEBUG] "+format, args...)
	}
}
