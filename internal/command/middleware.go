package command

import (
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Middleware wraps a handler (logging, recovery, access checks).
type Middleware func(HandlerFunc) HandlerFunc

// Apply applies middlewares in order; the first in the list is the outermost.
func Apply(h HandlerFunc, mws ...Middleware) HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// WithRecover turns a handler panic into an error.
func WithRecover() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx *Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[ERR] Handler panic: %v\n%s", r, debug.Stack())
					err = fmt.Errorf("handler panic: %v", r)
				}
			}()
			return next(ctx)
		}
	}
}

// WithCommandLogger logs failed invocations, and successful ones too when
// verbose is set.
func WithCommandLogger(verbose bool) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx *Context) error {
			start := time.Now()
			err := next(ctx)
			if err == nil && !verbose {
				return nil
			}

			name := ""
			if ctx.Command != nil {
				name = ctx.Command.Name
			}
			kind := "command"
			user := "unknown"
			if ctx.Event != nil {
				kind = interactionLabel(ctx.Event.Type)
				if ctx.Event.Member != nil && ctx.Event.Member.User != nil {
					user = ctx.Event.Member.User.Username
				} else if ctx.Event.User != nil {
					user = ctx.Event.User.Username
				}
			}

			if err != nil {
				log.Printf("[ERR] /%s %s by %s failed after %v: %v", name, kind, user, time.Since(start), err)
			} else {
				log.Printf("[DEBUG] /%s %s by %s done in %v", name, kind, user, time.Since(start))
			}
			return err
		}
	}
}

func interactionLabel(t discordgo.InteractionType) string {
	switch t {
	case discordgo.InteractionMessageComponent:
		return "component"
	case discordgo.InteractionApplicationCommandAutocomplete:
		return "autocomplete"
	case discordgo.InteractionModalSubmit:
		return "modal"
	default:
		return "command"
	}
}
