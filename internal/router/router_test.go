package router

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/discora/internal/command"
	"github.com/keshon/discora/internal/command/commandtest"
)

type counter struct {
	calls int
	last  *discordgo.InteractionCreate
}

func (c *counter) handler(ctx *command.Context) error {
	c.calls++
	c.last = ctx.Event
	return nil
}

func setup(t *testing.T, cmds ...*command.Command) (*Router, *commandtest.Recorder) {
	t.Helper()
	reg := command.NewRegistry()
	for _, c := range cmds {
		if err := reg.Register(c); err != nil {
			t.Fatalf("register %s: %v", c.Name, err)
		}
	}
	rec := &commandtest.Recorder{}
	return New(reg, WithResponder(rec)), rec
}

func TestButtonRoutesByCustomID(t *testing.T) {
	exec, button := &counter{}, &counter{}
	r, _ := setup(t, &command.Command{
		Name:        "ping",
		Description: "test command",
		Execute:     exec.handler,
		Handlers:    map[command.HandlerKind]command.HandlerFunc{command.ButtonClick: button.handler},
	})

	in := commandtest.Button("ping-hello_button")
	if got := r.Dispatch(context.Background(), nil, in); got != Invoked {
		t.Fatalf("expected invoked, got %s", got)
	}
	if button.calls != 1 {
		t.Errorf("expected button handler once, got %d", button.calls)
	}
	if button.last != in {
		t.Error("expected the handler to receive the interaction")
	}
	if exec.calls != 0 {
		t.Error("expected execute not to run for a button")
	}
}

func TestButtonWithUnknownCommand(t *testing.T) {
	button := &counter{}
	r, _ := setup(t, &command.Command{
		Name:        "ping",
		Description: "test command",
		Execute:     button.handler,
		Handlers:    map[command.HandlerKind]command.HandlerFunc{command.ButtonClick: button.handler},
	})

	if got := r.Dispatch(context.Background(), nil, commandtest.Button("missingcmd-x")); got != NoCommand {
		t.Errorf("expected no-command, got %s", got)
	}
	if button.calls != 0 {
		t.Error("expected no invocation")
	}
}

func TestChatInputRoutesByName(t *testing.T) {
	exec := &counter{}
	r, _ := setup(t, &command.Command{Name: "ping", Description: "test command", Execute: exec.handler})

	if got := r.Dispatch(context.Background(), nil, commandtest.SlashCommand("ping")); got != Invoked {
		t.Fatalf("expected invoked, got %s", got)
	}
	if exec.calls != 1 {
		t.Errorf("expected execute once, got %d", exec.calls)
	}
	if got := r.Dispatch(context.Background(), nil, commandtest.SlashCommand("gone")); got != NoCommand {
		t.Errorf("expected no-command for unknown name, got %s", got)
	}
}

func TestAutocompleteRoutesByNameNotCustomID(t *testing.T) {
	auto := &counter{}
	r, _ := setup(t, &command.Command{
		Name:        "test",
		Description: "test autocomplete handler",
		Execute:     func(*command.Context) error { return nil },
		Handlers:    map[command.HandlerKind]command.HandlerFunc{command.Autocomplete: auto.handler},
	})

	if got := r.Dispatch(context.Background(), nil, commandtest.Autocomplete("test", "complete", "sh")); got != Invoked {
		t.Fatalf("expected invoked, got %s", got)
	}
	if auto.calls != 1 {
		t.Errorf("expected autocomplete once, got %d", auto.calls)
	}
}

func TestAutocompleteFailuresAreContained(t *testing.T) {
	r, _ := setup(t,
		&command.Command{
			Name:        "panics",
			Description: "x",
			Execute:     func(*command.Context) error { return nil },
			Handlers: map[command.HandlerKind]command.HandlerFunc{
				command.Autocomplete: func(*command.Context) error { panic("bad suggestions") },
			},
		},
		&command.Command{
			Name:        "errors",
			Description: "x",
			Execute:     func(*command.Context) error { return nil },
			Handlers: map[command.HandlerKind]command.HandlerFunc{
				command.Autocomplete: func(*command.Context) error { return errors.New("lookup failed") },
			},
		},
		&command.Command{Name: "plain", Description: "x", Execute: func(*command.Context) error { return nil }},
	)

	tests := []struct {
		name string
		want Outcome
	}{
		{"panics", Failed},
		{"errors", Failed},
		{"plain", NoHandler},
		{"unknown", NoCommand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Dispatch(context.Background(), nil, commandtest.Autocomplete(tt.name, "q", "a")); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestModalSubmitRoutesByCustomID(t *testing.T) {
	modal := &counter{}
	r, _ := setup(t, &command.Command{
		Name:        "testmodal",
		Description: "Shows a test modal for user input",
		Execute:     func(*command.Context) error { return nil },
		Handlers:    map[command.HandlerKind]command.HandlerFunc{command.ModalSubmit: modal.handler},
	})

	if got := r.Dispatch(context.Background(), nil, commandtest.ModalSubmit("testmodal-testmodal", nil)); got != Invoked {
		t.Fatalf("expected invoked, got %s", got)
	}
	if modal.calls != 1 {
		t.Errorf("expected modal handler once, got %d", modal.calls)
	}

	if got := r.Dispatch(context.Background(), nil, commandtest.Button("testmodal-x")); got != NoHandler {
		t.Errorf("expected no-handler for a button on a modal-only command, got %s", got)
	}
}

func TestHandlerPanicDoesNotEscape(t *testing.T) {
	r, _ := setup(t, &command.Command{
		Name:        "ping",
		Description: "x",
		Execute:     func(*command.Context) error { panic("boom") },
	})
	if got := r.Dispatch(context.Background(), nil, commandtest.SlashCommand("ping")); got != Failed {
		t.Errorf("expected failed, got %s", got)
	}
}

func TestUnknownInteractionTypeIgnored(t *testing.T) {
	r, _ := setup(t)
	in := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{Type: discordgo.InteractionPing}}
	if got := r.Dispatch(context.Background(), nil, in); got != Ignored {
		t.Errorf("expected ignored, got %s", got)
	}
}

func TestResponderReachesHandler(t *testing.T) {
	r, rec := setup(t, &command.Command{
		Name:        "ping",
		Description: "x",
		Execute:     func(ctx *command.Context) error { return ctx.Reply("pong") },
	})
	r.Dispatch(context.Background(), nil, commandtest.SlashCommand("ping"))

	if resp := rec.Last(); resp == nil || resp.Data.Content != "pong" {
		t.Errorf("expected pong reply, got %+v", resp)
	}
}

func TestCustomMiddlewareRuns(t *testing.T) {
	var seen string
	reg := command.NewRegistry()
	_ = reg.Register(&command.Command{Name: "ping", Description: "x", Execute: func(*command.Context) error { return nil }})
	r := New(reg, WithResponder(&commandtest.Recorder{}), WithMiddleware(func(next command.HandlerFunc) command.HandlerFunc {
		return func(ctx *command.Context) error {
			seen = ctx.Command.Name
			return next(ctx)
		}
	}))

	r.Dispatch(context.Background(), nil, commandtest.SlashCommand("ping"))
	if seen != "ping" {
		t.Errorf("expected middleware to see ping, got %q", seen)
	}
}
