// Package discord connects the command and event registries to a live
// gateway session: it loads definitions, registers the command payload over
// REST and feeds gateway traffic into the router and event registry.
package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/discora/internal/command"
	"github.com/keshon/discora/internal/config"
	"github.com/keshon/discora/internal/event"
	"github.com/keshon/discora/internal/router"
	"github.com/keshon/discora/pkg/retrylimit"
)

// Intents requested on identify. Interactions arrive regardless of intents.
const Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers | discordgo.IntentsMessageContent

// Bot owns the registries and the gateway session.
type Bot struct {
	cfg      *config.Config
	commands *command.Registry
	events   *event.Registry
	router   *router.Router
	limiter  *retrylimit.AdaptiveLimiter
	dg       *discordgo.Session
}

// NewBot returns a bot with empty registries. Call Load before Run.
func NewBot(cfg *config.Config) *Bot {
	commands := command.NewRegistry()
	return &Bot{
		cfg:      cfg,
		commands: commands,
		events:   event.NewRegistry(),
		router:   router.New(commands, router.WithVerbose(cfg.IsDevelopment())),
		limiter:  retrylimit.NewAdaptiveLimiter(2, 1, 5, 1, 0.5),
	}
}

func (b *Bot) Commands() *command.Registry { return b.commands }
func (b *Bot) Events() *event.Registry     { return b.events }
func (b *Bot) Router() *router.Router      { return b.router }

// Load reads the slash folder, the optional message folder and the events
// folder, in that order, and reports how many commands and event bindings
// were registered.
func (b *Bot) Load() (commands, events int) {
	c := b.cfg
	commands = command.Load(b.commands, command.Handlers, c.Root, c.SlashFolder, c.LoaderOptions("slash"), discordgo.ChatApplicationCommand)
	if c.MessageFolder != "" {
		commands += command.Load(b.commands, command.Handlers, c.Root, c.MessageFolder, c.LoaderOptions("message"), discordgo.MessageApplicationCommand)
	}
	events = event.Load(b.events, event.Handlers, c.Root, c.EventsFolder, c.LoaderOptions("events"))

	log.Printf("[INFO] Loaded %d command(s) and %d event binding(s)", commands, events)
	if b.events.Count(event.Ready) == 0 {
		b.events.Once(event.Ready, logReady)
	}
	return commands, events
}

// Register publishes the command payload to the target configured for the
// current environment.
func (b *Bot) Register(ctx context.Context, api CommandAPI) error {
	appID, guildID, err := b.cfg.RegistrationTarget()
	if err != nil {
		return err
	}
	_, err = RegisterCommands(ctx, api, b.limiter, appID, guildID, b.commands.Payload())
	return err
}

// Run registers commands (when enabled), opens the gateway and blocks until
// ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.cfg.RequireToken(); err != nil {
		return err
	}

	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg
	dg.Identify.Intents = Intents

	if b.cfg.RegisterCommands {
		if err := b.Register(ctx, dg); err != nil {
			return fmt.Errorf("failed to register commands: %w", err)
		}
	} else {
		log.Println("[INFO] Registering slash commands skipped")
	}

	dg.AddHandler(b.onEvent)
	dg.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		b.router.Dispatch(ctx, s, i)
	})

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Println("[INFO] Shutdown signal received. Cleaning up...")
	return nil
}

// onEvent receives every gateway dispatch and fans it out by event type.
func (b *Bot) onEvent(s *discordgo.Session, e *discordgo.Event) {
	if e.Type == "" {
		return
	}
	b.events.Emit(s, e.Type, e.Struct)
}

func logReady(s *discordgo.Session, payload any) error {
	r, ok := payload.(*discordgo.Ready)
	if !ok || r.User == nil {
		return nil
	}
	log.Printf("[INFO] Ready! Logged in as %s", r.User.Username)
	return nil
}
