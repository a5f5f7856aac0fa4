// Package event binds named gateway events to handler functions. A binding
// either fires on every occurrence (On) or only on the first (Once); several
// bindings on one name fan out in registration order.
package event

import (
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/discora/pkg/catalog"
)

// Handler receives the running session and the event's payload, e.g.
// *discordgo.Ready for READY.
type Handler func(s *discordgo.Session, payload any) error

// Handlers is the catalog event code publishes itself into from init().
var Handlers = catalog.New[Handler]()

type binding struct {
	once    bool
	handler Handler
}

// Registry holds event bindings. It is safe for concurrent use; discordgo
// delivers events on separate goroutines.
type Registry struct {
	mu       sync.Mutex
	bindings map[string][]*binding
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string][]*binding)}
}

// On binds h to every occurrence of the named event.
func (r *Registry) On(name string, h Handler) {
	r.bind(name, h, false)
}

// Once binds h to the first occurrence of the named event only.
func (r *Registry) Once(name string, h Handler) {
	r.bind(name, h, true)
}

func (r *Registry) bind(name string, h Handler, once bool) {
	name = Normalize(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[name] = append(r.bindings[name], &binding{once: once, handler: h})
}

// Emit runs every handler bound to name with payload and returns how many
// ran. Once-bindings are removed before their handler is called, so
// concurrent emits cannot fire them twice. Handler errors and panics are
// logged and do not stop the remaining handlers.
func (r *Registry) Emit(s *discordgo.Session, name string, payload any) int {
	name = Normalize(name)

	r.mu.Lock()
	list := r.bindings[name]
	if len(list) == 0 {
		r.mu.Unlock()
		return 0
	}
	fire := make([]*binding, len(list))
	copy(fire, list)
	kept := list[:0:0]
	for _, b := range list {
		if !b.once {
			kept = append(kept, b)
		}
	}
	if len(kept) == 0 {
		delete(r.bindings, name)
	} else {
		r.bindings[name] = kept
	}
	r.mu.Unlock()

	for _, b := range fire {
		run(s, name, b.handler, payload)
	}
	return len(fire)
}

func run(s *discordgo.Session, name string, h Handler, payload any) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[ERR] Event %s handler panic: %v\n%s", name, rec, debug.Stack())
		}
	}()
	if err := h(s, payload); err != nil {
		log.Printf("[ERR] Event %s handler failed: %v", name, err)
	}
}

// Count returns how many bindings are currently attached to name.
func (r *Registry) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bindings[Normalize(name)])
}

// Names returns the bound event names, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.bindings))
	for n := range r.bindings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Definition is the on-disk form of an event binding.
//
//	name: ready
//	once: true
//	handler: lifecycle.ready
type Definition struct {
	Name    string `yaml:"name"`
	Once    bool   `yaml:"once"`
	Handler string `yaml:"handler"`
}

var (
	ErrMissingName    = errors.New("event name is not set")
	ErrMissingHandler = errors.New("event handler is not provided")
)

// Register binds def using the handler published under def.Handler.
func (r *Registry) Register(def *Definition, handlers *catalog.Catalog[Handler]) error {
	if def.Name == "" {
		return ErrMissingName
	}
	h, ok := handlers.Lookup(def.Handler)
	if !ok {
		return fmt.Errorf("event %q: handler %q: %w", def.Name, def.Handler, ErrMissingHandler)
	}
	if def.Once {
		r.Once(def.Name, h)
	} else {
		r.On(def.Name, h)
	}
	return nil
}

// Ready is the gateway event sent once the session is established.
const Ready = "READY"

var aliases = map[string]string{
	"clientReady": Ready,
}

// Normalize maps camelCase names (ready, interactionCreate) onto
// gateway event types (READY, INTERACTION_CREATE). Gateway names pass through.
func Normalize(name string) string {
	if alias, ok := aliases[name]; ok {
		return alias
	}
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(rune(name[i-1])) && name[i-1] != '_' {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
