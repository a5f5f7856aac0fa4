// Package status serves a small read-only HTTP view of the running bot.
package status

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/keshon/discora/internal/command"
	"github.com/keshon/discora/internal/event"
)

type commandView struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Handlers    []string `json:"handlers"`
	Source      string   `json:"source,omitempty"`
}

type eventView struct {
	Name     string `json:"name"`
	Bindings int    `json:"bindings"`
}

var commandTypes = map[uint8]string{1: "chat_input", 2: "user", 3: "message"}

// NewRouter returns the gin engine exposing /healthz, /commands and /events.
func NewRouter(commands *command.Registry, events *event.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/commands", func(c *gin.Context) {
		all := commands.All()
		views := make([]commandView, 0, len(all))
		for _, cmd := range all {
			kinds := cmd.Kinds()
			names := make([]string, len(kinds))
			for i, k := range kinds {
				names[i] = k.String()
			}
			views = append(views, commandView{
				Name:        cmd.Name,
				Type:        commandTypes[uint8(cmd.Type)],
				Description: cmd.Description,
				Handlers:    names,
				Source:      cmd.Source,
			})
		}
		c.JSON(http.StatusOK, gin.H{"commands": views})
	})

	r.GET("/events", func(c *gin.Context) {
		names := events.Names()
		views := make([]eventView, 0, len(names))
		for _, name := range names {
			views = append(views, eventView{Name: name, Bindings: events.Count(name)})
		}
		c.JSON(http.StatusOK, gin.H{"events": views})
	})

	return r
}

// Run serves handler on addr until ctx is cancelled.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		log.Println("[INFO] Shutting down status server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	log.Printf("[INFO] Status server listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
