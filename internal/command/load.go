package command

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/discora/pkg/catalog"
	"github.com/keshon/discora/pkg/loader"
)

// Load scans root/folder for command definitions and registers every one that
// builds and validates. Definitions without an explicit type get defaultType.
// It returns the number of commands registered.
func Load(reg *Registry, handlers *catalog.Catalog[HandlerFunc], root, folder string, opts loader.Options, defaultType discordgo.ApplicationCommandType) int {
	registered := 0
	loader.Load(root, folder, opts, DecodeDefinition, func(m *loader.Module[*Definition]) {
		cmd, err := m.Value.Build(handlers, defaultType)
		if err != nil {
			log.Printf("[WARN] [loader] Skipping %s: %v", m.Path, err)
			return
		}
		cmd.Source = m.Path
		if err := reg.Register(cmd); err != nil {
			log.Printf("[WARN] [loader] Skipping %s: %v", m.Path, err)
			return
		}
		registered++
	})
	return registered
}
