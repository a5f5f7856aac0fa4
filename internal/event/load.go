package event

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"

	"gopkg.in/yaml.v3"

	"github.com/keshon/discora/pkg/catalog"
	"github.com/keshon/discora/pkg/loader"
)

// DecodeDefinition parses a YAML or JSON event definition.
func DecodeDefinition(path string, data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode %s: empty definition", path)
		}
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &def, nil
}

// Load scans root/folder for event definitions and binds each one. It
// returns the number of bindings made.
func Load(reg *Registry, handlers *catalog.Catalog[Handler], root, folder string, opts loader.Options) int {
	bound := 0
	loader.Load(root, folder, opts, DecodeDefinition, func(m *loader.Module[*Definition]) {
		if err := reg.Register(m.Value, handlers); err != nil {
			log.Printf("[WARN] [loader] Skipping event %s: %v", m.Path, err)
			return
		}
		bound++
	})
	return bound
}
