// Package loader discovers module files under a folder and hands each decoded
// module to a callback. Two scan modes exist: flat (top-level files only) and
// recursive (the whole subtree, following symlinked directories once).
//
// Failures never abort a scan: an unreadable folder yields zero modules, an
// unreadable or undecodable file is logged and skipped.
package loader

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Mode selects how deep a folder is scanned.
type Mode string

const (
	Flat      Mode = "flat"
	Recursive Mode = "recursive"
)

// DefaultPatterns match the definition formats the framework understands.
var DefaultPatterns = []string{"*.yaml", "*.yml", "*.json"}

// ParseMode converts a config string into a Mode. Empty means Flat.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Flat:
		return Flat, nil
	case Recursive:
		return Recursive, nil
	default:
		return "", fmt.Errorf("unknown loader mode %q (want %q or %q)", s, Flat, Recursive)
	}
}

// Options controls a single Load call.
type Options struct {
	Mode     Mode
	Patterns []string // glob patterns, doublestar syntax; empty = DefaultPatterns
	Verbose  bool     // log every directory entered and module loaded
}

// Module is one loaded file.
type Module[T any] struct {
	Path    string // absolute or root-joined path on disk
	RelPath string // slash-separated path relative to the scanned folder
	Value   T
}

// Decoder turns raw file content into a module value.
type Decoder[T any] func(path string, data []byte) (T, error)

// Load scans root/folder and calls onModule once per file that matches the
// patterns and decodes cleanly. Files are visited in lexical order; in
// recursive mode a directory's subtree is visited at its position among its
// siblings. It returns the number of modules delivered.
func Load[T any](root, folder string, opts Options, decode Decoder[T], onModule func(*Module[T])) int {
	dir := filepath.Join(root, folder)
	w := &walker[T]{
		base:     dir,
		mode:     opts.Mode,
		patterns: opts.Patterns,
		decode:   decode,
		emit:     onModule,
		visited:  make(map[string]bool),
		verbose:  opts.Verbose,
	}
	if w.mode == "" {
		w.mode = Flat
	}
	if len(w.patterns) == 0 {
		w.patterns = DefaultPatterns
	}
	w.walk(dir)
	return w.count
}

type walker[T any] struct {
	base     string
	mode     Mode
	patterns []string
	decode   Decoder[T]
	emit     func(*Module[T])
	visited  map[string]bool
	verbose  bool
	count    int
}

func (w *walker[T]) walk(dir string) {
	if real, err := filepath.EvalSymlinks(dir); err == nil {
		if w.visited[real] {
			log.Printf("[WARN] [loader] Skipping already visited directory: %s", dir)
			return
		}
		w.visited[real] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("[ERR] [loader] Error loading modules from %s: %v", dir, err)
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				log.Printf("[WARN] [loader] Skipping unreadable link %s: %v", path, err)
				continue
			}
			isDir = info.IsDir()
		}

		if isDir {
			if w.mode == Recursive {
				w.debugf("Entering directory: %s", path)
				w.walk(path)
			}
			continue
		}

		rel, err := filepath.Rel(w.base, path)
		if err != nil {
			rel = entry.Name()
		}
		rel = filepath.ToSlash(rel)
		if !w.matches(rel) {
			continue
		}

		w.load(path, rel)
	}
}

func (w *walker[T]) load(path, rel string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[WARN] [loader] Skipping unreadable module %s: %v", path, err)
		return
	}

	value, err := w.decode(path, data)
	if err != nil {
		log.Printf("[WARN] [loader] Skipping module %s: %v", path, err)
		return
	}

	w.debugf("Loaded module from: %s", path)
	w.count++
	w.emit(&Module[T]{Path: path, RelPath: rel, Value: value})
}

func (w *walker[T]) debugf(format string, args ...any) {
	if w.verbose {
		log.Printf("[DEBUG] [loader] "+format, args...)
	}
}

// matches checks rel (and its base name) against the configured patterns.
func (w *walker[T]) matches(rel string) bool {
	base := filepath.Base(rel)
	for _, pattern := range w.patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
		if w.mode == Recursive {
			if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
				return true
			}
		}
	}
	return false
}
