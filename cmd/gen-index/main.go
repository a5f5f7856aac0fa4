// Command gen-index writes a Go file that blank-imports every handler
// package under the given folders, so their init functions publish into the
// handler catalogs.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"log"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/keshon/discora/pkg/loader"
)

var indexTmpl = template.Must(template.New("index").Parse(`// Code generated by gen-index. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	_ "{{.}}"
{{- end}}
)
`))

var (
	root       string
	out        string
	pkgName    string
	modulePath string
)

var rootCmd = &cobra.Command{
	Use:   "gen-index [folders...]",
	Short: "Generate blank imports for handler packages",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, folders []string) error {
		mod := modulePath
		if mod == "" {
			var err error
			if mod, err = readModulePath(filepath.Join(root, "go.mod")); err != nil {
				return err
			}
		}
		src, err := generate(root, mod, pkgName, folders)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, src, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		log.Printf("[DONE] Wrote %s", out)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&root, "root", ".", "module root")
	rootCmd.Flags().StringVar(&out, "out", "zz_handlers.go", "output file")
	rootCmd.Flags().StringVar(&pkgName, "package", "main", "package clause of the output file")
	rootCmd.Flags().StringVar(&modulePath, "module", "", "module path (default: read from go.mod)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// packageClause decodes only the package name of a Go file.
func packageClause(path string, data []byte) (string, error) {
	f, err := parser.ParseFile(token.NewFileSet(), path, data, parser.PackageClauseOnly)
	if err != nil {
		return "", err
	}
	return f.Name.Name, nil
}

// generate returns the formatted index source for the importable packages
// found under folders.
func generate(root, mod, pkg string, folders []string) ([]byte, error) {
	seen := map[string]bool{}
	for _, folder := range folders {
		opts := loader.Options{Mode: loader.Recursive, Patterns: []string{"*.go"}}
		loader.Load(root, folder, opts, packageClause, func(m *loader.Module[string]) {
			if strings.HasSuffix(m.RelPath, "_test.go") || m.Value == "main" || strings.HasSuffix(m.Value, "_test") {
				return
			}
			dir := path.Dir(path.Join(filepath.ToSlash(folder), m.RelPath))
			seen[mod+"/"+dir] = true
		})
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("no handler packages found under %s", strings.Join(folders, ", "))
	}

	imports := make([]string, 0, len(seen))
	for imp := range seen {
		imports = append(imports, imp)
	}
	sort.Strings(imports)

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, map[string]any{"Package": pkg, "Imports": imports}); err != nil {
		return nil, err
	}
	return format.Source(buf.Bytes())
}

func readModulePath(gomod string) (string, error) {
	f, err := os.Open(gomod)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(sc.Text()), "module "); ok {
			return strings.Trim(strings.TrimSpace(rest), `"`), nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("%s has no module directive", gomod)
}
