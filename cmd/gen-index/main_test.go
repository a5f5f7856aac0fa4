package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestGenerate(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/bot\n\ngo 1.24\n")
	writeFile(t, filepath.Join(root, "internal/commands/ping/ping.go"), "package ping\n")
	writeFile(t, filepath.Join(root, "internal/commands/ping/ping_test.go"), "package ping\n")
	writeFile(t, filepath.Join(root, "internal/commands/admin/ban/ban.go"), "package ban\n")
	writeFile(t, filepath.Join(root, "internal/commands/tool/main.go"), "package main\n")
	writeFile(t, filepath.Join(root, "internal/commands/onlytests/x_test.go"), "package onlytests_test\n")
	writeFile(t, filepath.Join(root, "internal/events/lifecycle/ready.go"), "package lifecycle\n")

	mod, err := readModulePath(filepath.Join(root, "go.mod"))
	if err != nil {
		t.Fatal(err)
	}
	if mod != "example.com/bot" {
		t.Fatalf("unexpected module %q", mod)
	}

	src, err := generate(root, mod, "main", []string{"internal/commands", "internal/events"})
	if err != nil {
		t.Fatal(err)
	}
	got := string(src)
	for _, want := range []string{
		`_ "example.com/bot/internal/commands/admin/ban"`,
		`_ "example.com/bot/internal/commands/ping"`,
		`_ "example.com/bot/internal/events/lifecycle"`,
		"// Code generated by gen-index. DO NOT EDIT.",
		"package main",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %s in output:\n%s", want, got)
		}
	}
	for _, unwanted := range []string{"tool", "onlytests"} {
		if strings.Contains(got, unwanted) {
			t.Errorf("did not expect %s in output:\n%s", unwanted, got)
		}
	}
	if strings.Index(got, "admin/ban") > strings.Index(got, "commands/ping") {
		t.Error("expected imports sorted")
	}
}

func TestGenerateNothingFound(t *testing.T) {
	if _, err := generate(t.TempDir(), "example.com/bot", "main", []string{"internal/commands"}); err == nil {
		t.Error("expected an error when no packages are found")
	}
}

func TestPackageClause(t *testing.T) {
	name, err := packageClause("x.go", []byte("// doc\npackage topics\n\nimport \"fmt\"\n"))
	if err != nil || name != "topics" {
		t.Errorf("expected topics, got %q (%v)", name, err)
	}
	if _, err := packageClause("x.go", []byte("not go")); err == nil {
		t.Error("expected parse error")
	}
}
