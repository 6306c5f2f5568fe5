package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "consts.env")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestRewriteInPlace(t *testing.T) {
	t.Setenv("LIMIT", "99")

	path := writeManifest(t, "#[from_env]\nconst LIMIT: i32 = 10;\n")

	r := &Rewrite{Source: []string{path}, InPlace: true}
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if want := "const LIMIT: i32 = 99;\n"; string(got) != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestRewriteToOutputFile(t *testing.T) {
	t.Setenv("NAME", "staging")

	path := writeManifest(t, "#[from_env]\nconst NAME: &str = \"default\";\n")
	out := filepath.Join(t.TempDir(), "out.env")

	r := &Rewrite{Source: []string{path}, Output: out}
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	if want := "const NAME: &str = \"staging\";\n"; string(got) != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	original, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if string(original) != "#[from_env]\nconst NAME: &str = \"default\";\n" {
		t.Errorf("source file modified: %q", original)
	}
}

func TestRewriteWithOverridesFile(t *testing.T) {
	path := writeManifest(t, "#[from_env]\nconst PORT: u16 = 8080;\n")
	out := filepath.Join(t.TempDir(), "out.env")

	overrides := filepath.Join(t.TempDir(), "overrides.yaml")
	if err := os.WriteFile(overrides, []byte("PORT: 9090\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := &Rewrite{Source: []string{path}, Overrides: overrides, Output: out}
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	if want := "const PORT: u16 = 9090;\n"; string(got) != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRewriteFailureKeepsOutputFile(t *testing.T) {
	t.Setenv("FLAG", "yes")

	path := writeManifest(t, "#[from_env]\nconst FLAG: bool = true;\n")

	out := filepath.Join(t.TempDir(), "out.env")
	if err := os.WriteFile(out, []byte("previous contents\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := &Rewrite{Source: []string{path}, Output: out}
	if err := r.Run(context.Background()); err == nil {
		t.Fatal("expected error for an unparsable override value")
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	if string(got) != "previous contents\n" {
		t.Errorf("output file = %q, want untouched prior contents", got)
	}
}

func TestCheck(t *testing.T) {
	t.Setenv("FLAG", "false")

	path := writeManifest(t, "#[from_env]\nconst FLAG: bool = true;\n")

	c := &Check{Source: []string{path}}
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckBadOverride(t *testing.T) {
	t.Setenv("FLAG", "yes")

	path := writeManifest(t, "#[from_env]\nconst FLAG: bool = true;\n")

	c := &Check{Source: []string{path}}

	err := c.Run(context.Background())
	if err == nil {
		t.Fatal("expected error for an unparsable override value")
	}
}

func TestCheckBadSyntax(t *testing.T) {
	path := writeManifest(t, "const FLAG bool = true;\n")

	c := &Check{Source: []string{path}}
	if err := c.Run(context.Background()); err == nil {
		t.Fatal("expected error for malformed manifest")
	}
}

func TestProvider(t *testing.T) {
	p, err := provider("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Setenv("CONSTENV_CMD_TEST", "v")

	if val, ok := p.Lookup("CONSTENV_CMD_TEST"); !ok || val != "v" {
		t.Errorf("Lookup = %q, %v, want process environment", val, ok)
	}

	if _, err := provider(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing overrides file")
	}
}

func TestSourcesOrStdin(t *testing.T) {
	if got := sourcesOrStdin(nil); len(got) != 1 || got[0] != stdinSource {
		t.Errorf("sourcesOrStdin(nil) = %v", got)
	}

	if got := sourcesOrStdin([]string{"a", "b"}); len(got) != 2 {
		t.Errorf("sourcesOrStdin = %v", got)
	}
}

func TestKeysRun(t *testing.T) {
	path := writeManifest(t, "#[from_env(\"SERVICE_NAME\")]\nconst NAME: &str = \"x\";\n")

	k := &Keys{Source: []string{path}, Filter: "service"}
	if err := k.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestKeysBadManifest(t *testing.T) {
	path := writeManifest(t, "#[unknown]\nconst NAME: &str = \"x\";\n")

	k := &Keys{Source: []string{path}}
	if err := k.Run(context.Background()); err == nil {
		t.Fatal("expected error for unsupported attribute")
	}
}
