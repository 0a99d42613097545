package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadFindsManifestInParent(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[check]
jobs = 3
foreign_unions = "assume-private"

[output]
format = "json"
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	m, err := Load(nested)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m == nil {
		t.Fatalf("manifest not found")
	}
	if m.Root != root {
		t.Fatalf("root = %q, want %q", m.Root, root)
	}
	cfg := m.Config
	if cfg.Check.Jobs != 3 || cfg.Check.ForeignUnions != "assume-private" || cfg.Output.Format != "json" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	// незаданные ключи берутся из Defaults
	if cfg.Check.MaxDiagnostics != 100 || cfg.Output.Color != "auto" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadWithoutManifest(t *testing.T) {
	m, err := Load(t.TempDir())
	if err != nil || m != nil {
		t.Fatalf("Load = %v, %v; want nil, nil", m, err)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"unknown key":   "[check]\nspeed = 1\n",
		"bad policy":    "[check]\nforeign_unions = \"maybe\"\n",
		"bad format":    "[output]\nformat = \"xml\"\n",
		"negative jobs": "[check]\njobs = -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), body)
			_, err := LoadFile(path)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), path) {
				t.Fatalf("error %q does not name the file", err)
			}
		})
	}
}

func TestDigest(t *testing.T) {
	a := HashBytes([]byte("a"))
	b := HashBytes([]byte("b"))
	if a == b || a.IsZero() {
		t.Fatalf("distinct inputs must hash differently")
	}
	if Combine(a, b) == Combine(b, a) {
		t.Fatalf("Combine must be order-sensitive")
	}
	if len(a.String()) != 64 {
		t.Fatalf("hex digest length = %d", len(a.String()))
	}
}

func TestWriteDefaultRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteDefault(dir, false)
	if err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	m, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if m.Config != Defaults() {
		t.Fatalf("config = %+v, want defaults", m.Config)
	}
	if _, err := WriteDefault(dir, false); !errors.Is(err, ErrManifestExists) {
		t.Fatalf("second write: got %v, want ErrManifestExists", err)
	}
	if _, err := WriteDefault(dir, true); err != nil {
		t.Fatalf("forced write: %v", err)
	}
}
