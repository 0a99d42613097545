package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the project configuration file.
const ManifestName = "vischeck.toml"

// Config mirrors vischeck.toml.
type Config struct {
	Check  CheckConfig  `toml:"check"`
	Output OutputConfig `toml:"output"`
}

type CheckConfig struct {
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Jobs           int    `toml:"jobs"`
	ForeignUnions  string `toml:"foreign_unions"`
}

type OutputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

// Manifest is a loaded vischeck.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Defaults returns the configuration used without a manifest.
func Defaults() Config {
	return Config{
		Check: CheckConfig{
			MaxDiagnostics: 100,
			Jobs:           0,
			ForeignUnions:  "assume-public",
		},
		Output: OutputConfig{
			Format: "pretty",
			Color:  "auto",
		},
	}
}

// FindManifest walks up from startDir to locate vischeck.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and parses the manifest above startDir. Without one it
// returns nil and no error.
func Load(startDir string) (*Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile parses the manifest at path on top of Defaults.
func LoadFile(path string) (*Manifest, error) {
	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

func (c *Config) validate() error {
	if c.Check.MaxDiagnostics < 0 {
		return fmt.Errorf("[check].max_diagnostics must be >= 0, got %d", c.Check.MaxDiagnostics)
	}
	if c.Check.Jobs < 0 {
		return fmt.Errorf("[check].jobs must be >= 0, got %d", c.Check.Jobs)
	}
	switch strings.ToLower(c.Check.ForeignUnions) {
	case "", "assume-public", "assume-private":
	default:
		return fmt.Errorf("[check].foreign_unions: unsupported value %q", c.Check.ForeignUnions)
	}
	switch strings.ToLower(c.Output.Format) {
	case "", "pretty", "json", "short", "sarif":
	default:
		return fmt.Errorf("[output].format: unsupported value %q", c.Output.Format)
	}
	switch strings.ToLower(c.Output.Color) {
	case "", "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color: unsupported value %q", c.Output.Color)
	}
	return nil
}

// ErrManifestExists is returned by WriteDefault when dir already has a manifest.
var ErrManifestExists = errors.New(ManifestName + " already exists")

// WriteDefault writes a manifest with Defaults into dir and returns its path.
func WriteDefault(dir string, force bool) (string, error) {
	path := filepath.Join(dir, ManifestName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, ErrManifestExists
		}
	}
	var buf bytes.Buffer
	buf.WriteString("# vischeck configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(Defaults()); err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
