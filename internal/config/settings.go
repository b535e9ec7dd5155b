package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Colour modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultListen is the address the RPC service binds when none is configured.
const DefaultListen = "127.0.0.1:7474"

// settingsFileNames are searched in order in every directory.
var settingsFileNames = []string{"bantam.yaml", "bantam.yml", "bantam.toml"}

// Settings is the top-level bantam.yaml / bantam.toml configuration.
type Settings struct {
	Analysis AnalysisSettings `yaml:"analysis" toml:"analysis"`
	Output   OutputSettings   `yaml:"output" toml:"output"`
	Archive  ArchiveSettings  `yaml:"archive" toml:"archive"`
	Server   ServerSettings   `yaml:"server" toml:"server"`
	Log      LogSettings      `yaml:"log" toml:"log"`

	// Path is the file the settings were read from (empty for defaults).
	Path string `yaml:"-" toml:"-"`
}

// AnalysisSettings tunes the semantic analyzer.
type AnalysisSettings struct {
	// StrictAssignment reports assignments to names that were never declared
	// instead of binding them in the current scope.
	StrictAssignment bool `yaml:"strict_assignment" toml:"strict_assignment"`
}

// OutputSettings controls how reports are rendered.
type OutputSettings struct {
	Format string `yaml:"format" toml:"format"`
	Color  string `yaml:"color" toml:"color"`
	// Tree prints the class hierarchy after a successful check.
	Tree bool `yaml:"tree" toml:"tree"`
}

// ArchiveSettings points at the SQLite run archive. An empty path disables it.
type ArchiveSettings struct {
	Path string `yaml:"path" toml:"path"`
}

// ServerSettings configures the RPC service.
type ServerSettings struct {
	Listen string `yaml:"listen" toml:"listen"`
}

// LogSettings configures commonlog.
type LogSettings struct {
	Verbosity int    `yaml:"verbosity" toml:"verbosity"`
	File      string `yaml:"file" toml:"file"`
}

// DefaultSettings returns settings with every default applied.
func DefaultSettings() *Settings {
	s := &Settings{}
	s.setDefaults()
	return s
}

// LoadSettings reads and parses a settings file. The decoder is chosen by
// extension: .toml uses TOML, anything else YAML.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}
	return ParseSettings(data, path)
}

// ParseSettings parses settings content from bytes.
// The path argument selects the format and is used in error messages.
func ParseSettings(data []byte, path string) (*Settings, error) {
	var s Settings
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &s); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	s.setDefaults()
	if err := s.validate(path); err != nil {
		return nil, err
	}
	s.Path = path
	return &s, nil
}

// FindSettings searches for a settings file starting from dir and walking up
// to parent directories. Returns "" and a nil error when nothing is found.
func FindSettings(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range settingsFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (s *Settings) setDefaults() {
	if s.Output.Format == "" {
		s.Output.Format = FormatText
	}
	if s.Output.Color == "" {
		s.Output.Color = ColorAuto
	}
	if s.Server.Listen == "" {
		s.Server.Listen = DefaultListen
	}
}

func (s *Settings) validate(path string) error {
	switch s.Output.Format {
	case FormatText, FormatYAML, FormatJSON:
	default:
		return fmt.Errorf("%s: output.format: unknown format %q (want text, yaml or json)", path, s.Output.Format)
	}
	switch s.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: output.color: unknown mode %q (want auto, always or never)", path, s.Output.Color)
	}
	if s.Log.Verbosity < 0 {
		return fmt.Errorf("%s: log.verbosity must not be negative", path)
	}
	return nil
}
