package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config mirrors cdoc.toml.
type Config struct {
	Input  InputConfig  `toml:"input"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Trace  TraceConfig  `toml:"trace"`
}

// InputConfig selects the comment files picked up from directories.
type InputConfig struct {
	Extensions []string `toml:"extensions"`
}

// RenderConfig controls where rendered documentation goes.
type RenderConfig struct {
	OutDir string `toml:"out_dir"`
	Suffix string `toml:"suffix"`
}

// CacheConfig toggles the on-disk render cache.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir,omitempty"`
}

// TraceConfig holds tracing defaults; CLI flags override them.
type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output,omitempty"`
}

// Manifest is a loaded cdoc.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// DefaultConfig returns the configuration used when no cdoc.toml exists.
func DefaultConfig() Config {
	return Config{
		Input:  InputConfig{Extensions: []string{".txt", ".cdoc"}},
		Render: RenderConfig{OutDir: "doc", Suffix: ".md"},
		Cache:  CacheConfig{Enabled: true},
		Trace:  TraceConfig{Level: "off"},
	}
}

// LoadManifest finds cdoc.toml above startDir and loads it. ok is false when
// no file exists; the returned manifest then carries DefaultConfig.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	configPath, ok, err := FindConfig(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		root, absErr := filepath.Abs(startDir)
		if absErr != nil {
			return nil, false, fmt.Errorf("failed to resolve start directory: %w", absErr)
		}
		return &Manifest{Root: root, Config: DefaultConfig()}, false, nil
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: configPath, Root: filepath.Dir(configPath), Config: cfg}, true, nil
}

// LoadConfig decodes path over DefaultConfig: keys absent from the file keep
// their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("input", "extensions") && len(cfg.Input.Extensions) == 0 {
		return Config{}, fmt.Errorf("%s: [input].extensions must not be empty", path)
	}
	for i, ext := range cfg.Input.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return Config{}, fmt.Errorf("%s: [input].extensions contains an empty entry", path)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.Input.Extensions[i] = ext
	}
	if meta.IsDefined("render", "suffix") && strings.TrimSpace(cfg.Render.Suffix) == "" {
		return Config{}, fmt.Errorf("%s: [render].suffix must not be empty", path)
	}
	return cfg, nil
}

// Encode renders cfg as TOML.
func (cfg Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# cdoc configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ErrConfigExists is returned by WriteDefault when cdoc.toml is already present.
var ErrConfigExists = errors.New("cdoc.toml already exists")

// WriteDefault creates dir/cdoc.toml with DefaultConfig.
func WriteDefault(dir string, force bool) (string, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil && !force {
		return path, ErrConfigExists
	}
	data, err := DefaultConfig().Encode()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // конфиг проекта читаем всем
		return "", err
	}
	return path, nil
}
