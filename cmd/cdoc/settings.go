package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cdoc/internal/driver"
	"cdoc/internal/project"
)

// settings is cdoc.toml merged with the persistent flags.
type settings struct {
	cfg  project.Config
	root string // каталог cdoc.toml или рабочий каталог
	path string // пусто, если cdoc.toml не найден

	maxDiagnostics int
	jobs           int
	quiet          bool
	timings        bool
	noCache        bool
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	s := &settings{}
	if configPath != "" {
		cfg, err := project.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return nil, err
		}
		s.cfg, s.path, s.root = cfg, abs, filepath.Dir(abs)
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		manifest, _, err := project.LoadManifest(wd)
		if err != nil {
			return nil, err
		}
		s.cfg, s.path, s.root = manifest.Config, manifest.Path, manifest.Root
	}

	if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if s.jobs, err = flags.GetInt("jobs"); err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.noCache, err = flags.GetBool("no-cache"); err != nil {
		return nil, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	return s, nil
}

// resolve interprets p relative to the config root.
func (s *settings) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.root, p)
}

// openCache returns nil when caching is disabled.
func (s *settings) openCache() (*driver.DiskCache, error) {
	if s.noCache || !s.cfg.Cache.Enabled {
		return nil, nil
	}
	if s.cfg.Cache.Dir != "" {
		return driver.OpenDiskCacheAt(s.resolve(s.cfg.Cache.Dir))
	}
	return driver.OpenDiskCache("cdoc")
}
