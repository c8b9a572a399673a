package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfig names the environment variable holding a config file path. The
// --config flag wins over it.
const EnvConfig = "TRAILGEN_CONFIG"

const fileName = "trailgen.yaml"

// Load builds the configuration from defaults, then the config file, then
// flags. Relative scene paths in the file are resolved against the file's
// directory. The result is not validated; call Validate before building.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path = findConfigFile()
	}

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
		cfg.resolvePaths(filepath.Dir(path))
	}

	applyFlags(cfg)
	return cfg, nil
}

// findConfigFile returns the first existing trailgen.yaml in the working
// directory or ConfigDir.
func findConfigFile() string {
	for _, path := range []string{
		filepath.Join(".", fileName),
		filepath.Join(ConfigDir(), fileName),
	} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "ParticleTrail")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "ParticleTrail")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "particle-trail")
	}
	return filepath.Join(home, ".config", "particle-trail")
}

// loadFromFile merges the YAML file at path into cfg. Unknown keys are
// rejected so misspelled settings do not silently fall back to defaults.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) resolvePaths(base string) {
	for _, p := range []*string{&c.Scene.Path, &c.Scene.Output, &c.Logging.LogFile} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}
