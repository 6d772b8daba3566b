// Package config loads the shell's optional startup preferences. This is
// ambient configuration, not a scripting feature: it only ever adjusts
// the prompt string and prepends directories to the search path the
// executor already resolves commands against.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the shape of an optional ~/.minishellrc.toml.
type Config struct {
	Prompt     string   `toml:"prompt"`
	PathPrefix []string `toml:"path_prefix"`
}

// DefaultPrompt is used when no rc file sets one (spec.md §6).
const DefaultPrompt = "minishell$ "

// Load reads path, returning a Config with DefaultPrompt filled in if the
// file is absent or doesn't set one. A malformed rc file is reported as
// an error; the caller decides whether to fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Config{Prompt: DefaultPrompt}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{Prompt: DefaultPrompt}, err
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	return cfg, nil
}

// DefaultPath returns the conventional rc file location, $HOME/.minishellrc.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".minishellrc.toml")
}
