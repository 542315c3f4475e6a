package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/fbkclanna/wg/internal/cargo"
)

const (
	// AppName names the config directory and the env prefix.
	AppName = "wg"
	// FileName is the config file name inside the config directory.
	FileName = "config.toml"
)

// Config holds user defaults. Command-line flags take precedence.
type Config struct {
	Cargo     string `mapstructure:"cargo"`
	Edition   string `mapstructure:"edition"`
	Toolchain string `mapstructure:"toolchain"`
	InitGit   bool   `mapstructure:"init_git"`
}

// DefaultPath returns $XDG_CONFIG_HOME/wg/config.toml or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, AppName, FileName), nil
}

// Load reads configuration from path, or from DefaultPath when path is
// empty, and applies WG_* environment overrides. A missing default file is
// not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("cargo", "cargo")
	v.SetDefault("edition", cargo.DefaultEdition)
	v.SetDefault("toolchain", "")
	v.SetDefault("init_git", false)
	v.SetEnvPrefix(AppName)
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil || explicit {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found", path)
			}
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}
