// SPDX-License-Identifier: MPL-2.0

// Package config loads the tool-level packmill configuration. Pack sidecar
// configs are a separate concern (see internal/packs).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"packmill/internal/issue"
)

const (
	// AppName is the application name.
	AppName = "packmill"
	// LocalConfigFileName is the per-project config file looked up in the
	// working directory. It is deliberately not named "config.yaml" so it can
	// never be mistaken for a pack sidecar.
	LocalConfigFileName = "packmill.yaml"
)

// Config holds the tool-level configuration.
type Config struct {
	// PackPattern is the glob used to find pack directories.
	PackPattern string `mapstructure:"pack_pattern"`
	// OutputDir is where built packs land, relative to the project root.
	OutputDir string `mapstructure:"output_dir"`
	// BuildDir is where subproject specs are written for the pipeline.
	BuildDir string `mapstructure:"build_dir"`
	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		PackPattern: "datapacks/*/*",
		OutputDir:   "dist",
		BuildDir:    "build",
	}
}

// ConfigDir returns the packmill configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads the configuration. When configFilePath is non-empty it is used
// exclusively; otherwise the platform config dir and then the working
// directory are probed, and missing files fall back to defaults. The second
// return value is the path of the file actually loaded, or "" for defaults.
func Load(configFilePath string) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("pack_pattern", defaults.PackPattern)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("build_dir", defaults.BuildDir)
	v.SetDefault("verbose", defaults.Verbose)

	resolvedPath := ""

	if configFilePath != "" {
		if !fileExists(configFilePath) {
			return nil, "", issue.NewContext().
				Operation("load configuration").
				Resource(configFilePath).
				Suggest("Verify the file path is correct").
				Suggest("Run 'packmill config show' to see the effective configuration").
				Wrap(fmt.Errorf("config file not found: %s", configFilePath))
		}
		resolvedPath = configFilePath
	} else {
		cfgDir, err := ConfigDir()
		if err != nil {
			return nil, "", err
		}
		if userPath := filepath.Join(cfgDir, LocalConfigFileName); fileExists(userPath) {
			resolvedPath = userPath
		} else if fileExists(LocalConfigFileName) {
			resolvedPath = LocalConfigFileName
		}
	}

	if resolvedPath != "" {
		v.SetConfigFile(resolvedPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", issue.NewContext().
				Operation("load configuration").
				Resource(resolvedPath).
				Suggest("Check that the file contains valid YAML").
				Suggest("See 'packmill config --help' for configuration options").
				Wrap(err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, resolvedPath, nil
}

// fileExists reports whether path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
