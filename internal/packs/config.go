// SPDX-License-Identifier: MPL-2.0

package packs

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"packmill/pkg/version"
)

// ConfigFileNames lists the sidecar file names probed for each pack, in order
// of preference.
var ConfigFileNames = []string{"config.yaml", "config.toml"}

// ErrInvalidConfig is the sentinel error wrapped by config errors.
var ErrInvalidConfig = errors.New("invalid pack config")

type (
	// Config is a pack's parsed sidecar configuration.
	Config struct {
		// Title is the pack's display name.
		Title string
		// Version is the pack's own version (not the game version).
		Version *version.Version
		// Raw holds the full decoded mapping, including Title and Version as
		// written. It is passed through to the pipeline untouched so packs can
		// carry keys this tool does not know about.
		Raw map[string]any
	}

	// ConfigParseError is returned when a sidecar file cannot be decoded.
	ConfigParseError struct {
		Path  string
		Cause error
	}

	// ConfigFieldError is returned when a decoded sidecar is missing a
	// required field or a field has an unusable value.
	ConfigFieldError struct {
		Path  string
		Field string
		Cause error
	}
)

// Error implements the error interface.
func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("cannot parse pack config %s: %v", e.Path, e.Cause)
}

// Unwrap returns the decode error. errors.Is(err, ErrInvalidConfig) also holds.
func (e *ConfigParseError) Unwrap() []error { return []error{ErrInvalidConfig, e.Cause} }

// Error implements the error interface.
func (e *ConfigFieldError) Error() string {
	msg := fmt.Sprintf("pack config %s: bad field %q", e.Path, e.Field)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns ErrInvalidConfig (and the field's cause, if any) for
// errors.Is() compatibility.
func (e *ConfigFieldError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidConfig}
	}
	return []error{ErrInvalidConfig, e.Cause}
}

// ParseConfig decodes a sidecar config file. The decoder is chosen by the
// file extension: ".toml" uses TOML, everything else YAML. The raw mapping is
// retained on the returned Config; title and version are extracted and
// validated.
func ParseConfig(data []byte, path string) (*Config, error) {
	raw := map[string]any{}

	if filepath.Ext(path) == ".toml" {
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, &ConfigParseError{Path: path, Cause: err}
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &ConfigParseError{Path: path, Cause: err}
		}
	}

	cfg := &Config{Raw: raw}

	title, ok := raw["title"].(string)
	if !ok || strings.TrimSpace(title) == "" {
		return nil, &ConfigFieldError{Path: path, Field: "title"}
	}
	cfg.Title = title

	// YAML decodes unquoted versions like `1.2` as numbers; accept both.
	versionStr, ok := stringify(raw["version"])
	if !ok {
		return nil, &ConfigFieldError{Path: path, Field: "version"}
	}
	v, err := version.Parse(versionStr)
	if err != nil {
		return nil, &ConfigFieldError{Path: path, Field: "version", Cause: err}
	}
	cfg.Version = v

	return cfg, nil
}

// stringify renders scalar YAML/TOML values as strings.
func stringify(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, v != ""
	case int:
		return fmt.Sprintf("%d", v), true
	case int64:
		return fmt.Sprintf("%d", v), true
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", v), "0"), "."), true
	default:
		return "", false
	}
}
