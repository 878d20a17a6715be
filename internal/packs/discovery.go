// SPDX-License-Identifier: MPL-2.0

package packs

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"packmill/pkg/resource"
)

// validPackPath is the required shape of a pack directory relative to the
// project root: directly inside `datapacks/<game version>/` or
// `resourcepacks/<game version>/`.
var validPackPath = regexp.MustCompile(`^(?:data|resource)packs/\d+\.\d+/[^/]+$`)

// ErrInvalidPackPath is the sentinel error wrapped by InvalidPackPathError.
var ErrInvalidPackPath = errors.New("invalid pack path")

// ErrConfigNotFound is the sentinel error wrapped by ConfigNotFoundError.
var ErrConfigNotFound = errors.New("pack config not found")

type (
	// Kind says which half of the content pipeline a pack belongs to.
	Kind int

	// Pack is a fully loaded pack directory.
	Pack struct {
		// Path is the pack directory relative to the project root, in slash
		// form (e.g. "datapacks/1.21/afk_display").
		Path string
		// Kind is derived from the first path segment.
		Kind Kind
		// GameVersion is the middle path segment (e.g. "1.21").
		GameVersion string
		// Name is the pack's directory name.
		Name string
		// Location is the pack's root resource location: its namespace is the
		// directory name, with the sidecar title and version attached.
		Location resource.Location
		// Config is the parsed sidecar configuration.
		Config *Config
	}

	// Discovered pairs a matched pack path with either the loaded pack or the
	// error that stopped it from loading. One bad pack never hides the rest.
	Discovered struct {
		// Path is the matched directory relative to the project root.
		Path string
		// Pack is nil when Err is set.
		Pack *Pack
		// Err is the failure for this pack alone.
		Err error
	}

	// InvalidPackPathError is returned when a matched directory is not
	// directly inside `datapacks/<game version>/` or
	// `resourcepacks/<game version>/`.
	InvalidPackPathError struct {
		Path string
	}

	// ConfigNotFoundError is returned when a pack directory has no sidecar
	// config file.
	ConfigNotFoundError struct {
		Path string
	}

	// Discovery finds packs under a root directory using a glob pattern.
	Discovery struct {
		root    string
		pattern string
	}
)

const (
	// KindData is a datapack.
	KindData Kind = iota
	// KindResource is a resource pack.
	KindResource
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindData:
		return "datapack"
	case KindResource:
		return "resource pack"
	default:
		return "unknown"
	}
}

// Error implements the error interface.
func (e *InvalidPackPathError) Error() string {
	return fmt.Sprintf(
		"the following path is not directly in `datapacks/<game version>/` or "+
			"`resourcepacks/<game version>/`: %s", e.Path)
}

// Unwrap returns ErrInvalidPackPath for errors.Is() compatibility.
func (e *InvalidPackPathError) Unwrap() error { return ErrInvalidPackPath }

// Error implements the error interface.
func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("the following path does not contain a %s: %s",
		strings.Join(ConfigFileNames, " or "), e.Path)
}

// Unwrap returns ErrConfigNotFound for errors.Is() compatibility.
func (e *ConfigNotFoundError) Unwrap() error { return ErrConfigNotFound }

// New creates a Discovery rooted at root that matches pack directories with
// the given doublestar glob pattern (e.g. "datapacks/*/*").
func New(root, pattern string) *Discovery {
	return &Discovery{root: root, pattern: pattern}
}

// Discover globs for pack directories and loads each one. It returns one
// Discovered entry per matched directory, sorted by path. Per-pack failures
// are recorded on the entry; the returned error is only non-nil when the glob
// itself cannot run (e.g. a malformed pattern).
func (d *Discovery) Discover() ([]*Discovered, error) {
	matches, err := doublestar.Glob(os.DirFS(d.root), d.pattern)
	if err != nil {
		return nil, fmt.Errorf("glob pack pattern %q: %w", d.pattern, err)
	}
	sort.Strings(matches)

	var results []*Discovered
	for _, match := range matches {
		info, err := os.Stat(filepath.Join(d.root, filepath.FromSlash(match)))
		if err != nil || !info.IsDir() {
			continue
		}

		pack, err := d.load(match)
		if err != nil {
			results = append(results, &Discovered{Path: match, Err: err})
			continue
		}
		results = append(results, &Discovered{Path: match, Pack: pack})
	}

	return results, nil
}

// load validates a matched directory's shape and reads its sidecar config.
func (d *Discovery) load(packPath string) (*Pack, error) {
	if !validPackPath.MatchString(packPath) {
		return nil, &InvalidPackPathError{Path: packPath}
	}

	parts := strings.Split(packPath, "/")
	kind := KindData
	if parts[0] == "resourcepacks" {
		kind = KindResource
	}

	cfg, err := d.readConfig(packPath)
	if err != nil {
		return nil, err
	}

	name := parts[2]
	loc, err := resource.New(name,
		resource.WithTitle(cfg.Title),
		resource.WithVersion(cfg.Version))
	if err != nil {
		return nil, fmt.Errorf("pack directory name %q: %w", name, err)
	}

	return &Pack{
		Path:        packPath,
		Kind:        kind,
		GameVersion: parts[1],
		Name:        name,
		Location:    loc,
		Config:      cfg,
	}, nil
}

// readConfig probes the sidecar file names in order and parses the first one
// that exists.
func (d *Discovery) readConfig(packPath string) (*Config, error) {
	for _, fileName := range ConfigFileNames {
		configPath := path.Join(packPath, fileName)
		data, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(configPath)))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read pack config %s: %w", configPath, err)
		}
		return ParseConfig(data, configPath)
	}
	return nil, &ConfigNotFoundError{Path: packPath}
}
