// SPDX-License-Identifier: MPL-2.0

package packs

import (
	"errors"
	"testing"
)

func TestParseConfig_YAML(t *testing.T) {
	t.Parallel()

	data := []byte("title: AFK Display\nversion: 1.1.3\nauthors:\n  - someone\n")
	cfg, err := ParseConfig(data, "datapacks/1.21/afk_display/config.yaml")
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.Title != "AFK Display" {
		t.Errorf("Title = %q", cfg.Title)
	}
	if cfg.Version.String() != "1.1.3" {
		t.Errorf("Version = %q", cfg.Version)
	}
	if _, ok := cfg.Raw["authors"]; !ok {
		t.Error("Raw dropped unknown key")
	}
}

func TestParseConfig_YAMLNumericVersion(t *testing.T) {
	t.Parallel()

	// An unquoted `version: 1.2` decodes as a float; it must still parse.
	cfg, err := ParseConfig([]byte("title: X\nversion: 1.2\n"), "config.yaml")
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.Version.Major != 1 || cfg.Version.Minor != 2 {
		t.Errorf("Version = %d.%d", cfg.Version.Major, cfg.Version.Minor)
	}
}

func TestParseConfig_TOML(t *testing.T) {
	t.Parallel()

	data := []byte("title = \"Graves\"\nversion = \"2.0.0\"\n")
	cfg, err := ParseConfig(data, "datapacks/1.21/graves/config.toml")
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.Title != "Graves" || cfg.Version.String() != "2.0.0" {
		t.Errorf("got %q %q", cfg.Title, cfg.Version)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		path string
	}{
		{name: "malformed yaml", data: "title: [unclosed", path: "config.yaml"},
		{name: "malformed toml", data: "title = ", path: "config.toml"},
		{name: "missing title", data: "version: 1.0.0", path: "config.yaml"},
		{name: "blank title", data: "title: \"  \"\nversion: 1.0.0", path: "config.yaml"},
		{name: "missing version", data: "title: X", path: "config.yaml"},
		{name: "unparseable version", data: "title: X\nversion: latest", path: "config.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseConfig([]byte(tt.data), tt.path)
			if err == nil {
				t.Fatal("ParseConfig succeeded, want error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
