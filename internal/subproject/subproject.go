// SPDX-License-Identifier: MPL-2.0

// Package subproject turns discovered packs into build specs for the external
// content pipeline. This layer only shapes configuration; it never runs the
// pipeline itself.
package subproject

import (
	"encoding/json"
	"fmt"

	"packmill/internal/packs"
)

// DefaultOutput is where built packs land, relative to each pack directory.
const DefaultOutput = "../../../dist"

type (
	// TextComponent is a styled piece of a pack description, in the game's
	// text-component format.
	TextComponent struct {
		Text  string `json:"text"`
		Color string `json:"color"`
	}

	// LoadEntry is one entry of a data-pack load table. Exactly one of Root
	// and Mount is set: Root loads a directory as-is and marshals to a plain
	// string, Mount maps a source directory onto a target prefix and marshals
	// to a single-pair object.
	LoadEntry struct {
		Root  string
		Mount map[string]string
	}

	// DataPack configures how the pipeline assembles a single data pack.
	DataPack struct {
		Load        []LoadEntry     `json:"load"`
		Description []TextComponent `json:"description"`
	}

	// Spec is a complete subproject handed to the pipeline.
	Spec struct {
		ID        string         `json:"id"`
		Name      string         `json:"name"`
		Version   string         `json:"version"`
		Directory string         `json:"directory"`
		Output    string         `json:"output"`
		DataPack  DataPack       `json:"data_pack"`
		Require   []string       `json:"require"`
		Pipeline  []string       `json:"pipeline"`
		Meta      map[string]any `json:"meta"`
	}
)

// MarshalJSON renders a LoadEntry as either a plain string or a one-pair
// mapping, matching the pipeline's heterogeneous load table format.
func (e LoadEntry) MarshalJSON() ([]byte, error) {
	if e.Mount != nil {
		return json.Marshal(e.Mount)
	}
	return json.Marshal(e.Root)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (e *LoadEntry) UnmarshalJSON(data []byte) error {
	var root string
	if err := json.Unmarshal(data, &root); err == nil {
		*e = LoadEntry{Root: root}
		return nil
	}
	var mount map[string]string
	if err := json.Unmarshal(data, &mount); err != nil {
		return fmt.Errorf("load entry must be a string or a mapping: %w", err)
	}
	*e = LoadEntry{Mount: mount}
	return nil
}

// FromPack builds the subproject spec for one pack, mirroring what the
// content pipeline expects for a datapack sub-build.
func FromPack(pack *packs.Pack) *Spec {
	return &Spec{
		ID:        pack.Name,
		Name:      pack.Config.Title,
		Version:   pack.Config.Version.String(),
		Directory: pack.Path,
		Output:    DefaultOutput,
		DataPack: DataPack{
			Load: []LoadEntry{
				{Root: "."},
				// The trailing `/_` keeps bolt resource locations from
				// colliding with mcfunction resource locations.
				{Mount: map[string]string{
					fmt.Sprintf("data/%s/modules/_", pack.Name): ".",
				}},
			},
			Description: Description(pack),
		},
		Require:  []string{"bolt"},
		Pipeline: []string{"mecha"},
		Meta:     map[string]any{"pack_config": pack.Config.Raw},
	}
}

// Description builds the styled in-game description for a pack.
func Description(pack *packs.Pack) []TextComponent {
	return []TextComponent{
		{
			Text: fmt.Sprintf("%s %s for MC %s",
				pack.Config.Title, pack.Config.Version, pack.GameVersion),
			Color: "gold",
		},
		{
			Text:  "\nvanillatweaks.net",
			Color: "yellow",
		},
	}
}
