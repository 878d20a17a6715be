// SPDX-License-Identifier: MPL-2.0

package subproject

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Handoff receives finished subproject specs. The real content pipeline sits
// behind this interface; tests and the default implementation stand in for it.
type Handoff interface {
	// Require registers one subproject spec for building.
	Require(spec *Spec) error
}

// DirWriter is a Handoff that writes each spec as pretty-printed JSON to
// `<dir>/<id>.json`, where the pipeline picks them up.
type DirWriter struct {
	// Dir is created on first use if it does not exist.
	Dir string
}

// Require implements Handoff.
func (w *DirWriter) Require(spec *Spec) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("create build dir %s: %w", w.Dir, err)
	}

	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode subproject %s: %w", spec.ID, err)
	}
	data = append(data, '\n')

	target := filepath.Join(w.Dir, spec.ID+".json")
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("write subproject %s: %w", spec.ID, err)
	}
	return nil
}
