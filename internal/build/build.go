// SPDX-License-Identifier: MPL-2.0

// Package build runs one pass of the pack build: discover pack directories,
// then register each valid pack with the pipeline handoff. A failing pack is
// logged and counted; it never stops the other packs from building.
package build

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"packmill/internal/packs"
	"packmill/internal/subproject"
)

// Options configures a build pass.
type Options struct {
	// Root is the project root directory.
	Root string
	// Pattern is the glob for pack directories (e.g. "datapacks/*/*").
	Pattern string
	// Handoff receives one subproject spec per valid pack.
	Handoff subproject.Handoff
	// Logger receives per-pack progress and failures. nil means a default
	// logger on stderr.
	Logger *log.Logger
}

// Result summarizes a build pass.
type Result struct {
	// Built counts packs successfully handed to the pipeline.
	Built int
	// Failed counts packs that could not be loaded or handed off.
	Failed int
}

// Run performs one build pass. The returned error is only non-nil when
// discovery itself cannot run; per-pack failures are logged and reflected in
// the Result.
func Run(opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "build"})
	}

	discovered, err := packs.New(opts.Root, opts.Pattern).Discover()
	if err != nil {
		return Result{}, fmt.Errorf("discover packs: %w", err)
	}

	var result Result
	for _, d := range discovered {
		if d.Err != nil {
			logger.Error("skipping pack", "path", d.Path, "err", d.Err)
			result.Failed++
			continue
		}

		logger.Info("building pack",
			"path", d.Path,
			"title", d.Pack.Config.Title,
			"version", d.Pack.Config.Version,
			"mc", d.Pack.GameVersion)

		if err := opts.Handoff.Require(subproject.FromPack(d.Pack)); err != nil {
			logger.Error("handoff failed", "path", d.Path, "err", err)
			result.Failed++
			continue
		}
		result.Built++
	}

	return result, nil
}
