// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"packmill/internal/build"
	"packmill/internal/config"
	"packmill/internal/subproject"
	"packmill/internal/watch"
)

var (
	buildPattern  string
	buildDir      string
	buildWatch    bool
	buildDebounce time.Duration

	buildCmd = &cobra.Command{
		Use:   "build",
		Short: "Register every valid pack with the content pipeline",
		Long: `Discover pack directories, read each pack's sidecar config, and write one
subproject spec per valid pack into the build directory, where the content
pipeline picks them up. Broken packs are logged and skipped.`,
		RunE: runBuild,
	}
)

func init() {
	buildCmd.Flags().StringVar(&buildPattern, "pattern", "", "glob for pack directories (overrides config)")
	buildCmd.Flags().StringVar(&buildDir, "build-dir", "", "directory for subproject specs (overrides config)")
	buildCmd.Flags().BoolVarP(&buildWatch, "watch", "w", false, "rebuild whenever pack files change")
	buildCmd.Flags().DurationVar(&buildDebounce, "debounce", 0, "quiet period before a watched rebuild")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, _, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	pattern := cfg.PackPattern
	if buildPattern != "" {
		pattern = buildPattern
	}
	specDir := cfg.BuildDir
	if buildDir != "" {
		specDir = buildDir
	}

	logger := newLogger(cfg)

	opts := build.Options{
		Root:    ".",
		Pattern: pattern,
		Handoff: &subproject.DirWriter{Dir: specDir},
		Logger:  logger,
	}

	runOnce := func() error {
		result, err := build.Run(opts)
		if err != nil {
			return err
		}
		logger.Info("build pass finished", "built", result.Built, "failed", result.Failed)
		if result.Failed > 0 && !buildWatch {
			return fmt.Errorf("%d pack(s) failed", result.Failed)
		}
		return nil
	}

	if !buildWatch {
		return runOnce()
	}

	// Watch mode: build once up front, then again on every change burst.
	// Rebuild failures are reported by the watcher and do not end the loop.
	if err := runOnce(); err != nil {
		logger.Error("initial build failed", "err", err)
	}

	w, err := watch.New(watch.Config{
		Patterns: []string{"datapacks/**", "resourcepacks/**"},
		Ignore:   []string{cfg.OutputDir + "/**", specDir + "/**"},
		Debounce: buildDebounce,
		Logger:   logger,
		OnChange: func(_ context.Context, changed []string) error {
			logger.Info("files changed", "count", len(changed))
			return runOnce()
		},
	})
	if err != nil {
		return err
	}

	return w.Run(cmd.Context())
}

// newLogger builds the CLI logger, honoring --verbose and the config file.
func newLogger(cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "packmill"})
	if verbose || cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
