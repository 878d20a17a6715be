// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for packmill.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "packmill",
		Short: "Build-configuration tool for Minecraft packs",
		Long: TitleStyle.Render("packmill") + SubtitleStyle.Render(" - build-configuration tool for Minecraft packs") + `

packmill finds pack directories under datapacks/<game version>/ and
resourcepacks/<game version>/, reads each pack's config.yaml sidecar,
and registers every valid pack as a subproject of the content pipeline.
One broken pack never stops the rest from building.

` + SubtitleStyle.Render("Examples:") + `
  packmill list             Show all discovered packs
  packmill build            Hand every valid pack to the pipeline
  packmill build --watch    Rebuild whenever pack files change
  packmill config show      Show the effective configuration`,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/packmill/packmill.yaml)")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
