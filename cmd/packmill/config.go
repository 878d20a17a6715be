// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"packmill/internal/config"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect packmill configuration",
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE:  runConfigShow,
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, resolvedPath, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	source := "built-in defaults"
	if resolvedPath != "" {
		source = resolvedPath
	}
	cmd.Println(SubtitleStyle.Render("# loaded from: " + source))

	rendered, err := yaml.Marshal(map[string]any{
		"pack_pattern": cfg.PackPattern,
		"output_dir":   cfg.OutputDir,
		"build_dir":    cfg.BuildDir,
		"verbose":      cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("render config: %w", err)
	}
	cmd.Print(string(rendered))

	return nil
}
