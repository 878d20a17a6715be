// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"packmill/internal/config"
	"packmill/internal/packs"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all discovered packs",
	Long: `Discover pack directories and print each pack's name, game version, and
sidecar config. Packs that fail to load are listed with their error.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, _, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	discovered, err := packs.New(".", cfg.PackPattern).Discover()
	if err != nil {
		return err
	}

	if len(discovered) == 0 {
		cmd.Printf("No packs match %q.\n", cfg.PackPattern)
		return nil
	}

	out := cmd.OutOrStdout()
	for _, d := range discovered {
		if d.Err != nil {
			fmt.Fprintf(out, "%s %s\n    %s\n",
				ErrorStyle.Render("✗"),
				HighlightStyle.Render(d.Path),
				ErrorStyle.Render(d.Err.Error()))
			continue
		}
		fmt.Fprintf(out, "%s %s\n    %s %s (%s, MC %s)\n",
			SuccessStyle.Render("✓"),
			HighlightStyle.Render(d.Path),
			d.Pack.Config.Title,
			d.Pack.Config.Version,
			d.Pack.Kind,
			d.Pack.GameVersion)
	}

	return nil
}
