package cmd

import (
	"context"
	"fmt"

	"github.com/Rana718/dataforge/internal/domains"
	"github.com/Rana718/dataforge/internal/export"
	"github.com/Rana718/dataforge/internal/pipeline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// maxListed caps how many violations check prints per domain.
const maxListed = 10

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify foreign keys across the generated domains",
	Long: `
Read every domain found in the output directory and check that each foreign
key points at a key one of the stored tables actually contains. Foreign keys
into a domain that is not on disk are reported but do not fail the check.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		store, err := export.NewStore(cfg.OutputDir, cfg.Format)
		if err != nil {
			return err
		}

		report, err := pipeline.Verify(context.Background(), domains.All(), store)
		if err != nil {
			return err
		}
		if len(report.Loaded) == 0 {
			return fmt.Errorf("no domains found in %s", cfg.OutputDir)
		}

		for _, name := range report.Absent {
			color.Yellow("⚠️  %s: not found", name)
		}
		for _, name := range report.Loaded {
			vs := report.Violations[name]
			if len(vs) == 0 {
				color.Green("✅ %s", name)
				continue
			}
			color.Red("❌ %s: %d problem(s)", name, len(vs))
			for i, v := range vs {
				if i == maxListed {
					fmt.Printf("   ... and %d more\n", len(vs)-maxListed)
					break
				}
				fmt.Printf("   %s\n", v)
			}
		}

		if n := report.Broken(); n > 0 {
			return fmt.Errorf("%d foreign key violation(s)", n)
		}
		if n := report.Unresolved(); n > 0 {
			color.Yellow("⚠️  %d foreign key column(s) reference domains that are not on disk", n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringP("out", "o", "", "Output directory to check")
	checkCmd.Flags().StringP("format", "f", "", "Format the output was written in")
}
