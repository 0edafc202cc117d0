package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rana718/dataforge/internal/database"
	"github.com/Rana718/dataforge/internal/domains"
	"github.com/Rana718/dataforge/internal/export"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load generated datasets into a database",
	Long: `
Load the generated tables into the database named by the configured URL
environment variable (DATABASE_URL by default). Each table is recreated as
<domain>_<table>.

Examples:
  dataforge load
  dataforge load --domain finance
  dataforge load --provider sqlite`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if provider, _ := cmd.Flags().GetString("provider"); provider != "" {
			cfg.Database.Provider = provider
		}

		store, err := export.NewStore(cfg.OutputDir, cfg.Format)
		if err != nil {
			return err
		}

		ctx := context.Background()
		adapter, err := database.NewAdapter(cfg.Database.Provider)
		if err != nil {
			return err
		}

		dbURL, err := cfg.GetDatabaseURL()
		if err != nil {
			return err
		}

		if err := adapter.Connect(ctx, dbURL); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer adapter.Close()

		if err := adapter.Ping(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		selected := make(map[string]bool, len(cfg.Domains))
		for _, name := range cfg.Domains {
			selected[name] = true
		}

		order, err := domains.Order()
		if err != nil {
			return err
		}

		loaded := 0
		for _, name := range order {
			if len(selected) > 0 && !selected[name] {
				continue
			}
			d, _ := domains.Find(name)
			tables, err := store.ReadDomain(name, d.Schemas())
			if errors.Is(err, export.ErrUpstreamAbsent) {
				color.Yellow("⚠️  Skipping %s: not found in %s", name, cfg.OutputDir)
				continue
			}
			if err != nil {
				return err
			}

			color.Cyan("📦 Loading %s...", name)
			results, err := database.LoadDomain(ctx, adapter, name, tables)
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Printf("   %-32s %d rows\n", r.Table, r.Rows)
			}
			loaded++
		}

		if loaded == 0 {
			return fmt.Errorf("no domains found in %s", cfg.OutputDir)
		}
		color.Green("✅ Loaded %d domain(s) into %s", loaded, cfg.Database.Provider)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringP("out", "o", "", "Output directory to load from")
	loadCmd.Flags().StringP("format", "f", "", "Format the output was written in")
	loadCmd.Flags().StringSliceP("domain", "d", nil, "Load only this domain (repeatable)")
	loadCmd.Flags().String("provider", "", "Database provider: postgresql, mysql or sqlite")
}
