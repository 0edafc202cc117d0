package cmd

import (
	"fmt"
	"strings"

	"github.com/Rana718/dataforge/internal/domains"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List the domains in generation order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := domains.Order()
		if err != nil {
			return err
		}
		for i, name := range order {
			d, _ := domains.Find(name)
			color.New(color.FgCyan, color.Bold).Printf("%d. %s", i+1, name)
			if deps := d.DependsOn(); len(deps) > 0 {
				fmt.Printf("  (after %s)", strings.Join(deps, ", "))
			}
			fmt.Println()
			for _, s := range d.Schemas() {
				fmt.Printf("   - %s\n", s.Name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(domainsCmd)
}
