package cmd

import (
	"fmt"

	"github.com/Rana718/dataforge/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new DataForge project",
	Long:  `Write a ` + config.FileName + ` with the default settings and create the output directory.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitializeProject(); err != nil {
			return err
		}

		color.Green("✅ Created %s", config.FileName)
		fmt.Println()
		fmt.Printf("🚀 Next steps:\n")
		fmt.Printf("   dataforge generate          # Generate every domain\n")
		fmt.Printf("   dataforge check             # Verify foreign keys\n")
		fmt.Printf("   dataforge load              # Load into $DATABASE_URL\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
