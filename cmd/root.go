package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/Rana718/dataforge/internal/config"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "0.4.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════════════════╗",
		"║    ██████╗  █████╗ ████████╗ █████╗ ███████╗ ██████╗ ██████╗ ║",
		"║    ██╔══██╗██╔══██╗╚══██╔══╝██╔══██╗██╔════╝██╔═══██╗██╔══██╗║",
		"║    ██║  ██║███████║   ██║   ███████║█████╗  ██║   ██║██████╔╝║",
		"║    ██║  ██║██╔══██║   ██║   ██╔══██║██╔══╝  ██║   ██║██╔══██╗║",
		"║    ██████╔╝██║  ██║   ██║   ██║  ██║██║     ╚██████╔╝██║  ██║║",
		"║    ╚═════╝ ╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝╚═╝      ╚═════╝ ╚═╝  ╚═╝║",
		"║                                                              ║",
		"║        🔗 Linked Synthetic Business Datasets 🔗              ║",
		"║                                                              ║",
		"║      finance • ecommerce • marketing • web • crm             ║",
		"╚══════════════════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                        ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "dataforge",
	Short: "Generate linked synthetic datasets across business domains",
	Long: `
DataForge generates synthetic finance, ecommerce, marketing, web and CRM
datasets whose foreign keys point at each other. Every domain draws its
references from the keys the earlier domains actually produced, so the
tables join cleanly.

Domains can be generated together or one at a time. A domain generated on
its own reads its upstream domains back from the output directory and falls
back to synthetic keys when they are missing.

Output formats:
- CSV (one file per table)
- JSON (one array of objects per table)
- SQLite (one database per domain)`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("DataForge CLI version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.FileName+")")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("dataforge.config")
	}

	viper.SetEnvPrefix("DATAFORGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			color.Yellow("⚠️  Could not read config: %v", err)
		}
	}
}
