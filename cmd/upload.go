package cmd

import (
	"context"
	"fmt"

	"github.com/Rana718/dataforge/internal/storage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload the output directory to S3",
	Long: `
Upload every file of the output directory, manifest included, to the bucket
configured under storage.s3. Credentials come from the standard AWS chain.
Set storage.s3.endpoint and storage.s3.path_style for MinIO.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if prefix, _ := cmd.Flags().GetString("prefix"); prefix != "" {
			cfg.Storage.S3.Prefix = prefix
		}

		ctx := context.Background()
		uploader, err := storage.New(ctx, cfg.Storage.S3)
		if err != nil {
			return err
		}
		if n, _ := cmd.Flags().GetInt("concurrency"); n > 0 {
			uploader.SetConcurrency(n)
		}

		color.Cyan("☁️  Uploading %s to s3://%s...", cfg.OutputDir, cfg.Storage.S3.Bucket)
		keys, err := uploader.UploadDir(ctx, cfg.OutputDir)
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			return fmt.Errorf("nothing to upload in %s", cfg.OutputDir)
		}
		color.Green("✅ Uploaded %d object(s)", len(keys))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringP("out", "o", "", "Output directory to upload")
	uploadCmd.Flags().String("prefix", "", "Key prefix inside the bucket")
	uploadCmd.Flags().Int("concurrency", storage.DefaultConcurrency, "Parallel uploads")
}
