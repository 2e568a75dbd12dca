package cmd

import (
	"context"
	"fmt"
	"log"

	"SadaaFM/config"
	"SadaaFM/storage"

	"github.com/spf13/cobra"
)

var minioPrefix string

var minioCmd = &cobra.Command{
	Use:   "minio",
	Short: "Inspect the ringtone bucket",
	Long:  `Connect to MinIO and list the stored ringtone objects, optionally filtered by prefix.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		fmt.Printf("MinIO config: %s, bucket: %s\n", cfg.MinioEndpoint, cfg.MinioBucket)

		if err := storage.InitMinio(cfg); err != nil {
			log.Fatalf("Unable to connect to MinIO: %v", err)
		}

		if err := storage.ListRingtones(context.Background(), cfg.MinioBucket, minioPrefix); err != nil {
			log.Fatalf("Failed to list ringtone objects: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(minioCmd)

	minioCmd.Flags().StringVarP(&minioPrefix, "prefix", "p", "ringtones/", "object prefix to list")

	minioCmd.Example = `  # List stored ringtone clips
  sadaa_server minio

  # List everything in the bucket
  sadaa_server minio -p ""`
}
