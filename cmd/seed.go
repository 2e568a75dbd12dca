package cmd

import (
	"context"
	"fmt"
	"log"

	"SadaaFM/config"
	"SadaaFM/db"
	"SadaaFM/model"
	"SadaaFM/repository"

	"github.com/spf13/cobra"
)

func intPtr(v int) *int { return &v }

// seedCatalog is the starter catalog inserted by the seed command.
// Idempotent: skipped when the table already has rows.
var seedCatalog = []model.CreateInstrumentalRequest{
	{
		Title:             "Nasheed of Dawn",
		Mood:              "Peaceful",
		Duration:          185,
		DurationFormatted: model.FormatDuration(185),
		IsPremium:         true,
		IsFeatured:        true,
		AudioURL:          "https://azjankari.in/audio/song1.mp3",
		Ringtone:          "https://azjankari.in/audio/song1_ringtone.mp3",
		ThumbnailColor:    "#2E7D32",
		FileSize:          "4.3 MB",
		PreviewStart:      intPtr(30),
		PreviewEnd:        intPtr(60),
	},
	{
		Title:             "Desert Winds",
		Mood:              "Ambient",
		Duration:          212,
		DurationFormatted: model.FormatDuration(212),
		IsFeatured:        true,
		AudioURL:          "https://azjankari.in/audio/song2.mp3",
		Ringtone:          "https://azjankari.in/audio/song2.mp3",
		ThumbnailColor:    "#BF360C",
		FileSize:          "4.9 MB",
	},
	{
		Title:             "Morning Dhikr",
		Mood:              "Calm",
		Duration:          148,
		DurationFormatted: model.FormatDuration(148),
		AudioURL:          "https://azjankari.in/audio/song3.mp3",
		ThumbnailColor:    "#1565C0",
		FileSize:          "3.4 MB",
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the catalog with starter instrumentals",
	Long:  `Create the schema if needed and insert a small starter catalog. Does nothing when the table already has rows.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		if err := db.ConnectDB(cfg); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.DB.Close()

		if err := db.InitDB(); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}

		var count int
		if err := db.DB.QueryRow("SELECT COUNT(*) FROM instrumentals").Scan(&count); err != nil {
			log.Fatalf("Failed to count instrumentals: %v", err)
		}
		if count > 0 {
			fmt.Printf("Catalog already has %d instrumentals, skipping seed.\n", count)
			return
		}

		repo := repository.NewMySQLInstrumentalRepository()
		ctx := context.Background()
		for i := range seedCatalog {
			ins, err := repo.Create(ctx, &seedCatalog[i])
			if err != nil {
				log.Fatalf("Failed to seed %q: %v", seedCatalog[i].Title, err)
			}
			fmt.Printf("Seeded %s (%s)\n", ins.Title, ins.ID)
		}
		fmt.Printf("Seeded %d instrumentals.\n", len(seedCatalog))
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
