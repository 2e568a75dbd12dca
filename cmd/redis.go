package cmd

import (
	"fmt"
	"log"

	"SadaaFM/config"
	"SadaaFM/db"

	"github.com/spf13/cobra"
)

var redisCmd = &cobra.Command{
	Use:   "redis",
	Short: "Redis connectivity check",
	Long:  `Verify the Redis connection backing the catalog cache with a basic read/write round trip.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Testing Redis connection...")

		cfg := config.Load()
		fmt.Printf("Redis config: %s:%s, DB: %d\n", cfg.RedisHost, cfg.RedisPort, cfg.RedisDB)

		if err := db.ConnectRedis(cfg); err != nil {
			log.Fatalf("Unable to connect to Redis: %v", err)
		}
		fmt.Println("Redis connection established.")

		if err := db.TestRedis(); err != nil {
			log.Fatalf("Redis round trip failed: %v", err)
		}
		fmt.Println("Redis round trip succeeded.")

		if err := db.CloseRedis(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
		fmt.Println("Redis check complete, connection closed.")
	},
}

func init() {
	rootCmd.AddCommand(redisCmd)
}
