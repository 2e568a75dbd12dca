package cmd

import (
	"fmt"
	"log"
	"os"

	"SadaaFM/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sadaa_server",
	Short: "SadaaFM serves the Sadaa instrumentals and ringtone catalog.",
	Run: func(cmd *cobra.Command, args []string) {
		log.Println("Starting SadaaFM server...")
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
