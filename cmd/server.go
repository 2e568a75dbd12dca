package cmd

import (
	"SadaaFM/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the SadaaFM HTTP server",
	Long:  `Start the HTTP server exposing the instrumentals catalog API and ringtone hosting.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
