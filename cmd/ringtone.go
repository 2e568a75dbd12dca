package cmd

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"runtime"
	"time"

	"SadaaFM/config"
	"SadaaFM/core/ringtone"

	"github.com/spf13/cobra"
)

var (
	ringtonePlatform string
	ringtoneOut      string
	ringtoneShare    bool
)

var ringtoneCmd = &cobra.Command{
	Use:   "ringtone <url>",
	Short: "Download or share a ringtone URL",
	Long: `Exercise the ringtone action dispatcher from the command line.
On the native platform the clip is downloaded into the output directory;
on web the URL is handed to the system browser. With --share the result
is shared afterwards (printed as the share target on a headless host).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		url := args[0]
		cfg := config.Load()

		out := ringtoneOut
		if out == "" {
			out = cfg.RingtoneDir
		}

		dispatcher, err := ringtone.New(ringtone.Platform(ringtonePlatform), ringtone.Options{
			Opener:      browserOpener{},
			DownloadDir: out,
			ShareSheet:  consoleShareSheet{},
		})
		if err != nil {
			log.Fatalf("Failed to build dispatcher: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		result, err := dispatcher.Download(ctx, url)
		if err != nil {
			log.Fatalf("Download failed: %v", err)
		}

		if result.LocalPath != "" {
			fmt.Printf("Saved ringtone to %s\n", result.LocalPath)
		} else {
			fmt.Printf("Opened %s\n", result.OpenedURL)
		}

		if ringtoneShare {
			if err := dispatcher.Share(ctx, url, result.LocalPath); err != nil {
				log.Fatalf("Share failed: %v", err)
			}
		}
	},
}

// browserOpener hands a URL to the system browser.
type browserOpener struct{}

func (browserOpener) OpenURL(ctx context.Context, url string) error {
	var name string
	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "windows":
		name = "rundll32"
	default:
		name = "xdg-open"
	}

	args := []string{url}
	if name == "rundll32" {
		args = []string{"url.dll,FileProtocolHandler", url}
	}

	if _, err := exec.LookPath(name); err != nil {
		// Headless host; printing the URL is the best we can do.
		fmt.Printf("Open this URL in a browser: %s\n", url)
		return nil
	}
	return exec.CommandContext(ctx, name, args...).Start()
}

// consoleShareSheet stands in for a native share sheet on the CLI.
type consoleShareSheet struct{}

func (consoleShareSheet) Present(ctx context.Context, target string) error {
	fmt.Printf("Share target: %s\n", target)
	return nil
}

func init() {
	rootCmd.AddCommand(ringtoneCmd)

	ringtoneCmd.Flags().StringVarP(&ringtonePlatform, "platform", "P", string(ringtone.PlatformNative), "platform to dispatch as: web or native")
	ringtoneCmd.Flags().StringVarP(&ringtoneOut, "out", "o", "", "download directory (native platform)")
	ringtoneCmd.Flags().BoolVarP(&ringtoneShare, "share", "s", false, "share after downloading")

	ringtoneCmd.Example = `  # Download a ringtone clip to the local ringtone directory
  sadaa_server ringtone https://azjankari.in/audio/song2.mp3

  # Download then share
  sadaa_server ringtone -s https://azjankari.in/audio/song2.mp3

  # Web-style dispatch: hand the URL to the browser
  sadaa_server ringtone -P web https://azjankari.in/audio/song2.mp3`
}
