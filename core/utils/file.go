package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// DownloadFile fetches url and writes the body to filepath. The partial
// file is removed when the transfer fails.
func DownloadFile(ctx context.Context, client *http.Client, url, filepath string) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("invalid download URL %s: %w", url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download file, status code: %d", resp.StatusCode)
	}

	out, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err = io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(filepath)
		return fmt.Errorf("failed to save file: %w", err)
	}

	if err = out.Close(); err != nil {
		os.Remove(filepath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	return nil
}
