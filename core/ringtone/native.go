package ringtone

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"SadaaFM/core/utils"
)

// ShareSheet presents the native share dialog for a target, either a local
// file path or a remote URL.
type ShareSheet interface {
	Present(ctx context.Context, target string) error
}

type nativeDispatcher struct {
	client *http.Client
	dir    string
	sheet  ShareSheet
}

// Download on native fetches the clip into the device storage directory
// and returns the local file path. No retry; a failed transfer surfaces
// directly to the caller.
func (d *nativeDispatcher) Download(ctx context.Context, ringtoneURL string) (*DownloadResult, error) {
	if err := validateRingtoneURL(ringtoneURL); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}

	localPath := filepath.Join(d.dir, ringtoneFilename(ringtoneURL))
	if err := utils.DownloadFile(ctx, d.client, ringtoneURL, localPath); err != nil {
		return nil, err
	}

	return &DownloadResult{LocalPath: localPath}, nil
}

// Share on native presents the share sheet for the local file when one was
// downloaded, otherwise for the remote URL.
func (d *nativeDispatcher) Share(ctx context.Context, ringtoneURL, localPath string) error {
	target := localPath
	if target == "" {
		if err := validateRingtoneURL(ringtoneURL); err != nil {
			return err
		}
		target = ringtoneURL
	}

	if d.sheet == nil {
		return ErrShareUnavailable
	}

	if err := d.sheet.Present(ctx, target); err != nil {
		return fmt.Errorf("share sheet failed: %w", err)
	}
	return nil
}

// ringtoneFilename derives a safe local filename from the URL path,
// defaulting the extension to .mp3.
func ringtoneFilename(ringtoneURL string) string {
	name := "ringtone.mp3"
	if u, err := url.Parse(ringtoneURL); err == nil {
		if base := path.Base(u.Path); base != "" && base != "." && base != "/" {
			name = base
		}
	}

	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)

	if filepath.Ext(name) == "" {
		name += ".mp3"
	}
	return name
}
