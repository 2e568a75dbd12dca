// Package ringtone implements the download/share actions a player offers
// for an instrumental's ringtone URL. Behavior branches on the runtime
// platform: a browser context can only hand the URL to the browser itself,
// while a native runtime downloads the clip to device storage and presents
// a share sheet.
package ringtone

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Platform identifies the client runtime a dispatcher serves.
type Platform string

const (
	PlatformWeb    Platform = "web"
	PlatformNative Platform = "native"
)

var (
	// ErrNoRingtone is returned when the instrumental has no ringtone URL.
	// Callers should gate their download/share controls on this upfront.
	ErrNoRingtone = errors.New("no ringtone URL set")

	// ErrShareUnavailable is returned when no share mechanism could run,
	// including the clipboard fallback on web.
	ErrShareUnavailable = errors.New("no share mechanism available")
)

// DownloadResult reports what a Download call did. Exactly one of the two
// fields is set, depending on the platform.
type DownloadResult struct {
	// OpenedURL is the URL handed to the browser (web platform).
	OpenedURL string
	// LocalPath is the file saved to device storage (native platform).
	// Pass it into a subsequent Share call to share the local file
	// instead of the remote URL.
	LocalPath string
}

// Dispatcher performs one-shot download and share actions for ringtone
// URLs. Calls are independent; the only state flowing between them is the
// LocalPath a caller chooses to carry from Download into Share.
type Dispatcher interface {
	Download(ctx context.Context, ringtoneURL string) (*DownloadResult, error)
	Share(ctx context.Context, ringtoneURL, localPath string) error
}

// New selects the dispatcher implementation for the given platform.
func New(platform Platform, opts Options) (Dispatcher, error) {
	switch platform {
	case PlatformWeb:
		if opts.Opener == nil {
			return nil, fmt.Errorf("web dispatcher requires a URL opener")
		}
		return &webDispatcher{
			opener:    opts.Opener,
			share:     opts.ShareAPI,
			clipboard: opts.Clipboard,
		}, nil
	case PlatformNative:
		if opts.DownloadDir == "" {
			return nil, fmt.Errorf("native dispatcher requires a download directory")
		}
		return &nativeDispatcher{
			client: opts.HTTPClient,
			dir:    opts.DownloadDir,
			sheet:  opts.ShareSheet,
		}, nil
	default:
		return nil, fmt.Errorf("unknown platform: %q", platform)
	}
}

// Options collects the platform capabilities a dispatcher is built from.
// Web dispatchers use Opener, ShareAPI and Clipboard; native dispatchers
// use HTTPClient, DownloadDir and ShareSheet.
type Options struct {
	Opener      URLOpener
	ShareAPI    ShareAPI
	Clipboard   Clipboard
	HTTPClient  *http.Client
	DownloadDir string
	ShareSheet  ShareSheet
}

// validateRingtoneURL rejects empty and non-http(s) ringtone URLs before
// any platform action runs.
func validateRingtoneURL(ringtoneURL string) error {
	if ringtoneURL == "" {
		return ErrNoRingtone
	}
	u, err := url.Parse(ringtoneURL)
	if err != nil {
		return fmt.Errorf("invalid ringtone URL %q: %w", ringtoneURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid ringtone URL %q: scheme must be http or https", ringtoneURL)
	}
	return nil
}
