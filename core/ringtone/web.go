package ringtone

import (
	"context"
	"fmt"
)

// URLOpener opens a URL in a new browsing context. Cross-origin rules
// prevent a web page from fetching and saving the file itself, so the
// browser's own download/open behavior is the only reliable action.
type URLOpener interface {
	OpenURL(ctx context.Context, url string) error
}

// ShareAPI models the platform Share API. CanShare reports availability;
// Share hands the URL to the platform share dialog.
type ShareAPI interface {
	CanShare() bool
	Share(ctx context.Context, url string) error
}

// Clipboard writes text to the system clipboard, the fallback when the
// Share API is unavailable.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

type webDispatcher struct {
	opener    URLOpener
	share     ShareAPI
	clipboard Clipboard
}

// Download on web delegates the URL to the browser. No file is written.
func (d *webDispatcher) Download(ctx context.Context, ringtoneURL string) (*DownloadResult, error) {
	if err := validateRingtoneURL(ringtoneURL); err != nil {
		return nil, err
	}

	if err := d.opener.OpenURL(ctx, ringtoneURL); err != nil {
		return nil, fmt.Errorf("failed to open ringtone URL: %w", err)
	}

	return &DownloadResult{OpenedURL: ringtoneURL}, nil
}

// Share on web uses the Share API when available and falls back to copying
// the URL to the clipboard. localPath is ignored; a web page never has one.
func (d *webDispatcher) Share(ctx context.Context, ringtoneURL, localPath string) error {
	if err := validateRingtoneURL(ringtoneURL); err != nil {
		return err
	}

	if d.share != nil && d.share.CanShare() {
		if err := d.share.Share(ctx, ringtoneURL); err != nil {
			return fmt.Errorf("share failed: %w", err)
		}
		return nil
	}

	if d.clipboard != nil {
		if err := d.clipboard.WriteText(ctx, ringtoneURL); err != nil {
			return fmt.Errorf("%w: clipboard fallback failed: %v", ErrShareUnavailable, err)
		}
		return nil
	}

	return ErrShareUnavailable
}
