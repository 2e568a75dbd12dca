package ringtone

import (
	"context"
	"errors"
	"testing"
)

type fakeOpener struct {
	opened []string
	err    error
}

func (f *fakeOpener) OpenURL(ctx context.Context, url string) error {
	if f.err != nil {
		return f.err
	}
	f.opened = append(f.opened, url)
	return nil
}

type fakeShareAPI struct {
	available bool
	shared    []string
	err       error
}

func (f *fakeShareAPI) CanShare() bool { return f.available }

func (f *fakeShareAPI) Share(ctx context.Context, url string) error {
	if f.err != nil {
		return f.err
	}
	f.shared = append(f.shared, url)
	return nil
}

type fakeClipboard struct {
	written []string
	err     error
}

func (f *fakeClipboard) WriteText(ctx context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.written = append(f.written, text)
	return nil
}

const testRingtoneURL = "https://azjankari.in/audio/song2.mp3"

func TestWebDownloadOpensExactURL(t *testing.T) {
	opener := &fakeOpener{}
	d, err := New(PlatformWeb, Options{Opener: opener})
	if err != nil {
		t.Fatalf("failed to build web dispatcher: %v", err)
	}

	result, err := d.Download(context.Background(), testRingtoneURL)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}

	if len(opener.opened) != 1 || opener.opened[0] != testRingtoneURL {
		t.Errorf("opened URLs = %v, want exactly [%s]", opener.opened, testRingtoneURL)
	}
	if result.OpenedURL != testRingtoneURL {
		t.Errorf("OpenedURL = %q, want %q", result.OpenedURL, testRingtoneURL)
	}
	// Web never writes to disk.
	if result.LocalPath != "" {
		t.Errorf("LocalPath = %q, want empty on web", result.LocalPath)
	}
}

func TestWebDownloadRejectsMissingRingtone(t *testing.T) {
	opener := &fakeOpener{}
	d, _ := New(PlatformWeb, Options{Opener: opener})

	_, err := d.Download(context.Background(), "")
	if !errors.Is(err, ErrNoRingtone) {
		t.Errorf("err = %v, want ErrNoRingtone", err)
	}
	if len(opener.opened) != 0 {
		t.Error("opener must not be called for a missing ringtone")
	}
}

func TestWebDownloadRejectsBadScheme(t *testing.T) {
	d, _ := New(PlatformWeb, Options{Opener: &fakeOpener{}})

	if _, err := d.Download(context.Background(), "ftp://example.com/tone.mp3"); err == nil {
		t.Error("expected error for non-http scheme")
	}
}

func TestWebDownloadSurfacesOpenerFailure(t *testing.T) {
	d, _ := New(PlatformWeb, Options{Opener: &fakeOpener{err: errors.New("popup blocked")}})

	if _, err := d.Download(context.Background(), testRingtoneURL); err == nil {
		t.Error("expected opener failure to surface")
	}
}

func TestWebSharePrefersShareAPI(t *testing.T) {
	share := &fakeShareAPI{available: true}
	clipboard := &fakeClipboard{}
	d, _ := New(PlatformWeb, Options{Opener: &fakeOpener{}, ShareAPI: share, Clipboard: clipboard})

	if err := d.Share(context.Background(), testRingtoneURL, ""); err != nil {
		t.Fatalf("Share failed: %v", err)
	}

	if len(share.shared) != 1 || share.shared[0] != testRingtoneURL {
		t.Errorf("shared URLs = %v, want [%s]", share.shared, testRingtoneURL)
	}
	if len(clipboard.written) != 0 {
		t.Error("clipboard must not be used when the Share API is available")
	}
}

func TestWebShareFallsBackToClipboard(t *testing.T) {
	clipboard := &fakeClipboard{}
	d, _ := New(PlatformWeb, Options{
		Opener:    &fakeOpener{},
		ShareAPI:  &fakeShareAPI{available: false},
		Clipboard: clipboard,
	})

	if err := d.Share(context.Background(), testRingtoneURL, ""); err != nil {
		t.Fatalf("Share failed: %v", err)
	}

	if len(clipboard.written) != 1 || clipboard.written[0] != testRingtoneURL {
		t.Errorf("clipboard writes = %v, want [%s]", clipboard.written, testRingtoneURL)
	}
}

func TestWebShareFailsWhenNothingAvailable(t *testing.T) {
	d, _ := New(PlatformWeb, Options{Opener: &fakeOpener{}})

	err := d.Share(context.Background(), testRingtoneURL, "")
	if !errors.Is(err, ErrShareUnavailable) {
		t.Errorf("err = %v, want ErrShareUnavailable", err)
	}
}

func TestWebShareFailsWhenClipboardFails(t *testing.T) {
	d, _ := New(PlatformWeb, Options{
		Opener:    &fakeOpener{},
		Clipboard: &fakeClipboard{err: errors.New("permission denied")},
	})

	err := d.Share(context.Background(), testRingtoneURL, "")
	if !errors.Is(err, ErrShareUnavailable) {
		t.Errorf("err = %v, want ErrShareUnavailable when the clipboard fallback fails", err)
	}
}

func TestNewRejectsUnknownPlatform(t *testing.T) {
	if _, err := New(Platform("desktop"), Options{}); err == nil {
		t.Error("expected error for unknown platform")
	}
}

func TestNewRequiresOpenerForWeb(t *testing.T) {
	if _, err := New(PlatformWeb, Options{}); err == nil {
		t.Error("expected error when the web dispatcher has no opener")
	}
}
