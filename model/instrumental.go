package model

import (
	"fmt"
	"time"
)

// Instrumental represents one track in the instrumentals catalog.
// The wire shape is the mobile app's contract: snake_case fields,
// `ringtone` optional. preview_start/preview_end predate the ringtone
// feature and are kept for clients that still send them.
type Instrumental struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Mood              string    `json:"mood"`
	Duration          float64   `json:"duration"` // seconds
	DurationFormatted string    `json:"duration_formatted"`
	IsPremium         bool      `json:"is_premium"`
	IsFeatured        bool      `json:"is_featured"`
	AudioURL          string    `json:"audio_url"`
	Ringtone          string    `json:"ringtone,omitempty"` // direct URL to a ringtone-ready clip; empty means none
	ThumbnailColor    string    `json:"thumbnail_color"`
	FileSize          string    `json:"file_size"`
	PlayCount         int64     `json:"play_count"`
	PreviewStart      *int      `json:"preview_start"`
	PreviewEnd        *int      `json:"preview_end"`
	CreatedAt         time.Time `json:"created_at"`
}

// HasRingtone reports whether a ringtone URL is set. Clients must not
// offer download/share actions when this is false.
func (i *Instrumental) HasRingtone() bool {
	return i.Ringtone != ""
}

// CreateInstrumentalRequest is the payload accepted by the create endpoint.
// ID and created_at are assigned server-side.
type CreateInstrumentalRequest struct {
	Title             string  `json:"title"`
	Mood              string  `json:"mood"`
	Duration          float64 `json:"duration"`
	DurationFormatted string  `json:"duration_formatted"`
	IsPremium         bool    `json:"is_premium"`
	IsFeatured        bool    `json:"is_featured"`
	AudioURL          string  `json:"audio_url"`
	Ringtone          string  `json:"ringtone,omitempty"`
	ThumbnailColor    string  `json:"thumbnail_color"`
	FileSize          string  `json:"file_size"`
	PreviewStart      *int    `json:"preview_start"`
	PreviewEnd        *int    `json:"preview_end"`
}

// UpdateInstrumentalRequest carries a partial update. Nil fields are
// left untouched; a non-nil empty Ringtone clears the ringtone.
type UpdateInstrumentalRequest struct {
	Title             *string  `json:"title"`
	Mood              *string  `json:"mood"`
	Duration          *float64 `json:"duration"`
	DurationFormatted *string  `json:"duration_formatted"`
	IsPremium         *bool    `json:"is_premium"`
	IsFeatured        *bool    `json:"is_featured"`
	AudioURL          *string  `json:"audio_url"`
	Ringtone          *string  `json:"ringtone"`
	ThumbnailColor    *string  `json:"thumbnail_color"`
	FileSize          *string  `json:"file_size"`
	PreviewStart      *int     `json:"preview_start"`
	PreviewEnd        *int     `json:"preview_end"`
}

// FormatDuration renders whole seconds as m:ss for display. The store
// does not derive duration_formatted from duration; writers use this
// helper when they want the two in sync.
func FormatDuration(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
