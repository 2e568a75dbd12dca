package model

import "time"

// PlayEvent records one playback of an instrumental. Appended whenever
// the play endpoint is hit; the aggregate lives on Instrumental.PlayCount.
type PlayEvent struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	InstrumentalID string    `json:"instrumentalId" gorm:"type:varchar(36);index"`
	PlayedAt       time.Time `json:"playedAt" gorm:"autoCreateTime"`
}

// TableName keeps the GORM table name explicit.
func (PlayEvent) TableName() string {
	return "play_events"
}
