package models

import "time"

// Transcription is one completed transcription request of a user.
type Transcription struct {
	ID        string
	UserID    string
	AudioKey  string
	Language  string
	Text      string
	CreatedAt time.Time
}
