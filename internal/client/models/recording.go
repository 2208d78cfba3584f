package models

import (
	"slices"
	"time"
)

// Category is the fixed classification of a recording.
type Category string

const (
	CategoryIdeas      Category = "ideas"
	CategoryMeetings   Category = "meetings"
	CategoryInterviews Category = "interviews"
	CategoryNotes      Category = "notes"
	CategoryCustom     Category = "custom"
)

// Categories lists every valid category.
var Categories = []Category{CategoryIdeas, CategoryMeetings, CategoryInterviews, CategoryNotes, CategoryCustom}

func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// StorageLocation tells where the audio bytes live.
type StorageLocation string

const (
	StorageLocal StorageLocation = "local"
	StorageCloud StorageLocation = "cloud"
)

func (s StorageLocation) Valid() bool {
	return s == StorageLocal || s == StorageCloud
}

// Marker is a labelled bookmark inside a recording. Timestamp is in seconds
// and lies within [0, Duration] of the owning recording.
type Marker struct {
	ID        string  `json:"id"`
	Timestamp float64 `json:"timestamp"`
	Label     string  `json:"label"`
	Note      string  `json:"note,omitempty"`
}

// Recording is a single voice memo. URI is an opaque reference to the audio
// bytes; the stores never dereference it.
type Recording struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Duration        float64         `json:"duration"`
	Size            int64           `json:"size"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	URI             string          `json:"uri"`
	Category        Category        `json:"category"`
	Tags            []string        `json:"tags"`
	IsFavorite      bool            `json:"isFavorite"`
	IsEncrypted     bool            `json:"isEncrypted"`
	Transcription   string          `json:"transcription,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Markers         []Marker        `json:"markers"`
	StorageLocation StorageLocation `json:"storageLocation"`
}

// Clone returns a deep copy of r.
func (r Recording) Clone() Recording {
	r.Tags = slices.Clone(r.Tags)
	r.Markers = slices.Clone(r.Markers)
	return r
}

// MarkerInRange reports whether ts is a valid marker position for r.
func (r Recording) MarkerInRange(ts float64) bool {
	return ts >= 0 && ts <= r.Duration
}

// NewMarker is the caller-supplied part of a marker.
type NewMarker struct {
	Timestamp float64
	Label     string
	Note      string
}

// NewRecording is the caller-supplied part of a recording. An empty Category
// means CategoryNotes and an empty StorageLocation means StorageLocal.
type NewRecording struct {
	Title           string
	Duration        float64
	Size            int64
	URI             string
	Category        Category
	Tags            []string
	IsFavorite      bool
	IsEncrypted     bool
	Transcription   string
	Notes           string
	Markers         []NewMarker
	StorageLocation StorageLocation
}

// RecordingPatch is a partial update of a recording.
type RecordingPatch struct {
	Title           *string
	Duration        *float64
	Size            *int64
	URI             *string
	Category        *Category
	Tags            *[]string
	IsFavorite      *bool
	IsEncrypted     *bool
	Transcription   *string
	Notes           *string
	StorageLocation *StorageLocation
}

// MarkerPatch is a partial update of a marker.
type MarkerPatch struct {
	Timestamp *float64
	Label     *string
	Note      *string
}

// RecordingFilter selects recordings. Every set criterion must match; zero
// values are ignored.
type RecordingFilter struct {
	// Search is matched case-insensitively against the title.
	Search     string
	Categories []Category
	// Tags matches when the recording carries at least one of them.
	Tags        []string
	DateFrom    *time.Time
	DateTo      *time.Time
	MinDuration *float64
	MaxDuration *float64
	IsFavorite  *bool
	Storage     *StorageLocation
}

// TranscriptionOptions are passed through to the speech-to-text backend.
type TranscriptionOptions struct {
	Language string
	Prompt   string
}
