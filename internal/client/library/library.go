// Package library ties the stores together for operations that span more
// than one of them. The stores stay usable on their own; going through the
// library keeps folder membership and collaboration data in step with the
// recordings.
package library

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/voicememo/internal/client/models"
	"github.com/dmitrijs2005/voicememo/internal/client/stores/collaboration"
	"github.com/dmitrijs2005/voicememo/internal/client/stores/folders"
	"github.com/dmitrijs2005/voicememo/internal/client/stores/recordings"
	"github.com/dmitrijs2005/voicememo/internal/client/stores/settings"
	"github.com/dmitrijs2005/voicememo/internal/logging"
)

// Transcriber fills in the transcription of a stored recording.
type Transcriber interface {
	TranscribeRecording(ctx context.Context, recordingID string, opts models.TranscriptionOptions) (string, error)
}

type Library struct {
	Recordings    *recordings.Store
	Folders       *folders.Store
	Collaboration *collaboration.Store
	Settings      *settings.Store

	transcriber Transcriber
	logger      logging.Logger
}

func New(r *recordings.Store, f *folders.Store, c *collaboration.Store, s *settings.Store, l logging.Logger) *Library {
	return &Library{
		Recordings:    r,
		Folders:       f,
		Collaboration: c,
		Settings:      s,
		logger:        l.With("module", "library"),
	}
}

// SetTranscriber enables automatic transcription of new recordings when the
// AutoTranscribe setting is on.
func (l *Library) SetTranscriber(t Transcriber) {
	l.transcriber = t
}

// AddRecording stores the recording. With AutoTranscribe enabled it is then
// transcribed; a failed transcription is logged and does not undo the add.
func (l *Library) AddRecording(ctx context.Context, in models.NewRecording, opts models.TranscriptionOptions) (models.Recording, error) {
	r, err := l.Recordings.Add(in)
	if err != nil {
		return models.Recording{}, err
	}
	if l.transcriber == nil || !l.Settings.Get().AutoTranscribe {
		return r, nil
	}

	if _, err := l.transcriber.TranscribeRecording(ctx, r.ID, opts); err != nil {
		l.logger.Warn(ctx, "auto transcription failed", "recording", r.ID, "error", err)
		return r, nil
	}
	if updated, ok := l.Recordings.Get(r.ID); ok {
		r = updated
	}
	return r, nil
}

// DeleteRecording removes the recording together with its folder
// memberships, its share and its comments.
func (l *Library) DeleteRecording(ctx context.Context, id string) error {
	if err := l.Recordings.Delete(id); err != nil {
		return fmt.Errorf("delete recording: %w", err)
	}
	n := l.Folders.ForgetRecording(id)
	l.Collaboration.ForgetRecording(id)
	l.logger.Debug(ctx, "recording deleted", "id", id, "folders", n)
	return nil
}

// RecordingsInFolder returns the folder's recordings in store order.
func (l *Library) RecordingsInFolder(folderID string) []models.Recording {
	return l.Folders.RecordingsInFolder(folderID, l.Recordings.List())
}
