package services

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/voicememo/internal/client/client"
	"github.com/dmitrijs2005/voicememo/internal/client/models"
	"github.com/dmitrijs2005/voicememo/internal/client/stores/recordings"
	"github.com/dmitrijs2005/voicememo/internal/common"
	"github.com/dmitrijs2005/voicememo/internal/filex"
	"github.com/dmitrijs2005/voicememo/internal/logging"
	"github.com/dmitrijs2005/voicememo/internal/netx"
)

const DefaultTranscriptionTimeout = 2 * time.Minute

// readAudio loads the bytes behind a recording URI.
var readAudio = func(uri string) ([]byte, error) {
	path, err := filex.PathFromURI(uri)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// TranscriptionService uploads a recording's audio and stores the text the
// server returns as the recording's transcription.
type TranscriptionService struct {
	client     client.Client
	recordings *recordings.Store
	http       netx.HTTPDoer
	timeout    time.Duration
	language   string
	logger     logging.Logger
}

// NewTranscriptionService builds the service. Zero timeout and empty
// language fall back to the defaults.
func NewTranscriptionService(c client.Client, r *recordings.Store, timeout time.Duration, language string, l logging.Logger) *TranscriptionService {
	if timeout <= 0 {
		timeout = DefaultTranscriptionTimeout
	}
	if language == "" {
		language = common.DefaultTranscriptionLanguage
	}
	return &TranscriptionService{
		client:     c,
		recordings: r,
		http:       &http.Client{},
		timeout:    timeout,
		language:   language,
		logger:     l.With("module", "transcription"),
	}
}

// TranscribeRecording makes one attempt, bounded by the service timeout.
// On failure the recording is left as it was.
func (s *TranscriptionService) TranscribeRecording(ctx context.Context, recordingID string, opts models.TranscriptionOptions) (string, error) {
	rec, ok := s.recordings.Get(recordingID)
	if !ok {
		return "", fmt.Errorf("recording %s: %w", recordingID, common.ErrNotFound)
	}
	if opts.Language == "" {
		opts.Language = s.language
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	audio, err := readAudio(rec.URI)
	if err != nil {
		return "", fmt.Errorf("read audio %s: %w", rec.URI, err)
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(rec.URI)))
	key, uploadURL, err := s.client.RequestAudioUpload(ctx, contentType)
	if err != nil {
		return "", fmt.Errorf("request upload: %w", err)
	}
	if err := netx.UploadToPresignedURL(ctx, s.http, uploadURL, contentType, audio); err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrTranscriptionFailed, err)
	}

	text, err := s.client.Transcribe(ctx, key, opts)
	if err != nil {
		return "", fmt.Errorf("transcribe %s: %w", recordingID, err)
	}

	if err := s.recordings.Update(recordingID, models.RecordingPatch{Transcription: &text}); err != nil {
		return "", err
	}
	s.logger.Info(ctx, "recording transcribed", "recording", recordingID, "chars", len(text))
	return text, nil
}
