package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/dmitrijs2005/voicememo/internal/common"
	"github.com/dmitrijs2005/voicememo/internal/logging"
	"github.com/dmitrijs2005/voicememo/internal/server/audio"
	"github.com/dmitrijs2005/voicememo/internal/server/cache"
	"github.com/dmitrijs2005/voicememo/internal/server/models"
	"github.com/dmitrijs2005/voicememo/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/voicememo/internal/server/repositories/transcriptions"
	"github.com/dmitrijs2005/voicememo/internal/server/whisper"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// AudioStore allocates upload URLs and reads uploaded audio back.
type AudioStore interface {
	PresignUpload(ctx context.Context, userID, contentType string) (key string, url string, err error)
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// Engine turns audio into text.
type Engine interface {
	Transcribe(ctx context.Context, r whisper.Request) (string, error)
}

// TranscribeResult is the outcome of one Transcribe call. Cached is set when
// the text came from the cache or from an earlier stored transcription.
type TranscribeResult struct {
	Text     string
	Language string
	Cached   bool
}

type TranscriptionService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	audio           AudioStore
	engine          Engine
	cache           cache.Transcripts
	defaultLanguage string
	logger          logging.Logger
}

func NewTranscriptionService(db *sql.DB, m repomanager.RepositoryManager, a AudioStore, e Engine,
	c cache.Transcripts, defaultLanguage string, l logging.Logger) *TranscriptionService {
	if c == nil {
		c = cache.Nop{}
	}
	if defaultLanguage == "" {
		defaultLanguage = common.DefaultTranscriptionLanguage
	}
	return &TranscriptionService{
		db:              db,
		repomanager:     m,
		audio:           a,
		engine:          e,
		cache:           c,
		defaultLanguage: defaultLanguage,
		logger:          l.With("module", "transcriptions"),
	}
}

// RequestUpload returns a fresh audio key owned by userID and a URL to PUT the
// audio to.
func (s *TranscriptionService) RequestUpload(ctx context.Context, userID, contentType string) (string, string, error) {
	key, url, err := s.audio.PresignUpload(ctx, userID, contentType)
	if err != nil {
		s.logger.Error(ctx, "presign failed", "error", err)
		return "", "", common.ErrInternal
	}
	return key, url, nil
}

// Transcribe returns the text of the audio stored under audioKey. Lookups go
// cache, then history, then Whisper; a fresh transcription is recorded in the
// history and cached.
//
// Stored text is keyed by audio and language only, so a non-empty prompt
// skips both lookups and always reaches Whisper. Its result is recorded in
// the history but not cached.
func (s *TranscriptionService) Transcribe(ctx context.Context, userID, audioKey, language, prompt string) (*TranscribeResult, error) {
	if !audio.Owns(userID, audioKey) {
		return nil, fmt.Errorf("audio %s: %w", audioKey, common.ErrNotFound)
	}
	language = strings.TrimSpace(language)
	if language == "" {
		language = s.defaultLanguage
	}

	prompt = strings.TrimSpace(prompt)
	repo := s.repomanager.Transcriptions(s.db)

	if prompt == "" {
		if res, ok := s.lookup(ctx, repo, userID, audioKey, language); ok {
			return res, nil
		}
	}

	data, err := s.audio.Fetch(ctx, audioKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTranscriptionFailed, err)
	}

	text, err := s.engine.Transcribe(ctx, whisper.Request{Audio: data, Filename: path.Base(audioKey), Language: language, Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTranscriptionFailed, err)
	}

	if _, err := repo.Create(ctx, &models.Transcription{UserID: userID, AudioKey: audioKey, Language: language, Text: text}); err != nil {
		s.logger.Error(ctx, "saving transcription failed", "error", err)
	}
	if prompt == "" {
		s.remember(ctx, userID, audioKey, language, text)
	}

	s.logger.Info(ctx, "transcribed", "key", audioKey, "language", language, "chars", len(text), "prompted", prompt != "")
	return &TranscribeResult{Text: text, Language: language}, nil
}

// List returns the newest transcriptions of userID. Limits outside
// (0, maxListLimit] are clamped.
func (s *TranscriptionService) List(ctx context.Context, userID string, limit int) ([]*models.Transcription, error) {
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}

	items, err := s.repomanager.Transcriptions(s.db).ListByUser(ctx, userID, limit)
	if err != nil {
		s.logger.Error(ctx, "listing transcriptions failed", "error", err)
		return nil, common.ErrInternal
	}
	return items, nil
}

// lookup serves a transcription from the cache or, failing that, from the
// history. Side store errors are logged and treated as misses.
func (s *TranscriptionService) lookup(ctx context.Context, repo transcriptions.Repository, userID, audioKey, language string) (*TranscribeResult, bool) {
	if text, ok, err := s.cache.Get(ctx, userID, audioKey, language); err != nil {
		s.logger.Warn(ctx, "cache get failed", "error", err)
	} else if ok {
		return &TranscribeResult{Text: text, Language: language, Cached: true}, true
	}

	prev, err := repo.FindLatest(ctx, userID, audioKey, language)
	switch {
	case err == nil:
		s.remember(ctx, userID, audioKey, language, prev.Text)
		return &TranscribeResult{Text: prev.Text, Language: language, Cached: true}, true
	case !errors.Is(err, common.ErrNotFound):
		s.logger.Warn(ctx, "history lookup failed", "error", err)
	}
	return nil, false
}

func (s *TranscriptionService) remember(ctx context.Context, userID, audioKey, language, text string) {
	if err := s.cache.Set(ctx, userID, audioKey, language, text); err != nil {
		s.logger.Warn(ctx, "cache set failed", "error", err)
	}
}
