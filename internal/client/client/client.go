package client

import (
	"context"

	"github.com/dmitrijs2005/voicememo/internal/api"
	"github.com/dmitrijs2005/voicememo/internal/client/models"
)

// Session is what a successful login yields.
type Session struct {
	User        models.User `json:"user"`
	AccessToken string      `json:"accessToken"`
}

type Client interface {
	Close() error
	Register(ctx context.Context, username string, salt []byte, verifier []byte) error
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifier []byte) (Session, error)
	// SetAccessToken installs a token from a restored session.
	SetAccessToken(token string)
	Ping(ctx context.Context) error
	RequestAudioUpload(ctx context.Context, contentType string) (key string, url string, err error)
	Transcribe(ctx context.Context, audioKey string, opts models.TranscriptionOptions) (string, error)
	ListTranscriptions(ctx context.Context, limit int) ([]api.Transcription, error)
}
