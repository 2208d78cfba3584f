package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/voicememo/internal/api"
	"github.com/dmitrijs2005/voicememo/internal/client/client"
	"github.com/dmitrijs2005/voicememo/internal/client/models"
	"github.com/dmitrijs2005/voicememo/internal/client/repositories/kv"
	"github.com/dmitrijs2005/voicememo/internal/client/snapshot"
	"github.com/dmitrijs2005/voicememo/internal/logging"
	"github.com/stretchr/testify/require"
)

// fakeClient implements client.Client for the service tests.
type fakeClient struct {
	RegisterErr error

	Salts   map[string][]byte
	SaltErr error

	LoginSession client.Session
	LoginErr     error

	UploadKey string
	UploadURL string
	UploadErr error

	TranscribeText string
	TranscribeErr  error

	LastRegisterUser     string
	LastRegisterSalt     []byte
	LastRegisterVerifier []byte
	LastLoginVerifier    []byte
	LastTranscribeKey    string
	LastTranscribeOpts   models.TranscriptionOptions
	AccessToken          string
	Closed               bool
}

func (f *fakeClient) Close() error { f.Closed = true; return nil }

func (f *fakeClient) Register(_ context.Context, username string, salt []byte, verifier []byte) error {
	f.LastRegisterUser = username
	f.LastRegisterSalt = append([]byte(nil), salt...)
	f.LastRegisterVerifier = append([]byte(nil), verifier...)
	return f.RegisterErr
}

func (f *fakeClient) GetSalt(_ context.Context, username string) ([]byte, error) {
	if f.SaltErr != nil {
		return nil, f.SaltErr
	}
	return f.Salts[username], nil
}

func (f *fakeClient) Login(_ context.Context, _ string, verifier []byte) (client.Session, error) {
	f.LastLoginVerifier = append([]byte(nil), verifier...)
	if f.LoginErr != nil {
		return client.Session{}, f.LoginErr
	}
	f.AccessToken = f.LoginSession.AccessToken
	return f.LoginSession, nil
}

func (f *fakeClient) SetAccessToken(token string) { f.AccessToken = token }

func (f *fakeClient) Ping(context.Context) error { return nil }

func (f *fakeClient) RequestAudioUpload(context.Context, string) (string, string, error) {
	return f.UploadKey, f.UploadURL, f.UploadErr
}

func (f *fakeClient) Transcribe(_ context.Context, key string, opts models.TranscriptionOptions) (string, error) {
	f.LastTranscribeKey = key
	f.LastTranscribeOpts = opts
	return f.TranscribeText, f.TranscribeErr
}

func (f *fakeClient) ListTranscriptions(context.Context, int) ([]api.Transcription, error) {
	return nil, nil
}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "voicememo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newWriter(t *testing.T, db *sql.DB) *snapshot.Writer {
	t.Helper()
	w := snapshot.NewWriter(kv.NewSQLiteRepository(db), logging.Nop())
	t.Cleanup(func() { _ = w.Close(context.Background()) })
	return w
}
