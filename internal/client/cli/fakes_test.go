package cli

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/voicememo/internal/api"
	"github.com/dmitrijs2005/voicememo/internal/client/client"
	"github.com/dmitrijs2005/voicememo/internal/client/config"
	"github.com/dmitrijs2005/voicememo/internal/client/models"
	"github.com/dmitrijs2005/voicememo/internal/client/repositories/kv"
	"github.com/dmitrijs2005/voicememo/internal/client/snapshot"
	"github.com/dmitrijs2005/voicememo/internal/client/stores"
	"github.com/dmitrijs2005/voicememo/internal/logging"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	uploadURL      string
	transcribeText string
	transcribeErr  error
	history        []api.Transcription
	lastLimit      int
	pingErr        error
}

func (f *fakeAPI) Close() error                                           { return nil }
func (f *fakeAPI) Register(context.Context, string, []byte, []byte) error { return nil }
func (f *fakeAPI) GetSalt(context.Context, string) ([]byte, error)        { return nil, client.ErrUnavailable }
func (f *fakeAPI) SetAccessToken(string)                                  {}
func (f *fakeAPI) Ping(context.Context) error                             { return f.pingErr }

func (f *fakeAPI) Login(context.Context, string, []byte) (client.Session, error) {
	return client.Session{}, client.ErrUnavailable
}

func (f *fakeAPI) RequestAudioUpload(context.Context, string) (string, string, error) {
	return "audio/u1/key", f.uploadURL, nil
}

func (f *fakeAPI) Transcribe(context.Context, string, models.TranscriptionOptions) (string, error) {
	return f.transcribeText, f.transcribeErr
}

func (f *fakeAPI) ListTranscriptions(_ context.Context, limit int) ([]api.Transcription, error) {
	f.lastLimit = limit
	return f.history, nil
}

var testUser = models.User{ID: "u1", Username: "alice"}

// newTestApp builds an App over a temporary database. With signedIn set a
// session for testUser is stored before the app starts, as after a
// previous login.
func newTestApp(t *testing.T, f *fakeAPI, signedIn bool) (*App, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, filepath.Join(t.TempDir(), "voicememo.db"))
	require.NoError(t, err)

	w := snapshot.NewWriter(kv.NewSQLiteRepository(db), logging.Nop())
	if signedIn {
		w.Save(stores.AuthKey, client.Session{User: testUser, AccessToken: "tok"})
		require.NoError(t, w.Flush(ctx))
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	a, err := newApp(ctx, cfg, logging.Nop(), db, w, f)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(context.Background()) })

	var out bytes.Buffer
	a.out = &out
	a.reader = bufio.NewReader(strings.NewReader(""))
	return a, &out
}
