package services

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/voicememo/internal/common"
	"github.com/dmitrijs2005/voicememo/internal/dbx"
	"github.com/dmitrijs2005/voicememo/internal/server/models"
	"github.com/dmitrijs2005/voicememo/internal/server/repositories/transcriptions"
	"github.com/dmitrijs2005/voicememo/internal/server/repositories/users"
	"github.com/dmitrijs2005/voicememo/internal/server/whisper"
)

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "u-1"
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeTranscriptionsRepo struct {
	mu      sync.Mutex
	items   []*models.Transcription
	findErr error
	saveErr error
	listErr error

	lastLimit int
}

func (f *fakeTranscriptionsRepo) Create(ctx context.Context, t *models.Transcription) (*models.Transcription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	t.ID = "t-" + t.AudioKey
	f.items = append(f.items, t)
	return t, nil
}

func (f *fakeTranscriptionsRepo) FindLatest(ctx context.Context, userID, audioKey, language string) (*models.Transcription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for i := len(f.items) - 1; i >= 0; i-- {
		t := f.items[i]
		if t.UserID == userID && t.AudioKey == audioKey && t.Language == language {
			return t, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeTranscriptionsRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*models.Transcription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.Transcription
	for _, t := range f.items {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	t *fakeTranscriptionsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error      { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                   { return m.u }
func (m *fakeRepoManager) Transcriptions(dbx.DBTX) transcriptions.Repository { return m.t }

type fakeAudio struct {
	objects    map[string][]byte
	presignErr error
	fetches    int
}

func (f *fakeAudio) PresignUpload(ctx context.Context, userID, contentType string) (string, string, error) {
	if f.presignErr != nil {
		return "", "", f.presignErr
	}
	key := "audio/" + userID + "/k1"
	return key, "http://s3.local/" + key, nil
}

func (f *fakeAudio) Fetch(ctx context.Context, key string) ([]byte, error) {
	f.fetches++
	b, ok := f.objects[key]
	if !ok {
		return nil, common.ErrNotFound
	}
	return b, nil
}

type fakeEngine struct {
	text  string
	err   error
	calls []whisper.Request
}

func (f *fakeEngine) Transcribe(ctx context.Context, r whisper.Request) (string, error) {
	f.calls = append(f.calls, r)
	return f.text, f.err
}

type fakeCache struct {
	m      map[string]string
	getErr error
	setErr error
}

func newFakeCache() *fakeCache { return &fakeCache{m: map[string]string{}} }

func (c *fakeCache) Get(ctx context.Context, userID, audioKey, language string) (string, bool, error) {
	if c.getErr != nil {
		return "", false, c.getErr
	}
	v, ok := c.m[userID+"|"+audioKey+"|"+language]
	return v, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, userID, audioKey, language, text string) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.m[userID+"|"+audioKey+"|"+language] = text
	return nil
}
