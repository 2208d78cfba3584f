// Package services contains the client application services: authentication
// with an offline fallback, and transcription of stored recordings.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/voicememo/internal/client/client"
	"github.com/dmitrijs2005/voicememo/internal/client/models"
	"github.com/dmitrijs2005/voicememo/internal/client/repositories/kv"
	"github.com/dmitrijs2005/voicememo/internal/client/snapshot"
	"github.com/dmitrijs2005/voicememo/internal/client/stores"
	"github.com/dmitrijs2005/voicememo/internal/common"
	"github.com/dmitrijs2005/voicememo/internal/cryptox"
	"github.com/dmitrijs2005/voicememo/internal/dbx"
	"github.com/dmitrijs2005/voicememo/internal/logging"
)

// Keys of the cached credentials used for offline login.
const (
	offlineUserIDKey   = "auth.user_id"
	offlineUsernameKey = "auth.username"
	offlineSaltKey     = "auth.salt"
	offlineVerifierKey = "auth.verifier"
)

// AuthService signs the user in and out and answers who is signed in.
//
// The session (user and access token) is persisted under stores.AuthKey
// and restored by NewAuthService. The salt and verifier of the last online
// login are cached so the same user can sign in without the server.
type AuthService struct {
	client    client.Client
	db        *sql.DB
	persister snapshot.Persister
	logger    logging.Logger

	mu      sync.RWMutex
	session *client.Session
}

// NewAuthService restores a persisted session, if any.
func NewAuthService(ctx context.Context, c client.Client, db *sql.DB, p snapshot.Persister, l logging.Logger) (*AuthService, error) {
	a := &AuthService{client: c, db: db, persister: p, logger: l.With("module", "auth")}

	var sess client.Session
	found, err := p.Load(ctx, stores.AuthKey, &sess)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if found && sess.User.ID != "" {
		a.session = &sess
		c.SetAccessToken(sess.AccessToken)
		a.logger.Debug(ctx, "session restored", "user", sess.User.Username)
	}
	return a, nil
}

func (a *AuthService) CurrentUser() (models.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.session == nil {
		return models.User{}, false
	}
	return a.session.User, true
}

func (a *AuthService) setSession(s *client.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.session = s
	if s == nil {
		a.persister.Remove(stores.AuthKey)
		return
	}
	a.persister.Save(stores.AuthKey, s)
}

// Register creates an account on the server. The password never leaves the
// machine; only a random salt and the verifier derived from it are sent.
func (a *AuthService) Register(ctx context.Context, username string, password []byte) error {
	salt := common.GenerateRandByteArray(32)
	verifier := cryptox.VerifierFor(password, salt)

	if err := a.client.Register(ctx, username, salt, verifier); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return nil
}

// Login signs in online and falls back to the cached credentials when the
// server cannot be reached.
func (a *AuthService) Login(ctx context.Context, username string, password []byte) (models.User, error) {
	u, err := a.OnlineLogin(ctx, username, password)
	if err == nil || !errors.Is(err, client.ErrUnavailable) {
		return u, err
	}

	a.logger.Warn(ctx, "server unavailable, trying offline login", "username", username)
	return a.OfflineLogin(ctx, username, password)
}

// OnlineLogin authenticates against the server and caches the credentials
// for offline use.
func (a *AuthService) OnlineLogin(ctx context.Context, username string, password []byte) (models.User, error) {
	salt, err := a.client.GetSalt(ctx, username)
	if err != nil {
		return models.User{}, fmt.Errorf("get salt error: %w", err)
	}

	verifier := cryptox.VerifierFor(password, salt)

	sess, err := a.client.Login(ctx, username, verifier)
	if err != nil {
		return models.User{}, fmt.Errorf("login error: %w", err)
	}

	if err := a.saveOfflineData(ctx, sess.User, salt, verifier); err != nil {
		return models.User{}, fmt.Errorf("offline data saving error: %w", err)
	}

	a.setSession(&sess)
	a.logger.Info(ctx, "signed in", "username", username)
	return sess.User, nil
}

// OfflineLogin checks the password against the cached verifier. The
// resulting session has no access token.
func (a *AuthService) OfflineLogin(ctx context.Context, username string, password []byte) (models.User, error) {
	repo := kv.NewSQLiteRepository(a.db)

	values := make(map[string][]byte, 4)
	for _, k := range []string{offlineUserIDKey, offlineUsernameKey, offlineSaltKey, offlineVerifierKey} {
		v, err := repo.Get(ctx, k)
		if err != nil {
			return models.User{}, err
		}
		if len(v) == 0 {
			return models.User{}, client.ErrLocalDataNotAvailable
		}
		values[k] = v
	}

	if string(values[offlineUsernameKey]) != username {
		return models.User{}, client.ErrUnauthorized
	}
	if !cryptox.Equal(values[offlineVerifierKey], cryptox.VerifierFor(password, values[offlineSaltKey])) {
		return models.User{}, client.ErrUnauthorized
	}

	u := models.User{ID: string(values[offlineUserIDKey]), Username: username}
	a.setSession(&client.Session{User: u})
	a.logger.Info(ctx, "signed in offline", "username", username)
	return u, nil
}

func (a *AuthService) saveOfflineData(ctx context.Context, u models.User, salt []byte, verifier []byte) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, offlineUserIDKey, []byte(u.ID)); err != nil {
			return err
		}
		if err := repo.Set(ctx, offlineUsernameKey, []byte(u.Username)); err != nil {
			return err
		}
		if err := repo.Set(ctx, offlineSaltKey, salt); err != nil {
			return err
		}
		return repo.Set(ctx, offlineVerifierKey, verifier)
	})
}

// Logout ends the session. Cached offline credentials are kept.
func (a *AuthService) Logout(ctx context.Context) {
	a.client.SetAccessToken("")
	a.setSession(nil)
	a.logger.Info(ctx, "signed out")
}

// ClearOfflineData wipes the cached credentials.
func (a *AuthService) ClearOfflineData(ctx context.Context) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		for _, k := range []string{offlineUserIDKey, offlineUsernameKey, offlineSaltKey, offlineVerifierKey} {
			if err := repo.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *AuthService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *AuthService) Close(ctx context.Context) error {
	return a.client.Close()
}
