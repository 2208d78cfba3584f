// Package services contains server-side business logic. UserService handles
// registration, salt lookup and login; TranscriptionService handles audio
// uploads and Whisper transcription.
package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/voicememo/internal/common"
	"github.com/dmitrijs2005/voicememo/internal/server/auth"
	"github.com/dmitrijs2005/voicememo/internal/server/models"
	"github.com/dmitrijs2005/voicememo/internal/server/repositories/repomanager"
)

const saltSize = 32

// LoginResult is a successful login: the user and a signed access token.
type LoginResult struct {
	User        *models.User
	AccessToken string
}

type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, secretKey string, accessTTL time.Duration) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(secretKey),
		accessTokenValidityDuration: accessTTL,
	}
}

// Register creates a new user with the given username, salt, and verifier.
// A taken username yields common.ErrConflict.
func (s *UserService) Register(ctx context.Context, username string, salt, verifier []byte) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(salt) == 0 || len(verifier) == 0 {
		return nil, common.ErrInvalidArgument
	}

	user := &models.User{UserName: username, Salt: salt, Verifier: verifier}
	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// GetSalt returns the user's stored salt. Unknown users get a salt derived
// from the server secret, stable across calls, so the answer does not reveal
// whether the account exists.
func (s *UserService) GetSalt(ctx context.Context, userName string) ([]byte, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return s.decoySalt(userName), nil
		}
		return nil, common.ErrInternal
	}
	return user.Salt, nil
}

// Login verifies the provided verifierCandidate against the stored verifier
// and, on success, returns the user with a fresh access token.
func (s *UserService) Login(ctx context.Context, userName string, verifierCandidate []byte) (*LoginResult, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}
	if !checkVerifier(user.Verifier, verifierCandidate) {
		return nil, common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, user.UserName, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrInternal
	}
	return &LoginResult{User: user, AccessToken: token}, nil
}

func (s *UserService) decoySalt(userName string) []byte {
	m := hmac.New(sha256.New, s.jwtSecret)
	m.Write([]byte("salt:" + userName))
	return m.Sum(nil)[:saltSize]
}

func checkVerifier(verifier []byte, candidate []byte) bool {
	return subtle.ConstantTimeCompare(verifier, candidate) == 1
}
