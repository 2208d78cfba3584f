package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/voicememo/internal/common"
	"github.com/dmitrijs2005/voicememo/internal/server/auth"
	"github.com/dmitrijs2005/voicememo/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(u *fakeUsersRepo) *UserService {
	return NewUserService(nil, &fakeRepoManager{u: u, t: &fakeTranscriptionsRepo{}}, "k", time.Hour)
}

func TestRegister(t *testing.T) {
	s := newUserService(&fakeUsersRepo{})

	u, err := s.Register(context.Background(), "  alice ", []byte("s"), []byte("v"))
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "alice", u.UserName)
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name     string
		repo     *fakeUsersRepo
		username string
		salt     []byte
		verifier []byte
		want     error
	}{
		{"empty username", &fakeUsersRepo{}, " ", []byte("s"), []byte("v"), common.ErrInvalidArgument},
		{"empty salt", &fakeUsersRepo{}, "a", nil, []byte("v"), common.ErrInvalidArgument},
		{"empty verifier", &fakeUsersRepo{}, "a", []byte("s"), nil, common.ErrInvalidArgument},
		{"taken", &fakeUsersRepo{createErr: common.ErrConflict}, "a", []byte("s"), []byte("v"), common.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newUserService(tt.repo).Register(context.Background(), tt.username, tt.salt, tt.verifier)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGetSalt_KnownUser(t *testing.T) {
	s := newUserService(&fakeUsersRepo{getOut: &models.User{Salt: []byte("SALT")}})

	salt, err := s.GetSalt(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, []byte("SALT"), salt)
}

func TestGetSalt_UnknownUserIsStable(t *testing.T) {
	s := newUserService(&fakeUsersRepo{getErr: common.ErrNotFound})

	a, err := s.GetSalt(context.Background(), "ghost")
	require.NoError(t, err)
	b, err := s.GetSalt(context.Background(), "ghost")
	require.NoError(t, err)
	c, err := s.GetSalt(context.Background(), "other")
	require.NoError(t, err)

	assert.Len(t, a, saltSize)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestGetSalt_RepoFailure(t *testing.T) {
	s := newUserService(&fakeUsersRepo{getErr: errors.New("db down")})

	_, err := s.GetSalt(context.Background(), "alice")
	assert.ErrorIs(t, err, common.ErrInternal)
}

func TestLogin_Success(t *testing.T) {
	s := newUserService(&fakeUsersRepo{getOut: &models.User{ID: "u-9", UserName: "alice", Verifier: []byte("vv")}})

	res, err := s.Login(context.Background(), "alice", []byte("vv"))
	require.NoError(t, err)
	assert.Equal(t, "u-9", res.User.ID)

	id, err := auth.GetUserIDFromToken(res.AccessToken, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, "u-9", id)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name string
		repo *fakeUsersRepo
		want error
	}{
		{"unknown user", &fakeUsersRepo{getErr: common.ErrNotFound}, common.ErrUnauthorized},
		{"wrong verifier", &fakeUsersRepo{getOut: &models.User{ID: "u", Verifier: []byte("other")}}, common.ErrUnauthorized},
		{"repo failure", &fakeUsersRepo{getErr: errors.New("boom")}, common.ErrInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newUserService(tt.repo).Login(context.Background(), "alice", []byte("vv"))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
