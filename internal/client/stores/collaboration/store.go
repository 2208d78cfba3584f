// Package collaboration keeps per-recording shares and timestamped comments.
package collaboration

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/voicememo/internal/client/models"
	"github.com/dmitrijs2005/voicememo/internal/client/snapshot"
	"github.com/dmitrijs2005/voicememo/internal/client/stores"
	"github.com/dmitrijs2005/voicememo/internal/common"
	"github.com/dmitrijs2005/voicememo/internal/logging"
)

// Identity tells the store who is signed in.
type Identity interface {
	CurrentUser() (models.User, bool)
}

type Option func(*Store)

func WithClock(c stores.Clock) Option { return func(s *Store) { s.now = c } }

func WithIDs(f stores.IDFunc) Option { return func(s *Store) { s.newID = f } }

type state struct {
	Shares   []models.SharedRecording `json:"shares"`
	Comments []models.Comment         `json:"comments"`
}

type Store struct {
	mu        sync.RWMutex
	shares    []models.SharedRecording
	comments  []models.Comment
	lastErr   error
	identity  Identity
	persister snapshot.Persister
	logger    logging.Logger
	now       stores.Clock
	newID     stores.IDFunc
}

// New builds the store and loads its last snapshot.
func New(ctx context.Context, p snapshot.Persister, id Identity, l logging.Logger, opts ...Option) (*Store, error) {
	s := &Store{
		identity:  id,
		persister: p,
		logger:    l.With("module", "collaboration"),
		now:       stores.SystemClock,
		newID:     stores.NewID,
	}
	for _, o := range opts {
		o(s)
	}

	var st state
	if _, err := p.Load(ctx, stores.CollaborationKey, &st); err != nil {
		return nil, fmt.Errorf("load collaboration: %w", err)
	}
	s.shares = st.Shares
	s.comments = st.Comments
	s.logger.Debug(ctx, "collaboration loaded", "shares", len(s.shares), "comments", len(s.comments))
	return s, nil
}

// persist must be called with s.mu held.
func (s *Store) persist() {
	st := state{Shares: s.shares, Comments: s.comments}
	if st.Shares == nil {
		st.Shares = []models.SharedRecording{}
	}
	if st.Comments == nil {
		st.Comments = []models.Comment{}
	}
	s.persister.Save(stores.CollaborationKey, st)
}

// fail records err as the last error and returns it. Must be called with
// s.mu held.
func (s *Store) fail(err error) error {
	s.lastErr = err
	return err
}

// succeed clears the last error. Must be called with s.mu held.
func (s *Store) succeed() {
	s.lastErr = nil
}

// LastError returns the error of the last failed mutation, nil after a
// successful one.
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}

func (s *Store) currentUser() (models.User, error) {
	if s.identity == nil {
		return models.User{}, fmt.Errorf("no identity: %w", common.ErrUnauthorized)
	}
	u, ok := s.identity.CurrentUser()
	if !ok {
		return models.User{}, fmt.Errorf("not signed in: %w", common.ErrUnauthorized)
	}
	return u, nil
}

func (s *Store) shareIndex(recordingID string) int {
	return slices.IndexFunc(s.shares, func(sh models.SharedRecording) bool { return sh.RecordingID == recordingID })
}

// Share grants the users access to the recording. The first call creates
// the share on behalf of the signed-in user, later calls append to it. A
// user that already collaborates gets the new role.
func (s *Store) Share(recordingID string, users []models.CollaboratorInput) (models.SharedRecording, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.currentUser()
	if err != nil {
		return models.SharedRecording{}, s.fail(err)
	}
	if len(users) == 0 {
		return models.SharedRecording{}, s.fail(fmt.Errorf("share %s with nobody: %w", recordingID, common.ErrInvalidArgument))
	}
	for _, u := range users {
		if u.UserID == "" || !u.Role.Valid() {
			return models.SharedRecording{}, s.fail(fmt.Errorf("collaborator %q role %q: %w", u.UserID, u.Role, common.ErrInvalidArgument))
		}
	}

	now := s.now()
	i := s.shareIndex(recordingID)
	if i < 0 {
		s.shares = append(s.shares, models.SharedRecording{
			RecordingID:   recordingID,
			SharedBy:      me.ID,
			SharedAt:      now,
			Collaborators: []models.Collaborator{},
		})
		i = len(s.shares) - 1
	}

	sh := &s.shares[i]
	for _, u := range users {
		j := slices.IndexFunc(sh.Collaborators, func(c models.Collaborator) bool { return c.UserID == u.UserID })
		if j >= 0 {
			sh.Collaborators[j].Role = u.Role
			continue
		}
		sh.Collaborators = append(sh.Collaborators, models.Collaborator{UserID: u.UserID, Role: u.Role, AddedAt: now})
	}

	s.succeed()
	s.persist()
	s.logger.Debug(context.Background(), "recording shared", "recording", recordingID, "collaborators", len(sh.Collaborators))
	return sh.Clone(), nil
}

func (s *Store) UpdateCollaboratorRole(recordingID, userID string, role models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !role.Valid() {
		return s.fail(fmt.Errorf("role %q: %w", role, common.ErrInvalidArgument))
	}
	i := s.shareIndex(recordingID)
	if i < 0 {
		return s.fail(fmt.Errorf("share %s: %w", recordingID, common.ErrNotFound))
	}
	sh := &s.shares[i]
	j := slices.IndexFunc(sh.Collaborators, func(c models.Collaborator) bool { return c.UserID == userID })
	if j < 0 {
		return s.fail(fmt.Errorf("collaborator %s on %s: %w", userID, recordingID, common.ErrNotFound))
	}
	sh.Collaborators[j].Role = role

	s.succeed()
	s.persist()
	return nil
}

// RemoveCollaborator revokes one user. A share left without collaborators
// is removed.
func (s *Store) RemoveCollaborator(recordingID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.shareIndex(recordingID)
	if i < 0 {
		return s.fail(fmt.Errorf("share %s: %w", recordingID, common.ErrNotFound))
	}
	sh := &s.shares[i]
	j := slices.IndexFunc(sh.Collaborators, func(c models.Collaborator) bool { return c.UserID == userID })
	if j < 0 {
		return s.fail(fmt.Errorf("collaborator %s on %s: %w", userID, recordingID, common.ErrNotFound))
	}
	sh.Collaborators = slices.Delete(sh.Collaborators, j, j+1)
	if len(sh.Collaborators) == 0 {
		s.shares = slices.Delete(s.shares, i, i+1)
	}

	s.succeed()
	s.persist()
	return nil
}

func (s *Store) Unshare(recordingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.shareIndex(recordingID)
	if i < 0 {
		return s.fail(fmt.Errorf("share %s: %w", recordingID, common.ErrNotFound))
	}
	s.shares = slices.Delete(s.shares, i, i+1)

	s.succeed()
	s.persist()
	return nil
}

// ForgetRecording drops the share and all comments of a deleted recording.
func (s *Store) ForgetRecording(recordingID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.shares) + len(s.comments)
	s.shares = slices.DeleteFunc(s.shares, func(sh models.SharedRecording) bool { return sh.RecordingID == recordingID })
	s.comments = slices.DeleteFunc(s.comments, func(c models.Comment) bool { return c.RecordingID == recordingID })
	if len(s.shares)+len(s.comments) != n {
		s.persist()
	}
}
