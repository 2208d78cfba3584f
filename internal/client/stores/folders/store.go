// Package folders implements the folder tree and the recording membership
// index. Membership is kept here, not on the recording, so the recording
// store and the folder store stay independent.
package folders

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

type Option func(*Store)

func WithClock(c stores.Clock) Option { return func(s *Store) { s.now = c } }

func WithIDs(f stores.IDFunc) Option { return func(s *Store) { s.newID = f } }

// state is the persisted document.
type state struct {
	Folders    []models.Folder     `json:"folders"`
	Membership map[string][]string `json:"membership"`
}

type Store struct {
	mu         sync.RWMutex
	folders    []models.Folder
	membership map[string][]string
	persister  snapshot.Persister
	logger     logging.Logger
	now        stores.Clock
	newID      stores.IDFunc
}

// New builds the store and loads its last snapshot.
func New(ctx context.Context, p snapshot.Persister, l logging.Logger, opts ...Option) (*Store, error) {
	s := &Store{
		persister:  p,
		logger:     l.With("module", "folders"),
		now:        stores.SystemClock,
		newID:      stores.NewID,
		membership: make(map[string][]string),
	}
	for _, o := range opts {
		o(s)
	}

	var st state
	if _, err := p.Load(ctx, stores.FoldersKey, &st); err != nil {
		return nil, fmt.Errorf("load folders: %w", err)
	}
	s.folders = st.Folders
	if st.Membership != nil {
		s.membership = st.Membership
	}
	s.logger.Debug(ctx, "folders loaded", "count", len(s.folders))
	return s, nil
}

// persist must be called with s.mu held.
func (s *Store) persist() {
	st := state{Folders: s.folders, Membership: s.membership}
	if st.Folders == nil {
		st.Folders = []models.Folder{}
	}
	s.persister.Save(stores.FoldersKey, st)
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.folders, func(f models.Folder) bool { return f.ID == id })
}

// Create adds a folder. The parent is not required to exist.
func (s *Store) Create(in models.NewFolder) models.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	f := models.Folder{
		ID:        s.newID(),
		Name:      in.Name,
		ParentID:  in.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
		Color:     in.Color,
		Icon:      in.Icon,
	}
	s.folders = append(s.folders, f)
	s.persist()
	return f
}

func (s *Store) Update(id string, patch models.FolderPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("folder %s: %w", id, common.ErrNotFound)
	}
	f := &s.folders[i]
	if patch.Name != nil {
		f.Name = *patch.Name
	}
	if patch.Color != nil {
		f.Color = *patch.Color
	}
	if patch.Icon != nil {
		f.Icon = *patch.Icon
	}
	f.UpdatedAt = stores.Stamp(s.now, f.UpdatedAt)
	s.persist()
	return nil
}

// descendants returns every folder below id, breadth first.
func (s *Store) descendants(id string) []string {
	var out []string
	seen := map[string]struct{}{id: {}}
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, f := range s.folders {
			if f.ParentID != cur {
				continue
			}
			if _, ok := seen[f.ID]; ok {
				continue
			}
			seen[f.ID] = struct{}{}
			out = append(out, f.ID)
			queue = append(queue, f.ID)
		}
	}
	return out
}

// Delete removes the folder and its whole subtree together with their
// membership entries, and returns the removed ids. Recordings are untouched.
func (s *Store) Delete(id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return nil, fmt.Errorf("folder %s: %w", id, common.ErrNotFound)
	}

	removed := append([]string{id}, s.descendants(id)...)
	s.folders = slices.DeleteFunc(s.folders, func(f models.Folder) bool { return slices.Contains(removed, f.ID) })
	for _, r := range removed {
		delete(s.membership, r)
	}
	s.persist()
	s.logger.Debug(context.Background(), "folder deleted", "id", id, "subtree", len(removed))
	return removed, nil
}

// Move reparents a folder. An empty newParentID moves it to the root.
// Unlike Create, a non-empty newParentID must name an existing folder or
// Move fails with common.ErrNotFound. Moving a folder under itself or one
// of its descendants fails with common.ErrCycle and changes nothing.
func (s *Store) Move(folderID, newParentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(folderID)
	if i < 0 {
		return fmt.Errorf("folder %s: %w", folderID, common.ErrNotFound)
	}
	if newParentID != "" {
		if s.indexOf(newParentID) < 0 {
			return fmt.Errorf("target folder %s: %w", newParentID, common.ErrNotFound)
		}
		for _, a := range s.path(newParentID) {
			if a.ID == folderID {
				return fmt.Errorf("move %s under %s: %w", folderID, newParentID, common.ErrCycle)
			}
		}
	}

	s.folders[i].ParentID = newParentID
	s.folders[i].UpdatedAt = stores.Stamp(s.now, s.folders[i].UpdatedAt)
	s.persist()
	return nil
}
