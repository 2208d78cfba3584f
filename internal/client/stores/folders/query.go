package folders

import (
	"slices"

	"github.com/dmitrijs2005/voicememo/internal/client/models"
)

func (s *Store) Get(id string) (models.Folder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Folder{}, false
	}
	return s.folders[i], true
}

// List returns all folders in creation order.
func (s *Store) List() []models.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.folders)
}

// Subfolders returns the direct children of parentID; "" yields the roots.
func (s *Store) Subfolders(parentID string) []models.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Folder{}
	for _, f := range s.folders {
		if f.ParentID == parentID {
			out = append(out, f)
		}
	}
	return out
}

func (s *Store) RootFolders() []models.Folder {
	return s.Subfolders("")
}

// Path returns the ancestor chain from the root down to folderID, inclusive.
func (s *Store) Path(folderID string) []models.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path(folderID)
}

// path walks parent links upwards. A missing folder ends the walk early, and
// so does a folder seen twice, which only a corrupted snapshot can produce.
func (s *Store) path(folderID string) []models.Folder {
	var rev []models.Folder
	seen := map[string]struct{}{}
	for id := folderID; id != ""; {
		if _, ok := seen[id]; ok {
			break
		}
		seen[id] = struct{}{}

		i := s.indexOf(id)
		if i < 0 {
			break
		}
		rev = append(rev, s.folders[i])
		id = s.folders[i].ParentID
	}
	slices.Reverse(rev)
	if rev == nil {
		return []models.Folder{}
	}
	return rev
}
