package folders

import (
	"fmt"
	"maps"
	"slices"

	"github.com/dmitrijs2005/voicememo/internal/client/models"
	"github.com/dmitrijs2005/voicememo/internal/common"
)

// AddRecording puts the recording into the folder. Adding it twice is a
// no-op.
func (s *Store) AddRecording(folderID, recordingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(folderID) < 0 {
		return fmt.Errorf("folder %s: %w", folderID, common.ErrNotFound)
	}
	if s.addMember(folderID, recordingID) {
		s.persist()
	}
	return nil
}

// RemoveRecording takes the recording out of the folder.
func (s *Store) RemoveRecording(folderID, recordingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.removeMember(folderID, recordingID) {
		return fmt.Errorf("recording %s in folder %s: %w", recordingID, folderID, common.ErrNotFound)
	}
	s.persist()
	return nil
}

// MoveRecording removes the recording from source, if it is there, and adds
// it to target.
func (s *Store) MoveRecording(recordingID, sourceFolderID, targetFolderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(targetFolderID) < 0 {
		return fmt.Errorf("folder %s: %w", targetFolderID, common.ErrNotFound)
	}
	s.removeMember(sourceFolderID, recordingID)
	s.addMember(targetFolderID, recordingID)
	s.persist()
	return nil
}

// RecordingIDs returns the members of the folder in the order they were added.
func (s *Store) RecordingIDs(folderID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := slices.Clone(s.membership[folderID])
	if ids == nil {
		return []string{}
	}
	return ids
}

// FoldersOf returns the ids of the folders containing the recording, sorted.
func (s *Store) FoldersOf(recordingID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []string{}
	for _, folderID := range slices.Sorted(maps.Keys(s.membership)) {
		if slices.Contains(s.membership[folderID], recordingID) {
			out = append(out, folderID)
		}
	}
	return out
}

// ForgetRecording drops the recording from every folder and returns how
// many folders held it.
func (s *Store) ForgetRecording(recordingID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for folderID := range s.membership {
		if s.removeMember(folderID, recordingID) {
			n++
		}
	}
	if n > 0 {
		s.persist()
	}
	return n
}

// RecordingsInFolder joins the folder's membership against all, keeping the
// order of all.
func (s *Store) RecordingsInFolder(folderID string, all []models.Recording) []models.Recording {
	s.mu.RLock()
	members := s.membership[folderID]
	s.mu.RUnlock()

	out := []models.Recording{}
	for _, r := range all {
		if slices.Contains(members, r.ID) {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) addMember(folderID, recordingID string) bool {
	if slices.Contains(s.membership[folderID], recordingID) {
		return false
	}
	s.membership[folderID] = append(slices.Clone(s.membership[folderID]), recordingID)
	return true
}

func (s *Store) removeMember(folderID, recordingID string) bool {
	members := s.membership[folderID]
	i := slices.Index(members, recordingID)
	if i < 0 {
		return false
	}
	members = slices.Delete(slices.Clone(members), i, i+1)
	if len(members) == 0 {
		delete(s.membership, folderID)
	} else {
		s.membership[folderID] = members
	}
	return true
}
