package collaboration

import "github.com/dmitrijs2005/voicememo/internal/client/models"

// SharedRecording returns the share of the recording, if any.
func (s *Store) SharedRecording(recordingID string) (models.SharedRecording, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.shareIndex(recordingID)
	if i < 0 {
		return models.SharedRecording{}, false
	}
	return s.shares[i].Clone(), true
}

// Shares returns every share.
func (s *Store) Shares() []models.SharedRecording {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.SharedRecording, 0, len(s.shares))
	for _, sh := range s.shares {
		out = append(out, sh.Clone())
	}
	return out
}

// CommentsFor returns the comments on the recording in the order they were
// added.
func (s *Store) CommentsFor(recordingID string) []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Comment{}
	for _, c := range s.comments {
		if c.RecordingID == recordingID {
			out = append(out, c)
		}
	}
	return out
}

// RecordingIDsSharedWithMe lists recordings where the signed-in user is a
// collaborator.
func (s *Store) RecordingIDsSharedWithMe() []string {
	return s.sharedIDs(func(me models.User, sh models.SharedRecording) bool {
		return sh.HasCollaborator(me.ID)
	})
}

// RecordingIDsSharedByMe lists recordings the signed-in user has shared.
func (s *Store) RecordingIDsSharedByMe() []string {
	return s.sharedIDs(func(me models.User, sh models.SharedRecording) bool {
		return sh.SharedBy == me.ID
	})
}

func (s *Store) sharedIDs(match func(models.User, models.SharedRecording) bool) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []string{}
	me, err := s.currentUser()
	if err != nil {
		return out
	}
	for _, sh := range s.shares {
		if match(me, sh) {
			out = append(out, sh.RecordingID)
		}
	}
	return out
}
