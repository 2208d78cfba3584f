package collaboration

import (
	"fmt"
	"slices"

	"github.com/dmitrijs2005/voicememo/internal/client/models"
	"github.com/dmitrijs2005/voicememo/internal/client/stores"
	"github.com/dmitrijs2005/voicememo/internal/common"
)

// AddComment appends a comment. It needs a signed-in user, who is also the
// author unless in.UserID says otherwise.
func (s *Store) AddComment(in models.NewComment) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.currentUser()
	if err != nil {
		return models.Comment{}, s.fail(err)
	}
	if in.Timestamp < 0 {
		return models.Comment{}, s.fail(fmt.Errorf("comment timestamp %v: %w", in.Timestamp, common.ErrInvalidArgument))
	}
	if in.UserID == "" {
		in.UserID = me.ID
	}

	now := s.now()
	c := models.Comment{
		ID:          s.newID(),
		RecordingID: in.RecordingID,
		UserID:      in.UserID,
		Content:     in.Content,
		Timestamp:   in.Timestamp,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.comments = append(s.comments, c)

	s.succeed()
	s.persist()
	return c, nil
}

func (s *Store) commentIndex(id string) int {
	return slices.IndexFunc(s.comments, func(c models.Comment) bool { return c.ID == id })
}

func (s *Store) UpdateComment(id, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.commentIndex(id)
	if i < 0 {
		return s.fail(fmt.Errorf("comment %s: %w", id, common.ErrNotFound))
	}
	c := &s.comments[i]
	c.Content = content
	c.UpdatedAt = stores.Stamp(s.now, c.UpdatedAt)

	s.succeed()
	s.persist()
	return nil
}

func (s *Store) DeleteComment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.commentIndex(id)
	if i < 0 {
		return s.fail(fmt.Errorf("comment %s: %w", id, common.ErrNotFound))
	}
	s.comments = slices.Delete(s.comments, i, i+1)

	s.succeed()
	s.persist()
	return nil
}
