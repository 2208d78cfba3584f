package recordings

import (
	"fmt"
	"slices"

	"github.com/dmitrijs2005/voicememo/internal/client/models"
	"github.com/dmitrijs2005/voicememo/internal/client/stores"
	"github.com/dmitrijs2005/voicememo/internal/common"
)

func markerIndex(r models.Recording, markerID string) int {
	return slices.IndexFunc(r.Markers, func(m models.Marker) bool { return m.ID == markerID })
}

// AddMarker appends a marker with a fresh id to the recording.
func (s *Store) AddMarker(recordingID string, in models.NewMarker) (models.Marker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(recordingID)
	if i < 0 {
		return models.Marker{}, fmt.Errorf("recording %s: %w", recordingID, common.ErrNotFound)
	}
	r := &s.items[i]
	if !r.MarkerInRange(in.Timestamp) {
		return models.Marker{}, fmt.Errorf("marker at %v of %v: %w", in.Timestamp, r.Duration, common.ErrInvalidMarker)
	}

	m := models.Marker{ID: s.newID(), Timestamp: in.Timestamp, Label: in.Label, Note: in.Note}
	r.Markers = append(slices.Clone(r.Markers), m)
	r.UpdatedAt = stores.Stamp(s.now, r.UpdatedAt)
	s.persist()
	return m, nil
}

// UpdateMarker merges patch into one marker of the recording.
func (s *Store) UpdateMarker(recordingID, markerID string, patch models.MarkerPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(recordingID)
	if i < 0 {
		return fmt.Errorf("recording %s: %w", recordingID, common.ErrNotFound)
	}
	r := &s.items[i]
	j := markerIndex(*r, markerID)
	if j < 0 {
		return fmt.Errorf("marker %s: %w", markerID, common.ErrNotFound)
	}

	m := r.Markers[j]
	if patch.Timestamp != nil {
		if !r.MarkerInRange(*patch.Timestamp) {
			return fmt.Errorf("marker at %v of %v: %w", *patch.Timestamp, r.Duration, common.ErrInvalidMarker)
		}
		m.Timestamp = *patch.Timestamp
	}
	if patch.Label != nil {
		m.Label = *patch.Label
	}
	if patch.Note != nil {
		m.Note = *patch.Note
	}

	r.Markers = slices.Clone(r.Markers)
	r.Markers[j] = m
	r.UpdatedAt = stores.Stamp(s.now, r.UpdatedAt)
	s.persist()
	return nil
}

// DeleteMarker removes one marker of the recording.
func (s *Store) DeleteMarker(recordingID, markerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(recordingID)
	if i < 0 {
		return fmt.Errorf("recording %s: %w", recordingID, common.ErrNotFound)
	}
	r := &s.items[i]
	j := markerIndex(*r, markerID)
	if j < 0 {
		return fmt.Errorf("marker %s: %w", markerID, common.ErrNotFound)
	}

	r.Markers = slices.Delete(slices.Clone(r.Markers), j, j+1)
	r.UpdatedAt = stores.Stamp(s.now, r.UpdatedAt)
	s.persist()
	return nil
}
