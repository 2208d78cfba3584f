// Package recordings implements the recording store: the collection of voice
// memos with their markers, favorites, filtering and tag/category
// aggregation.
package recordings

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

// Store owns the recordings in insertion order.
type Store struct {
	mu        sync.RWMutex
	items     []models.Recording
	persister snapshot.Persister
	logger    logging.Logger
	now       stores.Clock
	newID     stores.IDFunc
}

// New builds the store and loads its last snapshot.
func New(ctx context.Context, p snapshot.Persister, l logging.Logger, opts ...Option) (*Store, error) {
	s := &Store{
		persister: p,
		logger:    l.With("module", "recordings"),
		now:       stores.SystemClock,
		newID:     stores.NewID,
	}
	for _, o := range opts {
		o(s)
	}

	var items []models.Recording
	if _, err := p.Load(ctx, stores.RecordingsKey, &items); err != nil {
		return nil, fmt.Errorf("load recordings: %w", err)
	}
	s.items = items
	s.logger.Debug(ctx, "recordings loaded", "count", len(items))
	return s, nil
}

// persist must be called with s.mu held.
func (s *Store) persist() {
	snap := s.items
	if snap == nil {
		snap = []models.Recording{}
	}
	s.persister.Save(stores.RecordingsKey, snap)
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(r models.Recording) bool { return r.ID == id })
}

// Add assigns a fresh id and timestamps and appends the recording.
func (s *Store) Add(in models.NewRecording) (models.Recording, error) {
	if in.Duration < 0 {
		return models.Recording{}, fmt.Errorf("duration %v: %w", in.Duration, common.ErrInvalidArgument)
	}
	if in.Category == "" {
		in.Category = models.CategoryNotes
	}
	if !in.Category.Valid() {
		return models.Recording{}, fmt.Errorf("category %q: %w", in.Category, common.ErrInvalidArgument)
	}
	if in.StorageLocation == "" {
		in.StorageLocation = models.StorageLocal
	}
	if !in.StorageLocation.Valid() {
		return models.Recording{}, fmt.Errorf("storage location %q: %w", in.StorageLocation, common.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	r := models.Recording{
		ID:              s.newID(),
		Title:           in.Title,
		Duration:        in.Duration,
		Size:            in.Size,
		CreatedAt:       now,
		UpdatedAt:       now,
		URI:             in.URI,
		Category:        in.Category,
		Tags:            slices.Clone(in.Tags),
		IsFavorite:      in.IsFavorite,
		IsEncrypted:     in.IsEncrypted,
		Transcription:   in.Transcription,
		Notes:           in.Notes,
		Markers:         make([]models.Marker, 0, len(in.Markers)),
		StorageLocation: in.StorageLocation,
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	for _, m := range in.Markers {
		if !r.MarkerInRange(m.Timestamp) {
			return models.Recording{}, fmt.Errorf("marker at %v: %w", m.Timestamp, common.ErrInvalidMarker)
		}
		r.Markers = append(r.Markers, models.Marker{ID: s.newID(), Timestamp: m.Timestamp, Label: m.Label, Note: m.Note})
	}

	s.items = append(s.items, r)
	s.persist()
	return r.Clone(), nil
}

// Update merges patch into the recording and refreshes UpdatedAt.
func (s *Store) Update(id string, patch models.RecordingPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("recording %s: %w", id, common.ErrNotFound)
	}
	r := s.items[i].Clone()

	if patch.Title != nil {
		r.Title = *patch.Title
	}
	if patch.Duration != nil {
		if *patch.Duration < 0 {
			return fmt.Errorf("duration %v: %w", *patch.Duration, common.ErrInvalidArgument)
		}
		r.Duration = *patch.Duration
		for _, m := range r.Markers {
			if !r.MarkerInRange(m.Timestamp) {
				return fmt.Errorf("marker %s at %v beyond new duration: %w", m.ID, m.Timestamp, common.ErrInvalidMarker)
			}
		}
	}
	if patch.Size != nil {
		r.Size = *patch.Size
	}
	if patch.URI != nil {
		r.URI = *patch.URI
	}
	if patch.Category != nil {
		if !patch.Category.Valid() {
			return fmt.Errorf("category %q: %w", *patch.Category, common.ErrInvalidArgument)
		}
		r.Category = *patch.Category
	}
	if patch.Tags != nil {
		r.Tags = slices.Clone(*patch.Tags)
		if r.Tags == nil {
			r.Tags = []string{}
		}
	}
	if patch.IsFavorite != nil {
		r.IsFavorite = *patch.IsFavorite
	}
	if patch.IsEncrypted != nil {
		r.IsEncrypted = *patch.IsEncrypted
	}
	if patch.Transcription != nil {
		r.Transcription = *patch.Transcription
	}
	if patch.Notes != nil {
		r.Notes = *patch.Notes
	}
	if patch.StorageLocation != nil {
		if !patch.StorageLocation.Valid() {
			return fmt.Errorf("storage location %q: %w", *patch.StorageLocation, common.ErrInvalidArgument)
		}
		r.StorageLocation = *patch.StorageLocation
	}

	r.UpdatedAt = stores.Stamp(s.now, r.UpdatedAt)
	s.items[i] = r
	s.persist()
	return nil
}

// Delete removes the recording. Folder membership and comments are left to
// their own stores.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("recording %s: %w", id, common.ErrNotFound)
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.persist()
	return nil
}

// ToggleFavorite flips IsFavorite.
func (s *Store) ToggleFavorite(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("recording %s: %w", id, common.ErrNotFound)
	}
	s.items[i].IsFavorite = !s.items[i].IsFavorite
	s.items[i].UpdatedAt = stores.Stamp(s.now, s.items[i].UpdatedAt)
	s.persist()
	return nil
}

func (s *Store) Get(id string) (models.Recording, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Recording{}, false
	}
	return s.items[i].Clone(), true
}

// List returns every recording in insertion order.
func (s *Store) List() []models.Recording {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Recording, len(s.items))
	for i, r := range s.items {
		out[i] = r.Clone()
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
