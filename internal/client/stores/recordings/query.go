package recordings

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/voicememo/internal/client/models"
)

// Matches reports whether r satisfies every criterion set in f.
func Matches(f models.RecordingFilter, r models.Recording) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(r.Title), strings.ToLower(f.Search)) {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, r.Category) {
		return false
	}
	if len(f.Tags) > 0 && !slices.ContainsFunc(f.Tags, func(t string) bool { return slices.Contains(r.Tags, t) }) {
		return false
	}
	if f.DateFrom != nil && r.CreatedAt.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && r.CreatedAt.After(*f.DateTo) {
		return false
	}
	if f.MinDuration != nil && r.Duration < *f.MinDuration {
		return false
	}
	if f.MaxDuration != nil && r.Duration > *f.MaxDuration {
		return false
	}
	if f.IsFavorite != nil && r.IsFavorite != *f.IsFavorite {
		return false
	}
	if f.Storage != nil && r.StorageLocation != *f.Storage {
		return false
	}
	return true
}

// Filter returns the matching recordings in insertion order.
func (s *Store) Filter(f models.RecordingFilter) []models.Recording {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Recording, 0, len(s.items))
	for _, r := range s.items {
		if Matches(f, r) {
			out = append(out, r.Clone())
		}
	}
	return out
}

// Categories returns the distinct categories in use, in first-seen order.
func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[models.Category]struct{})
	out := []models.Category{}
	for _, r := range s.items {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	return out
}

// AllTags returns the distinct tags in use, in first-seen order.
func (s *Store) AllTags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range s.items {
		for _, t := range r.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
