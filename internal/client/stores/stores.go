// Package stores holds what the client stores share: clocks, id generation
// and the persist keys under which each store keeps its snapshot.
package stores

import (
	"time"

	"github.com/google/uuid"
)

// Persist keys, one per store.
const (
	RecordingsKey    = "recordings-storage"
	FoldersKey       = "folders-storage"
	CollaborationKey = "collaboration-storage"
	SettingsKey      = "settings-storage"
	AuthKey          = "auth-storage"
)

// Clock returns the current time.
type Clock func() time.Time

// SystemClock is the wall clock in UTC.
func SystemClock() time.Time { return time.Now().UTC() }

// IDFunc returns a fresh unique id.
type IDFunc func() string

// NewID returns a random UUID string.
func NewID() string { return uuid.NewString() }

// Stamp returns the clock's time, nudged forward when it would not be
// strictly after prev, so successive updates of one entity always order.
func Stamp(clock Clock, prev time.Time) time.Time {
	now := clock()
	if !now.After(prev) {
		return prev.Add(time.Nanosecond)
	}
	return now
}
