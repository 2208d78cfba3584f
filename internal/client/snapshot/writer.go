// Package snapshot persists store state as whole JSON documents.
//
// Stores call Save after every mutation, while still holding their own lock,
// so the marshalled document is consistent. The document is queued and
// written by a single background goroutine; a newer document for the same key
// replaces a queued older one. Callers never wait for the write. Flush blocks
// until everything queued so far has been attempted, Close flushes and stops
// the goroutine.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/voicememo/internal/client/repositories/kv"
	"github.com/dmitrijs2005/voicememo/internal/logging"
)

// Persister is the persistence surface used by the stores.
type Persister interface {
	// Load decodes the document stored under key into dst. It reports false
	// when nothing is stored yet.
	Load(ctx context.Context, key string, dst any) (bool, error)
	// Save queues v for writing under key.
	Save(key string, v any)
	// Remove queues the deletion of key.
	Remove(key string)
}

var ErrClosed = errors.New("snapshot writer closed")

const defaultWriteTimeout = 5 * time.Second

type op struct {
	data   []byte
	remove bool
}

type Writer struct {
	repo         kv.Repository
	logger       logging.Logger
	writeTimeout time.Duration

	mu      sync.Mutex
	pending map[string]op
	closed  bool
	lastErr error

	wake     chan struct{}
	flushes  chan chan error
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewWriter starts the background writer over repo.
func NewWriter(repo kv.Repository, logger logging.Logger) *Writer {
	w := &Writer{
		repo:         repo,
		logger:       logger.With("module", "snapshot"),
		writeTimeout: defaultWriteTimeout,
		pending:      make(map[string]op),
		wake:         make(chan struct{}, 1),
		flushes:      make(chan chan error),
		quit:         make(chan struct{}),
		done:         make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Writer) Load(ctx context.Context, key string, dst any) (bool, error) {
	data, err := w.repo.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	return true, nil
}

func (w *Writer) Save(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.logger.Error(context.Background(), "snapshot encode failed", "key", key, "error", err)
		return
	}
	w.enqueue(key, op{data: data})
}

func (w *Writer) Remove(key string) {
	w.enqueue(key, op{remove: true})
}

// Pending returns the number of keys waiting to be written.
func (w *Writer) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

// Flush waits until every document queued before the call has been written
// and returns the errors of that pass.
func (w *Writer) Flush(ctx context.Context) error {
	reply := make(chan error, 1)
	select {
	case w.flushes <- reply:
	case <-w.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close writes what is still queued and stops the writer. Saves issued after
// Close are dropped with a warning.
func (w *Writer) Close(ctx context.Context) error {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()
		close(w.quit)
	})

	select {
	case <-w.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

func (w *Writer) enqueue(key string, o op) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.logger.Warn(context.Background(), "snapshot dropped, writer closed", "key", key)
		return
	}
	w.pending[key] = o
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *Writer) run() {
	defer close(w.done)

	for {
		select {
		case <-w.wake:
			w.drain()
		case reply := <-w.flushes:
			reply <- w.drain()
		case <-w.quit:
			err := w.drain()
			w.mu.Lock()
			w.lastErr = err
			w.mu.Unlock()
			return
		}
	}
}

// drain writes the current batch. Failed keys go back to the queue unless a
// newer document arrived meanwhile; they are retried on the next pass.
func (w *Writer) drain() error {
	w.mu.Lock()
	batch := w.pending
	w.pending = make(map[string]op)
	w.mu.Unlock()

	var errs []error
	for _, key := range slices.Sorted(maps.Keys(batch)) {
		o := batch[key]
		if err := w.write(key, o); err != nil {
			w.logger.Error(context.Background(), "snapshot write failed", "key", key, "error", err)
			errs = append(errs, err)

			w.mu.Lock()
			if _, newer := w.pending[key]; !newer {
				w.pending[key] = o
			}
			w.mu.Unlock()
			continue
		}
		w.logger.Debug(context.Background(), "snapshot written", "key", key, "bytes", len(o.data), "removed", o.remove)
	}
	return errors.Join(errs...)
}

func (w *Writer) write(key string, o op) error {
	ctx, cancel := context.WithTimeout(context.Background(), w.writeTimeout)
	defer cancel()

	if o.remove {
		return w.repo.Delete(ctx, key)
	}
	return w.repo.Set(ctx, key, o.data)
}
