package memstore

// Package memstore provides an in-process credential store. It backs unit
// tests and single-process runs, and fans writes out to watchers so several
// session controllers sharing one store converge like browser tabs do.

import (
	"context"
	"sync"

	"github.com/openshelf/biblio-admin/internal/ports"
)

// Store is an in-memory credential store safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	data     map[string]string
	watchers map[chan ports.Change]struct{}
}

var _ ports.CredentialStore = (*Store)(nil)

// New creates an empty in-memory credential store.
func New() *Store {
	return &Store{
		data:     make(map[string]string),
		watchers: make(map[chan ports.Change]struct{}),
	}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()

	s.notify(ports.Change{Key: key, Value: value})
	return nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	_, existed := s.data[key]
	delete(s.data, key)
	s.mu.Unlock()

	if existed {
		s.notify(ports.Change{Key: key, Removed: true})
	}
	return nil
}

// Watch registers a change listener. Every write is delivered to every
// watcher, including the writer's own; adopting a value you already hold is
// a no-op for the session controller, so self-delivery is harmless.
func (s *Store) Watch(ctx context.Context) (<-chan ports.Change, func(), error) {
	ch := make(chan ports.Change, 8)

	s.mu.Lock()
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.watchers, ch)
			s.mu.Unlock()
			close(ch)
		})
	}

	go func() {
		<-ctx.Done()
		stop()
	}()

	return ch, stop, nil
}

// notify delivers a change to all watchers without blocking; a watcher that
// has fallen behind misses the event rather than stalling writers.
func (s *Store) notify(change ports.Change) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.watchers {
		select {
		case ch <- change:
		default:
		}
	}
}
