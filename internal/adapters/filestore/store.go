package filestore

// Package filestore persists credentials as one file per key under a state
// directory, so a CLI session survives process restarts. Cross-process
// change delivery is poll-based: there is no portable change notification
// for plain files, so Watch compares directory contents on an interval.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/openshelf/biblio-admin/internal/ports"
)

const defaultPollInterval = 500 * time.Millisecond

// Store is a file-backed credential store.
type Store struct {
	dir          string
	pollInterval time.Duration
}

var _ ports.CredentialStore = (*Store)(nil)

// Options configure the file store.
type Options struct {
	// Dir is the state directory. Created with 0700 if missing.
	Dir string
	// PollInterval controls how often Watch scans for external changes.
	// Defaults to 500ms when zero.
	PollInterval time.Duration
}

// New creates a file store rooted at opts.Dir.
func New(opts Options) (*Store, error) {
	if opts.Dir == "" {
		return nil, errors.New("filestore: state directory is required")
	}
	if err := os.MkdirAll(opts.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	interval := opts.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	return &Store{dir: opts.Dir, pollInterval: interval}, nil
}

func (s *Store) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, "/\\") || key == "." || key == ".." {
		return "", fmt.Errorf("filestore: invalid key %q", key)
	}
	return filepath.Join(s.dir, key), nil
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read credential %q: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes atomically via a temp file so a concurrent reader never sees a
// partial credential.
func (s *Store) Set(_ context.Context, key, value string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp credential: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write credential %q: %w", key, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod credential %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close credential %q: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store credential %q: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credential %q: %w", key, err)
	}
	return nil
}

// Watch polls the state directory and emits a Change per observed diff.
// Delivery latency is bounded by the poll interval.
func (s *Store) Watch(ctx context.Context) (<-chan ports.Change, func(), error) {
	ch := make(chan ports.Change, 8)

	watchCtx, cancel := context.WithCancel(ctx)
	var once sync.Once
	stop := func() { once.Do(cancel) }

	go func() {
		defer close(ch)

		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()

		last := s.snapshot()
		for {
			select {
			case <-watchCtx.Done():
				return
			case <-ticker.C:
			}

			current := s.snapshot()
			for key, value := range current {
				if prev, ok := last[key]; !ok || prev != value {
					select {
					case ch <- ports.Change{Key: key, Value: value}:
					case <-watchCtx.Done():
						return
					}
				}
			}
			for key := range last {
				if _, ok := current[key]; !ok {
					select {
					case ch <- ports.Change{Key: key, Removed: true}:
					case <-watchCtx.Done():
						return
					}
				}
			}
			last = current
		}
	}()

	return ch, stop, nil
}

// snapshot reads every credential file in the state directory. Temp files
// from in-flight writes are skipped by their dot prefix.
func (s *Store) snapshot() map[string]string {
	out := make(map[string]string)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return out
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		out[name] = string(data)
	}
	return out
}
