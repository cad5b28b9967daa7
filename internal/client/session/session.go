// Package session owns the session credential: an opaque bearer token created
// on login/signup, attached to every outgoing request, and destroyed on
// logout. The token is persisted locally so it survives restarts, and a
// watcher picks up changes made by other processes sharing the same store.
package session

import (
	"context"
	"sync"
	"time"

	"pubkeeper/internal/client/repositories/metadata"
	"pubkeeper/internal/logging"
)

// tokenKey is the fixed metadata key the credential is stored under.
const tokenKey = "token"

// Event describes a login/logout transition.
type Event struct {
	LoggedIn bool
	// External is true when the transition was observed in the persisted
	// store rather than initiated through this process.
	External bool
}

// Store is the process-wide session credential holder. Mutation is confined
// to login/signup/logout paths; reads happen on every outgoing request.
type Store struct {
	repo metadata.Repository
	log  logging.Logger

	mu    sync.RWMutex
	token string
	subs  []func(Event)
}

func NewStore(repo metadata.Repository, log logging.Logger) *Store {
	return &Store{repo: repo, log: log.With("component", "session")}
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// LoggedIn reports whether a credential is present.
func (s *Store) LoggedIn() bool {
	return s.Token() != ""
}

// Subscribe registers a callback invoked on every login/logout transition.
// Callbacks run synchronously on the mutating goroutine and must be quick.
func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Set installs a new credential and persists it.
func (s *Store) Set(ctx context.Context, token string) error {
	if err := s.repo.Set(ctx, tokenKey, []byte(token)); err != nil {
		return err
	}
	s.apply(token, false)
	return nil
}

// Clear destroys the credential, both in memory and in the persisted store.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, tokenKey); err != nil {
		return err
	}
	s.apply("", false)
	return nil
}

// Restore loads a previously persisted credential, if any. Called once at
// startup; subscribers are notified when a session is found.
func (s *Store) Restore(ctx context.Context) error {
	value, err := s.repo.Get(ctx, tokenKey)
	if err != nil {
		return err
	}
	if len(value) == 0 {
		return nil
	}
	s.apply(string(value), false)
	return nil
}

// Watch polls the persisted store and applies externally made changes, the
// moral equivalent of the browser's cross-tab storage notification. Blocks
// until ctx is done.
func (s *Store) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			value, err := s.repo.Get(ctx, tokenKey)
			if err != nil {
				s.log.Warn(ctx, "session poll failed", "err", err)
				continue
			}
			persisted := string(value)
			if persisted != s.Token() {
				s.log.Info(ctx, "session changed externally", "logged_in", persisted != "")
				s.apply(persisted, true)
			}

		case <-ctx.Done():
			return
		}
	}
}

func (s *Store) apply(token string, external bool) {
	s.mu.Lock()
	changed := s.token != token
	s.token = token
	subs := make([]func(Event), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	if !changed {
		return
	}
	ev := Event{LoggedIn: token != "", External: external}
	for _, fn := range subs {
		fn(ev)
	}
}
