// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// MemoryStore is a process-local [Store] backed by a mutex-guarded map.
//
// Expired sessions are treated as absent on read and physically removed by
// [MemoryStore.Cleanup].
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
	}
}

// Put implements [Store]. It never fails.
func (store *MemoryStore) Put(_ context.Context, token string, session Session) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.sessions[token] = session
	return nil
}

// Get implements [Store].
func (store *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}

	store.mu.RLock()
	session, ok := store.sessions[token]
	store.mu.RUnlock()

	if !ok || session.ExpiredAt(time.Now()) {
		return nil, nil
	}

	return &session, nil
}

// Delete implements [Store]. It never fails.
func (store *MemoryStore) Delete(_ context.Context, token string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.sessions, token)
	return nil
}

// Len returns the number of stored entries, including expired ones not yet cleaned up.
func (store *MemoryStore) Len() int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return len(store.sessions)
}

// # Expiry

// Cleanup removes every expired session and returns how many were removed.
func (store *MemoryStore) Cleanup(ctx context.Context) (int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	now := time.Now()
	removed := 0
	for token, session := range store.sessions {
		if session.ExpiredAt(now) {
			delete(store.sessions, token)
			removed++
		}
	}

	return removed, nil
}

// RunCleanup calls [MemoryStore.Cleanup] every interval until ctx is done.
// It blocks; start it in its own goroutine.
func (store *MemoryStore) RunCleanup(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Debug("session_cleanup_started", slog.Duration("interval", interval))

	for {
		select {
		case <-ticker.C:
			removed, err := store.Cleanup(ctx)
			if err != nil {
				continue
			}
			if removed > 0 {
				logger.Debug("session_cleanup_removed", slog.Int("count", removed))
			}
		case <-ctx.Done():
			logger.Debug("session_cleanup_stopped")
			return
		}
	}
}
