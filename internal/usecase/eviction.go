package usecase

import (
	"context"
	"log/slog"
	"time"
)

const maxEvictionInterval = 5 * time.Minute

// EvictIdle ends in-memory sessions neither opened nor edited within maxIdle. Their
// autosaved copies stay recoverable by key. Sessions that are busy or have a
// calculation or submission in flight are kept.
func (u *DraftUseCase) EvictIdle(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}
	cutoff := u.now().Add(-maxIdle)

	u.mu.Lock()
	evicted := 0
	for id, s := range u.sessions {
		if !s.mu.TryLock() {
			continue
		}
		d := s.draft
		idle := s.since.Before(cutoff) && d.UpdatedAt.Before(cutoff) &&
			!d.Pending.Calculating && !d.Pending.Submitting
		key := d.Key
		s.mu.Unlock()
		if !idle {
			continue
		}

		delete(u.sessions, id)
		if u.keys[key] == id {
			delete(u.keys, key)
		}
		evicted++
	}
	active := len(u.sessions)
	u.mu.Unlock()

	if evicted > 0 {
		u.observer.SetActiveDrafts(active)
		u.logger.Info("idle draft sessions evicted", slog.Int("count", evicted), slog.Int("active", active))
	}
	return evicted
}

// RunEviction calls EvictIdle periodically until ctx is done.
func (u *DraftUseCase) RunEviction(ctx context.Context, maxIdle time.Duration) {
	if maxIdle <= 0 {
		return
	}
	ticker := time.NewTicker(evictionInterval(maxIdle))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			u.EvictIdle(maxIdle)
		}
	}
}

func evictionInterval(maxIdle time.Duration) time.Duration {
	return max(min(maxIdle/4, maxEvictionInterval), time.Millisecond)
}
