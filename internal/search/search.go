// Package search runs debounced product searches where a newer request of the same
// session cancels the one still in flight.
package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
)

// ErrSuperseded is returned to a caller whose search was replaced by a newer one.
var ErrSuperseded = fmt.Errorf("search superseded: %w", context.Canceled)

// Func performs the actual lookup.
type Func func(ctx context.Context, query string) ([]model.Product, error)

// Observer is notified about superseded searches.
type Observer interface {
	RecordSearchSuperseded()
}

type inflight struct {
	seq    uint64
	cancel context.CancelCauseFunc
}

// Searcher coordinates searches per session.
type Searcher struct {
	fn       Func
	debounce time.Duration
	observer Observer

	mu      sync.Mutex
	seq     uint64
	running map[string]inflight
}

// New creates Searcher. A zero debounce starts lookups immediately.
func New(fn Func, debounce time.Duration, observer Observer) *Searcher {
	return &Searcher{
		fn:       fn,
		debounce: debounce,
		observer: observer,
		running:  make(map[string]inflight),
	}
}

// Search waits for the debounce interval and runs the lookup unless a newer search
// for the same session arrives first.
func (s *Searcher) Search(ctx context.Context, session, query string) ([]model.Product, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	seq := s.begin(session, cancel)
	defer s.finish(session, seq, cancel)

	if s.debounce > 0 {
		timer := time.NewTimer(s.debounce)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, s.cause(ctx)
		case <-timer.C:
		}
	}

	products, err := s.fn(ctx, query)
	if ctx.Err() != nil {
		return nil, s.cause(ctx)
	}
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

func (s *Searcher) begin(session string, cancel context.CancelCauseFunc) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.running[session]; ok {
		prev.cancel(ErrSuperseded)
	}
	s.seq++
	s.running[session] = inflight{seq: s.seq, cancel: cancel}
	return s.seq
}

func (s *Searcher) finish(session string, seq uint64, cancel context.CancelCauseFunc) {
	s.mu.Lock()
	if cur, ok := s.running[session]; ok && cur.seq == seq {
		delete(s.running, session)
	}
	s.mu.Unlock()
	cancel(nil)
}

func (s *Searcher) cause(ctx context.Context) error {
	err := context.Cause(ctx)
	if errors.Is(err, ErrSuperseded) && s.observer != nil {
		s.observer.RecordSearchSuperseded()
	}
	return err
}

// Running reports the number of sessions with a search in flight.
func (s *Searcher) Running() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.running)
}
