package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/repository"
)

const (
	defaultSweepInterval = time.Second
	flushTimeout         = 5 * time.Second
)

// SaveObserver receives autosave outcomes and backlog size.
type SaveObserver interface {
	RecordAutosave(err error)
	SetAutosaveBacklog(n int)
}

type saveOp struct {
	draft  *model.Draft
	delete bool
}

// DraftSaver persists draft snapshots in the background. Operations are coalesced by
// draft key so only the latest snapshot of a key is written, and a key is never
// written by two workers at once.
type DraftSaver struct {
	repo     repository.DraftRepository
	observer SaveObserver
	workers  int
	sweep    time.Duration
	logger   *slog.Logger

	jobs chan string

	state   sync.Mutex
	pending map[string]saveOp
	queued  map[string]bool
	busy    map[string]bool

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewDraftSaver constructs the autosave worker pool.
func NewDraftSaver(repo repository.DraftRepository, observer SaveObserver, workers, queue int, logger *slog.Logger) *DraftSaver {
	if workers <= 0 {
		workers = 1
	}
	if queue <= 0 {
		queue = workers
	}
	return &DraftSaver{
		repo:     repo,
		observer: observer,
		workers:  workers,
		sweep:    defaultSweepInterval,
		logger:   logger,
		jobs:     make(chan string, queue),
		pending:  make(map[string]saveOp),
		queued:   make(map[string]bool),
		busy:     make(map[string]bool),
	}
}

// Enqueue schedules a snapshot for saving. It never blocks.
func (p *DraftSaver) Enqueue(draft *model.Draft) {
	p.submit(draft.Key, saveOp{draft: draft})
}

// Discard schedules removal of the saved draft, superseding any pending snapshot.
func (p *DraftSaver) Discard(key string) {
	p.submit(key, saveOp{delete: true})
}

func (p *DraftSaver) submit(key string, op saveOp) {
	p.state.Lock()
	p.pending[key] = op
	backlog := len(p.pending)
	p.state.Unlock()

	p.observer.SetAutosaveBacklog(backlog)
	p.signal(key)
}

// signal queues key for a worker unless it is already queued. When the queue is full
// the key stays pending and the sweep picks it up.
func (p *DraftSaver) signal(key string) {
	p.state.Lock()
	defer p.state.Unlock()

	if p.queued[key] {
		return
	}
	select {
	case p.jobs <- key:
		p.queued[key] = true
	default:
	}
}

// Start launches background processing.
func (p *DraftSaver) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish and writes whatever is still pending.
func (p *DraftSaver) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	p.Flush(ctx)
}

// Flush writes every pending operation synchronously.
func (p *DraftSaver) Flush(ctx context.Context) {
	p.state.Lock()
	keys := make([]string, 0, len(p.pending))
	for key := range p.pending {
		keys = append(keys, key)
	}
	p.state.Unlock()

	for _, key := range keys {
		if ctx.Err() != nil {
			return
		}
		p.process(ctx, key)
	}
}

func (p *DraftSaver) dispatch(ctx context.Context) {
	defer p.wg.Done()
	ticker := time.NewTicker(p.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, key := range p.pendingKeys() {
				p.signal(key)
			}
		}
	}
}

func (p *DraftSaver) pendingKeys() []string {
	p.state.Lock()
	defer p.state.Unlock()
	keys := make([]string, 0, len(p.pending))
	for key := range p.pending {
		if !p.queued[key] && !p.busy[key] {
			keys = append(keys, key)
		}
	}
	return keys
}

func (p *DraftSaver) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case key := <-p.jobs:
			p.state.Lock()
			delete(p.queued, key)
			p.state.Unlock()
			p.process(ctx, key)
		}
	}
}

// process writes the latest operation of key, repeating while newer ones arrive.
// An operation interrupted by ctx goes back to pending unless a newer one replaced it.
func (p *DraftSaver) process(ctx context.Context, key string) {
	for {
		p.state.Lock()
		if p.busy[key] {
			p.state.Unlock()
			return
		}
		op, ok := p.pending[key]
		if !ok {
			p.state.Unlock()
			return
		}
		delete(p.pending, key)
		p.busy[key] = true
		backlog := len(p.pending)
		p.state.Unlock()

		p.observer.SetAutosaveBacklog(backlog)
		err := p.apply(ctx, key, op)

		p.state.Lock()
		delete(p.busy, key)
		if err != nil && ctx.Err() != nil {
			if _, newer := p.pending[key]; !newer {
				p.pending[key] = op
			}
			backlog = len(p.pending)
			p.state.Unlock()
			p.observer.SetAutosaveBacklog(backlog)
			return
		}
		_, more := p.pending[key]
		p.state.Unlock()
		if !more {
			return
		}
	}
}

func (p *DraftSaver) apply(ctx context.Context, key string, op saveOp) error {
	var err error
	if op.delete {
		err = p.repo.Delete(ctx, key)
	} else {
		err = p.repo.Save(ctx, op.draft)
	}
	if err != nil && ctx.Err() != nil {
		p.logger.Warn("draft autosave interrupted",
			slog.String("key", key),
			slog.Bool("delete", op.delete),
			slog.String("error", err.Error()),
		)
		return err
	}
	p.observer.RecordAutosave(err)
	if err != nil {
		p.logger.Error("draft autosave failed",
			slog.String("key", key),
			slog.Bool("delete", op.delete),
			slog.String("error", err.Error()),
		)
	}
	return err
}
