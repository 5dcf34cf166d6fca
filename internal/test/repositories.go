package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	domainErrors "github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/errors"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
)

// DraftRepositoryStub stores drafts in-memory for tests.
type DraftRepositoryStub struct {
	mu      sync.Mutex
	Drafts  map[string]*model.Draft
	SaveErr error
	GetErr  error
	Saves   int
	Deletes int
	SaveFn  func(context.Context, *model.Draft) error
}

// NewDraftRepositoryStub constructs an empty repository.
func NewDraftRepositoryStub() *DraftRepositoryStub {
	return &DraftRepositoryStub{Drafts: make(map[string]*model.Draft)}
}

// Save stores a copy of draft under its key.
func (s *DraftRepositoryStub) Save(ctx context.Context, draft *model.Draft) error {
	if s.SaveFn != nil {
		if err := s.SaveFn(ctx, draft); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Saves++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	if s.Drafts == nil {
		s.Drafts = make(map[string]*model.Draft)
	}
	s.Drafts[draft.Key] = draft.Clone()
	return nil
}

// GetByKey returns the stored draft or not found.
func (s *DraftRepositoryStub) GetByKey(_ context.Context, key string) (*model.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	d, ok := s.Drafts[key]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return d.Clone(), nil
}

// Delete removes the stored draft; missing keys are ignored.
func (s *DraftRepositoryStub) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deletes++
	delete(s.Drafts, key)
	return nil
}

// Stored reports the draft saved under key.
func (s *DraftRepositoryStub) Stored(key string) (*model.Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.Drafts[key]
	return d, ok
}

// ReferenceCacheStub keeps a single bundle in memory.
type ReferenceCacheStub struct {
	mu     sync.Mutex
	Data   *model.ReferenceData
	GetErr error
	SetErr error
	Sets   int
}

// Get returns the cached bundle or not found.
func (s *ReferenceCacheStub) Get(context.Context) (*model.ReferenceData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	if s.Data == nil {
		return nil, domainErrors.ErrNotFound
	}
	return s.Data, nil
}

// Set stores the bundle.
func (s *ReferenceCacheStub) Set(_ context.Context, data *model.ReferenceData, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sets++
	if s.SetErr != nil {
		return s.SetErr
	}
	s.Data = data
	return nil
}

// ResourceAPIStub serves canned listings and order endpoint responses.
type ResourceAPIStub struct {
	mu         sync.Mutex
	Lists      map[string][]json.RawMessage
	ListErrs   map[string]error
	Items      map[string]json.RawMessage
	ListCalls  map[string]int
	ListFn     func(context.Context, string, url.Values) ([]json.RawMessage, error)
	CalcFn     func(context.Context, any) (model.Totals, error)
	SubmitFn   func(context.Context, any) (json.RawMessage, error)
	Calculated []any
	Submitted  []any
}

// List returns the canned listing of resource.
func (s *ResourceAPIStub) List(ctx context.Context, resource string, query url.Values) ([]json.RawMessage, error) {
	s.mu.Lock()
	if s.ListCalls == nil {
		s.ListCalls = make(map[string]int)
	}
	s.ListCalls[resource]++
	fn := s.ListFn
	err := s.ListErrs[resource]
	items := s.Lists[resource]
	s.mu.Unlock()

	if fn != nil {
		return fn(ctx, resource, query)
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Calls reports how many times resource was listed.
func (s *ResourceAPIStub) Calls(resource string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ListCalls[resource]
}

// Get returns the canned item stored under "resource/id".
func (s *ResourceAPIStub) Get(_ context.Context, resource string, id model.ID) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item, ok := s.Items[resource+"/"+id.String()]; ok {
		return item, nil
	}
	return nil, fmt.Errorf("%s %s: %w", resource, id, domainErrors.ErrNotFound)
}

// Calculate records the request and returns configured totals.
func (s *ResourceAPIStub) Calculate(ctx context.Context, order any) (model.Totals, error) {
	s.mu.Lock()
	s.Calculated = append(s.Calculated, order)
	fn := s.CalcFn
	s.mu.Unlock()
	if fn != nil {
		return fn(ctx, order)
	}
	return model.Totals{}, nil
}

// SubmitOrder records the payload and returns the created order.
func (s *ResourceAPIStub) SubmitOrder(ctx context.Context, order any) (json.RawMessage, error) {
	s.mu.Lock()
	s.Submitted = append(s.Submitted, order)
	fn := s.SubmitFn
	s.mu.Unlock()
	if fn != nil {
		return fn(ctx, order)
	}
	return json.RawMessage(`{"id":1}`), nil
}

// ObserverStub records metric events in memory.
type ObserverStub struct {
	mu           sync.Mutex
	Calculations []error
	Submissions  []error
	Autosaves    []error
	Loads        []string
	Superseded   int
	Backlog      int
	ActiveDrafts int
}

func (o *ObserverStub) RecordCalculation(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Calculations = append(o.Calculations, err)
}

func (o *ObserverStub) RecordSubmission(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Submissions = append(o.Submissions, err)
}

func (o *ObserverStub) RecordAutosave(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Autosaves = append(o.Autosaves, err)
}

func (o *ObserverStub) RecordReferenceLoad(source string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Loads = append(o.Loads, source)
}

func (o *ObserverStub) RecordSearchSuperseded() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Superseded++
}

func (o *ObserverStub) SetAutosaveBacklog(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Backlog = n
}

func (o *ObserverStub) SetActiveDrafts(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ActiveDrafts = n
}

// AutosaveCount reports how many autosave outcomes were recorded.
func (o *ObserverStub) AutosaveCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.Autosaves)
}

// Active reports the last active draft gauge value.
func (o *ObserverStub) Active() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.ActiveDrafts
}

// AutosaverStub records scheduled saves without running a worker.
type AutosaverStub struct {
	mu        sync.Mutex
	Enqueued  []*model.Draft
	Discarded []string
}

func (a *AutosaverStub) Enqueue(draft *model.Draft) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Enqueued = append(a.Enqueued, draft)
}

func (a *AutosaverStub) Discard(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Discarded = append(a.Discarded, key)
}

// Last returns the most recently enqueued snapshot.
func (a *AutosaverStub) Last() *model.Draft {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.Enqueued) == 0 {
		return nil
	}
	return a.Enqueued[len(a.Enqueued)-1]
}
