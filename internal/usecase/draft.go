package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	domainErrors "github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/errors"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/repository"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/engine/composition"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/engine/dimension"
)

// DefaultDraftKey is the recovery key used when the client does not pick one.
const DefaultDraftKey = "order-draft"

// ReferenceSource provides the reference bundle.
type ReferenceSource interface {
	Load(ctx context.Context) (*model.ReferenceData, error)
}

// Autosaver persists draft snapshots in the background.
type Autosaver interface {
	Enqueue(draft *model.Draft)
	Discard(key string)
}

// OrderAPI is the part of the resource API used by the editing session.
type OrderAPI interface {
	Get(ctx context.Context, resource string, id model.ID) (json.RawMessage, error)
	Calculate(ctx context.Context, order any) (model.Totals, error)
	SubmitOrder(ctx context.Context, order any) (json.RawMessage, error)
}

// DraftObserver receives draft session metrics.
type DraftObserver interface {
	RecordCalculation(err error)
	RecordSubmission(err error)
	SetActiveDrafts(n int)
}

type session struct {
	mu    sync.Mutex
	draft *model.Draft
	since time.Time
}

// DraftUseCase owns the in-memory editing sessions. Each draft is guarded by its own lock;
// edits are applied to a copy and committed only when they succeed.
type DraftUseCase struct {
	reference         ReferenceSource
	drafts            repository.DraftRepository
	saver             Autosaver
	api               OrderAPI
	observer          DraftObserver
	validate          *validator.Validate
	fallbackPriceType model.ID
	logger            *slog.Logger
	now               func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
	keys     map[string]uuid.UUID
}

// DraftDeps groups DraftUseCase collaborators.
type DraftDeps struct {
	Reference         ReferenceSource
	Drafts            repository.DraftRepository
	Saver             Autosaver
	API               OrderAPI
	Observer          DraftObserver
	Validate          *validator.Validate
	FallbackPriceType model.ID
	Logger            *slog.Logger
}

// NewDraftUseCase constructs DraftUseCase.
func NewDraftUseCase(deps DraftDeps) *DraftUseCase {
	validate := deps.Validate
	if validate == nil {
		validate = validator.New()
	}
	validate.RegisterTagNameFunc(jsonFieldName)
	return &DraftUseCase{
		reference:         deps.Reference,
		drafts:            deps.Drafts,
		saver:             deps.Saver,
		api:               deps.API,
		observer:          deps.Observer,
		validate:          validate,
		fallbackPriceType: deps.FallbackPriceType,
		logger:            deps.Logger,
		now:               time.Now,
		sessions:          make(map[uuid.UUID]*session),
		keys:              make(map[string]uuid.UUID),
	}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// Create starts a new draft with one table holding one default door.
// A previous session with the same key is replaced.
func (u *DraftUseCase) Create(ctx context.Context, key string, doorType model.DoorType) (*model.Draft, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		key = DefaultDraftKey
	}
	if doorType == "" {
		doorType = model.DoorTypeWood
	}
	if _, err := model.ParseDoorType(string(doorType)); err != nil {
		return nil, err
	}

	ref, err := u.reference.Load(ctx)
	if err != nil {
		return nil, err
	}

	draft := &model.Draft{
		ID:     uuid.New(),
		Key:    key,
		Form:   model.OrderForm{DoorType: doorType},
		Tables: []model.Table{},
	}
	if _, err := composition.AddTable(draft, defaults(draft, ref)); err != nil {
		return nil, err
	}
	draft.UpdatedAt = u.now()

	u.register(draft)
	u.saver.Enqueue(draft.Clone())
	return draft.Clone(), nil
}

// Get returns a snapshot of the draft.
func (u *DraftUseCase) Get(_ context.Context, id uuid.UUID) (*model.Draft, error) {
	s, err := u.session(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone(), nil
}

// Discard ends the session and removes the saved copy.
func (u *DraftUseCase) Discard(_ context.Context, id uuid.UUID) error {
	s, err := u.session(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	key := s.draft.Key
	s.mu.Unlock()

	u.unregister(id, key)
	u.saver.Discard(key)
	return nil
}

// Recover resumes the draft saved under key. A live session with that key wins over
// the stored copy.
func (u *DraftUseCase) Recover(ctx context.Context, key string) (*model.Draft, error) {
	u.mu.RLock()
	id, ok := u.keys[key]
	u.mu.RUnlock()
	if ok {
		if draft, err := u.Get(ctx, id); err == nil {
			return draft, nil
		}
	}

	draft, err := u.drafts.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	draft.Key = key
	draft.Pending = model.Pending{}
	for i := range draft.Tables {
		for j := range draft.Tables[i].Doors {
			draft.Tables[i].Doors[j].Normalize()
		}
	}
	u.register(draft)
	return draft.Clone(), nil
}

func (u *DraftUseCase) register(draft *model.Draft) {
	u.mu.Lock()
	if prev, ok := u.keys[draft.Key]; ok && prev != draft.ID {
		delete(u.sessions, prev)
	}
	u.sessions[draft.ID] = &session{draft: draft, since: u.now()}
	u.keys[draft.Key] = draft.ID
	active := len(u.sessions)
	u.mu.Unlock()
	u.observer.SetActiveDrafts(active)
}

func (u *DraftUseCase) unregister(id uuid.UUID, key string) {
	u.mu.Lock()
	delete(u.sessions, id)
	if u.keys[key] == id {
		delete(u.keys, key)
	}
	active := len(u.sessions)
	u.mu.Unlock()
	u.observer.SetActiveDrafts(active)
}

func (u *DraftUseCase) session(id uuid.UUID) (*session, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	s, ok := u.sessions[id]
	if !ok {
		return nil, fmt.Errorf("draft %s: %w", id, domainErrors.ErrNotFound)
	}
	return s, nil
}

// mutate applies fn to a copy of the draft and commits it on success.
func (u *DraftUseCase) mutate(ctx context.Context, id uuid.UUID, fn func(*model.Draft, *model.ReferenceData) error) (*model.Draft, error) {
	s, err := u.session(id)
	if err != nil {
		return nil, err
	}
	ref, err := u.reference.Load(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.draft.Clone()
	if err := fn(work, ref); err != nil {
		return nil, err
	}
	work.UpdatedAt = u.now()
	s.draft = work

	u.saver.Enqueue(work.Clone())
	return work.Clone(), nil
}

func defaults(draft *model.Draft, ref *model.ReferenceData) composition.Defaults {
	return composition.Defaults{
		DoorType:  draft.Form.DoorType,
		Materials: draft.Form.Materials,
		Settings:  ref.AttributeSettings,
	}
}

// UpdateForm replaces the order-level fields. Materials propagate to every door and a
// door type change converts every door.
func (u *DraftUseCase) UpdateForm(ctx context.Context, id uuid.UUID, form model.OrderForm) (*model.Draft, error) {
	return u.mutate(ctx, id, func(d *model.Draft, ref *model.ReferenceData) error {
		if form.DoorType == "" {
			form.DoorType = d.Form.DoorType
		}
		if _, err := model.ParseDoorType(string(form.DoorType)); err != nil {
			return err
		}

		prev := d.Form
		d.Form = form
		if form.Materials != prev.Materials {
			composition.ApplyMaterials(d.Tables, form.Materials)
		}
		if form.DoorType != prev.DoorType {
			return composition.ConvertDoorType(d.Tables, defaults(d, ref))
		}
		return nil
	})
}

// AddTable appends a table with one default door.
func (u *DraftUseCase) AddTable(ctx context.Context, id uuid.UUID) (*model.Draft, error) {
	return u.mutate(ctx, id, func(d *model.Draft, ref *model.ReferenceData) error {
		_, err := composition.AddTable(d, defaults(d, ref))
		return err
	})
}

// RemoveTable removes a table; the draft keeps at least one.
func (u *DraftUseCase) RemoveTable(ctx context.Context, id, tableID uuid.UUID) (*model.Draft, error) {
	return u.mutate(ctx, id, func(d *model.Draft, ref *model.ReferenceData) error {
		return composition.RemoveTable(d, tableID, defaults(d, ref))
	})
}

// Select records a sticky product selection for a table. Kind "door" selects the door model.
func (u *DraftUseCase) Select(ctx context.Context, id, tableID uuid.UUID, kind string, productID model.ID) (*model.Draft, error) {
	var componentKind model.ComponentKind
	if kind != "door" {
		k, err := model.ParseComponentKind(kind)
		if err != nil {
			return nil, err
		}
		componentKind = k
	}

	product, err := u.product(ctx, productID)
	if err != nil {
		return nil, err
	}

	return u.mutate(ctx, id, func(d *model.Draft, _ *model.ReferenceData) error {
		table, err := findTable(d, tableID)
		if err != nil {
			return err
		}
		if componentKind == "" {
			composition.SelectDoorModel(table, product)
			return nil
		}
		return composition.SelectProduct(table, componentKind, product)
	})
}

// product resolves a catalog entry, asking the API for products outside the loaded catalog.
func (u *DraftUseCase) product(ctx context.Context, id model.ID) (model.Product, error) {
	if id.IsZero() {
		return model.Product{}, nil
	}
	ref, err := u.reference.Load(ctx)
	if err != nil {
		return model.Product{}, err
	}
	if p, ok := ref.Catalog()[id]; ok {
		return p, nil
	}

	raw, err := u.api.Get(ctx, "products", id)
	if err != nil {
		return model.Product{}, err
	}
	var p model.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return model.Product{}, fmt.Errorf("decode product %s: %w", id, err)
	}
	return p, nil
}

// AddDoor appends a default door carrying the table's door model.
func (u *DraftUseCase) AddDoor(ctx context.Context, id, tableID uuid.UUID) (*model.Draft, error) {
	return u.mutate(ctx, id, func(d *model.Draft, ref *model.ReferenceData) error {
		table, err := findTable(d, tableID)
		if err != nil {
			return err
		}
		_, err = composition.AddDoor(table, defaults(d, ref), tableDoorModel(table))
		return err
	})
}

func tableDoorModel(table *model.Table) model.Product {
	if table.DoorModel.IsZero() {
		return model.Product{}
	}
	for _, door := range table.Doors {
		if door.Model == table.DoorModel {
			return model.Product{ID: door.Model, Price: door.Price}
		}
	}
	return model.Product{ID: table.DoorModel}
}

// RemoveDoor removes a door; the table keeps at least one.
func (u *DraftUseCase) RemoveDoor(ctx context.Context, id, tableID, doorID uuid.UUID) (*model.Draft, error) {
	return u.mutate(ctx, id, func(d *model.Draft, ref *model.ReferenceData) error {
		table, err := findTable(d, tableID)
		if err != nil {
			return err
		}
		return composition.RemoveDoor(table, doorID, defaults(d, ref))
	})
}

// UpdateDoor edits door envelope and steel fields; derived dimensions follow.
func (u *DraftUseCase) UpdateDoor(ctx context.Context, id, tableID, doorID uuid.UUID, patch DoorPatch) (*model.Draft, error) {
	return u.mutate(ctx, id, func(d *model.Draft, ref *model.ReferenceData) error {
		door, err := findDoor(d, tableID, doorID)
		if err != nil {
			return err
		}
		if err := patch.apply(door); err != nil {
			return err
		}
		return dimension.RecalculateDoor(door, ref.AttributeSettings, ref.CasingRanges)
	})
}

// AddComponent appends a component row pre-filled with the table's sticky selection.
func (u *DraftUseCase) AddComponent(ctx context.Context, id, tableID, doorID uuid.UUID, kind model.ComponentKind) (*model.Draft, error) {
	return u.mutate(ctx, id, func(d *model.Draft, ref *model.ReferenceData) error {
		table, err := findTable(d, tableID)
		if err != nil {
			return err
		}
		i := table.FindDoor(doorID)
		if i < 0 {
			return fmt.Errorf("door %s: %w", doorID, domainErrors.ErrNotFound)
		}
		selected := selectedProduct(table, kind, ref)
		return composition.AddComponentRow(&table.Doors[i], kind, selected, ref.AttributeSettings)
	})
}

func selectedProduct(table *model.Table, kind model.ComponentKind, ref *model.ReferenceData) model.Product {
	id := table.Selected[kind]
	if id.IsZero() {
		return model.Product{}
	}
	if p, ok := ref.Catalog()[id]; ok {
		return p
	}
	for _, door := range table.Doors {
		for _, item := range lineItems(door, kind) {
			if item.Model == id {
				return model.Product{ID: id, Price: item.Price}
			}
		}
	}
	return model.Product{ID: id}
}

func lineItems(door model.Door, kind model.ComponentKind) []model.LineItem {
	if door.Wood == nil {
		return nil
	}
	var out []model.LineItem
	switch kind {
	case model.ComponentExtension:
		for _, e := range door.Wood.Extensions {
			out = append(out, e.LineItem)
		}
	case model.ComponentCasing:
		for _, c := range door.Wood.Casings {
			out = append(out, c.LineItem)
		}
	case model.ComponentCrown:
		for _, c := range door.Wood.Crowns {
			out = append(out, c.LineItem)
		}
	case model.ComponentAccessory:
		for _, a := range door.Wood.Accessories {
			out = append(out, a.LineItem)
		}
	}
	return out
}

// UpdateComponent edits one component row addressed by kind and index.
func (u *DraftUseCase) UpdateComponent(ctx context.Context, id, tableID, doorID uuid.UUID, kind model.ComponentKind, index int, patch ComponentPatch) (*model.Draft, error) {
	return u.mutate(ctx, id, func(d *model.Draft, ref *model.ReferenceData) error {
		door, err := findDoor(d, tableID, doorID)
		if err != nil {
			return err
		}
		return patch.apply(door, kind, index, ref)
	})
}

func findTable(d *model.Draft, tableID uuid.UUID) (*model.Table, error) {
	i := d.FindTable(tableID)
	if i < 0 {
		return nil, fmt.Errorf("table %s: %w", tableID, domainErrors.ErrNotFound)
	}
	return &d.Tables[i], nil
}

func findDoor(d *model.Draft, tableID, doorID uuid.UUID) (*model.Door, error) {
	table, err := findTable(d, tableID)
	if err != nil {
		return nil, err
	}
	i := table.FindDoor(doorID)
	if i < 0 {
		return nil, fmt.Errorf("door %s: %w", doorID, domainErrors.ErrNotFound)
	}
	return &table.Doors[i], nil
}
