package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/adapter/resource"
	domainErrors "github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/errors"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/repository"
)

const (
	sourceCache = "cache"
	sourceAPI   = "api"
)

// ReferenceObserver receives reference load timings.
type ReferenceObserver interface {
	RecordReferenceLoad(source string, d time.Duration)
}

// ReferenceUseCase loads the lookup collections the order engine depends on.
// A loaded bundle is kept in memory for ttl and shared through the cache.
type ReferenceUseCase struct {
	api      resource.Lister
	cache    repository.ReferenceCache
	ttl      time.Duration
	observer ReferenceObserver
	logger   *slog.Logger
	now      func() time.Time

	group   singleflight.Group
	mu      sync.RWMutex
	current *model.ReferenceData
}

// NewReferenceUseCase constructs ReferenceUseCase.
func NewReferenceUseCase(api resource.Lister, cache repository.ReferenceCache, ttl time.Duration, observer ReferenceObserver, logger *slog.Logger) *ReferenceUseCase {
	return &ReferenceUseCase{
		api:      api,
		cache:    cache,
		ttl:      ttl,
		observer: observer,
		logger:   logger,
		now:      time.Now,
	}
}

// Load returns the reference bundle. Concurrent callers share one fetch.
func (u *ReferenceUseCase) Load(ctx context.Context) (*model.ReferenceData, error) {
	if data := u.fresh(); data != nil {
		return data, nil
	}

	v, err, _ := u.group.Do("reference", func() (any, error) {
		if data := u.fresh(); data != nil {
			return data, nil
		}
		return u.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.ReferenceData), nil
}

func (u *ReferenceUseCase) fresh() *model.ReferenceData {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.current == nil || u.now().Sub(u.current.LoadedAt) >= u.ttl {
		return nil
	}
	return u.current
}

func (u *ReferenceUseCase) remember(data *model.ReferenceData) {
	u.mu.Lock()
	u.current = data
	u.mu.Unlock()
}

func (u *ReferenceUseCase) load(ctx context.Context) (*model.ReferenceData, error) {
	start := u.now()

	data, err := u.cache.Get(ctx)
	switch {
	case err == nil && u.now().Sub(data.LoadedAt) < u.ttl:
		u.observer.RecordReferenceLoad(sourceCache, u.now().Sub(start))
		u.remember(data)
		return data, nil
	case err != nil && !errors.Is(err, domainErrors.ErrNotFound):
		u.logger.Warn("reference cache unavailable", slog.String("error", err.Error()))
	}

	data, err = u.fetch(ctx)
	if err != nil {
		return nil, err
	}
	data.LoadedAt = u.now()
	u.observer.RecordReferenceLoad(sourceAPI, data.LoadedAt.Sub(start))

	if err := u.cache.Set(ctx, data, u.ttl); err != nil {
		u.logger.Warn("reference cache write failed", slog.String("error", err.Error()))
	}
	u.remember(data)
	return data, nil
}

func (u *ReferenceUseCase) fetch(ctx context.Context) (*model.ReferenceData, error) {
	data := &model.ReferenceData{}
	var (
		beadings []model.Beading
		settings []model.AttributeSettings
	)

	options := map[string]*[]model.Option{
		"materials":      &data.Materials,
		"material-types": &data.MaterialTypes,
		"massifs":        &data.Massifs,
		"colors":         &data.Colors,
		"patina-colors":  &data.PatinaColors,
		"glass-types":    &data.GlassTypes,
		"thresholds":     &data.Thresholds,
		"steel-colors":   &data.SteelColors,
		"frames":         &data.Frames,
		"claddings":      &data.Claddings,
		"locks":          &data.Locks,
	}

	g, gctx := errgroup.WithContext(ctx)
	for name, dst := range options {
		g.Go(func() error { return collect(gctx, u.api, u.logger, name, dst) })
	}
	g.Go(func() error { return collect(gctx, u.api, u.logger, "beadings", &beadings) })
	g.Go(func() error { return collect(gctx, u.api, u.logger, "casing-ranges", &data.CasingRanges) })
	g.Go(func() error { return collect(gctx, u.api, u.logger, "attribute-settings", &settings) })
	g.Go(func() error { return collect(gctx, u.api, u.logger, "products", &data.Products) })
	g.Go(func() error {
		raw, err := u.priceSettings(gctx)
		data.PriceSettings = raw
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	data.BeadingsMain, data.BeadingsAdditional = splitBeadings(beadings)
	if len(settings) > 0 {
		data.AttributeSettings = settings[0]
	}
	return data, nil
}

// priceSettings keeps the raw listing; it is parsed leniently when prices are resolved.
func (u *ReferenceUseCase) priceSettings(ctx context.Context) (json.RawMessage, error) {
	items, err := u.api.List(ctx, "price-settings", nil)
	if err != nil {
		if degradable(err) {
			u.logger.Warn("reference collection degraded", slog.String("resource", "price-settings"), slog.String("error", err.Error()))
			return json.RawMessage("[]"), nil
		}
		return nil, err
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func collect[T any](ctx context.Context, api resource.Lister, logger *slog.Logger, name string, dst *[]T) error {
	items, err := resource.ListAs[T](ctx, api, name, nil)
	if err != nil {
		if !degradable(err) {
			return err
		}
		logger.Warn("reference collection degraded", slog.String("resource", name), slog.String("error", err.Error()))
		items = []T{}
	}
	*dst = items
	return nil
}

// degradable reports failures that leave the collection empty instead of failing the load.
func degradable(err error) bool {
	return errors.Is(err, resource.ErrUnexpectedShape) || errors.Is(err, domainErrors.ErrNotFound)
}

func splitBeadings(all []model.Beading) (main, additional []model.Beading) {
	main, additional = []model.Beading{}, []model.Beading{}
	for _, b := range all {
		switch b.Type {
		case model.BeadingMain:
			main = append(main, b)
		case model.BeadingAdditional:
			additional = append(additional, b)
		}
	}
	return main, additional
}
