package usecase

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/adapter/resource"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/search"
)

// NewProductSearch wires debounced product lookups to the products collection.
func NewProductSearch(api resource.Lister, debounce time.Duration, observer search.Observer) *search.Searcher {
	return search.New(func(ctx context.Context, query string) ([]model.Product, error) {
		var params url.Values
		if q := strings.TrimSpace(query); q != "" {
			params = url.Values{"search": {q}}
		}
		return resource.ListAs[model.Product](ctx, api, "products", params)
	}, debounce, observer)
}
