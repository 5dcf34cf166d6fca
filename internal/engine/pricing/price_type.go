package pricing

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
)

// ParsePriceSettings reads a price settings listing. Both a bare array and a paginated
// {results: [...]} object are accepted; any other shape yields an empty list and a warning.
func ParsePriceSettings(raw json.RawMessage, logger *slog.Logger) []model.PriceSetting {
	if logger == nil {
		logger = slog.Default()
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	switch trimmed[0] {
	case '[':
		var list []model.PriceSetting
		if err := json.Unmarshal(trimmed, &list); err != nil {
			logger.Warn("malformed price settings list", slog.Any("error", err))
			return nil
		}
		return list
	case '{':
		var page struct {
			Results *[]model.PriceSetting `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &page); err != nil {
			logger.Warn("malformed price settings page", slog.Any("error", err))
			return nil
		}
		if page.Results == nil {
			logger.Warn("price settings are not a list")
			return nil
		}
		return *page.Results
	default:
		logger.Warn("price settings are not a list")
		return nil
	}
}

// ResolvePriceType finds the price type configured for a product name, ignoring case.
// The fallback is returned when nothing matches.
func ResolvePriceType(name string, settings []model.PriceSetting, fallback model.ID) model.ID {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	for _, s := range settings {
		if strings.EqualFold(strings.TrimSpace(s.Name), name) && !s.PriceType.IsZero() {
			return s.PriceType
		}
	}
	return fallback
}
