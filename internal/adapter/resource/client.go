package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	domainErrors "github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/errors"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
)

const (
	defaultTimeout = 10 * time.Second
	maxPages       = 200
	maxErrorBody   = 4 << 10
)

// ErrUnexpectedShape marks a response body that does not decode into the expected shape.
var ErrUnexpectedShape = errors.New("unexpected response shape")

// StatusError reports an unexpected response status from the resource API.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("resource api %s %s: status %d", e.Method, e.URL, e.Code)
}

// Lister lists collections.
type Lister interface {
	List(ctx context.Context, resource string, query url.Values) ([]json.RawMessage, error)
}

// Client exposes the generic resource API plus the order endpoints.
type Client interface {
	Lister
	Get(ctx context.Context, resource string, id model.ID) (json.RawMessage, error)
	Create(ctx context.Context, resource string, body any) (json.RawMessage, error)
	Update(ctx context.Context, resource string, id model.ID, body any) (json.RawMessage, error)
	Delete(ctx context.Context, resource string, id model.ID) error
	Calculate(ctx context.Context, order any) (model.Totals, error)
	SubmitOrder(ctx context.Context, order any) (json.RawMessage, error)
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// page mirrors the paginated listing envelope.
type page struct {
	Count    int                `json:"count"`
	Next     *string            `json:"next"`
	Previous *string            `json:"previous"`
	Results  *[]json.RawMessage `json:"results"`
}

// NewHTTPClient creates resource API client. Token is used when the request
// context carries none.
func NewHTTPClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse resource api url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("resource api url must be absolute")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL: parsed,
		token:   token,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (c *HTTPClient) endpoint(parts ...string) *url.URL {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(append([]string{endpoint.Path}, parts...)...) + "/"
	endpoint.RawQuery = ""
	return &endpoint
}

// List fetches every element of a collection, following pagination links.
func (c *HTTPClient) List(ctx context.Context, resource string, query url.Values) ([]json.RawMessage, error) {
	endpoint := c.endpoint(resource)
	endpoint.RawQuery = query.Encode()
	next := endpoint.String()

	var items []json.RawMessage
	for pages := 0; next != ""; pages++ {
		if pages == maxPages {
			return nil, fmt.Errorf("list %s: more than %d pages", resource, maxPages)
		}

		body, err := c.do(ctx, http.MethodGet, next, nil)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", resource, err)
		}

		chunk, nextURL, err := decodeListing(body)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", resource, err)
		}
		items = append(items, chunk...)

		if next, err = c.resolveNext(nextURL); err != nil {
			return nil, fmt.Errorf("list %s: %w", resource, err)
		}
	}

	if items == nil {
		items = []json.RawMessage{}
	}
	return items, nil
}

func decodeListing(body []byte) ([]json.RawMessage, string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, "", nil
	}
	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrUnexpectedShape, err)
		}
		return items, "", nil
	case '{':
		var p page
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrUnexpectedShape, err)
		}
		if p.Results == nil {
			return nil, "", fmt.Errorf("%w: page without results", ErrUnexpectedShape)
		}
		if p.Next == nil {
			return *p.Results, "", nil
		}
		return *p.Results, *p.Next, nil
	default:
		return nil, "", fmt.Errorf("%w: listing is neither an array nor a page", ErrUnexpectedShape)
	}
}

func (c *HTTPClient) resolveNext(next string) (string, error) {
	if next == "" {
		return "", nil
	}
	ref, err := url.Parse(next)
	if err != nil {
		return "", fmt.Errorf("parse next link: %w", err)
	}
	return c.baseURL.ResolveReference(ref).String(), nil
}

// Get fetches a single element.
func (c *HTTPClient) Get(ctx context.Context, resource string, id model.ID) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.endpoint(resource, id.String()).String(), nil)
}

// Create posts a new element.
func (c *HTTPClient) Create(ctx context.Context, resource string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, c.endpoint(resource).String(), body)
}

// Update replaces an element.
func (c *HTTPClient) Update(ctx context.Context, resource string, id model.ID, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, c.endpoint(resource, id.String()).String(), body)
}

// Delete removes an element.
func (c *HTTPClient) Delete(ctx context.Context, resource string, id model.ID) error {
	_, err := c.do(ctx, http.MethodDelete, c.endpoint(resource, id.String()).String(), nil)
	return err
}

// Calculate asks the calculation endpoint for category totals.
func (c *HTTPClient) Calculate(ctx context.Context, order any) (model.Totals, error) {
	body, err := c.do(ctx, http.MethodPost, c.endpoint("orders", "calculate").String(), order)
	if err != nil {
		return model.Totals{}, fmt.Errorf("%w: %w", domainErrors.ErrCalculationFailed, err)
	}
	var totals model.Totals
	if err := json.Unmarshal(body, &totals); err != nil {
		return model.Totals{}, fmt.Errorf("%w: decode totals: %w: %w", domainErrors.ErrCalculationFailed, ErrUnexpectedShape, err)
	}
	return totals, nil
}

// SubmitOrder creates the order.
func (c *HTTPClient) SubmitOrder(ctx context.Context, order any) (json.RawMessage, error) {
	body, err := c.Create(ctx, "orders", order)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrSubmissionFailed, err)
	}
	return body, nil
}

func (c *HTTPClient) do(ctx context.Context, method, target string, payload any) (json.RawMessage, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	} else if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s %s: %w", method, redact(target), domainErrors.ErrNotFound)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Error("resource api request failed",
			slog.String("method", method),
			slog.String("url", redact(target)),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, &StatusError{Method: method, URL: redact(target), Code: resp.StatusCode, Body: string(body)}
	}
}

func redact(target string) string {
	if i := strings.IndexByte(target, '?'); i >= 0 {
		return target[:i]
	}
	return target
}

// IsStatus reports whether err carries a resource API status error with given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// DecodeList unmarshals raw listing elements into T.
func DecodeList[T any](items []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(items))
	for i, raw := range items {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode element %d: %w: %w", i, ErrUnexpectedShape, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// ListAs lists a collection and decodes it into T.
func ListAs[T any](ctx context.Context, c Lister, resource string, query url.Values) ([]T, error) {
	items, err := c.List(ctx, resource, query)
	if err != nil {
		return nil, err
	}
	out, err := DecodeList[T](items)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", resource, err)
	}
	return out, nil
}
