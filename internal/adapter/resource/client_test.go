package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	domainErrors "github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/errors"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, srv *httptest.Server, token string) *HTTPClient {
	t.Helper()
	client, err := NewHTTPClient(srv.URL+"/api/v1", token, time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", "", 0, testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", "", 0, testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestListFollowsPagination(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/materials/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "":
			fmt.Fprintf(w, `{"count":3,"next":%q,"previous":null,"results":[{"id":1},{"id":2}]}`, srv.URL+"/api/v1/materials/?page=2")
		case "2":
			fmt.Fprint(w, `{"count":3,"next":"/api/v1/materials/?page=3","previous":null,"results":[{"id":3}]}`)
		case "3":
			fmt.Fprint(w, `{"count":3,"next":null,"previous":null,"results":[]}`)
		}
	}))
	defer srv.Close()

	items, err := newTestClient(t, srv, "").List(context.Background(), "materials", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if string(items[2]) != `{"id":3}` {
		t.Fatalf("unexpected item %s", items[2])
	}
}

func TestListAcceptsBareArrayAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "oak" {
			t.Errorf("expected search query, got %q", got)
		}
		fmt.Fprint(w, `[{"id":5,"name":"Oak door","price":"10.5"}]`)
	}))
	defer srv.Close()

	products, err := ListAs[model.Product](context.Background(), newTestClient(t, srv, ""), "products", url.Values{"search": {"oak"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 || products[0].ID != "5" || products[0].Name != "Oak door" {
		t.Fatalf("unexpected products %+v", products)
	}
}

func TestListRejectsUnexpectedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `"nope"`)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, "").List(context.Background(), "colors", nil)
	if !errors.Is(err, ErrUnexpectedShape) {
		t.Fatalf("expected shape error for scalar listing, got %v", err)
	}
}

func TestListRejectsObjectWithoutResults(t *testing.T) {
	for _, body := range []string{`{"detail":"x"}`, `{"price_type":"x","detail":"not a list"}`, `{"count":0,"results":null}`} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, body)
		}))

		items, err := newTestClient(t, srv, "").List(context.Background(), "price-settings", nil)
		srv.Close()
		if !errors.Is(err, ErrUnexpectedShape) {
			t.Fatalf("expected shape error for %s, got %v", body, err)
		}
		if items != nil {
			t.Fatalf("expected no items for %s, got %v", body, items)
		}
	}
}

func TestTokenForwarding(t *testing.T) {
	cases := []struct {
		name     string
		ctxToken string
		cfgToken string
		want     string
	}{
		{name: "request token wins", ctxToken: "user", cfgToken: "svc", want: "Bearer user"},
		{name: "service token fallback", cfgToken: "svc", want: "Bearer svc"},
		{name: "no token", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := make(chan string, 1)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got <- r.Header.Get("Authorization")
				fmt.Fprint(w, `{"id":1}`)
			}))
			defer srv.Close()

			ctx := WithToken(context.Background(), tc.ctxToken)
			if _, err := newTestClient(t, srv, tc.cfgToken).Get(ctx, "locks", "1"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if header := <-got; header != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, header)
			}
		})
	}
}

func TestCRUDRoutes(t *testing.T) {
	type call struct{ method, path, body string }
	calls := make(chan call, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls <- call{r.Method, r.URL.Path, string(body)}
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		fmt.Fprint(w, `{"id":7}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv, "")
	ctx := context.Background()

	if _, err := client.Create(ctx, "frames", map[string]string{"name": "F"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := client.Update(ctx, "frames", "7", map[string]string{"name": "G"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := client.Delete(ctx, "frames", "7"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	want := []call{
		{http.MethodPost, "/api/v1/frames/", `{"name":"F"}`},
		{http.MethodPut, "/api/v1/frames/7/", `{"name":"G"}`},
		{http.MethodDelete, "/api/v1/frames/7/", ""},
	}
	for _, w := range want {
		if got := <-calls; got != w {
			t.Fatalf("expected %+v, got %+v", w, got)
		}
	}
}

func TestCalculate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/orders/calculate/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		fmt.Fprint(w, `{"total_sum":"1000000.00","door_price":800000,"extension_price":"0","casing_price":"150000","crown_price":"50000","accessory_price":"0"}`)
	}))
	defer srv.Close()

	totals, err := newTestClient(t, srv, "").Calculate(context.Background(), map[string]any{"doors": []any{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals.TotalSum.String() != "1000000" || totals.DoorPrice.String() != "800000" {
		t.Fatalf("unexpected totals %+v", totals)
	}
}

func TestCalculateAndSubmitWrapFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"boom"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client := newTestClient(t, srv, "")

	_, err := client.Calculate(context.Background(), struct{}{})
	if !errors.Is(err, domainErrors.ErrCalculationFailed) {
		t.Fatalf("expected ErrCalculationFailed, got %v", err)
	}
	if !IsStatus(err, http.StatusBadRequest) {
		t.Fatalf("expected status error, got %v", err)
	}

	_, err = client.SubmitOrder(context.Background(), struct{}{})
	if !errors.Is(err, domainErrors.ErrSubmissionFailed) {
		t.Fatalf("expected ErrSubmissionFailed, got %v", err)
	}
	var se *StatusError
	if !errors.As(err, &se) || !strings.Contains(se.Body, "boom") {
		t.Fatalf("expected body in status error, got %v", err)
	}
}

func TestNotFoundMapsToDomainError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := newTestClient(t, srv, "").Get(context.Background(), "claddings", "9")
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestErrorResponsesAreLogged(t *testing.T) {
	called := make(chan struct{}, 1)
	handler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.LevelKey && a.Value.Any() == slog.LevelError {
			select {
			case called <- struct{}{}:
			default:
			}
		}
		return a
	}})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, "", time.Second, slog.New(handler))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	if _, err := client.List(context.Background(), "thresholds", nil); err == nil {
		t.Fatal("expected error from server")
	}

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("expected error log to be written")
	}
}

func TestDecodeListReportsIndex(t *testing.T) {
	_, err := DecodeList[model.Option]([]json.RawMessage{json.RawMessage(`{"id":1}`), json.RawMessage(`{"name":5}`)})
	if !errors.Is(err, ErrUnexpectedShape) || !strings.Contains(err.Error(), "element 1") {
		t.Fatalf("expected element index in error, got %v", err)
	}
}
