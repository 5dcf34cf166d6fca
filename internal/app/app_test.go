package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/config"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/metrics"
	testhelpers "github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/test"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/worker"
)

func newTestDraftSaver() (*worker.DraftSaver, *testhelpers.DraftRepositoryStub) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	repo := testhelpers.NewDraftRepositoryStub()
	return worker.NewDraftSaver(repo, &testhelpers.ObserverStub{}, 1, 1, logger), repo
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999", RequestTimeout: 3 * time.Second}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
	if server.ReadHeaderTimeout != 3*time.Second {
		t.Fatalf("expected read header timeout from config, got %v", server.ReadHeaderTimeout)
	}
}

func TestNewDraftSaverUsesConfig(t *testing.T) {
	saver := newDraftSaver(workerParams{
		Drafts:  testhelpers.NewDraftRepositoryStub(),
		Metrics: metrics.New(),
		Config:  &config.Config{AutosaveWorkers: 3, AutosaveQueue: 8},
		Logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
	if saver == nil {
		t.Fatal("expected draft saver instance")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	saver, repo := newTestDraftSaver()
	cfg := &config.Config{ShutdownTimeout: 100 * time.Millisecond}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Worker:     saver,
		Config:     cfg,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	hook := recorder.Hooks[0]
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := hook.OnStart(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}

	draft := testhelpers.SampleDraft()
	saver.Enqueue(draft)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hook.OnStop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected on stop to finish")
	}

	if _, ok := repo.Stored(draft.Key); !ok {
		t.Fatal("expected pending draft to be flushed on stop")
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	server := &http.Server{Addr: "bad addr"}
	saver, _ := newTestDraftSaver()

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Worker:     saver,
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}

func TestLifecycleRecorderRunsHooksInOrder(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	var calls []string
	hook := func(name string) fx.Hook {
		return fx.Hook{
			OnStart: func(context.Context) error { calls = append(calls, "start "+name); return nil },
			OnStop:  func(context.Context) error { calls = append(calls, "stop "+name); return nil },
		}
	}
	recorder.Append(hook("storage"))
	recorder.Append(hook("server"))
	recorder.Append(fx.Hook{})

	if err := recorder.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := recorder.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	want := "start storage,start server,stop server,stop storage"
	if got := strings.Join(calls, ","); got != want {
		t.Fatalf("unexpected hook order %q", got)
	}
}

func TestShutdownerStub(t *testing.T) {
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	if err := shutdowner.Shutdown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case <-shutdowner.Called:
	default:
		t.Fatal("expected shutdown notification")
	}
}
