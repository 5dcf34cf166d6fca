package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	ResourceAPIAddress string
	APIToken           string
	RedisAddress       string
	ReferenceCacheTTL  time.Duration
	RequestTimeout     time.Duration
	SearchDebounce     time.Duration
	AutosaveWorkers    int
	AutosaveQueue      int
	ShutdownTimeout    time.Duration
	DraftRetention     time.Duration
	SessionIdleTimeout time.Duration
	DefaultPriceType   string
	LogLevel           string
}

const (
	defaultRunAddress        = ":8080"
	defaultReferenceCacheTTL = 5 * time.Minute
	defaultRequestTimeout    = 10 * time.Second
	defaultSearchDebounce    = 400 * time.Millisecond
	defaultAutosaveWorkers   = 2
	defaultAutosaveQueue     = 64
	defaultShutdownTimeout   = 10 * time.Second
	defaultDraftRetention    = 30 * 24 * time.Hour
	defaultSessionIdle       = 12 * time.Hour
	defaultPriceType         = "retail"
	defaultLogLevel          = "info"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		ResourceAPIAddress: getString(lookup, "RESOURCE_API_ADDRESS", ""),
		RedisAddress:       getString(lookup, "REDIS_ADDRESS", ""),
		ReferenceCacheTTL:  getDuration(lookup, "REFERENCE_CACHE_TTL", defaultReferenceCacheTTL),
		RequestTimeout:     getDuration(lookup, "REQUEST_TIMEOUT", defaultRequestTimeout),
		SearchDebounce:     getDuration(lookup, "SEARCH_DEBOUNCE", defaultSearchDebounce),
		AutosaveWorkers:    getInt(lookup, "AUTOSAVE_WORKERS", defaultAutosaveWorkers),
		AutosaveQueue:      getInt(lookup, "AUTOSAVE_QUEUE", defaultAutosaveQueue),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		DraftRetention:     getDuration(lookup, "DRAFT_RETENTION", defaultDraftRetention),
		SessionIdleTimeout: getDuration(lookup, "SESSION_IDLE_TIMEOUT", defaultSessionIdle),
		DefaultPriceType:   getString(lookup, "DEFAULT_PRICE_TYPE", defaultPriceType),
		LogLevel:           getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("orderdesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		cacheTTLStr        = cfg.ReferenceCacheTTL.String()
		requestTimeoutStr  = cfg.RequestTimeout.String()
		debounceStr        = cfg.SearchDebounce.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		retentionStr       = cfg.DraftRetention.String()
		sessionIdleStr     = cfg.SessionIdleTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.ResourceAPIAddress, "r", cfg.ResourceAPIAddress, "Resource API base URL")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for reference data cache")
	fs.StringVar(&cacheTTLStr, "cache-ttl", cacheTTLStr, "Reference data cache TTL")
	fs.StringVar(&requestTimeoutStr, "request-timeout", requestTimeoutStr, "Resource API request timeout")
	fs.StringVar(&debounceStr, "search-debounce", debounceStr, "Product search debounce interval")
	fs.IntVar(&cfg.AutosaveWorkers, "autosave-workers", cfg.AutosaveWorkers, "Number of concurrent autosave workers")
	fs.IntVar(&cfg.AutosaveQueue, "autosave-queue", cfg.AutosaveQueue, "Autosave queue capacity")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&retentionStr, "draft-retention", retentionStr, "Age after which saved drafts are purged, 0 keeps them forever")
	fs.StringVar(&sessionIdleStr, "session-idle", sessionIdleStr, "Idle time after which in-memory draft sessions are evicted, 0 keeps them")
	fs.StringVar(&cfg.DefaultPriceType, "price-type", cfg.DefaultPriceType, "Fallback price type identifier")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ReferenceCacheTTL, err = time.ParseDuration(cacheTTLStr); err != nil {
		return nil, fmt.Errorf("invalid cache ttl: %w", err)
	}

	if cfg.RequestTimeout, err = time.ParseDuration(requestTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid request timeout: %w", err)
	}

	if cfg.SearchDebounce, err = time.ParseDuration(debounceStr); err != nil {
		return nil, fmt.Errorf("invalid search debounce: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.DraftRetention, err = time.ParseDuration(retentionStr); err != nil {
		return nil, fmt.Errorf("invalid draft retention: %w", err)
	}

	if cfg.SessionIdleTimeout, err = time.ParseDuration(sessionIdleStr); err != nil {
		return nil, fmt.Errorf("invalid session idle timeout: %w", err)
	}

	if tokenFile, ok := lookup("API_TOKEN_FILE"); ok && tokenFile != "" {
		content, err := os.ReadFile(tokenFile)
		if err != nil {
			return nil, fmt.Errorf("read api token file: %w", err)
		}
		cfg.APIToken = strings.TrimSpace(string(content))
	}

	if cfg.AutosaveWorkers <= 0 {
		cfg.AutosaveWorkers = defaultAutosaveWorkers
	}

	if cfg.AutosaveQueue <= 0 {
		cfg.AutosaveQueue = defaultAutosaveQueue
	}

	if cfg.ReferenceCacheTTL <= 0 {
		cfg.ReferenceCacheTTL = defaultReferenceCacheTTL
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	if cfg.SearchDebounce < 0 {
		cfg.SearchDebounce = defaultSearchDebounce
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DraftRetention < 0 {
		cfg.DraftRetention = defaultDraftRetention
	}

	if cfg.SessionIdleTimeout < 0 {
		cfg.SessionIdleTimeout = defaultSessionIdle
	}

	if cfg.DefaultPriceType == "" {
		cfg.DefaultPriceType = defaultPriceType
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.ResourceAPIAddress == "" {
		return nil, fmt.Errorf("resource API address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
