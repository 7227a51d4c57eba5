package recurrence

import "time"

// Config holds tuning options for the expander.
type Config struct {
	// MaxOccurrencesPerEvent caps how many candidates a single rule may
	// contribute to one window, guarding against degenerate rules.
	MaxOccurrencesPerEvent int

	// Cache configuration
	CacheEnabled bool
	Cache        CacheConfig
}

// DefaultConfig provides sensible defaults for interactive use.
var DefaultConfig = Config{
	MaxOccurrencesPerEvent: 1000,
	CacheEnabled:           true,
	Cache:                  DefaultCacheConfig,
}

// NoCacheConfig turns off memoization entirely; every call recomputes.
var NoCacheConfig = Config{
	MaxOccurrencesPerEvent: 1000,
	CacheEnabled:           false,
}

// LowMemoryConfig is tuned for memory-constrained environments.
var LowMemoryConfig = Config{
	MaxOccurrencesPerEvent: 500,
	CacheEnabled:           true,
	Cache: CacheConfig{
		TTL:             5 * time.Minute,
		MaxEntries:      100,
		CleanupInterval: 2 * time.Minute,
	},
}
