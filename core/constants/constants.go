package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
)

// Token scopes
const (
	ScopeTokenAccess = "access"
)

// Timeouts
const (
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Redis key prefixes
const (
	CacheKeyExtraction = "meetsync:extract:"
	CacheKeyTask       = "meetsync:task:"
)
