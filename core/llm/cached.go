package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"meetsync/core/cache"
	"meetsync/core/constants"
	"meetsync/core/logger"
)

// CachedExtractor memoizes extractions in redis keyed by a hash of the message
// text. The model runs at temperature zero, so identical messages yield
// identical schedules and a cache hit skips the model round trip entirely.
// Cache failures are logged and degrade to a direct model call.
type CachedExtractor struct {
	inner Extractor
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedExtractor(inner Extractor, c cache.Cache, ttl time.Duration) *CachedExtractor {
	return &CachedExtractor{inner: inner, cache: c, ttl: ttl}
}

func (e *CachedExtractor) ExtractSchedule(ctx context.Context, text string) (*ScheduleData, error) {
	key := extractionKey(text)

	var cached ScheduleData
	hit, err := e.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Warn("CachedExtractor:ExtractSchedule:CacheGet", err)
	} else if hit {
		return &cached, nil
	}

	data, err := e.inner.ExtractSchedule(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := e.cache.SetJSON(ctx, key, data, e.ttl); err != nil {
		logger.Warn("CachedExtractor:ExtractSchedule:CacheSet", err)
	}
	return data, nil
}

func extractionKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return constants.CacheKeyExtraction + hex.EncodeToString(sum[:])
}
