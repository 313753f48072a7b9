package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingExtractor struct {
	data  *ScheduleData
	err   error
	calls int
}

func (c *countingExtractor) ExtractSchedule(_ context.Context, _ string) (*ScheduleData, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.data, nil
}

type mapCache struct {
	data    map[string][]byte
	getErr  error
	setErr  error
	setKeys []string
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (m *mapCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *mapCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	m.setKeys = append(m.setKeys, key)
	return nil
}

func (m *mapCache) Close() error { return nil }

func TestCachedExtractorMissThenHit(t *testing.T) {
	inner := &countingExtractor{data: &ScheduleData{
		AvailableSlots: []SlotData{{Day: "Monday", Hour: 9}},
	}}
	c := newMapCache()
	cached := NewCachedExtractor(inner, c, time.Hour)

	first, err := cached.ExtractSchedule(context.Background(), "free mondays")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)

	second, err := cached.ExtractSchedule(context.Background(), "free mondays")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls, "second call must be served from cache")
	assert.Equal(t, first, second)
}

func TestCachedExtractorDistinctMessages(t *testing.T) {
	inner := &countingExtractor{data: &ScheduleData{}}
	cached := NewCachedExtractor(inner, newMapCache(), time.Hour)

	_, err := cached.ExtractSchedule(context.Background(), "message one")
	require.NoError(t, err)
	_, err = cached.ExtractSchedule(context.Background(), "message two")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedExtractorCacheFailureDegrades(t *testing.T) {
	inner := &countingExtractor{data: &ScheduleData{}}
	c := newMapCache()
	c.getErr = errors.New("redis timeout")
	c.setErr = errors.New("redis timeout")
	cached := NewCachedExtractor(inner, c, time.Hour)

	_, err := cached.ExtractSchedule(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedExtractorDoesNotCacheFailures(t *testing.T) {
	inner := &countingExtractor{err: errors.New("model down")}
	c := newMapCache()
	cached := NewCachedExtractor(inner, c, time.Hour)

	_, err := cached.ExtractSchedule(context.Background(), "anything")
	require.Error(t, err)
	assert.Empty(t, c.setKeys)
}
