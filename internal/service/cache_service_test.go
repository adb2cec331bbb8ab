package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCache struct{ err error }

func (c failingCache) Get(ctx context.Context, key string, dest interface{}) error { return c.err }
func (c failingCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.err
}
func (c failingCache) DeleteByPattern(ctx context.Context, pattern string) error { return c.err }

func TestCacheServiceDisabled(t *testing.T) {
	var nilSvc *CacheService
	assert.False(t, nilSvc.Enabled())

	svc := NewCacheService(newMemCache(), nil, time.Minute, nil, false)
	assert.False(t, svc.Enabled())
	require.NoError(t, svc.Set(context.Background(), "k", "v", 0))
	var out string
	hit, err := svc.Get(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheServiceRoundTripAndInvalidate(t *testing.T) {
	metrics := NewMetricsService()
	svc := NewCacheService(newMemCache(), metrics, 0, nil, true)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, eligibleTopicsKey("cs"), []string{"tp1"}, 0))
	require.NoError(t, svc.Set(ctx, eligibleTeachersKey("cs"), []string{"t1"}, 0))

	var topics []string
	hit, err := svc.Get(ctx, eligibleTopicsKey("cs"), &topics)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"tp1"}, topics)

	svc.InvalidateEligibleTopics(ctx)
	hit, err = svc.Get(ctx, eligibleTopicsKey("cs"), &topics)
	require.NoError(t, err)
	assert.False(t, hit)

	var teachers []string
	hit, err = svc.Get(ctx, eligibleTeachersKey("cs"), &teachers)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.InDelta(t, 2.0/3.0, metrics.CacheHitRatio(), 0.001)
}

func TestCacheServiceBackendFailureFallsThrough(t *testing.T) {
	f := newFixture(t)
	f.students.cache = NewCacheService(failingCache{err: errors.New("redis down")}, nil, time.Minute, nil, true)

	res, err := f.students.ListEligibleTopics(context.Background(), studentToken(t, "s1"))
	require.NoError(t, err)
	assert.Len(t, res.Topics, 3)
}
