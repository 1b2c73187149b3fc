//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"uvci/internal/uvci"
	"uvci/internal/uvci/cache"
	"uvci/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *cache.RedisCache
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.cache = cache.NewRedisCache(s.redis.Client, time.Minute)
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestRoundTrip() {
	ctx := context.Background()
	key, _ := uvci.Normalize("urn:uvci:01:se:ehm/v12916227tfjj#q")
	rec := uvci.Parse(key)

	s.Require().NoError(s.cache.Set(ctx, key, rec))

	got, ok, err := s.cache.Get(ctx, key)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(rec, got)

	ttl, err := s.redis.Client.TTL(ctx, cache.Key(key)).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Minute)
}

func (s *RedisCacheSuite) TestMiss() {
	_, ok, err := s.cache.Get(context.Background(), "URN:UVCI:01:SE:EHM/V12907267LAJW#E")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RedisCacheSuite) TestCorruptEntry() {
	ctx := context.Background()
	s.Require().NoError(s.redis.Client.Set(ctx, cache.Key("bad"), "{", 0).Err())

	_, _, err := s.cache.Get(ctx, "bad")
	s.ErrorContains(err, "decode cached record")
}
