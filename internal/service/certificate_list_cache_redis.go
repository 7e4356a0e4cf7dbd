package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// generationTTL outlives any list entry so a namespace counter never resets
// underneath an in-flight fill.
const generationTTL = 24 * time.Hour

// setIfGeneration writes the entry and registers it in the namespace index,
// but only while the generation key still holds the caller's generation.
var setIfGeneration = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if (current or '0') ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
redis.call('SADD', KEYS[3], KEYS[2])
redis.call('PEXPIRE', KEYS[3], ARGV[4])
return 1
`)

type RedisCertificateListCacheStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisCertificateListCacheStore(client redis.UniversalClient, prefix string) *RedisCertificateListCacheStore {
	if prefix == "" {
		prefix = "cert_list_cache"
	}
	return &RedisCertificateListCacheStore{client: client, prefix: prefix}
}

func (s *RedisCertificateListCacheStore) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	if s.client == nil {
		return nil, false, nil
	}
	value, err := s.client.Get(ctx, s.dataKey(namespace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *RedisCertificateListCacheStore) Generation(ctx context.Context, namespace string) (uint64, error) {
	if s.client == nil {
		return 0, nil
	}
	gen, err := s.client.Get(ctx, s.generationKey(namespace)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return gen, nil
}

func (s *RedisCertificateListCacheStore) Set(ctx context.Context, namespace, key string, generation uint64, value []byte, ttl time.Duration) error {
	if s.client == nil || ttl <= 0 {
		return nil
	}
	keys := []string{s.generationKey(namespace), s.dataKey(namespace, key), s.namespaceIndexKey(namespace)}
	args := []any{
		strconv.FormatUint(generation, 10),
		value,
		ttl.Milliseconds(),
		(ttl + time.Minute).Milliseconds(),
	}
	return setIfGeneration.Run(ctx, s.client, keys, args...).Err()
}

// InvalidateNamespace bumps the generation before collecting the index, so a
// concurrent Set either lands in the index and is deleted here or is refused.
func (s *RedisCertificateListCacheStore) InvalidateNamespace(ctx context.Context, namespace string) error {
	if s.client == nil {
		return nil
	}
	genKey := s.generationKey(namespace)
	bump := s.client.TxPipeline()
	bump.Incr(ctx, genKey)
	bump.Expire(ctx, genKey, generationTTL)
	if _, err := bump.Exec(ctx); err != nil {
		return err
	}

	index := s.namespaceIndexKey(namespace)
	keys, err := s.client.SMembers(ctx, index).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	pipe := s.client.TxPipeline()
	if len(keys) > 0 {
		pipe.Del(ctx, keys...)
	}
	pipe.Del(ctx, index)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisCertificateListCacheStore) dataKey(namespace, key string) string {
	return fmt.Sprintf("%s:data:%s:%s", s.prefix, normalizeToken(namespace), hashToken(key))
}

func (s *RedisCertificateListCacheStore) namespaceIndexKey(namespace string) string {
	return fmt.Sprintf("%s:index:%s", s.prefix, normalizeToken(namespace))
}

func (s *RedisCertificateListCacheStore) generationKey(namespace string) string {
	return fmt.Sprintf("%s:gen:%s", s.prefix, normalizeToken(namespace))
}

func normalizeToken(v string) string {
	if v == "" {
		return "default"
	}
	return v
}

func hashToken(v string) string {
	sum := sha256.Sum256([]byte(v))
	return hex.EncodeToString(sum[:])
}
