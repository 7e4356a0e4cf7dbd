package service

import (
	"context"
	"sync"
	"time"
)

// CertificateListCacheStore caches serialized learner certificate listings.
// Entries are grouped by namespace so one learner's listings can be dropped
// together after a write.
//
// Every invalidation bumps the namespace generation. Set only stores a value
// when the namespace is still at the generation the caller read before
// loading it, so a fill that raced a write can never outlive that write.
type CertificateListCacheStore interface {
	Get(ctx context.Context, namespace, key string) ([]byte, bool, error)
	Generation(ctx context.Context, namespace string) (uint64, error)
	Set(ctx context.Context, namespace, key string, generation uint64, value []byte, ttl time.Duration) error
	InvalidateNamespace(ctx context.Context, namespace string) error
}

type NoopCertificateListCacheStore struct{}

func NewNoopCertificateListCacheStore() *NoopCertificateListCacheStore {
	return &NoopCertificateListCacheStore{}
}

func (s *NoopCertificateListCacheStore) Get(context.Context, string, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (s *NoopCertificateListCacheStore) Generation(context.Context, string) (uint64, error) {
	return 0, nil
}

func (s *NoopCertificateListCacheStore) Set(context.Context, string, string, uint64, []byte, time.Duration) error {
	return nil
}

func (s *NoopCertificateListCacheStore) InvalidateNamespace(context.Context, string) error {
	return nil
}

type memoryCacheEntry struct {
	payload   []byte
	expiresAt time.Time
}

type InMemoryCertificateListCacheStore struct {
	mu          sync.RWMutex
	store       map[string]map[string]memoryCacheEntry
	generations map[string]uint64
}

func NewInMemoryCertificateListCacheStore() *InMemoryCertificateListCacheStore {
	return &InMemoryCertificateListCacheStore{
		store:       make(map[string]map[string]memoryCacheEntry),
		generations: make(map[string]uint64),
	}
}

func (s *InMemoryCertificateListCacheStore) Get(_ context.Context, namespace, key string) ([]byte, bool, error) {
	now := time.Now().UTC()
	s.mu.RLock()
	entry, ok := s.store[namespace][key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if now.After(entry.expiresAt) {
		s.mu.Lock()
		if ns, ok := s.store[namespace]; ok {
			delete(ns, key)
			if len(ns) == 0 {
				delete(s.store, namespace)
			}
		}
		s.mu.Unlock()
		return nil, false, nil
	}
	return append([]byte(nil), entry.payload...), true, nil
}

func (s *InMemoryCertificateListCacheStore) Generation(_ context.Context, namespace string) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generations[namespace], nil
}

func (s *InMemoryCertificateListCacheStore) Set(_ context.Context, namespace, key string, generation uint64, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[namespace] != generation {
		return nil
	}
	ns, ok := s.store[namespace]
	if !ok {
		ns = make(map[string]memoryCacheEntry)
		s.store[namespace] = ns
	}
	ns[key] = memoryCacheEntry{
		payload:   append([]byte(nil), value...),
		expiresAt: time.Now().UTC().Add(ttl),
	}
	return nil
}

func (s *InMemoryCertificateListCacheStore) InvalidateNamespace(_ context.Context, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[namespace]++
	delete(s.store, namespace)
	return nil
}
