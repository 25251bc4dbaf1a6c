package session

import (
	"context"
	"sync"

	"github.com/hupe1980/sessioncart/core"
)

// DefaultBucket is the namespace carts are stored under.
const DefaultBucket = "_cart"

type backend struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte // bucket -> key -> value
}

// InMemoryStore is a volatile SessionStore keeping values in a process local
// map, namespaced by bucket. It is safe for concurrent access and best suited
// for tests, examples and single-process servers. Values are copied on put
// and get so callers cannot mutate stored bytes.
type InMemoryStore struct {
	backend *backend
	bucket  string
}

// InMemoryOptions configures an InMemoryStore.
type InMemoryOptions struct {
	// Bucket namespaces the keys. Defaults to DefaultBucket.
	Bucket string
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore(optFns ...func(o *InMemoryOptions)) *InMemoryStore {
	opts := InMemoryOptions{Bucket: DefaultBucket}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Bucket == "" {
		opts.Bucket = DefaultBucket
	}
	return &InMemoryStore{
		backend: &backend{buckets: make(map[string]map[string][]byte)},
		bucket:  opts.Bucket,
	}
}

// WithBucket returns a store over the same backing map using another bucket.
func (s *InMemoryStore) WithBucket(bucket string) *InMemoryStore {
	if bucket == "" {
		bucket = DefaultBucket
	}
	return &InMemoryStore{backend: s.backend, bucket: bucket}
}

// Bucket returns the namespace of this store.
func (s *InMemoryStore) Bucket() string { return s.bucket }

// Put stores a copy of value under key and returns the stored bytes.
func (s *InMemoryStore) Put(_ context.Context, key string, value []byte) ([]byte, error) {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	b, ok := s.backend.buckets[s.bucket]
	if !ok {
		b = make(map[string][]byte)
		s.backend.buckets[s.bucket] = b
	}
	b[key] = clone(value)
	return clone(value), nil
}

// Get returns a copy of the value under key or core.ErrKeyNotFound.
func (s *InMemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.backend.mu.RLock()
	defer s.backend.mu.RUnlock()
	v, ok := s.backend.buckets[s.bucket][key]
	if !ok {
		return nil, core.ErrKeyNotFound
	}
	return clone(v), nil
}

// Has reports whether key is stored.
func (s *InMemoryStore) Has(_ context.Context, key string) (bool, error) {
	s.backend.mu.RLock()
	defer s.backend.mu.RUnlock()
	_, ok := s.backend.buckets[s.bucket][key]
	return ok, nil
}

// Forget removes key if present.
func (s *InMemoryStore) Forget(_ context.Context, key string) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	delete(s.backend.buckets[s.bucket], key)
	return nil
}

// Flush removes every key of this bucket. Other buckets are untouched.
func (s *InMemoryStore) Flush(_ context.Context) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	delete(s.backend.buckets, s.bucket)
	return nil
}

// Keys returns the keys of this bucket in unspecified order.
func (s *InMemoryStore) Keys() []string {
	s.backend.mu.RLock()
	defer s.backend.mu.RUnlock()
	b := s.backend.buckets[s.bucket]
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	return keys
}

func clone(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp
}
