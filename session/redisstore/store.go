// Package redisstore provides a core.SessionStore backed by Redis.
//
// Every web session owns one Redis hash, keyed <prefix><sessionID>:<bucket>;
// each session key (a cart id, the default id slot) is a field of that hash.
// Flush deletes the hash. An optional TTL is refreshed on every Put so idle
// sessions expire.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hupe1980/sessioncart/core"
	"github.com/hupe1980/sessioncart/logging"
	"github.com/hupe1980/sessioncart/session"
)

// DefaultPrefix is prepended to session hash keys.
const DefaultPrefix = "sessioncart:"

// Options configures a Store.
type Options struct {
	// Prefix of the hash key. Defaults to DefaultPrefix.
	Prefix string
	// Bucket suffix of the hash key. Defaults to session.DefaultBucket.
	Bucket string
	// TTL refreshed on every Put. Zero disables expiry.
	TTL time.Duration
	// Logger defaults to NoOp logger if nil.
	Logger logging.Logger
}

// Store is a SessionStore over one Redis hash. It is safe for concurrent use.
type Store struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
	logger logging.Logger
}

// New returns a store for the given web session.
func New(client redis.UniversalClient, sessionID string, optFns ...func(o *Options)) *Store {
	opts := Options{Prefix: DefaultPrefix, Bucket: session.DefaultBucket}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Bucket == "" {
		opts.Bucket = session.DefaultBucket
	}
	return &Store{
		client: client,
		key:    opts.Prefix + sessionID + ":" + opts.Bucket,
		ttl:    opts.TTL,
		logger: logging.OrNoOp(opts.Logger),
	}
}

// NewFromConfig applies the prefix and TTL of cfg.
func NewFromConfig(client redis.UniversalClient, sessionID string, cfg Config, optFns ...func(o *Options)) *Store {
	return New(client, sessionID, append([]func(o *Options){func(o *Options) {
		o.Prefix = cfg.Prefix
		o.TTL = cfg.TTL
	}}, optFns...)...)
}

// Key returns the Redis hash key of this store.
func (s *Store) Key() string { return s.key }

// Put writes value into the hash field key and refreshes the TTL.
func (s *Store) Put(ctx context.Context, key string, value []byte) ([]byte, error) {
	done := s.timer("HSET", key)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.key, key, value)
		if s.ttl > 0 {
			pipe.Expire(ctx, s.key, s.ttl)
		}
		return nil
	})
	done(err)
	if err != nil {
		return nil, fmt.Errorf("redis HSET %s %s: %w", s.key, key, err)
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Get reads the hash field key, or core.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	done := s.timer("HGET", key)
	val, err := s.client.HGet(ctx, s.key, key).Bytes()
	if errors.Is(err, redis.Nil) {
		done(nil)
		return nil, core.ErrKeyNotFound
	}
	done(err)
	if err != nil {
		return nil, fmt.Errorf("redis HGET %s %s: %w", s.key, key, err)
	}
	return val, nil
}

// Has reports whether the hash field key exists.
func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	done := s.timer("HEXISTS", key)
	ok, err := s.client.HExists(ctx, s.key, key).Result()
	done(err)
	if err != nil {
		return false, fmt.Errorf("redis HEXISTS %s %s: %w", s.key, key, err)
	}
	return ok, nil
}

// Forget deletes the hash field key.
func (s *Store) Forget(ctx context.Context, key string) error {
	done := s.timer("HDEL", key)
	err := s.client.HDel(ctx, s.key, key).Err()
	done(err)
	if err != nil {
		return fmt.Errorf("redis HDEL %s %s: %w", s.key, key, err)
	}
	return nil
}

// Flush deletes the whole session hash.
func (s *Store) Flush(ctx context.Context) error {
	done := s.timer("DEL", "")
	err := s.client.Del(ctx, s.key).Err()
	done(err)
	if err != nil {
		return fmt.Errorf("redis DEL %s: %w", s.key, err)
	}
	return nil
}

// Ping reports whether Redis answers within five seconds.
func (s *Store) Ping(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Ping(pingCtx).Err(); err != nil {
		s.logger.Warn("redis ping failed", "error", err)
		return false
	}
	return true
}

func (s *Store) timer(op, field string) func(err error) {
	return logging.StartTimer(s.logger, "redis "+op, "key", s.key, "field", field)
}
