package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sessioncart/core"
)

// Interface compliance (compile-time assertion)
var _ core.SessionStore = (*InMemoryStore)(nil)

func TestInMemoryStore_PutGetIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	data := []byte("hello")

	stored, err := s.Put(ctx, "k1", data)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(stored))

	// mutate original slice
	data[0] = 'H'
	out, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))

	// mutate returned slice
	out[0] = 'x'
	out2, _ := s.Get(ctx, "k1")
	assert.Equal(t, "hello", string(out2))
}

func TestInMemoryStore_HasForgetFlush(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrKeyNotFound)

	_, _ = s.Put(ctx, "a", []byte("1"))
	_, _ = s.Put(ctx, "b", []byte("2"))
	has, err := s.Has(ctx, "a")
	require.NoError(t, err)
	assert.True(t, has)
	assert.ElementsMatch(t, []string{"a", "b"}, s.Keys())

	require.NoError(t, s.Forget(ctx, "a"))
	require.NoError(t, s.Forget(ctx, "a"), "forget is idempotent")
	has, _ = s.Has(ctx, "a")
	assert.False(t, has)

	require.NoError(t, s.Flush(ctx))
	assert.Empty(t, s.Keys())
	has, _ = s.Has(ctx, "b")
	assert.False(t, has)
}

func TestInMemoryStore_BucketsShareBackendButNotKeys(t *testing.T) {
	ctx := context.Background()
	carts := NewInMemoryStore()
	other := carts.WithBucket("_wishlist")

	assert.Equal(t, DefaultBucket, carts.Bucket())
	assert.Equal(t, "_wishlist", other.Bucket())

	_, _ = carts.Put(ctx, "k", []byte("cart"))
	_, _ = other.Put(ctx, "k", []byte("wish"))

	v, _ := carts.Get(ctx, "k")
	assert.Equal(t, "cart", string(v))

	require.NoError(t, other.Flush(ctx))
	has, _ := carts.Has(ctx, "k")
	assert.True(t, has, "flush only clears its own bucket")

	custom := NewInMemoryStore(func(o *InMemoryOptions) { o.Bucket = "" })
	assert.Equal(t, DefaultBucket, custom.Bucket())
}

func TestInMemoryStore_Concurrency(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%10)
			if _, err := s.Put(ctx, key, []byte("data")); err != nil {
				t.Errorf("put err: %v", err)
			}
			_, _ = s.Has(ctx, key)
			_ = s.Keys()
		}(i)
	}
	wg.Wait()
	assert.Len(t, s.Keys(), 10)
}
