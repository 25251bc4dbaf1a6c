package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{EnvAddr, EnvPassword, EnvDB, EnvPrefix, EnvTTL, EnvTracing} {
		t.Setenv(k, "")
	}
	assert.Equal(t, DefaultConfig(), LoadConfig())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv(EnvAddr, "cache.internal:6380")
	t.Setenv(EnvPassword, "secret")
	t.Setenv(EnvDB, "3")
	t.Setenv(EnvPrefix, "shop:")
	t.Setenv(EnvTTL, "30m")
	t.Setenv(EnvTracing, "true")

	cfg := LoadConfig()
	assert.Equal(t, Config{
		Addr:     "cache.internal:6380",
		Password: "secret",
		DB:       3,
		Prefix:   "shop:",
		TTL:      30 * time.Minute,
		Tracing:  true,
	}, cfg)
}

func TestLoadConfig_MalformedValuesKeepDefaults(t *testing.T) {
	t.Setenv(EnvDB, "three")
	t.Setenv(EnvTTL, "soon")
	t.Setenv(EnvTracing, "maybe")

	cfg := LoadConfig()
	assert.Equal(t, 0, cfg.DB)
	assert.Equal(t, time.Duration(0), cfg.TTL)
	assert.False(t, cfg.Tracing)
}

func TestClientOptions(t *testing.T) {
	t.Run("plain host gets default port", func(t *testing.T) {
		o, err := clientOptions(Config{Addr: "redis-host", DB: 2, Password: "pw"})
		require.NoError(t, err)
		assert.Equal(t, "redis-host:6379", o.Addr)
		assert.Equal(t, 2, o.DB)
		assert.Equal(t, "pw", o.Password)
	})

	t.Run("host with port is kept", func(t *testing.T) {
		o, err := clientOptions(Config{Addr: "redis-host:7000"})
		require.NoError(t, err)
		assert.Equal(t, "redis-host:7000", o.Addr)
	})

	t.Run("blank address uses default", func(t *testing.T) {
		o, err := clientOptions(Config{})
		require.NoError(t, err)
		assert.Equal(t, "localhost:6379", o.Addr)
	})

	t.Run("url is parsed", func(t *testing.T) {
		o, err := clientOptions(Config{Addr: "redis://:pw@example.com:6390/4"})
		require.NoError(t, err)
		assert.Equal(t, "example.com:6390", o.Addr)
		assert.Equal(t, "pw", o.Password)
		assert.Equal(t, 4, o.DB)
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := clientOptions(Config{Addr: "redis://example.com/notadb"})
		assert.Error(t, err)
	})
}

func TestNewClient_WithTracing(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(Config{Addr: mr.Addr(), Tracing: true}, WithTracerProvider(noop.NewTracerProvider()))
	require.NoError(t, err)
	defer client.Close()

	s := New(client, "traced")
	assert.True(t, s.Ping(context.Background()))

	_, err = s.Put(context.Background(), "k", []byte("v"))
	require.NoError(t, err)
	assert.Equal(t, "v", mr.HGet("sessioncart:traced:_cart", "k"))
}
