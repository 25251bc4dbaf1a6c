package redisstore

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

// Environment variables read by LoadConfig.
const (
	EnvAddr     = "SESSIONCART_REDIS_ADDR"
	EnvPassword = "SESSIONCART_REDIS_PASSWORD"
	EnvDB       = "SESSIONCART_REDIS_DB"
	EnvPrefix   = "SESSIONCART_REDIS_PREFIX"
	EnvTTL      = "SESSIONCART_REDIS_TTL"
	EnvTracing  = "SESSIONCART_REDIS_TRACING"
)

// Config describes the Redis connection and key layout.
type Config struct {
	// Addr is host[:port] or a redis:// / rediss:// URL.
	Addr     string
	Password string
	DB       int

	// Prefix is prepended to every session hash key.
	Prefix string

	// TTL expires a session hash after inactivity. Zero keeps it forever.
	TTL time.Duration

	// Tracing instruments the client with OpenTelemetry spans.
	Tracing bool
}

// DefaultConfig returns a local, untraced configuration.
func DefaultConfig() Config {
	return Config{Addr: "localhost:6379", Prefix: DefaultPrefix}
}

// LoadConfig reads the SESSIONCART_REDIS_* environment variables on top of
// DefaultConfig. Malformed numbers and durations keep the default.
func LoadConfig() Config {
	def := DefaultConfig()
	return Config{
		Addr:     getEnv(EnvAddr, def.Addr),
		Password: getEnv(EnvPassword, def.Password),
		DB:       getEnvInt(EnvDB, def.DB),
		Prefix:   getEnv(EnvPrefix, def.Prefix),
		TTL:      getEnvDuration(EnvTTL, def.TTL),
		Tracing:  getEnvBool(EnvTracing, def.Tracing),
	}
}

// ClientOptions tunes NewClient.
type ClientOptions struct {
	// TracerProvider used when Config.Tracing is set. Nil uses the global
	// OpenTelemetry provider.
	TracerProvider trace.TracerProvider
}

// WithTracerProvider sets the tracer provider for instrumented clients.
func WithTracerProvider(tp trace.TracerProvider) func(o *ClientOptions) {
	return func(o *ClientOptions) { o.TracerProvider = tp }
}

// NewClient builds a go-redis client from cfg. URLs go through
// redis.ParseURL; a plain host without port gets :6379.
func NewClient(cfg Config, optFns ...func(o *ClientOptions)) (*redis.Client, error) {
	opts := ClientOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	redisOpts, err := clientOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(redisOpts)

	if cfg.Tracing {
		var tracing []redisotel.TracingOption
		if opts.TracerProvider != nil {
			tracing = append(tracing, redisotel.WithTracerProvider(opts.TracerProvider))
		}
		if err := redisotel.InstrumentTracing(client, tracing...); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("instrument redis tracing: %w", err)
		}
	}
	return client, nil
}

func clientOptions(cfg Config) (*redis.Options, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		addr = DefaultConfig().Addr
	}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		o, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return o, nil
	}
	if !strings.Contains(addr, ":") {
		addr += ":6379"
	}
	return &redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MinIdleConns: 1,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		PoolTimeout:  4 * time.Second,
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
