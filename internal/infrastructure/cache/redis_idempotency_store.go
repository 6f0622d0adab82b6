package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Invex-api/internal/application/deal"
)

const (
	defaultKeyPrefix = "invex:idempotency:"
	pendingValue     = "pending"
)

// RedisConfig datos de conexión a Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisIdempotencyStore implementa deal.IdempotencyStore sobre Redis; sirve para varias instancias.
type RedisIdempotencyStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisIdempotencyStore conecta con Redis y verifica la conexión con PING.
func NewRedisIdempotencyStore(ctx context.Context, cfg RedisConfig, ttl time.Duration) (*RedisIdempotencyStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return NewRedisIdempotencyStoreWithClient(client, "", ttl), nil
}

// NewRedisIdempotencyStoreWithClient usa un cliente existente (tests, cliente compartido).
func NewRedisIdempotencyStoreWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisIdempotencyStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisIdempotencyStore{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

// Reserve usa SETNX: solo una petición con la misma clave puede quedar en curso.
func (s *RedisIdempotencyStore) Reserve(ctx context.Context, key string) (string, bool, error) {
	k := s.keyPrefix + key
	for attempt := 0; attempt < 2; attempt++ {
		ok, err := s.client.SetNX(ctx, k, pendingValue, s.ttl).Result()
		if err != nil {
			return "", false, fmt.Errorf("reserve key: %w", err)
		}
		if ok {
			return "", true, nil
		}
		val, err := s.client.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			// expiró entre SETNX y GET
			continue
		}
		if err != nil {
			return "", false, fmt.Errorf("read key: %w", err)
		}
		if val == pendingValue {
			return "", false, nil
		}
		return val, false, nil
	}
	return "", false, nil
}

func (s *RedisIdempotencyStore) Complete(ctx context.Context, key, dealID string) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, dealID, s.ttl).Err(); err != nil {
		return fmt.Errorf("complete key: %w", err)
	}
	return nil
}

func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("release key: %w", err)
	}
	return nil
}

// Close cierra el cliente.
func (s *RedisIdempotencyStore) Close() error {
	return s.client.Close()
}

var _ deal.IdempotencyStore = (*RedisIdempotencyStore)(nil)
