// Package redisstore implementa el almacenamiento clave/valor sobre Redis para
// que el conjunto de ítems notificados sobreviva reinicios y se comparta entre réplicas.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/repository"
)

const defaultKeyPrefix = "dashboard:"

var _ repository.KeyValueStore = (*KVStore)(nil)

// KVStore adaptador Redis. ttl = 0 guarda sin expiración.
type KVStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewKVStore construye el adaptador. prefix vacío usa "dashboard:".
func NewKVStore(client *redis.Client, prefix string, ttl time.Duration) *KVStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &KVStore{client: client, prefix: prefix, ttl: ttl}
}

// Connect abre el cliente y verifica la conexión con PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
