// Package memory implementa los puertos de almacenamiento en memoria del proceso.
// Se usa en desarrollo y cuando no hay Redis ni PostgreSQL configurados.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/repository"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

// KVStore mapa protegido por mutex. Los datos se pierden al reiniciar.
type KVStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewKVStore construye el store vacío.
func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string]string)}
}

func (s *KVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *KVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()
	return nil
}

func (s *KVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}
