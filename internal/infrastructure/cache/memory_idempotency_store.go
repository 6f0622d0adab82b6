// Package cache contiene los almacenes de claves de idempotencia de las liquidaciones.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Invex-api/internal/application/deal"
)

type entry struct {
	dealID    string // vacío = liquidación en curso
	expiresAt time.Time
}

// MemoryIdempotencyStore implementa deal.IdempotencyStore en memoria (una sola instancia).
type MemoryIdempotencyStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	entries   map[string]entry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewMemoryIdempotencyStore crea el almacén y arranca la limpieza periódica de claves vencidas.
func NewMemoryIdempotencyStore(ttl time.Duration) *MemoryIdempotencyStore {
	s := &MemoryIdempotencyStore{
		ttl:      ttl,
		entries:  make(map[string]entry),
		stopChan: make(chan struct{}),
	}
	s.wg.Add(1)
	go s.cleanupLoop()
	return s
}

func (s *MemoryIdempotencyStore) Reserve(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok && time.Now().Before(e.expiresAt) {
		return e.dealID, false, nil
	}
	s.entries[key] = entry{expiresAt: time.Now().Add(s.ttl)}
	return "", true, nil
}

func (s *MemoryIdempotencyStore) Complete(ctx context.Context, key, dealID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{dealID: dealID, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *MemoryIdempotencyStore) Release(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Close detiene la limpieza; se puede llamar varias veces.
func (s *MemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// Size devuelve el número de claves guardadas.
func (s *MemoryIdempotencyStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryIdempotencyStore) cleanupLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *MemoryIdempotencyStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}
}

var _ deal.IdempotencyStore = (*MemoryIdempotencyStore)(nil)
