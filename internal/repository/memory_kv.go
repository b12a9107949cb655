package repository

import (
	"context"
	"fmt"
	"sync"
)

// MemoryKVRepo is a process-local KVRepo. It backs the progress store when
// the database cannot be opened; nothing survives a restart.
type MemoryKVRepo struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryKVRepo creates an empty MemoryKVRepo.
func NewMemoryKVRepo() *MemoryKVRepo {
	return &MemoryKVRepo{data: make(map[string]string)}
}

func (r *MemoryKVRepo) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[key]
	if !ok {
		return "", fmt.Errorf("key %q: %w", key, ErrNotFound)
	}
	return v, nil
}

func (r *MemoryKVRepo) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = value
	return nil
}

func (r *MemoryKVRepo) Remove(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

var _ KVRepo = (*MemoryKVRepo)(nil)
