package scene

import (
	"sync"

	"github.com/google/uuid"
)

// ============================================================
// Registry
// ============================================================

// Registry keeps live sessions by id. Every access runs under one mutex, so
// steps on a session never overlap.
type Registry[T any] struct {
	mu       sync.Mutex
	sessions map[string]T
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		sessions: make(map[string]T),
	}
}

// Put stores v under a fresh id.
func (r *Registry[T]) Put(v T) string {
	id := uuid.NewString()
	r.Store(id, v)
	return id
}

// Store stores v under id, replacing what was there.
func (r *Registry[T]) Store(id string, v T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[id] = v
}

// With runs fn on the session while holding the registry lock.
func (r *Registry[T]) With(id string, fn func(T) error) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.sessions[id]
	if !ok {
		return false, nil
	}
	return true, fn(v)
}

func (r *Registry[T]) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}
