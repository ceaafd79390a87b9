package route

import (
	"context"
	"sync"
)

// entry guards a single stored route.
type entry struct {
	mu    sync.Mutex
	route *Route
}

// InMemoryRepository is an in-process implementation of Repository.
// Routes live for the lifetime of the process.
type InMemoryRepository struct {
	mu     sync.RWMutex
	routes map[string]*entry
}

// NewInMemoryRepository creates a new in-memory route repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		routes: make(map[string]*entry),
	}
}

// Create inserts a route if absent.
func (r *InMemoryRepository) Create(_ context.Context, route *Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.routes[route.ID]; ok {
		return ErrAlreadyExists
	}

	r.routes[route.ID] = &entry{route: route.clone()}
	return nil
}

// Get retrieves a copy of a route by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Route, error) {
	e, ok := r.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.route.clone(), nil
}

// Update applies fn to a working copy and stores it only if fn succeeds.
func (r *InMemoryRepository) Update(_ context.Context, id string, fn UpdateFunc) error {
	e, ok := r.lookup(id)
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	working := e.route.clone()
	if err := fn(working); err != nil {
		return err
	}

	e.route = working
	return nil
}

// Reset removes every route.
func (r *InMemoryRepository) Reset(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.routes = make(map[string]*entry)
	return nil
}

func (r *InMemoryRepository) lookup(id string) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.routes[id]
	return e, ok
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
