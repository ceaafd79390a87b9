package route

import "context"

// UpdateFunc mutates a route while the repository holds its lock.
// Returning an error discards every change made by the function.
type UpdateFunc func(r *Route) error

// Repository defines the interface for route storage.
type Repository interface {
	// Create inserts a route if its ID is not already present.
	// Returns ErrAlreadyExists otherwise.
	Create(ctx context.Context, r *Route) error

	// Get retrieves a copy of a route by ID.
	// Returns ErrNotFound if the route doesn't exist.
	Get(ctx context.Context, id string) (*Route, error)

	// Update applies fn to a route under that route's exclusive lock.
	// Updates to different routes may run in parallel.
	Update(ctx context.Context, id string, fn UpdateFunc) error

	// Reset removes every route. Intended for test isolation.
	Reset(ctx context.Context) error
}
