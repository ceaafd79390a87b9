package route

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepository_CreateGet(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Route{ID: "a", Created: dateOf(day)}))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)
	assert.Empty(t, got.WayPoints)
	assert.False(t, got.Paths.IsSet())
	assert.False(t, got.Summary.IsSet())
}

func TestInMemoryRepository_CreateDuplicate(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Route{ID: "a"}))
	assert.ErrorIs(t, repo.Create(ctx, &Route{ID: "a"}), ErrAlreadyExists)
	assert.Len(t, repo.routes, 1)
}

func TestInMemoryRepository_NotFound(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Update(ctx, "missing", func(*Route) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryRepository_GetReturnsCopy(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &Route{ID: "a"}))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	got.WayPoints = append(got.WayPoints, &WayPoint{Lat: d("1")})

	again, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, again.WayPoints)
}

func TestInMemoryRepository_UpdateFailureDiscardsChanges(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &Route{ID: "a"}))

	boom := errors.New("boom")
	err := repo.Update(ctx, "a", func(r *Route) error {
		r.WayPoints = append(r.WayPoints, &WayPoint{Lat: d("1")})
		r.Paths = Some([]Path{})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, got.WayPoints)
	assert.False(t, got.Paths.IsSet())
}

func TestInMemoryRepository_ConcurrentUpdatesSameRoute(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &Route{ID: "a"}))

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Update(ctx, "a", func(r *Route) error {
				r.WayPoints = append(r.WayPoints, &WayPoint{Lat: d("1")})
				return nil
			})
		}()
	}
	wg.Wait()

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, got.WayPoints, writers)
}

func TestInMemoryRepository_ConcurrentCreateDistinctKeys(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	const routes = 40
	var wg sync.WaitGroup
	for i := 0; i < routes; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("route-%d", i)
			assert.NoError(t, repo.Create(ctx, &Route{ID: id}))
			_, err := repo.Get(ctx, id)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, repo.routes, routes)
}

func TestInMemoryRepository_Reset(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &Route{ID: "a"}))

	require.NoError(t, repo.Reset(ctx))

	assert.Len(t, repo.routes, 0)
	_, err := repo.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, repo.Create(ctx, &Route{ID: "a"}))
}
