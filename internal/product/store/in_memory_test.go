package store

import (
	"context"
	"strconv"
	"sync"
	"testing"

	perrors "github.com/abgdnv/gocatalog/internal/product/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func sampleProduct(name string) Product {
	return Product{Name: name, Category: "Прочее", Description: "д", Price: 10, Count: 5}
}

func Test_InMemory_SeedGetsSequentialIDs(t *testing.T) {
	// given
	s := NewInMemoryStore(SampleProducts()...)

	// when
	list, err := s.FindAll(context.Background())

	// then
	require.NoError(t, err)
	require.Len(t, list, 10)
	for i, p := range list {
		assert.Equal(t, strconv.Itoa(i+1), p.ID)
	}
	assert.Equal(t, "Кокакола", list[0].Name)
	assert.Equal(t, float64(200), list[0].Price)
}

func Test_InMemory_CreateAndFindByID(t *testing.T) {
	// given
	ctx := context.Background()
	s := NewInMemoryStore()

	// when
	created, err := s.Create(ctx, sampleProduct("Тест"))
	require.NoError(t, err)
	found, err := s.FindByID(ctx, created.ID)

	// then
	require.NoError(t, err)
	assert.Equal(t, created, found)
	assert.Equal(t, "1", created.ID)
	assert.Equal(t, 1, s.Count())
}

func Test_InMemory_CreateIgnoresSuppliedID(t *testing.T) {
	// given
	ctx := context.Background()
	s := NewInMemoryStore(sampleProduct("A"))
	p := sampleProduct("B")
	p.ID = "1"

	// when
	created, err := s.Create(ctx, p)

	// then
	require.NoError(t, err)
	assert.Equal(t, "2", created.ID)
	first, err := s.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "A", first.Name)
}

func Test_InMemory_FindByID_NotFound(t *testing.T) {
	s := NewInMemoryStore()

	_, err := s.FindByID(context.Background(), "42")

	require.ErrorIs(t, err, perrors.ErrProductNotFound)
}

func Test_InMemory_FindAllKeepsInsertionOrder(t *testing.T) {
	// given
	ctx := context.Background()
	s := NewInMemoryStore(sampleProduct("A"), sampleProduct("B"), sampleProduct("C"))
	require.NoError(t, s.DeleteByID(ctx, "2"))
	_, err := s.Create(ctx, sampleProduct("D"))
	require.NoError(t, err)

	// when
	list, err := s.FindAll(ctx)

	// then
	require.NoError(t, err)
	names := make([]string, 0, len(list))
	for _, p := range list {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"A", "C", "D"}, names)
}

func Test_InMemory_DeletedIDIsNeverReused(t *testing.T) {
	// given
	ctx := context.Background()
	s := NewInMemoryStore()
	first, err := s.Create(ctx, sampleProduct("A"))
	require.NoError(t, err)

	// when
	require.NoError(t, s.DeleteByID(ctx, first.ID))
	second, err := s.Create(ctx, sampleProduct("B"))

	// then
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	_, err = s.FindByID(ctx, first.ID)
	require.ErrorIs(t, err, perrors.ErrProductNotFound)
}

func Test_InMemory_Update(t *testing.T) {
	testCases := []struct {
		name     string
		patch    Patch
		expected Product
	}{
		{
			name:     "Success - only count",
			patch:    Patch{Count: ptr(3)},
			expected: Product{ID: "1", Name: "A", Category: "Прочее", Description: "д", Price: 10, Count: 3},
		},
		{
			name:     "Success - text and price",
			patch:    Patch{Name: ptr("B"), Description: ptr("new"), Price: ptr(0.5)},
			expected: Product{ID: "1", Name: "B", Category: "Прочее", Description: "new", Price: 0.5, Count: 5},
		},
		{
			name:     "Success - empty patch keeps the record",
			patch:    Patch{},
			expected: Product{ID: "1", Name: "A", Category: "Прочее", Description: "д", Price: 10, Count: 5},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			ctx := context.Background()
			s := NewInMemoryStore(sampleProduct("A"))

			// when
			updated, err := s.Update(ctx, "1", tc.patch)

			// then
			require.NoError(t, err)
			assert.Equal(t, tc.expected, *updated)
			stored, err := s.FindByID(ctx, "1")
			require.NoError(t, err)
			assert.Equal(t, tc.expected, *stored)
		})
	}
}

func Test_InMemory_Update_NotFound(t *testing.T) {
	s := NewInMemoryStore(sampleProduct("A"))

	_, err := s.Update(context.Background(), "2", Patch{Count: ptr(1)})

	require.ErrorIs(t, err, perrors.ErrProductNotFound)
}

func Test_InMemory_DeleteByID(t *testing.T) {
	testCases := []struct {
		name          string
		id            string
		expectError   error
		expectedCount int
	}{
		{name: "Success - product deleted", id: "1", expectError: nil, expectedCount: 1},
		{name: "Error - product not found", id: "3", expectError: perrors.ErrProductNotFound, expectedCount: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			s := NewInMemoryStore(sampleProduct("A"), sampleProduct("B"))

			// when
			err := s.DeleteByID(context.Background(), tc.id)

			// then
			if tc.expectError != nil {
				require.ErrorIs(t, err, tc.expectError)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.expectedCount, s.Count())
		})
	}
}

func Test_InMemory_ReturnedProductIsACopy(t *testing.T) {
	// given
	ctx := context.Background()
	s := NewInMemoryStore(sampleProduct("A"))

	// when
	found, err := s.FindByID(ctx, "1")
	require.NoError(t, err)
	found.Name = "changed"

	// then
	again, err := s.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "A", again.Name)
}

func Test_InMemory_ConcurrentCreatesGetUniqueIDs(t *testing.T) {
	// given
	ctx := context.Background()
	s := NewInMemoryStore()
	const workers = 50

	// when
	ids := make(chan string, workers)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := s.Create(ctx, sampleProduct("P"))
			if err == nil {
				ids <- p.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	// then
	seen := make(map[string]struct{}, workers)
	for id := range ids {
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, workers)
	assert.Equal(t, workers, s.Count())
}
