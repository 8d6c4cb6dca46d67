package store

import (
	"context"
	"slices"
	"strconv"
	"sync"

	"github.com/abgdnv/gocatalog/internal/product/errors"
)

// inMemory implements ProductStore using an in-memory map.
// order keeps the insertion order used for listing.
type inMemory struct {
	mu       sync.RWMutex
	products map[string]Product
	order    []string
	nextID   int
}

// NewInMemoryStore creates a new instance of ProductStore filled with the given products.
// Seed products get their IDs assigned the same way as created ones.
func NewInMemoryStore(seed ...Product) ProductStore {
	s := &inMemory{
		products: make(map[string]Product, len(seed)),
		order:    make([]string, 0, len(seed)),
		nextID:   1,
	}
	for _, p := range seed {
		s.insert(p)
	}
	return s
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(_ context.Context, id string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, errors.ErrProductNotFound
	}
	return &p, nil
}

// FindAll retrieves all products.
func (s *inMemory) FindAll(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, s.products[id])
	}
	return list, nil
}

// Create creates a new product and returns it.
func (s *inMemory) Create(_ context.Context, product Product) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := s.insert(product)
	return &created, nil
}

// Update merges the non-nil patch fields into the stored product.
func (s *inMemory) Update(_ context.Context, id string, patch Patch) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, errors.ErrProductNotFound
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Count != nil {
		p.Count = *patch.Count
	}
	s.products[id] = p

	return &p, nil
}

// DeleteByID deletes a product by its ID.
func (s *inMemory) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return errors.ErrProductNotFound
	}
	delete(s.products, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return nil
}

// Count returns the number of stored products.
func (s *inMemory) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// insert must be called with the write lock held (or before the store is shared).
// The counter only grows, so an ID is never handed out twice.
func (s *inMemory) insert(product Product) Product {
	product.ID = strconv.Itoa(s.nextID)
	s.nextID++
	s.products[product.ID] = product
	s.order = append(s.order, product.ID)
	return product
}
