// Package store provides an interface for product storage operations.
package store

import "context"

// Product represents a product entity in the store.
type Product struct {
	ID          string
	Name        string
	Category    string
	Description string
	Price       float64
	Count       int
}

// Patch holds the fields of a partial update. Nil fields are left untouched.
type Patch struct {
	Name        *string
	Category    *string
	Description *string
	Price       *float64
	Count       *int
}

// IsEmpty reports whether the patch carries no field at all.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Category == nil && p.Description == nil && p.Price == nil && p.Count == nil
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations.
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindAll returns all available products in insertion order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]Product, error)

	// Create assigns a fresh ID to the product, stores it and returns the stored copy.
	Create(ctx context.Context, product Product) (*Product, error)

	// Update applies the patch to an existing product in a single step.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id string, patch Patch) (*Product, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id string) error

	// Count returns the number of stored products.
	Count() int
}
