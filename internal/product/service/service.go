// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"strings"

	perrors "github.com/abgdnv/gocatalog/internal/product/errors"
	"github.com/abgdnv/gocatalog/internal/product/store"
	"github.com/go-playground/validator/v10"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id string) (*ProductDto, error)

	// FindAll returns all available products in insertion order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]ProductDto, error)

	// Create validates and adds a new product to the catalog.
	// Returns a *ValidationError if a required field is missing or invalid.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update merges the supplied fields into an existing product.
	// Returns ErrProductNotFound, ErrNothingToUpdate or a *ValidationError, checked in that order.
	Update(ctx context.Context, id string, product ProductUpdateDto) (*ProductDto, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id string) error
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
	validate   *validator.Validate
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)
	return &Service{
		repository: repo,
		validate:   validate,
	}
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Count       int     `json:"count"`
}

// ProductCreateDto represents the data transfer object for creating a new product.
// Numeric fields are pointers so that a missing value can be told apart from zero.
type ProductCreateDto struct {
	Name        string   `json:"name"        validate:"required"`
	Category    string   `json:"category"    validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Count       *int     `json:"count"       validate:"required,gte=0"`

	// Malformed holds the fields the client sent with a value of the wrong type,
	// keyed by JSON name. Such a field is left at its zero value.
	Malformed map[string]string `json:"-" validate:"-"`
}

// ProductUpdateDto represents the data transfer object for a partial update.
// A nil field is not part of the update.
type ProductUpdateDto struct {
	Name        *string  `json:"name"        validate:"omitnil,min=1"`
	Category    *string  `json:"category"    validate:"omitnil,min=1"`
	Description *string  `json:"description" validate:"omitnil,min=1"`
	Price       *float64 `json:"price"       validate:"omitnil,gte=0"`
	Count       *int     `json:"count"       validate:"omitnil,gte=0"`

	// Malformed holds the fields the client sent with a value of the wrong type.
	// A malformed field counts as present, so the update is never empty.
	Malformed map[string]string `json:"-" validate:"-"`
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
func (s *Service) FindByID(ctx context.Context, id string) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}

	return toDto(product), nil
}

// FindAll retrieves a list of all products and returns them as ProductDTOs.
func (s *Service) FindAll(ctx context.Context) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	productDTOs := make([]ProductDto, len(products))

	for i, item := range products {
		productDTOs[i] = *toDto(&item)
	}

	return productDTOs, nil
}

// Create validates the product, stores a trimmed copy and returns it as a ProductDto.
// Nothing is stored when validation fails.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	product.Name = strings.TrimSpace(product.Name)
	product.Category = strings.TrimSpace(product.Category)
	product.Description = strings.TrimSpace(product.Description)

	if err := s.check(product, product.Malformed); err != nil {
		return nil, err
	}

	p, err := s.repository.Create(ctx, store.Product{
		Name:        product.Name,
		Category:    product.Category,
		Description: product.Description,
		Price:       *product.Price,
		Count:       *product.Count,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return toDto(p), nil
}

// Update merges the supplied fields into the product with the given ID.
// The whole request is validated before the stored record is touched.
func (s *Service) Update(ctx context.Context, id string, product ProductUpdateDto) (*ProductDto, error) {
	if _, err := s.repository.FindByID(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, err)
	}

	patch := toPatch(product)
	if patch.IsEmpty() && len(product.Malformed) == 0 {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, perrors.ErrNothingToUpdate)
	}

	product.Name = patch.Name
	product.Category = patch.Category
	product.Description = patch.Description
	if err := s.check(product, product.Malformed); err != nil {
		return nil, err
	}

	updated, err := s.repository.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, err)
	}

	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID.
func (s *Service) DeleteByID(ctx context.Context, id string) error {
	if err := s.repository.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product with ID %s: %w", id, err)
	}
	return nil
}

// check runs the struct validation and converts the result into a *ValidationError.
// A malformed field is reported with its type error instead of any rule it failed as a zero value.
func (s *Service) check(dto any, malformed map[string]string) error {
	fields := make(map[string]string, len(malformed))
	if err := s.validate.Struct(dto); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("failed to validate product: %w", err)
		}
		for _, fieldErr := range validationErrors {
			fields[fieldErr.Field()] = describe(fieldErr)
		}
	}
	maps.Copy(fields, malformed)
	if len(fields) == 0 {
		return nil
	}
	return &perrors.ValidationError{Fields: fields}
}

// describe turns a validator rule violation into a message for the client.
func describe(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must not be empty"
	case "gte":
		return "must be greater than or equal to " + fieldErr.Param()
	default:
		return "failed on rule: " + fieldErr.Tag()
	}
}

// jsonFieldName reports validation errors under the JSON name of the field.
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// toPatch converts an update request into a store.Patch, trimming text fields.
func toPatch(product ProductUpdateDto) store.Patch {
	return store.Patch{
		Name:        trimmed(product.Name),
		Category:    trimmed(product.Category),
		Description: trimmed(product.Description),
		Price:       product.Price,
		Count:       product.Count,
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID,
		Name:        product.Name,
		Category:    product.Category,
		Description: product.Description,
		Price:       product.Price,
		Count:       product.Count,
	}
}
