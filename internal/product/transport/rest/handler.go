// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/abgdnv/gocatalog/internal/platform/web"
	perrors "github.com/abgdnv/gocatalog/internal/product/errors"
	"github.com/abgdnv/gocatalog/internal/product/service"
	"github.com/go-chi/chi/v5"
)

const (
	productsPath = "/api/products"
	apiDocsPath  = "/api-docs"
)

var errTrailingData = errors.New("unexpected data after JSON object")

//go:embed openapi.yaml
var openAPIDocument []byte

type Handler struct {
	service service.ProductService
	logger  *slog.Logger
}

// NewHandler creates a new instance of Handler with the provided service.
func NewHandler(service service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the catalog.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route(productsPath, func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Patch("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})

	r.Get("/healthz", h.HealthCheck)
	r.Get(apiDocsPath, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, apiDocsPath+"/openapi.yaml", http.StatusMovedPermanently)
	})
	r.Get(apiDocsPath+"/openapi.yaml", h.OpenAPI)
}

// FindAll retrieves a list of all products.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received request to find all products")
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		h.respondServiceError(w, r, "", err)
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.logger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, id, err)
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decode(w, r)
	if !ok {
		return
	}
	productCreateDto := body.createDto()
	h.logger.DebugContext(r.Context(), "Received request to create product", "product", productCreateDto)

	newProduct, err := h.service.Create(r.Context(), productCreateDto)
	if err != nil {
		h.respondServiceError(w, r, "", err)
		return
	}
	h.logger.InfoContext(r.Context(), "Product created successfully", "ID", newProduct.ID, "Name", newProduct.Name)
	web.RespondJSON(w, h.logger, http.StatusCreated, newProduct)
}

// Update merges the fields present in the body into the product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	body, ok := h.decode(w, r)
	if !ok {
		return
	}
	productUpdateDto := body.updateDto()
	h.logger.DebugContext(r.Context(), "Received request to update product", "ID", id)

	updated, err := h.service.Update(r.Context(), id, productUpdateDto)
	if err != nil {
		h.respondServiceError(w, r, id, err)
		return
	}
	h.logger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, h.logger, http.StatusOK, updated)
}

// DeleteByID deletes a product by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.logger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		h.respondServiceError(w, r, id, err)
		return
	}
	h.logger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// OpenAPI serves the API description.
func (h *Handler) OpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openAPIDocument)
}

// decode reads the JSON object in the request body. An empty body decodes as an empty object.
// It answers the request itself and returns false when the body cannot be used.
// Field types are not checked here, see payload.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (*payload, bool) {
	var fields map[string]json.RawMessage
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(&fields)
	if err == nil {
		// anything after the object makes the whole body invalid
		if err = dec.Decode(&json.RawMessage{}); err == nil {
			err = errTrailingData
		}
	}
	if errors.Is(err, io.EOF) {
		return newPayload(fields), true
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.logger.WarnContext(r.Context(), "Request body too large", "limit", maxBytesErr.Limit)
		web.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, "Request body too large")
		return nil, false
	}
	h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
	web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
	return nil, false
}

// respondServiceError maps a service error onto the status code and body the client sees.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, id string, err error) {
	var validationErr *perrors.ValidationError
	switch {
	case errors.Is(err, perrors.ErrProductNotFound):
		h.logger.WarnContext(r.Context(), "Product not found", "ID", id)
		web.RespondError(w, h.logger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id))
	case errors.Is(err, perrors.ErrNothingToUpdate):
		h.logger.WarnContext(r.Context(), "Nothing to update", "ID", id)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Nothing to update")
	case errors.As(err, &validationErr):
		h.logger.WarnContext(r.Context(), "Validation errors occurred", "errors", validationErr.Fields)
		web.RespondValidation(w, h.logger, "Validation failed", validationErr.Fields)
	default:
		h.logger.ErrorContext(r.Context(), "Error processing product request", "ID", id, "method", r.Method, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, web.InternalErrorMessage)
	}
}
