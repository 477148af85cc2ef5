package http

import (
	"encoding/json"
	"net/http"

	"github.com/dejobratic/storefront/internal/catalog/app"
	"github.com/dejobratic/storefront/internal/catalog/domain"
	"github.com/dejobratic/storefront/internal/httpapi"
)

// Handler exposes HTTP endpoints for the product catalog.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Register binds the catalog handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/products/featured", h.listFeatured)
	mux.HandleFunc("GET /v1/products/{id}", h.getProduct)
	mux.HandleFunc("POST /v1/products", h.createProduct)
	mux.HandleFunc("PUT /v1/products/{id}", h.updateProduct)
	mux.HandleFunc("GET /v1/categories/{categoryId}/products", h.listByCategory)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"product": product})
}

func (h *Handler) listFeatured(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListFeatured(r.Context())
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) listByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListByCategory(r.Context(), r.PathValue("categoryId"))
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var payload domain.Product
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpapi.WriteMessage(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	product, err := h.service.CreateProduct(r.Context(), payload)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, map[string]any{"product": product})
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var payload domain.Product
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpapi.WriteMessage(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	payload.ID = r.PathValue("id")

	if err := h.service.UpdateProduct(r.Context(), payload); err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"product": payload})
}
