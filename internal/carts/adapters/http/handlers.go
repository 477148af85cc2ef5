package http

import (
	"encoding/json"
	"net/http"

	"github.com/dejobratic/storefront/internal/carts/app"
	"github.com/dejobratic/storefront/internal/httpapi"
)

// Handler exposes HTTP endpoints for cart operations. Carts are keyed by
// user id; totals in responses are recomputed server-side on every read.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Register binds the cart handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/carts/{userId}", h.getCart)
	mux.HandleFunc("POST /v1/carts/{userId}/items", h.addItem)
	mux.HandleFunc("PUT /v1/carts/{userId}/items/{productId}", h.setQuantity)
	mux.HandleFunc("DELETE /v1/carts/{userId}/items/{productId}", h.removeItem)
	mux.HandleFunc("DELETE /v1/carts/{userId}", h.clearCart)
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Get(r.Context(), r.PathValue("userId"))
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var payload addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpapi.WriteMessage(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	view, err := h.service.AddItem(r.Context(), r.PathValue("userId"), payload.ProductID, payload.Quantity)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	var payload setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpapi.WriteMessage(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	view, err := h.service.SetQuantity(r.Context(), r.PathValue("userId"), r.PathValue("productId"), payload.Quantity)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.RemoveItem(r.Context(), r.PathValue("userId"), r.PathValue("productId"))
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Clear(r.Context(), r.PathValue("userId"))
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, view)
}
