package http

import (
	"encoding/json"
	"net/http"

	"github.com/dejobratic/storefront/internal/httpapi"
	"github.com/dejobratic/storefront/internal/money"
	"github.com/dejobratic/storefront/internal/payments/app"
)

// Handler exposes HTTP endpoints for payment settlement.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Register binds the payment handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/payments", h.processPayment)
	mux.HandleFunc("GET /v1/payments/order/{orderId}", h.getByOrder)
	mux.HandleFunc("GET /v1/payments/{id}", h.getPayment)
}

type processPaymentRequest struct {
	OrderID       string      `json:"orderId"`
	UserID        string      `json:"userId"`
	Amount        money.Cents `json:"amount"`
	Currency      string      `json:"currency"`
	PaymentMethod string      `json:"paymentMethod"`
}

func (h *Handler) processPayment(w http.ResponseWriter, r *http.Request) {
	var payload processPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpapi.WriteMessage(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	payment, err := h.service.ProcessPayment(r.Context(), app.ProcessPaymentInput{
		OrderID:       payload.OrderID,
		UserID:        payload.UserID,
		Amount:        payload.Amount,
		Currency:      payload.Currency,
		PaymentMethod: payload.PaymentMethod,
	})
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, map[string]any{"payment": payment})
}

func (h *Handler) getPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.service.GetPayment(r.Context(), r.PathValue("id"))
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"payment": payment})
}

func (h *Handler) getByOrder(w http.ResponseWriter, r *http.Request) {
	payment, err := h.service.GetPaymentByOrder(r.Context(), r.PathValue("orderId"))
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"payment": payment})
}
