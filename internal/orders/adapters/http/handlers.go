package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dejobratic/storefront/internal/httpapi"
	"github.com/dejobratic/storefront/internal/money"
	"github.com/dejobratic/storefront/internal/orders/app"
	"github.com/dejobratic/storefront/internal/orders/app/commands"
	"github.com/dejobratic/storefront/internal/orders/domain"
)

// Handler exposes HTTP endpoints for the order workflow.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Register binds the order handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/orders", h.createOrder)
	mux.HandleFunc("GET /v1/orders/recent", h.listRecent)
	mux.HandleFunc("GET /v1/orders/number/{orderNumber}", h.getByNumber)
	mux.HandleFunc("GET /v1/orders/user/{userId}", h.listByUser)
	mux.HandleFunc("GET /v1/orders/{id}", h.getOrder)
	mux.HandleFunc("POST /v1/orders/{id}/cancel", h.cancelOrder)
	mux.HandleFunc("PUT /v1/orders/{id}/status", h.updateStatus)
	mux.HandleFunc("PUT /v1/orders/{id}/payment-status", h.updatePaymentStatus)
}

type createOrderRequest struct {
	UserID          string               `json:"userId"`
	Items           []commands.ItemInput `json:"items"`
	ShippingAddress domain.Address       `json:"shippingAddress"`
	BillingAddress  domain.Address       `json:"billingAddress"`
	PaymentMethod   string               `json:"paymentMethod"`
	Notes           string               `json:"notes"`
	Discount        money.Cents          `json:"discount"`
}

type updateStatusRequest struct {
	Status         domain.OrderStatus `json:"status"`
	TrackingNumber string             `json:"trackingNumber"`
}

type updatePaymentStatusRequest struct {
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
	PaymentID     string               `json:"paymentId"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var payload createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpapi.WriteMessage(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.CreateOrder(r.Context(), app.CreateOrderInput{
		UserID:          payload.UserID,
		Items:           payload.Items,
		ShippingAddress: payload.ShippingAddress,
		BillingAddress:  payload.BillingAddress,
		PaymentMethod:   payload.PaymentMethod,
		Notes:           payload.Notes,
		Discount:        payload.Discount,
	})
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, map[string]any{"order": order})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"order": order})
}

func (h *Handler) getByNumber(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetOrderByNumber(r.Context(), r.PathValue("orderNumber"))
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"order": order})
}

func (h *Handler) listByUser(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListUserOrders(r.Context(), r.PathValue("userId"))
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *Handler) listRecent(w http.ResponseWriter, r *http.Request) {
	var limit int
	if param := r.URL.Query().Get("limit"); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil {
			httpapi.WriteMessage(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	orders, err := h.service.ListRecentOrders(r.Context(), limit)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.CancelOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"order": order})
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var payload updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpapi.WriteMessage(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), r.PathValue("id"), payload.Status, payload.TrackingNumber)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"order": order})
}

func (h *Handler) updatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var payload updatePaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpapi.WriteMessage(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.UpdatePaymentStatus(r.Context(), r.PathValue("id"), payload.PaymentStatus, payload.PaymentID)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"order": order})
}
