package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	httpadapter "github.com/dejobratic/storefront/internal/carts/adapters/http"
	cartsmemory "github.com/dejobratic/storefront/internal/carts/adapters/memory"
	"github.com/dejobratic/storefront/internal/carts/app"
	catalogmemory "github.com/dejobratic/storefront/internal/catalog/adapters/memory"
	catalogdomain "github.com/dejobratic/storefront/internal/catalog/domain"
	"github.com/dejobratic/storefront/internal/money"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	products := catalogmemory.NewRepository()
	products.Seed(catalogdomain.Product{
		ID:    "prod-1",
		Name:  "Ground Turmeric",
		Price: money.Cents(999),
		Stock: 10,
	})

	service := app.NewService(cartsmemory.NewRepository(), products, logger)

	mux := http.NewServeMux()
	httpadapter.NewHandler(service).Register(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func addItem(t *testing.T, server *httptest.Server, productID string, quantity int) *http.Response {
	t.Helper()

	body, _ := json.Marshal(map[string]any{"productId": productID, "quantity": quantity})
	resp, err := http.Post(server.URL+"/v1/carts/user-1/items", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	return resp
}

func TestCartEndpoints(t *testing.T) {
	t.Run("returns an empty cart for a new user", func(t *testing.T) {
		server := newTestServer(t)

		resp, err := http.Get(server.URL + "/v1/carts/user-1")
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var view struct {
			ItemCount int `json:"item_count"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
			t.Fatalf("expected valid JSON, got: %v", err)
		}
		if view.ItemCount != 0 {
			t.Errorf("expected empty cart, got %d items", view.ItemCount)
		}
	})

	t.Run("adds an item and derives totals", func(t *testing.T) {
		server := newTestServer(t)

		resp := addItem(t, server, "prod-1", 2)
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var view struct {
			ItemCount int   `json:"item_count"`
			Tax       int64 `json:"tax"`
			Total     int64 `json:"total"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
			t.Fatalf("expected valid JSON, got: %v", err)
		}
		// item_count counts cart lines, not units.
		if view.ItemCount != 1 {
			t.Errorf("expected 1 line, got %d", view.ItemCount)
		}
		if view.Tax != 160 {
			t.Errorf("expected tax 160, got %d", view.Tax)
		}
		if view.Total != 2757 {
			t.Errorf("expected total 2757, got %d", view.Total)
		}
	})

	t.Run("rejects adding beyond stock", func(t *testing.T) {
		server := newTestServer(t)

		resp := addItem(t, server, "prod-1", 99)
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("updating quantity of an absent line is 404", func(t *testing.T) {
		server := newTestServer(t)
		addItem(t, server, "prod-1", 1).Body.Close()

		body, _ := json.Marshal(map[string]any{"quantity": 3})
		req, _ := http.NewRequest(http.MethodPut, server.URL+"/v1/carts/user-1/items/other-product", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("clears the cart", func(t *testing.T) {
		server := newTestServer(t)
		addItem(t, server, "prod-1", 2).Body.Close()

		req, _ := http.NewRequest(http.MethodDelete, server.URL+"/v1/carts/user-1", nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var view struct {
			ItemCount int `json:"item_count"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
			t.Fatalf("expected valid JSON, got: %v", err)
		}
		if view.ItemCount != 0 {
			t.Errorf("expected empty cart after clear, got %d items", view.ItemCount)
		}
	})
}
