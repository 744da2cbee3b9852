package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fjod/storefront/internal/domain"
)

// TestStorefrontFlow walks a shopper from registration to checkout.
func TestStorefrontFlow(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, "POST", "/users", CredentialsRequestDTO{Username: "alice", Password: "pw"}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", rec.Code)
	}

	rec = s.do(t, "POST", "/users/login", CredentialsRequestDTO{Username: "alice", Password: "pw"}, "")
	var login LoginResponseDTO
	decodeBody(t, rec, &login)
	if login.Token == "" {
		t.Fatal("login: expected a token")
	}

	s.do(t, "POST", "/carts", map[string]any{"user_id": login.ID, "item_id": 3, "quantity": 1}, login.Token)
	rec = s.do(t, "POST", "/carts", map[string]any{"user_id": login.ID, "item_id": 3, "quantity": 2}, login.Token)
	var cart domain.Cart
	decodeBody(t, rec, &cart)
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 3 {
		t.Fatalf("cart: expected item 3 with quantity 3, got %+v", cart.Items)
	}

	rec = s.do(t, "POST", "/orders", map[string]any{
		"user_id": login.ID,
		"cart_id": cart.ID,
		"items":   cart.Items,
		"total":   44.97,
	}, login.Token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("checkout: expected 201, got %d", rec.Code)
	}

	rec = s.do(t, "GET", "/carts?userId=1", nil, login.Token)
	var after domain.Cart
	decodeBody(t, rec, &after)
	if after.ID != cart.ID || len(after.Items) != 0 {
		t.Errorf("Expected cart %d to remain and be empty, got %+v", cart.ID, after)
	}

	rec = s.do(t, "GET", "/orders", nil, login.Token)
	var orders []domain.Order
	decodeBody(t, rec, &orders)
	if len(orders) != 1 || orders[0].Total != 44.97 {
		t.Errorf("Expected one order totalling 44.97, got %+v", orders)
	}
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, "GET", "/health", nil, "")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, rec.Code)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("Expected X-Request-ID on every response")
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	s := newTestServer(t)

	expectError(t, s.do(t, "GET", "/nope", nil, ""), http.StatusNotFound, "Not found")
	expectError(t, s.do(t, "PUT", "/items", nil, ""), http.StatusMethodNotAllowed, "Method not allowed")
}

func TestRouter_CORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("OPTIONS", "/carts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Expected allowed origin, got %q", got)
	}
	if rec.Code == http.StatusUnauthorized {
		t.Error("Expected preflight to bypass the credential check")
	}
}
