package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fjod/storefront/internal/checkout"
	"github.com/fjod/storefront/internal/repository"
	"github.com/fjod/storefront/internal/service"
)

// testServer wires the real in-memory stack behind the router.
type testServer struct {
	handler http.Handler
	carts   *repository.MemoryCartStore
	orders  *repository.MemoryOrderStore
	users   *repository.MemoryUserStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	carts := repository.NewMemoryCartStore()
	orders := repository.NewMemoryOrderStore()
	items := repository.NewMemoryItemStore(repository.DefaultItems)
	users := repository.NewMemoryUserStore()

	cartService := service.NewCartService(carts, nil, logger)
	checkoutService := checkout.NewService(orders, cartService, items, nil, logger)

	h := NewRouter(Handlers{
		Carts:  NewCartHandler(cartService),
		Orders: NewOrdersHandler(checkoutService, orders),
		Items:  NewItemsHandler(items),
		Users:  NewUsersHandler(service.NewUserService(users, logger)),
	}, RouterConfig{
		Logger:             logger,
		MaxRequestBodySize: 1 << 20,
		CORSOrigins:        []string{"http://localhost:3000"},
	})

	return &testServer{handler: h, carts: carts, orders: orders, users: users}
}

func (s *testServer) do(t *testing.T, method, target string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("Expected status code %d, got %d (body %s)", status, rec.Code, rec.Body.String())
	}
	var response ErrorResponse
	decodeBody(t, rec, &response)
	if message != "" && response.Message != message {
		t.Errorf("Expected message %q, got %q", message, response.Message)
	}
	if response.Message == "" {
		t.Errorf("Expected a non-empty message")
	}
}
