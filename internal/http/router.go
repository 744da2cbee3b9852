package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Handlers struct {
	Carts  *CartHandler
	Orders *OrdersHandler
	Items  *ItemsHandler
	Users  *UsersHandler
}

type RouterConfig struct {
	Logger             *slog.Logger
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
	CORSOrigins        []string
	// RateLimiter is optional.
	RateLimiter *RateLimiter
}

// NewRouter builds the storefront HTTP surface. Catalog reads, registration and
// login are public; carts and orders require a bearer credential.
func NewRouter(h Handlers, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.StripSlashes)
	r.Use(RequestIDMiddleware)
	r.Use(RequestLogger(logger))
	r.Use(Recoverer(logger))
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(middleware.Compress(5))
	r.Use(LimitBody(cfg.MaxRequestBodySize))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "not_found", "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/items", h.Items.List)
	r.Post("/items", h.Items.Create)

	r.Post("/users", h.Users.Register)
	r.Get("/users", h.Users.List)
	r.Post("/users/login", h.Users.Login)

	r.Group(func(r chi.Router) {
		r.Use(RequireCredential)

		r.Post("/carts", h.Carts.AddItem)
		r.Get("/carts", h.Carts.GetCarts)
		r.Delete("/carts", h.Carts.ClearCart)

		r.Post("/orders", h.Orders.CreateOrder)
		r.Get("/orders", h.Orders.ListOrders)
	})

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{RequestIDHeader, CheckoutStatusHeader},
		AllowCredentials: true,
		MaxAge:           int((12 * time.Hour).Seconds()),
	}).Handler(r)

	return otelhttp.NewHandler(handler, "storefront")
}
