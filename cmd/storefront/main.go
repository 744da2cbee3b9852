package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/fjod/storefront/internal/cache"
	"github.com/fjod/storefront/internal/checkout"
	"github.com/fjod/storefront/internal/config"
	"github.com/fjod/storefront/internal/events"
	h "github.com/fjod/storefront/internal/http"
	"github.com/fjod/storefront/internal/logger"
	"github.com/fjod/storefront/internal/repository"
	"github.com/fjod/storefront/internal/service"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: cfg.AppEnv != "prod",
	})

	// Incoming traceparent headers flow into request logs as trace_id.
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	ctx := context.Background()

	// Stores
	carts := repository.NewMemoryCartStore()
	orders := repository.NewMemoryOrderStore()
	items := repository.NewMemoryItemStore(repository.DefaultItems)
	users := repository.NewMemoryUserStore()

	var cartCache cache.CartCache = cache.NoopCache{}
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			// the breaker keeps a dead Redis off the request path
			log.Warn("redis ping failed, cart cache degraded", "addr", cfg.RedisAddr, "error", err)
		} else {
			log.Info("redis ping succeeded", "addr", cfg.RedisAddr)
		}
		cartCache = cache.NewBreakerCache(cache.NewRedisCache(redisClient, cfg.CartCacheTTL), cache.BreakerSettings{}, log)
	}

	var sinks events.FanoutPublisher
	if len(cfg.KafkaBrokers) > 0 {
		sinks = append(sinks, events.NewKafkaPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...))
		log.Info("publishing order events to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			log.Error("rabbitmq unavailable, order events not queued", "error", err)
		} else {
			sinks = append(sinks, amqpPublisher)
			log.Info("publishing order events to rabbitmq", "queue", cfg.AMQPQueue)
		}
	}
	var publisher events.Publisher = events.NoopPublisher{}
	if len(sinks) > 0 {
		publisher = sinks
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("failed to close event publisher", "error", err)
		}
	}()

	// Services
	cartService := service.NewCartService(carts, cartCache, log)
	userService := service.NewUserService(users, log)
	checkoutService := checkout.NewService(orders, cartService, items, publisher, log)

	var limiter *h.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = h.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		defer limiter.Close()
	}

	router := h.NewRouter(h.Handlers{
		Carts:  h.NewCartHandler(cartService),
		Orders: h.NewOrdersHandler(checkoutService, orders),
		Items:  h.NewItemsHandler(items),
		Users:  h.NewUsersHandler(userService),
	}, h.RouterConfig{
		Logger:             log,
		RequestTimeout:     cfg.RequestTimeout,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		CORSOrigins:        cfg.CORSOrigins,
		RateLimiter:        limiter,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("storefront starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		log.Error("server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
