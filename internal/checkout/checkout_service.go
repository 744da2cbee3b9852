package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/events"
)

const publishTimeout = 2 * time.Second

type OrderLedger interface {
	CreateOrder(ctx context.Context, userID, cartID int64, items []domain.CartItem, total float64) (*domain.Order, error)
}

type CartClearer interface {
	ClearCart(ctx context.Context, userID int64) error
}

type ItemLookup interface {
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
}

type Request struct {
	UserID int64
	CartID int64
	Items  []domain.CartItem
	// Total is priced by the client from catalog data and stored as given.
	Total float64
}

type Result struct {
	Order  *domain.Order
	Status Status
}

type Service struct {
	orders    OrderLedger
	carts     CartClearer
	catalog   ItemLookup
	publisher events.Publisher
	logger    *slog.Logger
	locks     *userLocks
}

// NewService wires the checkout orchestrator. catalog may be nil, in which case the
// client total is not compared against catalog prices.
func NewService(orders OrderLedger, carts CartClearer, catalog ItemLookup, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		orders:    orders,
		carts:     carts,
		catalog:   catalog,
		publisher: publisher,
		logger:    logger,
		locks:     newUserLocks(),
	}
}

// Checkout records an order from the supplied snapshot and then empties the user's cart.
//
// If the order cannot be created nothing is persisted and the error is returned. If the
// cart cannot be cleared afterwards the order stays recorded: the Result is returned
// together with an error wrapping ErrPartialCheckout.
func (s *Service) Checkout(ctx context.Context, req Request) (*Result, error) {
	unlock := s.locks.lock(req.UserID)
	defer unlock()

	status := StatusPriced
	s.compareWithCatalog(ctx, req)

	if !CanTransitionTo(status, StatusOrderCreated) {
		return nil, IllegalTransitionError
	}
	order, err := s.orders.CreateOrder(ctx, req.UserID, req.CartID, req.Items, req.Total)
	if err != nil {
		s.logger.WarnContext(ctx, "checkout failed",
			"user_id", req.UserID, "cart_id", req.CartID, "status", StatusFailed, "error", err)
		return nil, fmt.Errorf("create order: %w", err)
	}
	status = StatusOrderCreated

	if !CanTransitionTo(status, StatusCartCleared) {
		return nil, IllegalTransitionError
	}
	if err := s.carts.ClearCart(ctx, req.UserID); err != nil {
		s.logger.ErrorContext(ctx, "checkout partially failed: order recorded, cart not cleared",
			"user_id", req.UserID, "order_id", order.ID, "status", status, "error", err)
		s.publish(ctx, order, false)
		return &Result{Order: order, Status: status}, fmt.Errorf("%w: order %d: %w", ErrPartialCheckout, order.ID, err)
	}
	status = StatusCartCleared

	s.logger.InfoContext(ctx, "checkout completed",
		"user_id", req.UserID, "order_id", order.ID, "total", order.Total, "status", status)
	s.publish(ctx, order, true)

	return &Result{Order: order, Status: status}, nil
}

// compareWithCatalog logs when the client total differs from catalog prices.
// It never alters the order.
func (s *Service) compareWithCatalog(ctx context.Context, req Request) {
	if s.catalog == nil {
		return
	}

	var catalogTotal float64
	for _, it := range req.Items {
		item, err := s.catalog.GetItem(ctx, it.ItemID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				s.logger.WarnContext(ctx, "catalog lookup failed", "item_id", it.ItemID, "error", err)
			}
			return
		}
		catalogTotal += item.Price * float64(it.Quantity)
	}

	if math.Abs(catalogTotal-req.Total) > 0.005 {
		s.logger.WarnContext(ctx, "client total differs from catalog total",
			"user_id", req.UserID, "client_total", req.Total, "catalog_total", catalogTotal)
	}
}

func (s *Service) publish(ctx context.Context, order *domain.Order, cartCleared bool) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.PublishOrderPlaced(ctx, events.NewOrderPlaced(order, cartCleared)); err != nil {
		s.logger.WarnContext(ctx, "order placed event not published", "order_id", order.ID, "error", err)
	}
}
