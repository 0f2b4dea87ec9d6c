package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CheckoutLock serializes checkouts per user. Acquire returns false when
// another checkout currently holds the lock.
type CheckoutLock interface {
	Acquire(ctx context.Context, userID uuid.UUID) (bool, error)
	Release(ctx context.Context, userID uuid.UUID) error
}

// Service handles order placement and status tracking
type Service struct {
	orderRepo      order.Repository
	cartRepo       cart.Repository
	productRepo    catalog.Repository
	checkoutLock   CheckoutLock
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewService creates a new order Service
func NewService(orderRepo order.Repository, cartRepo cart.Repository, productRepo catalog.Repository, checkoutLock CheckoutLock, logger *zap.Logger) *Service {
	return &Service{
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		checkoutLock: checkoutLock,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateOrder converts the user's cart into an order.
//
// Prices are resolved from the catalog at this moment and captured on each
// line; later catalog changes never alter the order. The cart is cleared
// only after the order has been persisted. If the clear itself fails the
// order stands and the checkout still succeeds; the leftover cart is logged
// and can be cleaned up by a later checkout or a manual clear.
func (s *Service) CreateOrder(ctx context.Context, userID uuid.UUID) (*OrderResponse, error) {
	acquired, err := s.checkoutLock.Acquire(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, shared.ErrCheckoutInProgress
	}
	defer func() {
		if err := s.checkoutLock.Release(ctx, userID); err != nil {
			s.logger.Warn("failed to release checkout lock",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
	}()

	c, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrEmptyCart
		}
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}

	products, err := s.resolveProducts(ctx, c)
	if err != nil {
		return nil, err
	}

	o, err := order.New(userID)
	if err != nil {
		return nil, err
	}

	for _, line := range c.Lines {
		product := products[line.ProductID]
		price := order.FinalPrice(product.MRP, product.DiscountPercent)
		if _, err := o.AddLine(line.ProductID, line.Size, line.Quantity, price); err != nil {
			return nil, err
		}
	}

	if err := o.Place(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	// The order is durable from here on. A failed clear leaves a stale cart
	// behind but must not fail the checkout.
	if err := s.cartRepo.ClearLines(ctx, c.ID); err != nil {
		s.logger.Warn("order placed but cart not cleared",
			zap.String("order_id", o.ID.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}

	s.publishEvents(ctx, o)

	response := ToOrderResponse(o)
	return &response, nil
}

// resolveProducts batch-loads every product referenced by the cart.
// Any missing product aborts the whole checkout; no partial order is
// created from the resolvable subset.
func (s *Service) resolveProducts(ctx context.Context, c *cart.Cart) (map[uuid.UUID]*catalog.Product, error) {
	seen := make(map[uuid.UUID]bool, len(c.Lines))
	ids := make([]uuid.UUID, 0, len(c.Lines))
	for _, line := range c.Lines {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for idx := range products {
		byID[products[idx].ID] = &products[idx]
	}

	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			s.logger.Warn("cart references missing product",
				zap.String("product_id", id.String()),
			)
			return nil, shared.ErrProductNotFound
		}
	}

	return byID, nil
}

// GetMyOrders returns the user's orders, newest first. Results are always
// paginated: without explicit paging the first 20 orders are returned, and
// the total count is reported separately so callers can page through the
// rest rather than receiving the full history in one response.
func (s *Service) GetMyOrders(ctx context.Context, userID uuid.UUID, filter ListOrdersFilter) ([]OrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}

	orders, err := s.orderRepo.FindByUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderResponses(orders), total, nil
}

// GetOrder returns one of the user's orders. An order that does not exist
// and an order owned by someone else are indistinguishable to the caller;
// both are NotFound.
func (s *Service) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.BelongsTo(userID) {
		return nil, shared.ErrNotFound
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// UpdatePaymentStatus applies a payment provider callback. The caller is
// trusted, so there is no ownership check; transitions are lax and
// re-entrant to tolerate provider retries.
func (s *Service) UpdatePaymentStatus(ctx context.Context, req UpdatePaymentStatusRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	if err := o.SetPaymentStatus(order.PaymentStatus(req.PaymentStatus), req.PaymentID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)

	response := ToOrderResponse(o)
	return &response, nil
}

// UpdateOrderStatus advances the fulfilment status. Transitions outside the
// lifecycle are rejected with INVALID_TRANSITION; setting the current
// status again succeeds without a write.
func (s *Service) UpdateOrderStatus(ctx context.Context, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	previous := o.Status
	if err := o.SetStatus(order.Status(req.Status)); err != nil {
		return nil, err
	}

	if o.Status != previous {
		if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, o)
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// publishEvents flushes the aggregate's pending events to the bus
func (s *Service) publishEvents(ctx context.Context, o *order.Order) {
	if s.eventPublisher == nil {
		return
	}

	events := o.GetDomainEvents()
	if len(events) == 0 {
		return
	}

	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish order events",
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
	}
	o.ClearDomainEvents()
}
