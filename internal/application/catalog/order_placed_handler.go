package catalog

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderPlacedHandler decrements variant stock when an order is placed.
//
// Deduction is best-effort: the order is already durable when this handler
// runs, so a variant that has gone missing or run out only produces a
// warning, never a failed checkout. Oversold variants surface through the
// logged warnings.
type OrderPlacedHandler struct {
	productRepo catalog.Repository
	logger      *zap.Logger
}

// NewOrderPlacedHandler creates a new stock deduction handler
func NewOrderPlacedHandler(productRepo catalog.Repository, logger *zap.Logger) *OrderPlacedHandler {
	return &OrderPlacedHandler{
		productRepo: productRepo,
		logger:      logger,
	}
}

// EventTypes returns the event types this handler subscribes to
func (h *OrderPlacedHandler) EventTypes() []string {
	return []string{order.EventTypePlaced}
}

// Handle processes an order placed event
func (h *OrderPlacedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	placed, ok := event.(*order.PlacedEvent)
	if !ok {
		return nil
	}

	for _, line := range placed.Lines {
		err := h.productRepo.DecrementStock(ctx, line.ProductID, line.Size, line.Quantity)
		if err != nil {
			h.logger.Warn("stock deduction failed for placed order",
				zap.String("order_id", placed.AggregateID().String()),
				zap.String("product_id", line.ProductID.String()),
				zap.String("size", line.Size),
				zap.Int("quantity", line.Quantity),
				zap.Error(err),
			)
		}
	}

	return nil
}

// Ensure OrderPlacedHandler implements EventHandler
var _ shared.EventHandler = (*OrderPlacedHandler)(nil)
