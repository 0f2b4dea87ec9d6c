package order

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Event types for the order aggregate
const (
	EventTypePlaced         = "order.placed"
	EventTypeStatusChanged  = "order.status_changed"
	EventTypePaymentUpdated = "order.payment_updated"
)

// PlacedLine is the event payload for a single purchased line
type PlacedLine struct {
	ProductID       uuid.UUID `json:"product_id"`
	Size            string    `json:"size"`
	Quantity        int       `json:"quantity"`
	PriceAtPurchase int64     `json:"price_at_purchase"`
}

// PlacedEvent is emitted when a cart has been converted into an order
type PlacedEvent struct {
	shared.BaseDomainEvent
	UserID      uuid.UUID    `json:"user_id"`
	Lines       []PlacedLine `json:"lines"`
	TotalAmount int64        `json:"total_amount"`
}

// NewPlacedEvent creates a new order placed event
func NewPlacedEvent(o *Order) *PlacedEvent {
	lines := make([]PlacedLine, 0, len(o.Lines))
	for _, line := range o.Lines {
		lines = append(lines, PlacedLine{
			ProductID:       line.ProductID,
			Size:            line.Size,
			Quantity:        line.Quantity,
			PriceAtPurchase: line.PriceAtPurchase,
		})
	}

	return &PlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlaced, "Order", o.ID),
		UserID:          o.UserID,
		Lines:           lines,
		TotalAmount:     o.TotalAmount,
	}
}

// StatusChangedEvent is emitted when the fulfilment status changes
type StatusChangedEvent struct {
	shared.BaseDomainEvent
	UserID         uuid.UUID `json:"user_id"`
	PreviousStatus Status    `json:"previous_status"`
	NewStatus      Status    `json:"new_status"`
}

// NewStatusChangedEvent creates a new status changed event
func NewStatusChangedEvent(o *Order, previous Status) *StatusChangedEvent {
	return &StatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStatusChanged, "Order", o.ID),
		UserID:          o.UserID,
		PreviousStatus:  previous,
		NewStatus:       o.Status,
	}
}

// PaymentUpdatedEvent is emitted when the payment status changes
type PaymentUpdatedEvent struct {
	shared.BaseDomainEvent
	UserID        uuid.UUID     `json:"user_id"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaymentID     *string       `json:"payment_id,omitempty"`
}

// NewPaymentUpdatedEvent creates a new payment updated event
func NewPaymentUpdatedEvent(o *Order) *PaymentUpdatedEvent {
	return &PaymentUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentUpdated, "Order", o.ID),
		UserID:          o.UserID,
		PaymentStatus:   o.PaymentStatus,
		PaymentID:       o.PaymentID,
	}
}
