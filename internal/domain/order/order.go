package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Line represents a line item captured at purchase time.
// PriceAtPurchase is a snapshot; later catalog changes never touch it.
type Line struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null"`
	Size            string    `gorm:"type:varchar(20);not null"`
	Quantity        int       `gorm:"not null"`
	PriceAtPurchase int64     `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM
func (Line) TableName() string {
	return "order_lines"
}

// NewLine creates a new order line
func NewLine(orderID, productID uuid.UUID, size string, quantity int, priceAtPurchase int64) (*Line, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if size == "" {
		return nil, shared.NewDomainError("INVALID_SIZE", "Size cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if priceAtPurchase <= 0 {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price at purchase must be positive")
	}

	now := time.Now()
	return &Line{
		ID:              uuid.New(),
		OrderID:         orderID,
		ProductID:       productID,
		Size:            size,
		Quantity:        quantity,
		PriceAtPurchase: priceAtPurchase,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Amount returns quantity * priceAtPurchase for this line
func (l *Line) Amount() int64 {
	return int64(l.Quantity) * l.PriceAtPurchase
}

// Order represents a placed order aggregate root.
// Payment status and fulfilment status are independent axes.
type Order struct {
	shared.BaseAggregateRoot
	UserID        uuid.UUID     `gorm:"type:uuid;not null;index"`
	Lines         []Line        `gorm:"foreignKey:OrderID"`
	TotalAmount   int64         `gorm:"not null"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Status        Status        `gorm:"type:varchar(20);not null;default:'PLACED'"`
	PaymentID     *string       `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// New creates a new order for a user in its initial state
func New(userID uuid.UUID) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Lines:             make([]Line, 0),
		TotalAmount:       0,
		PaymentStatus:     PaymentStatusPending,
		Status:            StatusPlaced,
	}, nil
}

// AddLine appends a purchase line and recalculates the total
func (o *Order) AddLine(productID uuid.UUID, size string, quantity int, priceAtPurchase int64) (*Line, error) {
	line, err := NewLine(o.ID, productID, size, quantity, priceAtPurchase)
	if err != nil {
		return nil, err
	}

	o.Lines = append(o.Lines, *line)
	o.recalculateTotal()
	o.UpdatedAt = time.Now()

	return line, nil
}

// Place marks the order as placed and emits the placement event.
// Call after all lines have been added.
func (o *Order) Place() error {
	if len(o.Lines) == 0 {
		return shared.ErrEmptyCart
	}

	o.AddDomainEvent(NewPlacedEvent(o))

	return nil
}

// SetPaymentStatus updates the payment axis.
// Transitions are deliberately lax: payment callbacks may retry or arrive
// out of order, so any valid status is accepted from any current status and
// repeating the current status succeeds. PaymentID is set only when the
// callback carries one; an absent ID never clears a stored one.
func (o *Order) SetPaymentStatus(status PaymentStatus, paymentID *string) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", fmt.Sprintf("Unknown payment status %q", status))
	}

	o.PaymentStatus = status
	if paymentID != nil && *paymentID != "" {
		o.PaymentID = paymentID
	}
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewPaymentUpdatedEvent(o))

	return nil
}

// SetStatus updates the fulfilment axis, enforcing the lifecycle
// PLACED -> SHIPPED -> DELIVERED with cancellation allowed from PLACED and
// SHIPPED. Setting the current status again is a no-op.
func (o *Order) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_ORDER_STATUS", fmt.Sprintf("Unknown order status %q", status))
	}
	if status == o.Status {
		return nil
	}
	if !o.Status.CanTransitionTo(status) {
		return shared.ErrInvalidTransition.WithMessage("Cannot transition order from %s to %s", o.Status, status)
	}

	previous := o.Status
	o.Status = status
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewStatusChangedEvent(o, previous))

	return nil
}

// BelongsTo returns true if the order is owned by the given user
func (o *Order) BelongsTo(userID uuid.UUID) bool {
	return o.UserID == userID
}

// LineCount returns the number of lines in the order
func (o *Order) LineCount() int {
	return len(o.Lines)
}

// recalculateTotal recalculates the order total from its lines
func (o *Order) recalculateTotal() {
	var total int64
	for _, line := range o.Lines {
		total += line.Amount()
	}
	o.TotalAmount = total
}
