package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/order"
)

// UpdatePaymentStatusRequest is sent by the payment provider callback.
// PaymentID is optional; when absent a previously stored ID is kept.
type UpdatePaymentStatusRequest struct {
	OrderID       uuid.UUID `json:"order_id" binding:"required"`
	PaymentStatus string    `json:"payment_status" binding:"required,oneof=PENDING PAID FAILED"`
	PaymentID     *string   `json:"payment_id"`
}

// UpdateOrderStatusRequest advances the fulfilment status of an order
type UpdateOrderStatusRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
	Status  string    `json:"status" binding:"required,oneof=PLACED SHIPPED DELIVERED CANCELLED"`
}

// ListOrdersFilter carries pagination for order listings
type ListOrdersFilter struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size" binding:"omitempty,max=100"`
}

// LineResponse represents an order line in responses
type LineResponse struct {
	ProductID       uuid.UUID `json:"product_id"`
	Size            string    `json:"size"`
	Quantity        int       `json:"quantity"`
	PriceAtPurchase int64     `json:"price_at_purchase"`
}

// OrderResponse represents an order in responses
type OrderResponse struct {
	ID            string         `json:"id"`
	UserID        uuid.UUID      `json:"user_id"`
	Lines         []LineResponse `json:"lines"`
	TotalAmount   int64          `json:"total_amount"`
	PaymentStatus string         `json:"payment_status"`
	Status        string         `json:"status"`
	PaymentID     *string        `json:"payment_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ToOrderResponse maps an order aggregate to its response representation
func ToOrderResponse(o *order.Order) OrderResponse {
	lines := make([]LineResponse, 0, len(o.Lines))
	for _, line := range o.Lines {
		lines = append(lines, LineResponse{
			ProductID:       line.ProductID,
			Size:            line.Size,
			Quantity:        line.Quantity,
			PriceAtPurchase: line.PriceAtPurchase,
		})
	}

	return OrderResponse{
		ID:            o.ID.String(),
		UserID:        o.UserID,
		Lines:         lines,
		TotalAmount:   o.TotalAmount,
		PaymentStatus: o.PaymentStatus.String(),
		Status:        o.Status.String(),
		PaymentID:     o.PaymentID,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// ToOrderResponses maps a slice of orders
func ToOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for idx := range orders {
		responses = append(responses, ToOrderResponse(&orders[idx]))
	}
	return responses
}
