package router

import (
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// CartRoutes wires the cart endpoints
func CartRoutes(h *handler.CartHandler) *DomainGroup {
	return NewDomainGroup("cart", "/cart").
		GET("", h.GetCart).
		POST("/add", h.AddItem).
		PATCH("/item", h.UpdateItem).
		DELETE("/item", h.RemoveItem).
		DELETE("/clear", h.ClearCart)
}

// OrderRoutes wires the order endpoints. Status updates are admin only;
// payment updates come from the trusted payment callback.
func OrderRoutes(h *handler.OrderHandler) *DomainGroup {
	return NewDomainGroup("orders", "/orders").
		POST("", h.CreateOrder).
		GET("", h.GetMyOrders).
		GET("/:id", h.GetOrder).
		PATCH("/payment", h.UpdatePaymentStatus).
		PATCH("/status", middleware.RequireAdmin(), h.UpdateOrderStatus)
}

// ProductRoutes wires the catalog endpoints
func ProductRoutes(h *handler.ProductHandler) *DomainGroup {
	return NewDomainGroup("products", "/products").
		POST("", middleware.RequireAdmin(), h.CreateProduct).
		GET("/:id", h.GetProduct)
}
