package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItemRequest es una línea pedida por el operador
type CartItemRequest struct {
	ProductID  uuid.UUID       `json:"product_id" binding:"required"`
	IsFullUnit bool            `json:"is_full_unit"`
	Quantity   int             `json:"quantity" binding:"required,min=1"`
	Discount   decimal.Decimal `json:"discount"`
}

// PriceCartRequest arma y valora un carrito contra el inventario vigente
type PriceCartRequest struct {
	Items         []CartItemRequest `json:"items" binding:"required,min=1"`
	DiscountTotal decimal.Decimal   `json:"discount_total"`
}
