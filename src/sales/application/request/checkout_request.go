package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutRequest cobra una venta: carrito preparado + entradas del cobro.
// El servidor rearma el carrito y recalcula el cobro antes de persistir;
// nunca confía en totales calculados por el cliente.
type CheckoutRequest struct {
	OwnerID          *uuid.UUID        `json:"owner_id"`
	Items            []CartItemRequest `json:"items" binding:"required,min=1"`
	DiscountTotal    decimal.Decimal   `json:"discount_total"`
	UseCredit        bool              `json:"use_credit"`
	RequestedCredit  decimal.Decimal   `json:"requested_credit"`
	IsPartial        bool              `json:"is_partial"`
	RequestedPartial decimal.Decimal   `json:"requested_partial"`
	PaymentMethodID  *uuid.UUID        `json:"payment_method_id"`
	ManualRate       *decimal.Decimal  `json:"manual_rate"`
	Reference        string            `json:"reference"`
}
