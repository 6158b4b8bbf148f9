package response

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ventas/src/sales/domain/entity"
)

// CartLineResponse es una línea valorada del carrito
type CartLineResponse struct {
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	IsFullUnit     bool            `json:"is_full_unit"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Discount       decimal.Decimal `json:"discount"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Total          decimal.Decimal `json:"total"`
	AvailableStock int             `json:"available_stock"`
}

// CartWarning es una señal de validación por línea (no fatal)
type CartWarning struct {
	ProductID uuid.UUID `json:"product_id"`
	Signal    string    `json:"signal"`
}

// PriceCartResponse son las líneas aceptadas más los totales recalculados
type PriceCartResponse struct {
	Lines         []CartLineResponse `json:"lines"`
	Warnings      []CartWarning      `json:"warnings,omitempty"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	ItemDiscounts decimal.Decimal    `json:"item_discounts"`
	DiscountTotal decimal.Decimal    `json:"discount_total"`
	Total         decimal.Decimal    `json:"total"`
}

// NewCartLineResponse arma la línea de respuesta desde la línea de dominio
func NewCartLineResponse(l entity.CartLine) CartLineResponse {
	return CartLineResponse{
		ProductID:      l.ProductID,
		ProductName:    l.ProductName,
		IsFullUnit:     l.IsFullUnit,
		Quantity:       l.Quantity,
		UnitPrice:      l.Price(),
		Discount:       l.Discount,
		Subtotal:       l.Subtotal(),
		Total:          l.Total(),
		AvailableStock: l.AvailableStock,
	}
}
