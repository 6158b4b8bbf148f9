package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine es una línea preparada del carrito de venta.
// Guarda ambos precios para poder alternar entre unidad completa y dosis
// sin volver al catálogo, y el stock disponible capturado al momento de
// agregar la línea (en la unidad elegida).
type CartLine struct {
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Divisible      bool            `json:"divisible"`
	IsFullUnit     bool            `json:"is_full_unit"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	PricePerDose   decimal.Decimal `json:"price_per_dose"`
	Discount       decimal.Decimal `json:"discount"`
	AvailableStock int             `json:"available_stock"`
}

// Price retorna el precio vigente según el modo de unidad de la línea
func (l CartLine) Price() decimal.Decimal {
	if l.IsFullUnit {
		return l.UnitPrice
	}
	return l.PricePerDose
}

// Subtotal = precio vigente × cantidad
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Total = subtotal − descuento de la línea
func (l CartLine) Total() decimal.Decimal {
	return l.Subtotal().Sub(l.Discount)
}

// Cart es el carrito de una sesión de venta: líneas en orden de inserción
// más un descuento opcional aplicado al carrito completo. Es un value
// object: las operaciones sobre él devuelven un carrito nuevo.
type Cart struct {
	Lines         []CartLine      `json:"lines"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
}

// CartTotals son los totales derivados del carrito
type CartTotals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	ItemDiscounts decimal.Decimal `json:"item_discounts"`
	Total         decimal.Decimal `json:"total"`
}

// Totals recalcula los totales desde las líneas actuales.
// El total nunca es negativo aunque los descuentos superen el subtotal.
func (c Cart) Totals() CartTotals {
	subtotal := decimal.Zero
	itemDiscounts := decimal.Zero
	for _, l := range c.Lines {
		subtotal = subtotal.Add(l.Subtotal())
		itemDiscounts = itemDiscounts.Add(l.Discount)
	}

	total := subtotal.Sub(itemDiscounts).Sub(c.DiscountTotal)
	if total.LessThan(decimal.Zero) {
		total = decimal.Zero
	}

	return CartTotals{
		Subtotal:      subtotal,
		ItemDiscounts: itemDiscounts,
		Total:         total,
	}
}

// FindLine retorna el índice de la línea (productID, isFullUnit), -1 si no existe.
// El par es único dentro del carrito.
func (c Cart) FindLine(productID uuid.UUID, isFullUnit bool) int {
	for i, l := range c.Lines {
		if l.ProductID == productID && l.IsFullUnit == isFullUnit {
			return i
		}
	}
	return -1
}

// CloneLines copia las líneas para preservar la semántica de valor
func (c Cart) CloneLines() []CartLine {
	out := make([]CartLine, len(c.Lines))
	copy(out, c.Lines)
	return out
}
