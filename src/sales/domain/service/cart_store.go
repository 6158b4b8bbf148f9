package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ventas/src/sales/domain/entity"
)

// Operaciones del carrito. Todas son transformadores sin estado
// (Cart, operación) -> Cart: devuelven un carrito nuevo y dejan el
// original intacto. Las señales de validación se devuelven como error;
// ante una señal el carrito retornado es el recibido, sin cambios.

// AddItem agrega un producto al carrito en el modo de unidad elegido.
// Si ya existe una línea para (producto, modo) incrementa su cantidad en 1,
// validando contra el stock capturado al crear la línea.
func AddItem(cart entity.Cart, product *entity.Product, snapshot entity.StockSnapshot, isFullUnit bool) (entity.Cart, error) {
	if !isFullUnit && !product.Divisible {
		return cart, entity.ErrNotDivisible
	}

	available := AvailableStock(product, snapshot, isFullUnit)
	if available == 0 {
		return cart, entity.ErrOutOfStock
	}

	if idx := cart.FindLine(product.ID, isFullUnit); idx >= 0 {
		line := cart.Lines[idx]
		if line.Quantity+1 > line.AvailableStock {
			return cart, entity.ErrStockLimitReached
		}
		lines := cart.CloneLines()
		lines[idx].Quantity++
		cart.Lines = lines
		return cart, nil
	}

	line := entity.CartLine{
		ProductID:      product.ID,
		ProductName:    product.Name,
		Divisible:      product.Divisible,
		IsFullUnit:     isFullUnit,
		Quantity:       1,
		UnitPrice:      product.SalePrice,
		PricePerDose:   product.DosePrice(),
		Discount:       decimal.Zero,
		AvailableStock: available,
	}
	cart.Lines = append(cart.CloneLines(), line)
	return cart, nil
}

// UpdateQuantity fija la cantidad de una línea. Cantidad ≤ 0 elimina la
// línea; una cantidad mayor al stock capturado señala StockLimitReached y
// deja la cantidad como estaba.
func UpdateQuantity(cart entity.Cart, productID uuid.UUID, isFullUnit bool, newQuantity int) (entity.Cart, error) {
	idx := cart.FindLine(productID, isFullUnit)
	if idx < 0 {
		return cart, entity.ErrLineNotFound
	}

	if newQuantity <= 0 {
		return RemoveItem(cart, productID, isFullUnit), nil
	}

	if newQuantity > cart.Lines[idx].AvailableStock {
		return cart, entity.ErrStockLimitReached
	}

	lines := cart.CloneLines()
	lines[idx].Quantity = newQuantity
	cart.Lines = lines
	return cart, nil
}

// UpdateDiscount fija el descuento absoluto de una línea
func UpdateDiscount(cart entity.Cart, productID uuid.UUID, isFullUnit bool, discount decimal.Decimal) (entity.Cart, error) {
	idx := cart.FindLine(productID, isFullUnit)
	if idx < 0 {
		return cart, entity.ErrLineNotFound
	}
	if discount.LessThan(decimal.Zero) {
		return cart, entity.ErrInvalidDiscount
	}

	lines := cart.CloneLines()
	lines[idx].Discount = discount
	cart.Lines = lines
	return cart, nil
}

// ToggleUnitMode alterna una línea entre unidad completa y dosis,
// manteniendo la cantidad y recalculando precios con el campo opuesto.
// Solo válido para productos divisibles. Si ya existe una línea en el modo
// opuesto la operación se rechaza para no duplicar el par (producto, modo).
//
// NOTA: el cambio de modo no revalida la cantidad contra el stock
// disponible de la unidad opuesta; comportamiento heredado, pendiente de
// confirmación antes de cambiarlo.
func ToggleUnitMode(cart entity.Cart, productID uuid.UUID) (entity.Cart, error) {
	var idx = -1
	for i, l := range cart.Lines {
		if l.ProductID == productID {
			if idx >= 0 {
				// ya hay líneas en ambos modos
				return cart, entity.ErrDuplicateLine
			}
			idx = i
		}
	}
	if idx < 0 {
		return cart, entity.ErrLineNotFound
	}
	if !cart.Lines[idx].Divisible {
		return cart, entity.ErrNotDivisible
	}

	lines := cart.CloneLines()
	lines[idx].IsFullUnit = !lines[idx].IsFullUnit
	cart.Lines = lines
	return cart, nil
}

// RemoveItem elimina la línea (producto, modo) si existe
func RemoveItem(cart entity.Cart, productID uuid.UUID, isFullUnit bool) entity.Cart {
	idx := cart.FindLine(productID, isFullUnit)
	if idx < 0 {
		return cart
	}

	lines := cart.CloneLines()
	cart.Lines = append(lines[:idx], lines[idx+1:]...)
	return cart
}
