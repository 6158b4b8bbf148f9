package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ventas/src/sales/application/request"
	"ventas/src/sales/application/response"
	"ventas/src/sales/domain/entity"
	"ventas/src/sales/domain/port"
	"ventas/src/sales/domain/service"
)

// PriceCartUseCase arma un carrito del lado del servidor contra el catálogo
// y la foto de inventario vigentes, y devuelve las líneas valoradas con los
// totales recalculados. Las señales de stock no abortan: la línea se omite
// y se reporta como warning por campo.
type PriceCartUseCase struct {
	inventory port.InventoryProvider
}

// NewPriceCartUseCase crea una nueva instancia del caso de uso
func NewPriceCartUseCase(inventory port.InventoryProvider) *PriceCartUseCase {
	return &PriceCartUseCase{inventory: inventory}
}

// Execute rearma el carrito pedido replicando las operaciones de staging
func (uc *PriceCartUseCase) Execute(ctx context.Context, clinicID uuid.UUID, req *request.PriceCartRequest) (*response.PriceCartResponse, error) {
	catalog, snapshots, err := LoadInventory(ctx, uc.inventory, clinicID)
	if err != nil {
		return nil, err
	}

	cart, warnings := StageCart(req.Items, req.DiscountTotal, catalog, snapshots)
	totals := cart.Totals()

	lines := make([]response.CartLineResponse, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, response.NewCartLineResponse(l))
	}

	return &response.PriceCartResponse{
		Lines:         lines,
		Warnings:      warnings,
		Subtotal:      totals.Subtotal,
		ItemDiscounts: totals.ItemDiscounts,
		DiscountTotal: cart.DiscountTotal,
		Total:         totals.Total,
	}, nil
}

// LoadInventory trae catálogo y foto de inventario y los indexa por producto
func LoadInventory(ctx context.Context, inventory port.InventoryProvider, clinicID uuid.UUID) (map[uuid.UUID]entity.Product, map[uuid.UUID]entity.StockSnapshot, error) {
	products, err := inventory.Catalog(ctx, clinicID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading catalog: %w", err)
	}
	snapshots, err := inventory.Snapshot(ctx, clinicID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading stock snapshot: %w", err)
	}

	catalog := make(map[uuid.UUID]entity.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}
	byProduct := make(map[uuid.UUID]entity.StockSnapshot, len(snapshots))
	for _, s := range snapshots {
		byProduct[s.ProductID] = s
	}
	return catalog, byProduct, nil
}

// StageCart replica las operaciones de staging de la UI: agrega cada item,
// ajusta la cantidad pedida y aplica su descuento. Compartido entre el
// valorado del carrito y el cobro para que ambos vean el mismo carrito.
func StageCart(
	items []request.CartItemRequest,
	discountTotal decimal.Decimal,
	catalog map[uuid.UUID]entity.Product,
	snapshots map[uuid.UUID]entity.StockSnapshot,
) (entity.Cart, []response.CartWarning) {
	cart := entity.Cart{DiscountTotal: decimal.Max(discountTotal, decimal.Zero)}
	var warnings []response.CartWarning

	warn := func(productID uuid.UUID, err error) {
		warnings = append(warnings, response.CartWarning{ProductID: productID, Signal: signalName(err)})
	}

	for _, item := range items {
		product, ok := catalog[item.ProductID]
		if !ok {
			warn(item.ProductID, entity.ErrLineNotFound)
			continue
		}
		snapshot := snapshots[item.ProductID] // cero en existencia si no hay foto

		staged, err := service.AddItem(cart, &product, snapshot, item.IsFullUnit)
		if err != nil {
			warn(item.ProductID, err)
			continue
		}

		if item.Quantity > 1 {
			staged, err = service.UpdateQuantity(staged, product.ID, item.IsFullUnit, item.Quantity)
			if err != nil {
				// cantidad pedida fuera de stock: la línea queda en 1 y se avisa
				warn(item.ProductID, err)
			}
		}

		if item.Discount.GreaterThan(decimal.Zero) {
			staged, err = service.UpdateDiscount(staged, product.ID, item.IsFullUnit, item.Discount)
			if err != nil {
				warn(item.ProductID, err)
			}
		}

		cart = staged
	}

	return cart, warnings
}

// signalName mapea las señales de dominio a códigos estables para la UI
func signalName(err error) string {
	switch {
	case errors.Is(err, entity.ErrOutOfStock):
		return "OutOfStock"
	case errors.Is(err, entity.ErrStockLimitReached):
		return "StockLimitReached"
	case errors.Is(err, entity.ErrNotDivisible):
		return "NotDivisible"
	case errors.Is(err, entity.ErrLineNotFound):
		return "ProductNotFound"
	case errors.Is(err, entity.ErrInvalidDiscount):
		return "InvalidDiscount"
	default:
		return "Invalid"
	}
}
