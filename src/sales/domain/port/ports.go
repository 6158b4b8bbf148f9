package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ventas/src/sales/domain/entity"
)

// SaleRepository persiste ventas cobradas
type SaleRepository interface {
	// Create persiste la venta con sus items, descuenta el inventario por
	// línea y asienta el uso de crédito, todo en una sola transacción
	Create(ctx context.Context, sale *entity.Sale) error
	ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*entity.Sale, error)
}

// CreditRepository consulta el saldo a favor de un propietario
type CreditRepository interface {
	Balance(ctx context.Context, clinicID, ownerID uuid.UUID) (decimal.Decimal, error)
}

// PaymentMethodProvider resuelve métodos de pago ofrecibles
type PaymentMethodProvider interface {
	Get(id uuid.UUID) (entity.PaymentMethod, bool)
	ListActive() []entity.PaymentMethod
}

// InventoryProvider trae el catálogo y la foto de inventario desde el
// servicio de inventario
type InventoryProvider interface {
	Catalog(ctx context.Context, clinicID uuid.UUID) ([]entity.Product, error)
	Snapshot(ctx context.Context, clinicID uuid.UUID) ([]entity.StockSnapshot, error)
}

// RateProvider resuelve la tasa de cambio USD/VES vigente.
// Current retorna 0 cuando no hay tasa utilizable (el cálculo degrada a
// modo manual, nunca bloquea).
type RateProvider interface {
	Current() (rate decimal.Decimal, manual bool)
	SetManual(rate decimal.Decimal) error
	ClearManual()
}
