package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product representa un producto vendible del catálogo de la clínica.
// Un producto divisible se puede vender por unidad completa (frasco, caja)
// o por dosis sueltas; DosesPerUnit es el factor de conversión.
type Product struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	Category         string           `json:"category"`
	Divisible        bool             `json:"divisible"`
	Unit             string           `json:"unit"`      // etiqueta de la unidad completa ("frasco")
	DoseUnit         string           `json:"dose_unit"` // etiqueta de la dosis ("ml", "dosis")
	DosesPerUnit     int              `json:"doses_per_unit"`
	SalePrice        decimal.Decimal  `json:"sale_price"`
	SalePricePerDose *decimal.Decimal `json:"sale_price_per_dose,omitempty"`
	CostPrice        decimal.Decimal  `json:"cost_price"`
}

// NewProduct crea un producto validando sus invariantes básicos
func NewProduct(
	id uuid.UUID,
	name string,
	category string,
	divisible bool,
	unit string,
	doseUnit string,
	dosesPerUnit int,
	salePrice decimal.Decimal,
	salePricePerDose *decimal.Decimal,
	costPrice decimal.Decimal,
) (*Product, error) {
	if id == uuid.Nil {
		return nil, ErrProductIDRequired
	}
	if name == "" {
		return nil, ErrProductNameRequired
	}
	if dosesPerUnit < 1 {
		return nil, ErrInvalidDosesPerUnit
	}
	if salePrice.LessThan(decimal.Zero) {
		return nil, ErrInvalidPrice
	}
	if salePricePerDose != nil && salePricePerDose.LessThan(decimal.Zero) {
		return nil, ErrInvalidPrice
	}

	return &Product{
		ID:               id,
		Name:             name,
		Category:         category,
		Divisible:        divisible,
		Unit:             unit,
		DoseUnit:         doseUnit,
		DosesPerUnit:     dosesPerUnit,
		SalePrice:        salePrice,
		SalePricePerDose: salePricePerDose,
		CostPrice:        costPrice,
	}, nil
}

// DosePrice retorna el precio por dosis; si no está definido cae al precio
// de la unidad completa
func (p *Product) DosePrice() decimal.Decimal {
	if p.SalePricePerDose != nil {
		return *p.SalePricePerDose
	}
	return p.SalePrice
}

// StockSnapshot es la foto de inventario de un producto en dos unidades:
// unidades completas y dosis sueltas. Las dosis sueltas NO se normalizan
// contra DosesPerUnit: pueden superar el equivalente de una unidad.
type StockSnapshot struct {
	ProductID  uuid.UUID `json:"product_id"`
	StockUnits int       `json:"stock_units"`
	StockDoses int       `json:"stock_doses"`
}
