package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItem es un item dentro de una venta cobrada (Entity dentro del Aggregate)
type SaleItem struct {
	ID          uuid.UUID       `json:"id"`
	SaleID      uuid.UUID       `json:"sale_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	IsFullUnit  bool            `json:"is_full_unit"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Total       decimal.Decimal `json:"total"`
}

// NewSaleItem crea un item de venta desde una línea de carrito preparada
func NewSaleItem(line CartLine) (*SaleItem, error) {
	if line.ProductID == uuid.Nil {
		return nil, ErrProductIDRequired
	}
	if line.ProductName == "" {
		return nil, ErrProductNameRequired
	}
	if line.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if line.Discount.LessThan(decimal.Zero) {
		return nil, ErrInvalidDiscount
	}
	if line.Price().LessThan(decimal.Zero) {
		return nil, ErrInvalidPrice
	}

	return &SaleItem{
		ID:          uuid.New(),
		ProductID:   line.ProductID,
		ProductName: line.ProductName,
		IsFullUnit:  line.IsFullUnit,
		Quantity:    line.Quantity,
		UnitPrice:   line.Price(),
		Discount:    line.Discount,
		Subtotal:    line.Subtotal(),
		Total:       line.Total(),
	}, nil
}

// Sale representa una venta cobrada de la clínica (Aggregate Root).
// Empaqueta las líneas del carrito con el comando de cobro ya validado.
type Sale struct {
	ID               uuid.UUID        `json:"id"`
	ClinicID         uuid.UUID        `json:"clinic_id"`
	OwnerID          uuid.UUID        `json:"owner_id"`
	PaymentMethodID  *uuid.UUID       `json:"payment_method_id,omitempty"`
	Reference        string           `json:"reference,omitempty"`
	TotalAmount      decimal.Decimal  `json:"total_amount"`    // suma de subtotales
	DiscountAmount   decimal.Decimal  `json:"discount_amount"` // descuentos de línea + carrito
	FinalAmount      decimal.Decimal  `json:"final_amount"`    // total − descuentos, nunca negativo
	AmountPaidUSD    decimal.Decimal  `json:"amount_paid_usd"`
	AmountPaidBs     decimal.Decimal  `json:"amount_paid_bs"`
	ExchangeRate     decimal.Decimal  `json:"exchange_rate"`
	CreditAmountUsed *decimal.Decimal `json:"credit_amount_used,omitempty"`
	IsPartial        bool             `json:"is_partial"`
	CreatedAt        time.Time        `json:"created_at"`
	Items            []SaleItem       `json:"items"`
}

// NewSale crea la venta desde el carrito y el comando de cobro validado
func NewSale(
	clinicID uuid.UUID,
	ownerID uuid.UUID,
	cart Cart,
	command PaymentCommand,
) (*Sale, error) {
	if clinicID == uuid.Nil {
		return nil, ErrClinicIDRequired
	}
	if ownerID == uuid.Nil {
		return nil, ErrNoOwnerSelected
	}
	if len(cart.Lines) == 0 {
		return nil, ErrSaleMustHaveItems
	}
	if cart.DiscountTotal.LessThan(decimal.Zero) {
		return nil, ErrInvalidDiscount
	}

	saleID := uuid.New()

	items := make([]SaleItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		item, err := NewSaleItem(line)
		if err != nil {
			return nil, err
		}
		item.SaleID = saleID
		items = append(items, *item)
	}

	totals := cart.Totals()

	return &Sale{
		ID:               saleID,
		ClinicID:         clinicID,
		OwnerID:          ownerID,
		PaymentMethodID:  command.PaymentMethodID,
		Reference:        command.Reference,
		TotalAmount:      totals.Subtotal,
		DiscountAmount:   totals.ItemDiscounts.Add(cart.DiscountTotal),
		FinalAmount:      totals.Total,
		AmountPaidUSD:    command.AddAmountPaidUSD,
		AmountPaidBs:     command.AddAmountPaidBs,
		ExchangeRate:     command.ExchangeRate,
		CreditAmountUsed: command.CreditAmountUsed,
		IsPartial:        command.IsPartial,
		CreatedAt:        time.Now(),
		Items:            items,
	}, nil
}

// TotalItems retorna el número total de items
func (s *Sale) TotalItems() int {
	return len(s.Items)
}
