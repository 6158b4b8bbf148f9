package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ventas/src/sales/domain/entity"
)

// SaleItemResponse es un item de la venta cobrada
type SaleItemResponse struct {
	ItemID      uuid.UUID       `json:"item_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	IsFullUnit  bool            `json:"is_full_unit"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Total       decimal.Decimal `json:"total"`
}

// CheckoutResponse es el DTO de la venta cobrada, listo para imprimir
type CheckoutResponse struct {
	SaleID            uuid.UUID          `json:"sale_id"`
	Items             []SaleItemResponse `json:"items"`
	TotalItems        int                `json:"total_items"`
	SubtotalAmount    decimal.Decimal    `json:"subtotal_amount"`
	DiscountAmount    decimal.Decimal    `json:"discount_amount"`
	FinalAmount       decimal.Decimal    `json:"final_amount"`
	PaymentMethodID   *uuid.UUID         `json:"payment_method_id,omitempty"`
	PaymentMethodName string             `json:"payment_method_name,omitempty"`
	AmountPaidUSD     decimal.Decimal    `json:"amount_paid_usd"`
	AmountPaidBs      decimal.Decimal    `json:"amount_paid_bs"`
	ExchangeRate      decimal.Decimal    `json:"exchange_rate"`
	CreditAmountUsed  *decimal.Decimal   `json:"credit_amount_used,omitempty"`
	IsPartial         bool               `json:"is_partial"`
	Reference         string             `json:"reference,omitempty"`
	OwnerID           uuid.UUID          `json:"owner_id"`
	CreatedAt         time.Time          `json:"created_at"`
}

// NewCheckoutResponse arma el DTO desde el aggregate persistido
func NewCheckoutResponse(sale *entity.Sale, paymentMethodName string) *CheckoutResponse {
	items := make([]SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, SaleItemResponse{
			ItemID:      item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			IsFullUnit:  item.IsFullUnit,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			Subtotal:    item.Subtotal,
			Total:       item.Total,
		})
	}

	return &CheckoutResponse{
		SaleID:            sale.ID,
		Items:             items,
		TotalItems:        sale.TotalItems(),
		SubtotalAmount:    sale.TotalAmount,
		DiscountAmount:    sale.DiscountAmount,
		FinalAmount:       sale.FinalAmount,
		PaymentMethodID:   sale.PaymentMethodID,
		PaymentMethodName: paymentMethodName,
		AmountPaidUSD:     sale.AmountPaidUSD,
		AmountPaidBs:      sale.AmountPaidBs,
		ExchangeRate:      sale.ExchangeRate,
		CreditAmountUsed:  sale.CreditAmountUsed,
		IsPartial:         sale.IsPartial,
		Reference:         sale.Reference,
		OwnerID:           sale.OwnerID,
		CreatedAt:         sale.CreatedAt,
	}
}
