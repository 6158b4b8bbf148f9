package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentCommand es el comando normalizado de cobro que se entrega al
// colaborador de persistencia. Inmutable una vez construido: exactamente
// uno de AddAmountPaidUSD / AddAmountPaidBs es distinto de cero por cobro,
// según la moneda del método seleccionado.
type PaymentCommand struct {
	PaymentMethodID  *uuid.UUID       `json:"payment_method_id,omitempty"`
	Reference        string           `json:"reference,omitempty"`
	AddAmountPaidUSD decimal.Decimal  `json:"add_amount_paid_usd"`
	AddAmountPaidBs  decimal.Decimal  `json:"add_amount_paid_bs"`
	ExchangeRate     decimal.Decimal  `json:"exchange_rate"`
	IsPartial        bool             `json:"is_partial"`
	CreditAmountUsed *decimal.Decimal `json:"credit_amount_used,omitempty"`
}
