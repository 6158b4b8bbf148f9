package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteSettlementRequest pide el estado derivado del cobro para un monto
// adeudado. OwnerID es obligatorio: el crédito es por propietario.
type QuoteSettlementRequest struct {
	OwnerID          *uuid.UUID       `json:"owner_id"`
	AmountDueUSD     decimal.Decimal  `json:"amount_due_usd"`
	UseCredit        bool             `json:"use_credit"`
	RequestedCredit  decimal.Decimal  `json:"requested_credit"`
	IsPartial        bool             `json:"is_partial"`
	RequestedPartial decimal.Decimal  `json:"requested_partial"`
	PaymentMethodID  *uuid.UUID       `json:"payment_method_id"`
	ManualRate       *decimal.Decimal `json:"manual_rate"`
}
