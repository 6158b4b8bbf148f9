package response

import (
	"github.com/shopspring/decimal"

	"ventas/src/sales/domain/service"
)

// SettlementResponse expone el estado derivado completo del cobro para que
// la UI pinte montos y mensajes de validación sin recalcular nada
type SettlementResponse struct {
	State         service.SettlementState `json:"state"`
	CreditBalance decimal.Decimal         `json:"credit_balance"`
	ManualRate    bool                    `json:"manual_rate"` // true cuando la tasa vigente es manual
	Signals       []string                `json:"signals,omitempty"`
}
