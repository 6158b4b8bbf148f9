package service

import (
	"github.com/shopspring/decimal"

	"ventas/src/sales/domain/entity"
)

// centTolerance absorbe el redondeo flotante de la UI al comparar el
// crédito contra el monto adeudado (un centavo)
var centTolerance = decimal.New(1, -2)

// SettlementInput son las entradas del cálculo de cobro de una venta.
// Todos los montos en USD salvo que se indique lo contrario.
type SettlementInput struct {
	AmountDueUSD     decimal.Decimal
	CreditBalance    decimal.Decimal
	UseCredit        bool
	RequestedCredit  decimal.Decimal
	IsPartial        bool
	RequestedPartial decimal.Decimal
	Method           *entity.PaymentMethod
	ManualRate       *decimal.Decimal // tasa manual; tiene prioridad sobre la del proveedor
	ProviderRate     decimal.Decimal  // 0 cuando el proveedor falló o no se consultó
}

// SettlementState es el estado derivado completo del cobro. Se expone
// entero para que la UI pinte los mensajes de validación sin recalcular
// nada. Se deriva fresco en cada cambio de entradas; no se persiste.
type SettlementState struct {
	ValidAmountUSD       decimal.Decimal `json:"valid_amount_usd"`
	MaxCredit            decimal.Decimal `json:"max_credit"`
	EffectiveCredit      decimal.Decimal `json:"effective_credit"`
	RemainingAfterCredit decimal.Decimal `json:"remaining_after_credit"`
	CreditCoversAll      bool            `json:"credit_covers_all"`
	PaymentAmount        decimal.Decimal `json:"payment_amount"`
	IsBsMethod           bool            `json:"is_bs_method"`
	CurrentRate          decimal.Decimal `json:"current_rate"`
	TotalBs              decimal.Decimal `json:"total_bs"`
	NeedsPaymentMethod   bool            `json:"needs_payment_method"`
	NeedsRate            bool            `json:"needs_rate"`
	InvalidPartialAmount bool            `json:"invalid_partial_amount"`
	CanSubmit            bool            `json:"can_submit"`
}

// CalculateSettlement reconcilia el monto adeudado contra el saldo a favor
// del propietario, el método de pago elegido, la tasa de cambio y el monto
// de abono parcial. Función pura: mismas entradas, mismas salidas.
func CalculateSettlement(in SettlementInput) SettlementState {
	var st SettlementState

	// 1. El monto adeudado nunca es negativo
	st.ValidAmountUSD = decimal.Max(in.AmountDueUSD, decimal.Zero)

	// 2-3. Crédito efectivo: lo pedido, acotado a [0, min(saldo, adeudado)]
	st.MaxCredit = decimal.Min(in.CreditBalance, st.ValidAmountUSD)
	if st.MaxCredit.LessThan(decimal.Zero) {
		st.MaxCredit = decimal.Zero
	}
	if in.UseCredit {
		st.EffectiveCredit = clamp(in.RequestedCredit, decimal.Zero, st.MaxCredit)
	} else {
		st.EffectiveCredit = decimal.Zero
	}

	// 4. Restante tras aplicar crédito
	st.RemainingAfterCredit = decimal.Max(st.ValidAmountUSD.Sub(st.EffectiveCredit), decimal.Zero)

	// 5. ¿El crédito cubre todo? (tolerancia de un centavo)
	st.CreditCoversAll = st.EffectiveCredit.GreaterThanOrEqual(st.ValidAmountUSD.Sub(centTolerance))

	// 6. Monto a cobrar por el método de pago
	switch {
	case st.CreditCoversAll:
		st.PaymentAmount = decimal.Zero
	case in.IsPartial:
		st.PaymentAmount = clamp(in.RequestedPartial, decimal.Zero, st.RemainingAfterCredit)
	default:
		st.PaymentAmount = st.RemainingAfterCredit
	}

	// 7. Moneda del método
	st.IsBsMethod = in.Method != nil && in.Method.IsBs()

	// 8. Tasa vigente: la manual manda; sin tasa conocida queda en 0
	switch {
	case in.ManualRate != nil:
		st.CurrentRate = *in.ManualRate
	default:
		st.CurrentRate = in.ProviderRate
	}
	if st.CurrentRate.LessThan(decimal.Zero) {
		st.CurrentRate = decimal.Zero
	}

	// 9. Equivalente en bolívares
	if st.CurrentRate.GreaterThan(decimal.Zero) {
		st.TotalBs = st.PaymentAmount.Mul(st.CurrentRate)
	} else {
		st.TotalBs = decimal.Zero
	}

	// 10. Banderas de validación
	st.NeedsPaymentMethod = !st.CreditCoversAll && st.PaymentAmount.GreaterThan(decimal.Zero)
	st.NeedsRate = st.NeedsPaymentMethod && st.IsBsMethod && !st.CurrentRate.GreaterThan(decimal.Zero)
	st.InvalidPartialAmount = in.IsPartial &&
		(in.RequestedPartial.LessThanOrEqual(decimal.Zero) || in.RequestedPartial.GreaterThan(st.RemainingAfterCredit))

	// 11. El cobro solo se habilita cuando hay algo que cobrar y nada pendiente
	paysSomething := st.EffectiveCredit.GreaterThan(decimal.Zero) || st.PaymentAmount.GreaterThan(decimal.Zero)
	methodOK := !st.NeedsPaymentMethod || in.Method != nil
	st.CanSubmit = paysSomething && methodOK && !st.NeedsRate && !st.InvalidPartialAmount

	return st
}

// Signals traduce las banderas del estado a señales de validación para el
// caller; vacío cuando el cobro es enviable
func (st SettlementState) Signals(methodSelected bool) []error {
	var signals []error
	if st.NeedsPaymentMethod && !methodSelected {
		signals = append(signals, entity.ErrMissingPaymentMethod)
	}
	if st.NeedsRate {
		signals = append(signals, entity.ErrMissingExchangeRate)
	}
	if st.InvalidPartialAmount {
		signals = append(signals, entity.ErrInvalidPartialAmount)
	}
	return signals
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
