package service

import (
	"github.com/shopspring/decimal"

	"ventas/src/sales/domain/entity"
)

// BuildPaymentCommand convierte un estado de cobro válido en el comando
// inmutable que consume el colaborador de persistencia. Solo se puede
// construir cuando CanSubmit es verdadero; en caso contrario señala
// ErrSettlementInvalid y no produce comando.
func BuildPaymentCommand(in SettlementInput, st SettlementState, reference string) (*entity.PaymentCommand, error) {
	if !st.CanSubmit {
		return nil, entity.ErrSettlementInvalid
	}

	cmd := &entity.PaymentCommand{
		Reference:        reference,
		AddAmountPaidUSD: decimal.Zero,
		AddAmountPaidBs:  decimal.Zero,
		ExchangeRate:     decimal.NewFromInt(1),
	}

	// Ruteo del monto según la moneda del método: Bs lleva el equivalente
	// a tasa vigente, USD el monto directo; ambos redondeados a 2 decimales
	if st.PaymentAmount.GreaterThan(decimal.Zero) && in.Method != nil {
		methodID := in.Method.ID
		cmd.PaymentMethodID = &methodID

		if st.IsBsMethod {
			cmd.AddAmountPaidBs = st.TotalBs.Round(2)
			cmd.ExchangeRate = st.CurrentRate
		} else {
			cmd.AddAmountPaidUSD = st.PaymentAmount.Round(2)
		}
	}

	// Parcial explícito, o implícito cuando el crédito no alcanza y no se
	// eligió método (abono solo-crédito, deliberadamente permisivo)
	cmd.IsPartial = in.IsPartial ||
		(st.EffectiveCredit.GreaterThan(decimal.Zero) && !st.CreditCoversAll && in.Method == nil)

	if st.EffectiveCredit.GreaterThan(decimal.Zero) {
		credit := st.EffectiveCredit.Round(2)
		cmd.CreditAmountUsed = &credit
	}

	return cmd, nil
}
