package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ventas/src/sales/application/request"
	"ventas/src/sales/application/response"
	"ventas/src/sales/domain/entity"
	"ventas/src/sales/domain/port"
	"ventas/src/sales/domain/service"
)

// QuoteSettlementUseCase deriva el estado completo del cobro para un monto
// adeudado: reparto crédito/pago, equivalente en Bs y banderas de
// validación. No persiste nada; la UI lo consulta en cada cambio.
type QuoteSettlementUseCase struct {
	creditRepo     port.CreditRepository
	paymentMethods port.PaymentMethodProvider
	rates          port.RateProvider
}

// NewQuoteSettlementUseCase crea una nueva instancia del caso de uso
func NewQuoteSettlementUseCase(
	creditRepo port.CreditRepository,
	paymentMethods port.PaymentMethodProvider,
	rates port.RateProvider,
) *QuoteSettlementUseCase {
	return &QuoteSettlementUseCase{
		creditRepo:     creditRepo,
		paymentMethods: paymentMethods,
		rates:          rates,
	}
}

// Execute calcula el estado del cobro. El propietario es obligatorio: el
// crédito y la facturación son por propietario.
func (uc *QuoteSettlementUseCase) Execute(ctx context.Context, clinicID uuid.UUID, req *request.QuoteSettlementRequest) (*response.SettlementResponse, error) {
	if req.OwnerID == nil || *req.OwnerID == uuid.Nil {
		return nil, entity.ErrNoOwnerSelected
	}

	input, balance, manual, err := uc.buildInput(ctx, clinicID, *req.OwnerID, req)
	if err != nil {
		return nil, err
	}

	state := service.CalculateSettlement(input)

	var signals []string
	for _, s := range state.Signals(input.Method != nil) {
		signals = append(signals, s.Error())
	}

	return &response.SettlementResponse{
		State:         state,
		CreditBalance: balance,
		ManualRate:    manual,
		Signals:       signals,
	}, nil
}

// buildInput resuelve saldo, método y tasa desde los colaboradores
func (uc *QuoteSettlementUseCase) buildInput(ctx context.Context, clinicID, ownerID uuid.UUID, req *request.QuoteSettlementRequest) (service.SettlementInput, decimal.Decimal, bool, error) {
	balance, err := uc.creditRepo.Balance(ctx, clinicID, ownerID)
	if err != nil {
		return service.SettlementInput{}, decimal.Zero, false, fmt.Errorf("error loading owner credit balance: %w", err)
	}

	var method *entity.PaymentMethod
	if req.PaymentMethodID != nil {
		if m, ok := uc.paymentMethods.Get(*req.PaymentMethodID); ok && m.IsActive {
			method = &m
		}
	}

	providerRate, manual := uc.rates.Current()
	// una tasa manual enviada en el request manda sobre la del proveedor
	manual = manual || req.ManualRate != nil

	input := service.SettlementInput{
		AmountDueUSD:     req.AmountDueUSD,
		CreditBalance:    balance,
		UseCredit:        req.UseCredit,
		RequestedCredit:  req.RequestedCredit,
		IsPartial:        req.IsPartial,
		RequestedPartial: req.RequestedPartial,
		Method:           method,
		ManualRate:       req.ManualRate,
		ProviderRate:     providerRate,
	}
	return input, balance, manual, nil
}
