package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"ventas/src/sales/application/response"
	"ventas/src/sales/domain/port"
)

// ListSalesUseCase lista las ventas cobradas de una clínica (para reporte)
type ListSalesUseCase struct {
	saleRepo       port.SaleRepository
	paymentMethods port.PaymentMethodProvider
}

// NewListSalesUseCase crea una nueva instancia del caso de uso
func NewListSalesUseCase(saleRepo port.SaleRepository, paymentMethods port.PaymentMethodProvider) *ListSalesUseCase {
	return &ListSalesUseCase{saleRepo: saleRepo, paymentMethods: paymentMethods}
}

// Execute retorna las ventas de la clínica, más reciente primero
func (uc *ListSalesUseCase) Execute(ctx context.Context, clinicID uuid.UUID) ([]*response.CheckoutResponse, error) {
	sales, err := uc.saleRepo.ListByClinic(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("error listing sales: %w", err)
	}

	items := make([]*response.CheckoutResponse, 0, len(sales))
	for _, sale := range sales {
		name := ""
		if uc.paymentMethods != nil && sale.PaymentMethodID != nil {
			if m, ok := uc.paymentMethods.Get(*sale.PaymentMethodID); ok {
				name = m.Name
			}
		}
		items = append(items, response.NewCheckoutResponse(sale, name))
	}
	return items, nil
}
