package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"ventas/src/sales/application/request"
	"ventas/src/sales/application/response"
	"ventas/src/sales/domain/entity"
	"ventas/src/sales/domain/port"
	"ventas/src/sales/domain/service"
)

// CheckoutUseCase cobra una venta: rearma el carrito, recalcula el cobro
// del lado del servidor, construye el comando de pago y persiste todo
// (venta + items + descuento de inventario + asiento de crédito) en una
// sola transacción del repositorio.
type CheckoutUseCase struct {
	inventory      port.InventoryProvider
	creditRepo     port.CreditRepository
	paymentMethods port.PaymentMethodProvider
	rates          port.RateProvider
	saleRepo       port.SaleRepository
}

// NewCheckoutUseCase crea una nueva instancia del caso de uso
func NewCheckoutUseCase(
	inventory port.InventoryProvider,
	creditRepo port.CreditRepository,
	paymentMethods port.PaymentMethodProvider,
	rates port.RateProvider,
	saleRepo port.SaleRepository,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		inventory:      inventory,
		creditRepo:     creditRepo,
		paymentMethods: paymentMethods,
		rates:          rates,
		saleRepo:       saleRepo,
	}
}

// CheckoutRejection acompaña a ErrSettlementInvalid con el estado derivado
// para que la UI muestre qué falta sin otra llamada
type CheckoutRejection struct {
	State   service.SettlementState
	Signals []string
}

func (r *CheckoutRejection) Error() string {
	return entity.ErrSettlementInvalid.Error()
}

func (r *CheckoutRejection) Unwrap() error {
	return entity.ErrSettlementInvalid
}

// Execute ejecuta el cobro completo de la venta
func (uc *CheckoutUseCase) Execute(ctx context.Context, clinicID uuid.UUID, req *request.CheckoutRequest) (*response.CheckoutResponse, error) {
	log.Printf("🛒 Checkout - Items: %d, Clinic: %s", len(req.Items), clinicID)

	// ========================================================================
	// PASO 1: VALIDACIONES DE ENTRADA
	// ========================================================================
	if req.OwnerID == nil || *req.OwnerID == uuid.Nil {
		return nil, entity.ErrNoOwnerSelected
	}
	if len(req.Items) == 0 {
		return nil, entity.ErrSaleMustHaveItems
	}

	// ========================================================================
	// PASO 2: REARMAR EL CARRITO CONTRA EL INVENTARIO VIGENTE
	// El servidor nunca confía en totales del cliente
	// ========================================================================
	catalog, snapshots, err := LoadInventory(ctx, uc.inventory, clinicID)
	if err != nil {
		return nil, err
	}

	cart, warnings := StageCart(req.Items, req.DiscountTotal, catalog, snapshots)
	if len(warnings) > 0 {
		// en el cobro una señal de staging sí es terminal: el operador debe
		// corregir el carrito antes de cobrar
		log.Printf("❌ Checkout rejected: %d staging warnings", len(warnings))
		return nil, fmt.Errorf("%w: cart staging rejected %d item(s)", entity.ErrStockLimitReached, len(warnings))
	}

	totals := cart.Totals()

	// ========================================================================
	// PASO 3: RECALCULAR EL COBRO Y VALIDAR
	// ========================================================================
	balance, err := uc.creditRepo.Balance(ctx, clinicID, *req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("error loading owner credit balance: %w", err)
	}

	var method *entity.PaymentMethod
	if req.PaymentMethodID != nil {
		if m, ok := uc.paymentMethods.Get(*req.PaymentMethodID); ok && m.IsActive {
			method = &m
		}
	}

	providerRate, _ := uc.rates.Current()

	input := service.SettlementInput{
		AmountDueUSD:     totals.Total,
		CreditBalance:    balance,
		UseCredit:        req.UseCredit,
		RequestedCredit:  req.RequestedCredit,
		IsPartial:        req.IsPartial,
		RequestedPartial: req.RequestedPartial,
		Method:           method,
		ManualRate:       req.ManualRate,
		ProviderRate:     providerRate,
	}

	state := service.CalculateSettlement(input)
	if !state.CanSubmit {
		var signals []string
		for _, s := range state.Signals(method != nil) {
			signals = append(signals, s.Error())
		}
		log.Printf("❌ Checkout rejected: settlement not submittable (%v)", signals)
		return nil, &CheckoutRejection{State: state, Signals: signals}
	}

	// ========================================================================
	// PASO 4: CONSTRUIR EL COMANDO DE PAGO Y LA VENTA
	// ========================================================================
	command, err := service.BuildPaymentCommand(input, state, req.Reference)
	if err != nil {
		return nil, err
	}

	sale, err := entity.NewSale(clinicID, *req.OwnerID, cart, *command)
	if err != nil {
		return nil, fmt.Errorf("error creating sale entity: %w", err)
	}

	// ========================================================================
	// PASO 5: PERSISTIR ATÓMICAMENTE
	// venta + items + descuento de stock + asiento de crédito en una tx
	// ========================================================================
	if err := uc.saleRepo.Create(ctx, sale); err != nil {
		log.Printf("⚠️ Sale persistence failed: %v", err)
		return nil, fmt.Errorf("error saving sale: %w", err)
	}

	paymentMethodName := ""
	if method != nil {
		paymentMethodName = method.Name
	}

	log.Printf("✅ Sale created: ID=%s, Items=%d, FinalAmount=%s", sale.ID, sale.TotalItems(), sale.FinalAmount)
	return response.NewCheckoutResponse(sale, paymentMethodName), nil
}
