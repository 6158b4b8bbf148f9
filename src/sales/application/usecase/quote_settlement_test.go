package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ventas/src/sales/application/request"
	"ventas/src/sales/domain/entity"
)

func TestQuoteRequiresOwner(t *testing.T) {
	uc := NewQuoteSettlementUseCase(&fakeCredit{}, &fakeMethods{}, &fakeRates{})

	_, err := uc.Execute(context.Background(), uuid.New(), &request.QuoteSettlementRequest{
		AmountDueUSD: d("100"),
	})
	assert.ErrorIs(t, err, entity.ErrNoOwnerSelected)

	nilOwner := uuid.Nil
	_, err = uc.Execute(context.Background(), uuid.New(), &request.QuoteSettlementRequest{
		OwnerID:      &nilOwner,
		AmountDueUSD: d("100"),
	})
	assert.ErrorIs(t, err, entity.ErrNoOwnerSelected)
}

func TestQuoteExposesDerivedStateAndBalance(t *testing.T) {
	method := entity.PaymentMethod{ID: uuid.New(), Name: "Punto de venta", Currency: entity.CurrencyVES, IsActive: true}
	uc := NewQuoteSettlementUseCase(
		&fakeCredit{balance: d("30")},
		&fakeMethods{methods: map[uuid.UUID]entity.PaymentMethod{method.ID: method}},
		&fakeRates{rate: d("36.58")},
	)

	owner := uuid.New()
	resp, err := uc.Execute(context.Background(), uuid.New(), &request.QuoteSettlementRequest{
		OwnerID:         &owner,
		AmountDueUSD:    d("100"),
		UseCredit:       true,
		RequestedCredit: d("30"),
		PaymentMethodID: &method.ID,
	})
	require.NoError(t, err)

	assert.True(t, resp.CreditBalance.Equal(d("30")))
	assert.True(t, resp.State.EffectiveCredit.Equal(d("30")))
	assert.True(t, resp.State.RemainingAfterCredit.Equal(d("70")))
	assert.True(t, resp.State.IsBsMethod)
	assert.True(t, resp.State.TotalBs.Equal(d("2560.6")), "70 × 36.58, got %s", resp.State.TotalBs)
	assert.True(t, resp.State.CanSubmit)
	assert.Empty(t, resp.Signals)
	assert.False(t, resp.ManualRate)
}

func TestQuoteIgnoresInactiveMethod(t *testing.T) {
	method := entity.PaymentMethod{ID: uuid.New(), Name: "Transferencia", Currency: entity.CurrencyUSD, IsActive: false}
	uc := NewQuoteSettlementUseCase(
		&fakeCredit{},
		&fakeMethods{methods: map[uuid.UUID]entity.PaymentMethod{method.ID: method}},
		&fakeRates{},
	)

	owner := uuid.New()
	resp, err := uc.Execute(context.Background(), uuid.New(), &request.QuoteSettlementRequest{
		OwnerID:         &owner,
		AmountDueUSD:    d("50"),
		PaymentMethodID: &method.ID,
	})
	require.NoError(t, err)

	assert.True(t, resp.State.NeedsPaymentMethod)
	assert.False(t, resp.State.CanSubmit)
	assert.Contains(t, resp.Signals, entity.ErrMissingPaymentMethod.Error())
}

func TestQuoteManualRateFromRequest(t *testing.T) {
	method := entity.PaymentMethod{ID: uuid.New(), Name: "Pago Móvil", Currency: entity.CurrencyVES, IsActive: true}
	uc := NewQuoteSettlementUseCase(
		&fakeCredit{},
		&fakeMethods{methods: map[uuid.UUID]entity.PaymentMethod{method.ID: method}},
		&fakeRates{rate: decimal.Zero}, // proveedor caído
	)

	owner := uuid.New()
	manual := d("37")
	resp, err := uc.Execute(context.Background(), uuid.New(), &request.QuoteSettlementRequest{
		OwnerID:         &owner,
		AmountDueUSD:    d("10"),
		PaymentMethodID: &method.ID,
		ManualRate:      &manual,
	})
	require.NoError(t, err)

	assert.True(t, resp.ManualRate)
	assert.False(t, resp.State.NeedsRate)
	assert.True(t, resp.State.TotalBs.Equal(d("370")))
	assert.True(t, resp.State.CanSubmit)
}
