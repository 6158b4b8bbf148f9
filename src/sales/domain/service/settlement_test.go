package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"ventas/src/sales/domain/entity"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func usdMethod() *entity.PaymentMethod {
	return &entity.PaymentMethod{ID: uuid.New(), Name: "Efectivo USD", Currency: entity.CurrencyUSD, IsActive: true}
}

func bsMethod() *entity.PaymentMethod {
	return &entity.PaymentMethod{ID: uuid.New(), Name: "Pago Móvil", Currency: entity.CurrencyVES, IsActive: true}
}

func TestSettlementCreditPartiallyCoversTotal(t *testing.T) {
	st := CalculateSettlement(SettlementInput{
		AmountDueUSD:    d("100"),
		CreditBalance:   d("30"),
		UseCredit:       true,
		RequestedCredit: d("30"),
		Method:          usdMethod(),
	})

	assert.True(t, st.EffectiveCredit.Equal(d("30")))
	assert.True(t, st.RemainingAfterCredit.Equal(d("70")))
	assert.False(t, st.CreditCoversAll)
	assert.True(t, st.PaymentAmount.Equal(d("70")))
	assert.True(t, st.CanSubmit)
}

func TestSettlementCreditCoversAll(t *testing.T) {
	st := CalculateSettlement(SettlementInput{
		AmountDueUSD:    d("50"),
		CreditBalance:   d("80"),
		UseCredit:       true,
		RequestedCredit: d("50"),
	})

	assert.True(t, st.CreditCoversAll)
	assert.True(t, st.PaymentAmount.IsZero())
	assert.False(t, st.NeedsPaymentMethod)
	assert.True(t, st.CanSubmit, "no payment method required when credit covers all")
}

func TestSettlementPartialAmountAboveRemainingIsInvalid(t *testing.T) {
	st := CalculateSettlement(SettlementInput{
		AmountDueUSD:     d("200"),
		IsPartial:        true,
		RequestedPartial: d("250"),
		Method:           usdMethod(),
	})

	assert.True(t, st.RemainingAfterCredit.Equal(d("200")))
	assert.True(t, st.InvalidPartialAmount)
	assert.False(t, st.CanSubmit)
	// el monto a cobrar queda acotado al restante aunque el pedido sea inválido
	assert.True(t, st.PaymentAmount.Equal(d("200")))
}

func TestSettlementBsMethodWithoutRate(t *testing.T) {
	st := CalculateSettlement(SettlementInput{
		AmountDueUSD: d("40"),
		Method:       bsMethod(),
		ProviderRate: decimal.Zero, // proveedor caído
	})

	assert.True(t, st.NeedsRate)
	assert.False(t, st.CanSubmit)
	assert.True(t, st.TotalBs.IsZero())

	// con tasa manual el cobro se habilita
	manual := d("36.50")
	st = CalculateSettlement(SettlementInput{
		AmountDueUSD: d("40"),
		Method:       bsMethod(),
		ManualRate:   &manual,
	})

	assert.False(t, st.NeedsRate)
	assert.True(t, st.CanSubmit)
	assert.True(t, st.TotalBs.Equal(d("1460")), "40 × 36.50 = 1460, got %s", st.TotalBs)
}

func TestSettlementManualRateOverridesProvider(t *testing.T) {
	manual := d("40")
	st := CalculateSettlement(SettlementInput{
		AmountDueUSD: d("10"),
		Method:       bsMethod(),
		ManualRate:   &manual,
		ProviderRate: d("36"),
	})

	assert.True(t, st.CurrentRate.Equal(d("40")))
	assert.True(t, st.TotalBs.Equal(d("400")))
}

func TestSettlementNegativeAmountDueIsClamped(t *testing.T) {
	st := CalculateSettlement(SettlementInput{
		AmountDueUSD:  d("-15"),
		CreditBalance: d("20"),
		UseCredit:     true,
	})

	assert.True(t, st.ValidAmountUSD.IsZero())
	assert.True(t, st.MaxCredit.IsZero())
	assert.True(t, st.EffectiveCredit.IsZero())
	assert.False(t, st.CanSubmit, "nothing to pay, nothing to submit")
}

func TestSettlementRequestedCreditClampedToBalanceAndDue(t *testing.T) {
	cases := []struct {
		name      string
		due       string
		balance   string
		requested string
		want      string
	}{
		{"pide más que el saldo", "100", "30", "99", "30"},
		{"pide más que lo adeudado", "20", "80", "80", "20"},
		{"pide negativo", "100", "30", "-5", "0"},
		{"sin monto pedido", "100", "30", "0", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := CalculateSettlement(SettlementInput{
				AmountDueUSD:    d(tc.due),
				CreditBalance:   d(tc.balance),
				UseCredit:       true,
				RequestedCredit: d(tc.requested),
			})

			assert.True(t, st.EffectiveCredit.Equal(d(tc.want)),
				"effective credit: want %s, got %s", tc.want, st.EffectiveCredit)
			assert.True(t, st.EffectiveCredit.GreaterThanOrEqual(decimal.Zero))
			assert.True(t, st.EffectiveCredit.LessThanOrEqual(st.MaxCredit))
		})
	}
}

func TestSettlementCreditWithinCentToleranceCoversAll(t *testing.T) {
	st := CalculateSettlement(SettlementInput{
		AmountDueUSD:    d("50.00"),
		CreditBalance:   d("49.995"),
		UseCredit:       true,
		RequestedCredit: d("49.995"),
	})

	assert.True(t, st.CreditCoversAll)
	assert.True(t, st.PaymentAmount.IsZero())
}

func TestSettlementPaymentPlusCreditNeverExceedsDue(t *testing.T) {
	inputs := []SettlementInput{
		{AmountDueUSD: d("100"), CreditBalance: d("30"), UseCredit: true, RequestedCredit: d("30"), Method: usdMethod()},
		{AmountDueUSD: d("100"), CreditBalance: d("150"), UseCredit: true, RequestedCredit: d("150"), Method: usdMethod()},
		{AmountDueUSD: d("75.50"), CreditBalance: d("25.25"), UseCredit: true, RequestedCredit: d("25.25"), IsPartial: true, RequestedPartial: d("10"), Method: usdMethod()},
		{AmountDueUSD: d("0.01"), CreditBalance: d("0.01"), UseCredit: true, RequestedCredit: d("0.01")},
	}

	tolerance := d("0.01")
	for _, in := range inputs {
		st := CalculateSettlement(in)
		sum := st.PaymentAmount.Add(st.EffectiveCredit)
		assert.True(t, sum.LessThanOrEqual(st.ValidAmountUSD.Add(tolerance)),
			"payment %s + credit %s exceeds due %s", st.PaymentAmount, st.EffectiveCredit, st.ValidAmountUSD)
	}
}

func TestSettlementIsReferentiallyTransparent(t *testing.T) {
	in := SettlementInput{
		AmountDueUSD:     d("123.45"),
		CreditBalance:    d("40"),
		UseCredit:        true,
		RequestedCredit:  d("20"),
		IsPartial:        true,
		RequestedPartial: d("50"),
		Method:           bsMethod(),
		ProviderRate:     d("36.58"),
	}

	first := CalculateSettlement(in)
	second := CalculateSettlement(in)
	assert.Equal(t, first, second)
}

func TestSettlementPartialValid(t *testing.T) {
	st := CalculateSettlement(SettlementInput{
		AmountDueUSD:     d("200"),
		CreditBalance:    d("50"),
		UseCredit:        true,
		RequestedCredit:  d("50"),
		IsPartial:        true,
		RequestedPartial: d("100"),
		Method:           usdMethod(),
	})

	assert.True(t, st.PaymentAmount.Equal(d("100")))
	assert.False(t, st.InvalidPartialAmount)
	assert.True(t, st.CanSubmit)
}

func TestSettlementSignals(t *testing.T) {
	st := CalculateSettlement(SettlementInput{
		AmountDueUSD: d("30"),
	})
	signals := st.Signals(false)
	assert.Contains(t, signals, entity.ErrMissingPaymentMethod)

	st = CalculateSettlement(SettlementInput{
		AmountDueUSD: d("30"),
		Method:       bsMethod(),
	})
	signals = st.Signals(true)
	assert.Contains(t, signals, entity.ErrMissingExchangeRate)
	assert.NotContains(t, signals, entity.ErrMissingPaymentMethod)
}
