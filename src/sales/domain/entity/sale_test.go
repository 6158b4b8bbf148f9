package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stagedCart() Cart {
	return Cart{
		Lines: []CartLine{
			{
				ProductID:      uuid.New(),
				ProductName:    "Vacuna séxtuple",
				Divisible:      true,
				IsFullUnit:     true,
				Quantity:       2,
				UnitPrice:      decimal.RequireFromString("20"),
				PricePerDose:   decimal.RequireFromString("2.50"),
				Discount:       decimal.RequireFromString("4"),
				AvailableStock: 5,
			},
		},
		DiscountTotal: decimal.RequireFromString("1"),
	}
}

func TestNewSaleComputesAmounts(t *testing.T) {
	cart := stagedCart()
	methodID := uuid.New()
	credit := decimal.RequireFromString("10")

	sale, err := NewSale(uuid.New(), uuid.New(), cart, PaymentCommand{
		PaymentMethodID:  &methodID,
		Reference:        "ref-77",
		AddAmountPaidUSD: decimal.RequireFromString("25"),
		AddAmountPaidBs:  decimal.Zero,
		ExchangeRate:     decimal.NewFromInt(1),
		CreditAmountUsed: &credit,
	})
	require.NoError(t, err)

	assert.True(t, sale.TotalAmount.Equal(decimal.RequireFromString("40")))
	assert.True(t, sale.DiscountAmount.Equal(decimal.RequireFromString("5")))
	assert.True(t, sale.FinalAmount.Equal(decimal.RequireFromString("35")))
	assert.Equal(t, 1, sale.TotalItems())
	assert.Equal(t, sale.ID, sale.Items[0].SaleID)
	assert.True(t, sale.Items[0].Total.Equal(decimal.RequireFromString("36")))
	require.NotNil(t, sale.CreditAmountUsed)
	assert.True(t, sale.CreditAmountUsed.Equal(credit))
}

func TestNewSaleValidations(t *testing.T) {
	cart := stagedCart()

	_, err := NewSale(uuid.Nil, uuid.New(), cart, PaymentCommand{})
	assert.ErrorIs(t, err, ErrClinicIDRequired)

	_, err = NewSale(uuid.New(), uuid.Nil, cart, PaymentCommand{})
	assert.ErrorIs(t, err, ErrNoOwnerSelected)

	_, err = NewSale(uuid.New(), uuid.New(), Cart{}, PaymentCommand{})
	assert.ErrorIs(t, err, ErrSaleMustHaveItems)
}

func TestNewSaleItemRejectsInvalidLines(t *testing.T) {
	line := stagedCart().Lines[0]

	bad := line
	bad.Quantity = 0
	_, err := NewSaleItem(bad)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	bad = line
	bad.ProductName = ""
	_, err = NewSaleItem(bad)
	assert.ErrorIs(t, err, ErrProductNameRequired)

	bad = line
	bad.Discount = decimal.RequireFromString("-1")
	_, err = NewSaleItem(bad)
	assert.ErrorIs(t, err, ErrInvalidDiscount)
}
