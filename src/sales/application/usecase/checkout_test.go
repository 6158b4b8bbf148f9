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

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ---- fakes de los puertos ----

type fakeInventory struct {
	products  []entity.Product
	snapshots []entity.StockSnapshot
}

func (f *fakeInventory) Catalog(ctx context.Context, clinicID uuid.UUID) ([]entity.Product, error) {
	return f.products, nil
}

func (f *fakeInventory) Snapshot(ctx context.Context, clinicID uuid.UUID) ([]entity.StockSnapshot, error) {
	return f.snapshots, nil
}

type fakeCredit struct {
	balance decimal.Decimal
}

func (f *fakeCredit) Balance(ctx context.Context, clinicID, ownerID uuid.UUID) (decimal.Decimal, error) {
	return f.balance, nil
}

type fakeMethods struct {
	methods map[uuid.UUID]entity.PaymentMethod
}

func (f *fakeMethods) Get(id uuid.UUID) (entity.PaymentMethod, bool) {
	m, ok := f.methods[id]
	return m, ok
}

func (f *fakeMethods) ListActive() []entity.PaymentMethod {
	out := make([]entity.PaymentMethod, 0, len(f.methods))
	for _, m := range f.methods {
		out = append(out, m)
	}
	return out
}

type fakeRates struct {
	rate   decimal.Decimal
	manual bool
}

func (f *fakeRates) Current() (decimal.Decimal, bool) { return f.rate, f.manual }
func (f *fakeRates) SetManual(r decimal.Decimal) error {
	f.rate, f.manual = r, true
	return nil
}
func (f *fakeRates) ClearManual() { f.manual = false }

type fakeSaleRepo struct {
	created []*entity.Sale
	sales   []*entity.Sale
}

func (f *fakeSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	f.created = append(f.created, sale)
	return nil
}

func (f *fakeSaleRepo) ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*entity.Sale, error) {
	return f.sales, nil
}

// ---- fixtures ----

type checkoutFixture struct {
	uc      *CheckoutUseCase
	repo    *fakeSaleRepo
	product entity.Product
	method  entity.PaymentMethod
	owner   uuid.UUID
	clinic  uuid.UUID
}

func newCheckoutFixture(t *testing.T, balance decimal.Decimal) *checkoutFixture {
	t.Helper()

	dosePrice := d("2.50")
	product, err := entity.NewProduct(
		uuid.New(), "Vacuna antirrábica", "vacunas", true,
		"frasco", "dosis", 10,
		d("20"), &dosePrice, d("12"),
	)
	require.NoError(t, err)

	method := entity.PaymentMethod{ID: uuid.New(), Name: "Zelle", Currency: entity.CurrencyUSD, IsActive: true}

	inventory := &fakeInventory{
		products:  []entity.Product{*product},
		snapshots: []entity.StockSnapshot{{ProductID: product.ID, StockUnits: 5, StockDoses: 3}},
	}
	methods := &fakeMethods{methods: map[uuid.UUID]entity.PaymentMethod{method.ID: method}}
	repo := &fakeSaleRepo{}

	uc := NewCheckoutUseCase(inventory, &fakeCredit{balance: balance}, methods, &fakeRates{}, repo)

	return &checkoutFixture{
		uc:      uc,
		repo:    repo,
		product: *product,
		method:  method,
		owner:   uuid.New(),
		clinic:  uuid.New(),
	}
}

func TestCheckoutRequiresOwner(t *testing.T) {
	f := newCheckoutFixture(t, decimal.Zero)

	_, err := f.uc.Execute(context.Background(), f.clinic, &request.CheckoutRequest{
		Items: []request.CartItemRequest{{ProductID: f.product.ID, IsFullUnit: true, Quantity: 1}},
	})
	assert.ErrorIs(t, err, entity.ErrNoOwnerSelected)
	assert.Empty(t, f.repo.created)
}

func TestCheckoutPersistsSaleWithMethodPayment(t *testing.T) {
	f := newCheckoutFixture(t, decimal.Zero)

	resp, err := f.uc.Execute(context.Background(), f.clinic, &request.CheckoutRequest{
		OwnerID:         &f.owner,
		Items:           []request.CartItemRequest{{ProductID: f.product.ID, IsFullUnit: true, Quantity: 2}},
		PaymentMethodID: &f.method.ID,
		Reference:       "ref-001",
	})
	require.NoError(t, err)
	require.Len(t, f.repo.created, 1)

	sale := f.repo.created[0]
	assert.True(t, sale.FinalAmount.Equal(d("40")))
	assert.True(t, sale.AmountPaidUSD.Equal(d("40")))
	assert.True(t, sale.AmountPaidBs.IsZero())
	assert.Nil(t, sale.CreditAmountUsed)
	assert.Equal(t, f.owner, sale.OwnerID)

	assert.Equal(t, "Zelle", resp.PaymentMethodName)
	assert.Equal(t, 1, resp.TotalItems)
	assert.True(t, resp.FinalAmount.Equal(d("40")))
}

func TestCheckoutCreditCoversAllNeedsNoMethod(t *testing.T) {
	f := newCheckoutFixture(t, d("100"))

	resp, err := f.uc.Execute(context.Background(), f.clinic, &request.CheckoutRequest{
		OwnerID:         &f.owner,
		Items:           []request.CartItemRequest{{ProductID: f.product.ID, IsFullUnit: true, Quantity: 1}},
		UseCredit:       true,
		RequestedCredit: d("20"),
	})
	require.NoError(t, err)
	require.Len(t, f.repo.created, 1)

	sale := f.repo.created[0]
	require.NotNil(t, sale.CreditAmountUsed)
	assert.True(t, sale.CreditAmountUsed.Equal(d("20")))
	assert.True(t, sale.AmountPaidUSD.IsZero())
	assert.Nil(t, sale.PaymentMethodID)
	assert.False(t, resp.IsPartial)
}

func TestCheckoutRejectsInvalidSettlement(t *testing.T) {
	f := newCheckoutFixture(t, decimal.Zero)

	// sin método de pago y sin crédito: no se puede cobrar
	_, err := f.uc.Execute(context.Background(), f.clinic, &request.CheckoutRequest{
		OwnerID: &f.owner,
		Items:   []request.CartItemRequest{{ProductID: f.product.ID, IsFullUnit: true, Quantity: 1}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrSettlementInvalid)

	var rejection *CheckoutRejection
	require.ErrorAs(t, err, &rejection)
	assert.True(t, rejection.State.NeedsPaymentMethod)
	assert.Contains(t, rejection.Signals, entity.ErrMissingPaymentMethod.Error())
	assert.Empty(t, f.repo.created)
}

func TestCheckoutRejectsOverstockedCart(t *testing.T) {
	f := newCheckoutFixture(t, decimal.Zero)

	_, err := f.uc.Execute(context.Background(), f.clinic, &request.CheckoutRequest{
		OwnerID:         &f.owner,
		Items:           []request.CartItemRequest{{ProductID: f.product.ID, IsFullUnit: true, Quantity: 50}},
		PaymentMethodID: &f.method.ID,
	})
	assert.ErrorIs(t, err, entity.ErrStockLimitReached)
	assert.Empty(t, f.repo.created)
}
