package entity

import "errors"

var (
	ErrProductIDRequired   = errors.New("product_id is required")
	ErrProductNameRequired = errors.New("product_name is required")
	ErrInvalidDosesPerUnit = errors.New("doses_per_unit must be greater than or equal to 1")
	ErrInvalidPrice        = errors.New("price must be greater than or equal to 0")
	ErrInvalidQuantity     = errors.New("quantity must be greater than 0")
	ErrInvalidDiscount     = errors.New("discount must be greater than or equal to 0")
	ErrNotDivisible        = errors.New("product is not divisible, dose mode not allowed")
	ErrLineNotFound        = errors.New("cart line not found")
	ErrDuplicateLine       = errors.New("cart already has a line for this product and unit mode")

	// Señales de validación del carrito (nunca abortan la sesión)
	ErrOutOfStock        = errors.New("product is out of stock")
	ErrStockLimitReached = errors.New("requested quantity exceeds available stock")

	// Señales de validación del cobro
	ErrMissingPaymentMethod = errors.New("a payment method is required")
	ErrMissingExchangeRate  = errors.New("a valid exchange rate is required for Bs payments")
	ErrInvalidPartialAmount = errors.New("partial amount must be greater than 0 and within the remaining balance")
	ErrNoOwnerSelected      = errors.New("an owner must be selected for the sale")
	ErrSettlementInvalid    = errors.New("settlement is not valid for submission")

	ErrSaleMustHaveItems = errors.New("sale must have at least one item")
	ErrClinicIDRequired  = errors.New("clinic_id is required")
)
