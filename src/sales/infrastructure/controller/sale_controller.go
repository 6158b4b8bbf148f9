package controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ventas/src/sales/application/request"
	"ventas/src/sales/application/usecase"
	"ventas/src/sales/domain/entity"
	"ventas/src/sales/domain/port"
)

// SaleController maneja las peticiones HTTP del punto de venta
type SaleController struct {
	priceCartUC *usecase.PriceCartUseCase
	quoteUC     *usecase.QuoteSettlementUseCase
	checkoutUC  *usecase.CheckoutUseCase
	listSalesUC *usecase.ListSalesUseCase
	methods     port.PaymentMethodProvider
	rates       port.RateProvider
}

// NewSaleController crea una nueva instancia del controlador
func NewSaleController(
	priceCartUC *usecase.PriceCartUseCase,
	quoteUC *usecase.QuoteSettlementUseCase,
	checkoutUC *usecase.CheckoutUseCase,
	listSalesUC *usecase.ListSalesUseCase,
	methods port.PaymentMethodProvider,
	rates port.RateProvider,
) *SaleController {
	return &SaleController{
		priceCartUC: priceCartUC,
		quoteUC:     quoteUC,
		checkoutUC:  checkoutUC,
		listSalesUC: listSalesUC,
		methods:     methods,
		rates:       rates,
	}
}

// RegisterRoutes registra las rutas del controlador
func (c *SaleController) RegisterRoutes(router *gin.RouterGroup) {
	cart := router.Group("/cart")
	{
		cart.POST("/price", c.PriceCart)
	}

	settlement := router.Group("/settlement")
	{
		settlement.POST("/quote", c.QuoteSettlement)
	}

	sales := router.Group("/sales")
	{
		sales.POST("/checkout", c.Checkout)
		sales.GET("", c.ListSales)
	}

	router.GET("/payment-methods", c.ListPaymentMethods)
	router.GET("/exchange-rate", c.GetExchangeRate)
	router.PUT("/exchange-rate/manual", c.SetManualRate)
	router.DELETE("/exchange-rate/manual", c.ClearManualRate)

	log.Println("Rutas Ventas disponibles:")
	log.Println("  POST   /api/v1/cart/price")
	log.Println("  POST   /api/v1/settlement/quote")
	log.Println("  POST   /api/v1/sales/checkout  ⭐ (Cobro de venta)")
	log.Println("  GET    /api/v1/sales")
	log.Println("  GET    /api/v1/payment-methods")
	log.Println("  GET    /api/v1/exchange-rate")
	log.Println("  PUT    /api/v1/exchange-rate/manual")
	log.Println("  DELETE /api/v1/exchange-rate/manual")
}

// clinicID valida el header X-Clinic-ID (OBLIGATORIO en rutas de clínica)
func clinicID(ctx *gin.Context) (uuid.UUID, bool) {
	raw := ctx.GetHeader("X-Clinic-ID")
	if raw == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "X-Clinic-ID header is required"})
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid X-Clinic-ID format"})
		return uuid.Nil, false
	}
	return id, true
}

// PriceCart valora un carrito contra el inventario vigente
func (c *SaleController) PriceCart(ctx *gin.Context) {
	id, ok := clinicID(ctx)
	if !ok {
		return
	}

	var req request.PriceCartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := c.priceCartUC.Execute(ctx.Request.Context(), id, &req)
	if err != nil {
		log.Printf("Error pricing cart: %v", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Error pricing cart", "details": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// QuoteSettlement deriva el estado del cobro para la UI
func (c *SaleController) QuoteSettlement(ctx *gin.Context) {
	if c.quoteUC == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Settlement quote not available (database not configured)",
		})
		return
	}

	id, ok := clinicID(ctx)
	if !ok {
		return
	}

	var req request.QuoteSettlementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := c.quoteUC.Execute(ctx.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, entity.ErrNoOwnerSelected) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "An owner must be selected for the sale"})
			return
		}
		log.Printf("Error quoting settlement: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error quoting settlement", "details": err.Error()})
		return
	}

	settlementsQuoted.Inc()
	ctx.JSON(http.StatusOK, resp)
}

// Checkout cobra la venta
func (c *SaleController) Checkout(ctx *gin.Context) {
	if c.checkoutUC == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Checkout not available (database not configured)",
		})
		return
	}

	id, ok := clinicID(ctx)
	if !ok {
		return
	}

	var req request.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := c.checkoutUC.Execute(ctx.Request.Context(), id, &req)
	if err != nil {
		log.Printf("Error on checkout: %v", err)

		var rejection *usecase.CheckoutRejection
		switch {
		case errors.Is(err, entity.ErrNoOwnerSelected):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "An owner must be selected for the sale"})
		case errors.As(err, &rejection):
			settlementsRejected.Inc()
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "Settlement is not valid for submission",
				"state":   rejection.State,
				"signals": rejection.Signals,
			})
		case errors.Is(err, entity.ErrStockLimitReached), errors.Is(err, entity.ErrOutOfStock):
			ctx.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock", "details": err.Error()})
		case errors.Is(err, entity.ErrSaleMustHaveItems):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "At least one item is required"})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error on checkout", "details": err.Error()})
		}
		return
	}

	salesCommitted.Inc()
	ctx.JSON(http.StatusCreated, resp)
}

// ListSales lista las ventas de la clínica (para reporte)
func (c *SaleController) ListSales(ctx *gin.Context) {
	if c.listSalesUC == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Sales list not available (database not configured)",
		})
		return
	}

	id, ok := clinicID(ctx)
	if !ok {
		return
	}

	items, err := c.listSalesUC.Execute(ctx.Request.Context(), id)
	if err != nil {
		log.Printf("Error listing sales: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items":       items,
		"total_count": len(items),
	})
}

// ListPaymentMethods retorna los métodos de pago ofrecibles
func (c *SaleController) ListPaymentMethods(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"items": c.methods.ListActive()})
}

// GetExchangeRate retorna la tasa USD/VES vigente
func (c *SaleController) GetExchangeRate(ctx *gin.Context) {
	rate, manual := c.rates.Current()
	ctx.JSON(http.StatusOK, gin.H{
		"rate":      rate,
		"manual":    manual,
		"available": rate.GreaterThan(decimal.Zero),
	})
}

// SetManualRate fija la tasa manual (modo degradado cuando el proveedor falla)
func (c *SaleController) SetManualRate(ctx *gin.Context) {
	var req struct {
		Rate decimal.Decimal `json:"rate" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := c.rates.SetManual(req.Rate); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Rate must be greater than 0"})
		return
	}

	log.Printf("✅ Manual exchange rate set: %s", req.Rate)
	ctx.JSON(http.StatusOK, gin.H{"rate": req.Rate, "manual": true})
}

// ClearManualRate vuelve al modo proveedor
func (c *SaleController) ClearManualRate(ctx *gin.Context) {
	c.rates.ClearManual()
	rate, _ := c.rates.Current()
	ctx.JSON(http.StatusOK, gin.H{"rate": rate, "manual": false})
}
