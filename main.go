package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	salesUseCase "ventas/src/sales/application/usecase"
	salesCache "ventas/src/sales/infrastructure/cache"
	salesClient "ventas/src/sales/infrastructure/client"
	salesController "ventas/src/sales/infrastructure/controller"
	salesPersistence "ventas/src/sales/infrastructure/persistence"
	sharedConfig "ventas/src/shared/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq" // Driver de PostgreSQL
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// getEnv obtiene una variable de entorno o devuelve un valor por defecto
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func main() {
	log.Println("🚀 Ventas Service - Iniciando...")

	// Variables de entorno locales (.env opcional)
	if err := godotenv.Load(); err == nil {
		log.Println("Variables de entorno cargadas desde .env")
	}

	// Configurar el router con Gin
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Configurar Prometheus metrics si está habilitado
	if os.Getenv("PROMETHEUS_ENABLED") == "true" {
		log.Println("Registering /metrics endpoint for Ventas service")
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	} else {
		log.Println("Prometheus metrics disabled for Ventas service")
	}

	// Configurar GZIP y otros middlewares compartidos
	gzipSharedCfg := sharedConfig.DefaultSharedConfig()
	sharedConfig.SetupSharedMiddleware(router, gzipSharedCfg)

	// Conectar a la base de datos (opcional para bootstrap)
	db := connectDB()
	if db != nil {
		defer db.Close()
	}

	// Health check
	router.GET("/health", func(ctx *gin.Context) {
		status := gin.H{"status": "ok", "service": "ventas"}
		if db == nil {
			status["database"] = "disconnected"
		} else if err := db.Ping(); err != nil {
			status["database"] = "unreachable"
		} else {
			status["database"] = "connected"
		}
		ctx.JSON(200, status)
	})

	// API v1 grupo de rutas
	v1 := router.Group("/api/v1")

	// Configurar módulo Ventas
	setupSalesModule(v1, db)

	// Iniciar el servidor
	port := getEnv("PORT", "8080")
	log.Printf("✅ Servidor Ventas Service iniciado en http://localhost:%s", port)
	log.Printf("✅ Health endpoint: GET http://localhost:%s/health", port)
	router.Run(":" + port)
}

// connectDB abre la conexión a ventas_db; un fallo no detiene el arranque
func connectDB() *sql.DB {
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "ventas_db")

	connStr := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=disable"
	log.Printf("Intentando conectar a %s", dbName)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Printf("⚠️  Advertencia: Error al conectar a la base de datos: %v", err)
		log.Println("⚠️  Continuando sin DB (solo cotizaciones)")
		return nil
	}
	if err := db.Ping(); err != nil {
		log.Printf("⚠️  Advertencia: Error al verificar la conexión a la base de datos: %v", err)
		log.Println("⚠️  Continuando sin DB (solo cotizaciones)")
		db.Close()
		return nil
	}

	log.Printf("✅ Conexión a %s establecida con éxito", dbName)
	return db
}

// setupSalesModule configura el módulo de punto de venta
func setupSalesModule(router *gin.RouterGroup, db *sql.DB) {
	log.Println("Configurando módulo Ventas...")

	// Clientes de colaboradores externos
	inventoryClient := salesClient.NewInventoryClient()
	rateClient := salesClient.NewExchangeRateClient()

	// Cache de tasa USD/VES con refresco periódico; si el proveedor falla
	// el cobro degrada a tasa manual, nunca bloquea
	rateTTL := 15 * time.Minute
	rateCache := salesCache.NewRateCache(rateTTL)
	refreshRate := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		rate, err := rateClient.FetchUSDVES(ctx)
		if err != nil {
			salesController.RateFetchFailed()
			log.Printf("⚠️  Warning: Could not fetch USD/VES rate: %v", err)
			log.Println("⚠️  Manual rate mode available")
			return
		}
		rateCache.SetProvider(rate)
		log.Printf("✅ USD/VES rate updated: %s", rate)
	}
	refreshRate()
	go func() {
		ticker := time.NewTicker(rateTTL / 3)
		defer ticker.Stop()
		for range ticker.C {
			refreshRate()
		}
	}()

	// Cache de métodos de pago
	pmCache := salesCache.NewPaymentMethodCache()
	if db != nil {
		if err := pmCache.LoadFromDB(db); err != nil {
			log.Printf("⚠️  Warning: Could not load payment methods cache: %v", err)
		}
	} else {
		log.Println("⚠️  Payment method cache empty (no DB connection)")
	}

	// Repositorios
	var checkoutUC *salesUseCase.CheckoutUseCase
	var listSalesUC *salesUseCase.ListSalesUseCase
	var quoteUC *salesUseCase.QuoteSettlementUseCase
	if db != nil {
		saleRepo := salesPersistence.NewSalePostgresRepository(db)
		creditRepo := salesPersistence.NewCreditPostgresRepository(db)
		quoteUC = salesUseCase.NewQuoteSettlementUseCase(creditRepo, pmCache, rateCache)
		checkoutUC = salesUseCase.NewCheckoutUseCase(inventoryClient, creditRepo, pmCache, rateCache, saleRepo)
		listSalesUC = salesUseCase.NewListSalesUseCase(saleRepo, pmCache)
	}

	priceCartUC := salesUseCase.NewPriceCartUseCase(inventoryClient)

	// Controlador y rutas
	saleCtrl := salesController.NewSaleController(priceCartUC, quoteUC, checkoutUC, listSalesUC, pmCache, rateCache)
	saleCtrl.RegisterRoutes(router)

	log.Println("Módulo Ventas configurado exitosamente")
}
