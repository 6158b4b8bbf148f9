package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ventas/src/sales/domain/entity"
)

// ProductDTO representa un producto del catálogo del servicio de inventario
type ProductDTO struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	Category         string           `json:"category"`
	Divisible        bool             `json:"divisible"`
	Unit             string           `json:"unit"`
	DoseUnit         string           `json:"dose_unit"`
	DosesPerUnit     int              `json:"doses_per_unit"`
	SalePrice        decimal.Decimal  `json:"sale_price"`
	SalePricePerDose *decimal.Decimal `json:"sale_price_per_dose"`
	CostPrice        decimal.Decimal  `json:"cost_price"`
}

// StockSnapshotDTO representa la existencia de un producto en dos unidades
type StockSnapshotDTO struct {
	ProductID  uuid.UUID `json:"product_id"`
	StockUnits int       `json:"stock_units"`
	StockDoses int       `json:"stock_doses"`
}

// InventoryClient cliente HTTP del servicio de inventario
type InventoryClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewInventoryClient crea una nueva instancia del cliente
func NewInventoryClient() *InventoryClient {
	baseURL := os.Getenv("INVENTORY_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://inventory:8082" // Default para entorno Docker
	}

	return &InventoryClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// Catalog trae el catálogo de productos vendibles de la clínica
func (c *InventoryClient) Catalog(ctx context.Context, clinicID uuid.UUID) ([]entity.Product, error) {
	var dtos []ProductDTO
	if err := c.get(ctx, clinicID, "/api/v1/products", &dtos); err != nil {
		return nil, err
	}

	products := make([]entity.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, err := entity.NewProduct(
			dto.ID, dto.Name, dto.Category, dto.Divisible,
			dto.Unit, dto.DoseUnit, dto.DosesPerUnit,
			dto.SalePrice, dto.SalePricePerDose, dto.CostPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("invalid product %s from inventory service: %w", dto.ID, err)
		}
		products = append(products, *p)
	}
	return products, nil
}

// Snapshot trae la foto de inventario (unidades completas y dosis sueltas)
func (c *InventoryClient) Snapshot(ctx context.Context, clinicID uuid.UUID) ([]entity.StockSnapshot, error) {
	var dtos []StockSnapshotDTO
	if err := c.get(ctx, clinicID, "/api/v1/stock/snapshot", &dtos); err != nil {
		return nil, err
	}

	snapshots := make([]entity.StockSnapshot, 0, len(dtos))
	for _, dto := range dtos {
		snapshots = append(snapshots, entity.StockSnapshot{
			ProductID:  dto.ProductID,
			StockUnits: dto.StockUnits,
			StockDoses: dto.StockDoses,
		})
	}
	return snapshots, nil
}

func (c *InventoryClient) get(ctx context.Context, clinicID uuid.UUID, path string, out interface{}) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating inventory request: %w", err)
	}
	req.Header.Set("X-Clinic-ID", clinicID.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error calling inventory service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading inventory response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inventory service returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error parsing inventory response: %w", err)
	}
	return nil
}
