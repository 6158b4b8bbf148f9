package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRateResponse representa la respuesta del proveedor de tasas
type ExchangeRateResponse struct {
	Rate      decimal.Decimal `json:"rate"`
	Source    string          `json:"source"`
	Timestamp time.Time       `json:"timestamp"`
}

// ExchangeRateClient cliente HTTP para el proveedor de tasa USD/VES.
// Un fallo del proveedor nunca bloquea el cobro: el caller degrada a tasa
// manual.
type ExchangeRateClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewExchangeRateClient crea una nueva instancia del cliente
func NewExchangeRateClient() *ExchangeRateClient {
	baseURL := os.Getenv("RATE_PROVIDER_URL")
	if baseURL == "" {
		baseURL = "http://rate-provider:8085" // Default para entorno Docker
	}

	return &ExchangeRateClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// FetchUSDVES consulta la tasa USD/VES vigente del proveedor
func (c *ExchangeRateClient) FetchUSDVES(ctx context.Context) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/api/v1/rates/usd-ves", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error creating rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error calling rate provider: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error reading rate response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var rateResp ExchangeRateResponse
	if err := json.Unmarshal(body, &rateResp); err != nil {
		return decimal.Zero, fmt.Errorf("error parsing rate response: %w", err)
	}

	if !rateResp.Rate.GreaterThan(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("rate provider returned non-positive rate: %s", rateResp.Rate)
	}

	return rateResp.Rate, nil
}
