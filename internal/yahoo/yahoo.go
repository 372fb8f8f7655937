package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hverma/stock-tracker-backend/internal/apperrors"
	"github.com/hverma/stock-tracker-backend/internal/model"
)

// DefaultHost is the Yahoo Finance API host queried for quotes. Exposed so
// the connectivity pre-check can probe the same endpoint.
const DefaultHost = "query1.finance.yahoo.com"

// FinanceClient provides methods for fetching financial data from the Yahoo
// Finance API. It wraps an HTTP client and exposes quote lookups for the
// valuation service.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a new Yahoo Finance client with default HTTP settings.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    "https://" + DefaultHost,
	}
}

// NewFinanceClientWithBaseURL creates a client pointed at an alternate host.
// Used by tests to target an httptest server.
func NewFinanceClientWithBaseURL(baseURL string) *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
	}
}

// GetQuote fetches the current market price and trading currency for a symbol.
//
// The chart endpoint is queried for a single day and the quote is read from
// the chart metadata (regularMarketPrice). A missing result, a zero price or
// a Yahoo-side error is reported as ErrPriceUnavailable so callers can treat
// the holding as unpriced without inspecting transport details.
func (c *FinanceClient) GetQuote(ctx context.Context, symbol string) (model.Quote, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.baseURL, symbol)

	response, err := c.queryYahoo(ctx, url)
	if err != nil {
		return model.Quote{}, fmt.Errorf("%w: %s: %v", apperrors.ErrPriceUnavailable, symbol, err)
	}

	if len(response.Chart.Result) == 0 {
		return model.Quote{}, fmt.Errorf("%w: no results returned for symbol %s", apperrors.ErrPriceUnavailable, symbol)
	}

	meta := response.Chart.Result[0].Meta
	if meta.RegularMarketPrice == 0 {
		return model.Quote{}, fmt.Errorf("%w: no market price for symbol %s", apperrors.ErrPriceUnavailable, symbol)
	}

	return model.Quote{
		Symbol:   meta.Symbol,
		Price:    meta.RegularMarketPrice,
		Currency: meta.Currency,
	}, nil
}

// queryYahoo is an internal helper that executes HTTP requests to the Yahoo
// Finance API, handling headers, response reading, JSON parsing and API-level
// error checking.
func (c *FinanceClient) queryYahoo(ctx context.Context, url string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s", *response.Chart.Error)
	}

	return response, nil
}
