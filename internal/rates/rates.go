// Package rates fetches currency conversion rates from the Yahoo Finance FX
// chart endpoint. A pair like USD/INR is quoted under the symbol "USDINR=X".
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hverma/stock-tracker-backend/internal/apperrors"
)

// Client fetches conversion rates into a fixed home currency.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	homeCurrency string
}

// NewClient creates a rate client converting into the given home currency.
func NewClient(homeCurrency string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		baseURL:      "https://query1.finance.yahoo.com",
		homeCurrency: homeCurrency,
	}
}

// NewClientWithBaseURL creates a rate client pointed at an alternate host.
// Used by tests to target an httptest server.
func NewClientWithBaseURL(baseURL, homeCurrency string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		baseURL:      baseURL,
		homeCurrency: homeCurrency,
	}
}

// fxResponse mirrors the chart metadata for an FX symbol; the current rate is
// carried in regularMarketPrice.
type fxResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error *string `json:"error"`
	} `json:"chart"`
}

// GetHomeRate fetches the current conversion rate from baseCurrency into the
// home currency. When the base already is the home currency the rate is 1 and
// no request is made. Any failure is reported as ErrRateUnavailable; callers
// abort the whole valuation run on it.
func (c *Client) GetHomeRate(ctx context.Context, baseCurrency string) (float64, error) {
	if baseCurrency == c.homeCurrency {
		return 1, nil
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s%s=X?interval=1d&range=1d", c.baseURL, baseCurrency, c.homeCurrency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrRateUnavailable, err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrRateUnavailable, err)
	}

	var response fxResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrRateUnavailable, err)
	}

	if response.Chart.Error != nil {
		return 0, fmt.Errorf("%w: yahoo error: %s", apperrors.ErrRateUnavailable, *response.Chart.Error)
	}

	if len(response.Chart.Result) == 0 || response.Chart.Result[0].Meta.RegularMarketPrice == 0 {
		return 0, fmt.Errorf("%w: no rate returned for %s/%s", apperrors.ErrRateUnavailable, baseCurrency, c.homeCurrency)
	}

	return response.Chart.Result[0].Meta.RegularMarketPrice, nil
}
