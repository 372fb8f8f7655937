package testutil

import (
	"context"
	"sync"

	"github.com/hverma/stock-tracker-backend/internal/apperrors"
	"github.com/hverma/stock-tracker-backend/internal/model"
)

// MockQuoteGateway is a mock quote gateway for testing. It returns predefined
// quotes per symbol instead of making actual API calls and is safe for the
// concurrent fetches the valuation service issues.
type MockQuoteGateway struct {
	mu sync.Mutex
	// Quotes maps symbols to the quote returned for them
	Quotes map[string]model.Quote
	// FailingSymbols lists symbols whose lookup fails with ErrPriceUnavailable
	FailingSymbols map[string]bool
	// QueryCount tracks how many lookups were made
	QueryCount int
}

// NewMockQuoteGateway creates an empty mock quote gateway.
func NewMockQuoteGateway() *MockQuoteGateway {
	return &MockQuoteGateway{
		Quotes:         map[string]model.Quote{},
		FailingSymbols: map[string]bool{},
	}
}

// WithQuote configures the mock to return the given price and currency for a symbol.
func (m *MockQuoteGateway) WithQuote(symbol string, price float64, currency string) *MockQuoteGateway {
	m.Quotes[symbol] = model.Quote{Symbol: symbol, Price: price, Currency: currency}
	return m
}

// WithFailingSymbol configures the mock to fail lookups for a symbol.
func (m *MockQuoteGateway) WithFailingSymbol(symbol string) *MockQuoteGateway {
	m.FailingSymbols[symbol] = true
	return m
}

// GetQuote returns the configured quote for the symbol, or ErrPriceUnavailable
// when the symbol is unknown or configured to fail.
func (m *MockQuoteGateway) GetQuote(_ context.Context, symbol string) (model.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryCount++

	if m.FailingSymbols[symbol] {
		return model.Quote{}, apperrors.ErrPriceUnavailable
	}
	quote, ok := m.Quotes[symbol]
	if !ok {
		return model.Quote{}, apperrors.ErrPriceUnavailable
	}
	return quote, nil
}

// MockRateGateway is a mock rate gateway for testing.
type MockRateGateway struct {
	mu sync.Mutex
	// Rate is the conversion rate returned for any base currency
	Rate float64
	// Err, when set, is returned instead of the rate
	Err error
	// QueryCount tracks how many lookups were made
	QueryCount int
}

// NewMockRateGateway creates a mock returning the given rate.
func NewMockRateGateway(rate float64) *MockRateGateway {
	return &MockRateGateway{Rate: rate}
}

// WithError configures the mock to fail with the given error.
func (m *MockRateGateway) WithError(err error) *MockRateGateway {
	m.Err = err
	return m
}

// GetHomeRate returns the configured rate or error.
func (m *MockRateGateway) GetHomeRate(_ context.Context, _ string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryCount++

	if m.Err != nil {
		return 0, m.Err
	}
	return m.Rate, nil
}
