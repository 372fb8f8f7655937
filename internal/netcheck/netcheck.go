// Package netcheck provides connectivity pre-checks: a DNS probe to confirm
// the host has internet access and an HTTPS probe to confirm the market-data
// provider is reachable.
package netcheck

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Checker probes network and provider reachability.
type Checker struct {
	resolver   *net.Resolver
	httpClient *http.Client
	probeHost  string
	apiURL     string
}

// NewChecker creates a checker that probes DNS resolution of probeHost and an
// HTTPS HEAD request against apiURL.
func NewChecker(probeHost, apiURL string) *Checker {
	return &Checker{
		resolver:   net.DefaultResolver,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		probeHost:  probeHost,
		apiURL:     apiURL,
	}
}

// CheckInternet verifies general internet connectivity by resolving a
// well-known hostname.
func (c *Checker) CheckInternet(ctx context.Context) error {
	if _, err := c.resolver.LookupHost(ctx, c.probeHost); err != nil {
		return fmt.Errorf("no internet connection: %w", err)
	}
	return nil
}

// CheckAPI verifies the market-data provider is reachable.
func (c *Checker) CheckAPI(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.apiURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("market data API is not reachable: %w", err)
	}
	defer resp.Body.Close()

	return nil
}
