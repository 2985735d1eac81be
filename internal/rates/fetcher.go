// Package rates fetches the current USD/TRY exchange rate from an external
// rate service. A fetch failure is recoverable: the fetcher falls back to the
// last rate it saw, then to a configured default, and never returns an error
// to the caller.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/shopspring/decimal"

	"defter/internal/logger"
)

// ratesResponse mirrors the rate service payload, e.g.
// {"base": "USD", "rates": {"TRY": 40.12, ...}}.
type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Fetcher retrieves USD/TRY rates and remembers the last good one.
type Fetcher struct {
	httpClient *http.Client
	endpoint   string
	fallback   decimal.Decimal

	mu   sync.RWMutex
	last *decimal.Decimal
}

// NewFetcher creates a Fetcher against the given endpoint. The http.Client's
// timeout bounds each fetch; fallback is returned when no rate was ever
// fetched successfully.
func NewFetcher(httpClient *http.Client, endpoint string, fallback decimal.Decimal) *Fetcher {
	return &Fetcher{
		httpClient: httpClient,
		endpoint:   endpoint,
		fallback:   fallback,
	}
}

// USDTRY returns the current USD/TRY rate. On any fetch or decode failure it
// returns the last successfully fetched rate, or the configured fallback if
// there is none, along with false to signal the rate is not live.
func (f *Fetcher) USDTRY(ctx context.Context) (decimal.Decimal, bool) {
	rate, err := f.fetch(ctx)
	if err != nil {
		logger.Get().Warnw("exchange rate fetch failed, using fallback",
			"endpoint", f.endpoint,
			"error", err.Error(),
		)
		return f.lastKnown(), false
	}

	f.mu.Lock()
	f.last = &rate
	f.mu.Unlock()
	return rate, true
}

func (f *Fetcher) fetch(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("building rate request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate request: unexpected status %d", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("decoding rate response: %w", err)
	}

	raw, ok := body.Rates["TRY"]
	if !ok {
		return decimal.Zero, fmt.Errorf("rate response missing TRY")
	}

	rate := decimal.NewFromFloat(raw)
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("invalid TRY rate: %f", raw)
	}

	return rate, nil
}

func (f *Fetcher) lastKnown() decimal.Decimal {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.last != nil {
		return *f.last
	}
	return f.fallback
}
