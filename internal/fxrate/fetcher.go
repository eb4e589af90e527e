// Package fxrate keeps the shared store supplied with a live fiat exchange
// rate, e.g. KRW/USD, for currency synthesis.
package fxrate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"marketfeed/internal/market"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type rateResponse struct {
	Rate decimal.Decimal `json:"rate"`
}

// Fetcher polls a REST endpoint for one fiat pair and publishes the rate
// to the shared store. While no fetch has succeeded the store reports no
// rate and synthesis stays gated off.
type Fetcher struct {
	url        string
	pair       market.Symbol
	store      *market.MemoryStore
	httpClient *http.Client
	refresh    time.Duration
	logger     *zap.Logger
}

func New(url string, pair market.Symbol, refresh, timeout time.Duration, store *market.MemoryStore, logger *zap.Logger) *Fetcher {
	if refresh <= 0 {
		refresh = time.Minute
	}
	return &Fetcher{
		url:        url,
		pair:       pair,
		store:      store,
		httpClient: &http.Client{Timeout: timeout},
		refresh:    refresh,
		logger:     logger,
	}
}

// Start runs one immediate fetch and then refreshes on a ticker until ctx
// is cancelled.
func (f *Fetcher) Start(ctx context.Context) {
	go func() {
		if err := f.Fetch(ctx); err != nil {
			f.logger.Warn("initial rate fetch failed",
				zap.String("pair", f.pair.String()), zap.Error(err))
		}

		ticker := time.NewTicker(f.refresh)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			if err := f.Fetch(ctx); err != nil {
				f.logger.Warn("rate fetch failed",
					zap.String("pair", f.pair.String()), zap.Error(err))
			}
		}
	}()
}

// Fetch performs one request and stores the rate. A zero rate is rejected;
// it would make every synthesized price meaningless.
func (f *Fetcher) Fetch(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("rate endpoint error: %s", body)
	}

	var parsed rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if parsed.Rate.IsZero() {
		return fmt.Errorf("zero rate for %s", f.pair)
	}

	f.store.SetRate(f.pair, parsed.Rate)
	f.logger.Debug("updated fx rate",
		zap.String("pair", f.pair.String()), zap.String("rate", parsed.Rate.String()))
	return nil
}
