package htx

import (
	"context"
	"sort"
	"strings"

	"marketfeed/internal/exchange"
	"marketfeed/internal/market"

	"go.uber.org/zap"
)

// Bootstrap seeds every configured symbol's trade window from recent
// history before the stream goes live. Failures are reported per symbol
// and never block the remaining symbols or stream startup. The liveness
// flag is set once all symbols were attempted.
func (a *Adapter) Bootstrap(ctx context.Context, client *RESTClient) {
	for _, sym := range a.cfg.Symbols {
		if err := a.bootstrapSymbol(ctx, client, sym); err != nil {
			a.report(exchange.KindBootstrap, sym.String(), err)
			continue
		}
		a.logger.Info("seeded trade window", zap.String("symbol", sym.String()))
	}
	a.alive.Store(true)
}

func (a *Adapter) bootstrapSymbol(ctx context.Context, client *RESTClient, sym market.Symbol) error {
	ticks, err := client.GetKlines(ctx, strings.ToLower(sym.Compact()), a.cfg.Interval, a.cfg.WindowSize)
	if err != nil {
		return err
	}

	window := make([]market.Trade, 0, len(ticks))
	for _, t := range ticks {
		// A zero-volume bucket is a no-trade interval; letting it through
		// would corrupt the last-price signal.
		if t.Amount.IsZero() {
			continue
		}
		window = append(window, market.Trade{
			Timestamp: t.ID * 1000,
			Price:     t.Close,
			Volume:    t.Amount,
		})
	}
	if len(window) == 0 {
		return nil // nothing tradable in the fetched range
	}

	// API ordering is not guaranteed
	sort.Slice(window, func(i, j int) bool {
		return window[i].Timestamp < window[j].Timestamp
	})

	a.store.SetTrades(sym, window)
	a.store.SetPrice(sym, window[len(window)-1].Price)
	a.synthesize(sym)
	return nil
}
