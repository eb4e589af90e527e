package htx

import "marketfeed/internal/market"

// synthesize recomputes the derived target-quote window for a source
// symbol. Without a fresh, non-zero rate the whole cycle is skipped: a
// partial or stale derived write is worse than none. The derived window is
// always rebuilt from the authoritative source window, fully replacing the
// previous one.
func (a *Adapter) synthesize(sym market.Symbol) {
	if sym.Quote != a.cfg.SourceQuote {
		return
	}

	rate, ok := a.rates.GetRate(a.cfg.RatePair)
	if !ok || rate.IsZero() {
		return
	}

	src := a.store.GetTrades(sym)
	if len(src) == 0 {
		return
	}

	derived := market.NewSymbol(sym.Base, a.cfg.TargetQuote)
	window := make([]market.Trade, len(src))
	for i, t := range src {
		window[i] = market.Trade{
			Timestamp: t.Timestamp,
			Price:     t.Price.Div(rate),
			Volume:    t.Volume,
		}
	}

	a.store.SetTrades(derived, window)
	a.store.SetPrice(derived, window[len(window)-1].Price)
}
