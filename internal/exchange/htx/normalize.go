package htx

import (
	"marketfeed/internal/market"

	"go.uber.org/zap"
)

// applyTick folds one kline tick into the symbol's trade window. Repeated
// ticks for a still-open bucket carry the same id, so an existing entry is
// updated in place; a new bucket is appended and the window trimmed to the
// configured size. The write-back, latest-price update, synthesis and
// liveness flag all happen here so that every accepted tick leaves the
// store fully consistent.
func (a *Adapter) applyTick(sym market.Symbol, tick *Tick) {
	tr := market.Trade{
		Timestamp: tick.ID * 1000, // bucket id is epoch seconds
		Price:     tick.Close,
		Volume:    tick.Amount,
	}

	window := a.store.GetTrades(sym)
	merged := false
	for i := range window {
		if window[i].Timestamp == tr.Timestamp {
			window[i] = tr
			merged = true
			break
		}
	}
	if !merged {
		window = append(window, tr)
		if len(window) > a.cfg.WindowSize {
			window = window[len(window)-a.cfg.WindowSize:]
		}
	}

	a.store.SetTrades(sym, window)
	a.store.SetPrice(sym, tr.Price)
	a.synthesize(sym)
	a.alive.Store(true)

	if a.sink != nil {
		if err := a.sink.SaveTrade(sym.String(), tr); err != nil {
			a.logger.Warn("failed to persist trade",
				zap.String("symbol", sym.String()), zap.Error(err))
		}
	}
}
