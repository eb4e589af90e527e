package storage

import (
	"sync"

	"marketfeed/internal/market"
)

type savedTrade struct {
	Symbol string
	Trade  market.Trade
}

// MemorySink records trades in memory, for tests and local runs without a
// database.
type MemorySink struct {
	mu     sync.Mutex
	trades []savedTrade
}

func NewMemorySink() *MemorySink {
	return &MemorySink{
		trades: make([]savedTrade, 0),
	}
}

func (m *MemorySink) SaveTrade(symbol string, tr market.Trade) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trades = append(m.trades, savedTrade{Symbol: symbol, Trade: tr})
	return nil
}

func (m *MemorySink) Trades(symbol string) []market.Trade {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []market.Trade
	for _, st := range m.trades {
		if st.Symbol == symbol {
			out = append(out, st.Trade)
		}
	}
	return out
}
