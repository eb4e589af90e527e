package market

import (
	"sync"

	"github.com/shopspring/decimal"
)

// MemoryStore is the process-wide price/trade cache shared by adapters and
// downstream readers. Writes are last-write-wins; each adapter is expected
// to write only the symbols it owns (single writer per symbol, enforced by
// convention and tests, not by the store).
type MemoryStore struct {
	globalMu sync.RWMutex
	entries  map[Symbol]*symbolEntry

	rateMu sync.RWMutex
	rates  map[Symbol]decimal.Decimal
}

type symbolEntry struct {
	mu       sync.Mutex
	trades   []Trade
	price    decimal.Decimal
	hasPrice bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[Symbol]*symbolEntry),
		rates:   make(map[Symbol]decimal.Decimal),
	}
}

func (s *MemoryStore) entry(sym Symbol) *symbolEntry {
	// Fast path: the symbol already has an entry
	s.globalMu.RLock()
	e, ok := s.entries[sym]
	s.globalMu.RUnlock()

	if !ok {
		// Initialize a new entry under the exclusive lock
		s.globalMu.Lock()
		if e, ok = s.entries[sym]; !ok {
			e = &symbolEntry{}
			s.entries[sym] = e
		}
		s.globalMu.Unlock()
	}
	return e
}

// SetTrades replaces the symbol's trade window. The slice is copied in.
func (s *MemoryStore) SetTrades(sym Symbol, trades []Trade) {
	e := s.entry(sym)

	cp := make([]Trade, len(trades))
	copy(cp, trades)

	e.mu.Lock()
	e.trades = cp
	e.mu.Unlock()
}

// GetTrades returns a copy of the symbol's trade window, nil if unknown.
func (s *MemoryStore) GetTrades(sym Symbol) []Trade {
	s.globalMu.RLock()
	e, ok := s.entries[sym]
	s.globalMu.RUnlock()
	if !ok {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.trades) == 0 {
		return nil
	}
	cp := make([]Trade, len(e.trades))
	copy(cp, e.trades)
	return cp
}

func (s *MemoryStore) SetPrice(sym Symbol, price decimal.Decimal) {
	e := s.entry(sym)
	e.mu.Lock()
	e.price = price
	e.hasPrice = true
	e.mu.Unlock()
}

func (s *MemoryStore) GetPrice(sym Symbol) (decimal.Decimal, bool) {
	s.globalMu.RLock()
	e, ok := s.entries[sym]
	s.globalMu.RUnlock()
	if !ok {
		return decimal.Decimal{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.price, e.hasPrice
}

func (s *MemoryStore) SetRate(pair Symbol, rate decimal.Decimal) {
	s.rateMu.Lock()
	s.rates[pair] = rate
	s.rateMu.Unlock()
}

// GetRate implements RateProvider.
func (s *MemoryStore) GetRate(pair Symbol) (decimal.Decimal, bool) {
	s.rateMu.RLock()
	defer s.rateMu.RUnlock()
	rate, ok := s.rates[pair]
	return rate, ok
}

// CountAll returns the total number of trades stored across all symbols.
func (s *MemoryStore) CountAll() int {
	s.globalMu.RLock()
	defer s.globalMu.RUnlock()

	total := 0
	for _, e := range s.entries {
		e.mu.Lock()
		total += len(e.trades)
		e.mu.Unlock()
	}
	return total
}
