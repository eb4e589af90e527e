package market

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol is an ordered currency pair, e.g. BTC/USDT. Immutable once
// constructed; used as the key for all per-symbol state.
type Symbol struct {
	Base  string
	Quote string
}

func NewSymbol(base, quote string) Symbol {
	return Symbol{Base: strings.ToUpper(base), Quote: strings.ToUpper(quote)}
}

// ParseSymbol parses a "BASE/QUOTE" string into a Symbol.
func ParseSymbol(s string) (Symbol, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Symbol{}, fmt.Errorf("invalid symbol %q, want BASE/QUOTE", s)
	}
	return NewSymbol(parts[0], parts[1]), nil
}

func (s Symbol) String() string {
	return s.Base + "/" + s.Quote
}

// Compact returns the symbol without the separator, e.g. "BTCUSDT".
func (s Symbol) Compact() string {
	return s.Base + s.Quote
}

// Trade is one aggregation bucket (e.g. a 1-minute candle close), not an
// individual fill. Price and volume are decimals so that repeated in-place
// updates of an open bucket cannot accumulate float rounding error.
type Trade struct {
	Timestamp int64 // milliseconds since epoch
	Price     decimal.Decimal
	Volume    decimal.Decimal
}

// RateProvider supplies a live foreign-exchange rate for a fiat pair,
// e.g. KRW/USD. The second return is false while no fresh rate is known.
type RateProvider interface {
	GetRate(pair Symbol) (decimal.Decimal, bool)
}
