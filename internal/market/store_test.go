package market

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseSymbol(t *testing.T) {
	sym, err := ParseSymbol("btc/usdt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sym.Base != "BTC" || sym.Quote != "USDT" {
		t.Errorf("unexpected symbol: %+v", sym)
	}
	if sym.String() != "BTC/USDT" {
		t.Errorf("unexpected string: %s", sym)
	}
	if sym.Compact() != "BTCUSDT" {
		t.Errorf("unexpected compact form: %s", sym.Compact())
	}

	for _, bad := range []string{"", "BTC", "BTC/", "/USDT", "A/B/C"} {
		if _, err := ParseSymbol(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestStoreTradesCopySemantics(t *testing.T) {
	store := NewMemoryStore()
	sym := NewSymbol("BTC", "USDT")

	in := []Trade{{Timestamp: 1000, Price: decimal.NewFromInt(10), Volume: decimal.NewFromInt(1)}}
	store.SetTrades(sym, in)

	// Mutating the caller's slice must not leak into the store
	in[0].Timestamp = 9999

	out := store.GetTrades(sym)
	if len(out) != 1 || out[0].Timestamp != 1000 {
		t.Errorf("store leaked caller mutation: %+v", out)
	}

	// Mutating the returned slice must not leak either
	out[0].Timestamp = 8888
	again := store.GetTrades(sym)
	if again[0].Timestamp != 1000 {
		t.Errorf("store leaked reader mutation: %+v", again)
	}
}

func TestStoreUnknownSymbol(t *testing.T) {
	store := NewMemoryStore()
	sym := NewSymbol("ETH", "USDT")

	if got := store.GetTrades(sym); got != nil {
		t.Errorf("expected nil window, got %v", got)
	}
	if _, ok := store.GetPrice(sym); ok {
		t.Error("expected no price for unknown symbol")
	}
}

func TestStorePrice(t *testing.T) {
	store := NewMemoryStore()
	sym := NewSymbol("BTC", "USDT")

	store.SetPrice(sym, decimal.RequireFromString("50000.25"))
	price, ok := store.GetPrice(sym)
	if !ok || !price.Equal(decimal.RequireFromString("50000.25")) {
		t.Errorf("unexpected price: %s (ok=%t)", price, ok)
	}

	// Last write wins
	store.SetPrice(sym, decimal.NewFromInt(49000))
	price, _ = store.GetPrice(sym)
	if !price.Equal(decimal.NewFromInt(49000)) {
		t.Errorf("unexpected price after overwrite: %s", price)
	}
}

func TestStoreRates(t *testing.T) {
	store := NewMemoryStore()
	pair := NewSymbol("KRW", "USD")

	if _, ok := store.GetRate(pair); ok {
		t.Error("expected no rate before the first fetch")
	}

	store.SetRate(pair, decimal.NewFromInt(1300))
	rate, ok := store.GetRate(pair)
	if !ok || !rate.Equal(decimal.NewFromInt(1300)) {
		t.Errorf("unexpected rate: %s (ok=%t)", rate, ok)
	}
}

func TestStoreCountAll(t *testing.T) {
	store := NewMemoryStore()

	store.SetTrades(NewSymbol("BTC", "USDT"), []Trade{
		{Timestamp: 1}, {Timestamp: 2},
	})
	store.SetTrades(NewSymbol("ETH", "USDT"), []Trade{
		{Timestamp: 3},
	})

	if got := store.CountAll(); got != 3 {
		t.Errorf("expected 3 trades total, got %d", got)
	}
}
