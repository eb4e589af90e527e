package collector

import "testing"

func TestParseSymbols(t *testing.T) {
	symbols, err := parseSymbols([]string{"BTC/USDT", "eth/usdt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(symbols) != 2 {
		t.Fatalf("expected 2 symbols, got %d", len(symbols))
	}
	if symbols[1].Base != "ETH" || symbols[1].Quote != "USDT" {
		t.Errorf("symbols not normalized: %+v", symbols[1])
	}
}

func TestParseSymbolsRejectsInvalid(t *testing.T) {
	if _, err := parseSymbols([]string{"BTCUSDT"}); err == nil {
		t.Error("expected error for missing separator")
	}
	if _, err := parseSymbols(nil); err == nil {
		t.Error("expected error for empty symbol list")
	}
}
