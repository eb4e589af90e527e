package fxrate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketfeed/internal/market"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func TestFetchStoresRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rate":"1300.25"}`))
	}))
	defer srv.Close()

	store := market.NewMemoryStore()
	pair := market.NewSymbol("KRW", "USD")
	f := New(srv.URL, pair, time.Minute, 5*time.Second, store, zap.NewNop())

	if err := f.Fetch(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rate, ok := store.GetRate(pair)
	if !ok || !rate.Equal(decimal.RequireFromString("1300.25")) {
		t.Errorf("unexpected rate: %s (ok=%t)", rate, ok)
	}
}

func TestFetchRejectsZeroRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rate":"0"}`))
	}))
	defer srv.Close()

	store := market.NewMemoryStore()
	pair := market.NewSymbol("KRW", "USD")
	f := New(srv.URL, pair, time.Minute, 5*time.Second, store, zap.NewNop())

	if err := f.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for zero rate")
	}
	if _, ok := store.GetRate(pair); ok {
		t.Error("zero rate must not be stored")
	}
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	store := market.NewMemoryStore()
	f := New(srv.URL, market.NewSymbol("KRW", "USD"), time.Minute, 5*time.Second, store, zap.NewNop())

	if err := f.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
