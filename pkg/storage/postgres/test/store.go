package storage

import "marketfeed/internal/market"

// Sink is the minimal persistence contract the adapter writes through.
type Sink interface {
	SaveTrade(symbol string, tr market.Trade) error
}
