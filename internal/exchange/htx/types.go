package htx

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// envelope is the loosely-typed shape of every inbound stream message.
// Exactly one of the groups below is populated: ping (keep-alive), status
// (subscription reply) or ch+tick (market data). Raw fields are kept
// undecoded where the literal server representation matters.
type envelope struct {
	Ping   json.RawMessage `json:"ping"`
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Subbed string          `json:"subbed"`
	ErrMsg string          `json:"err-msg"`
	Ch     string          `json:"ch"`
	Ts     int64           `json:"ts"`
	Tick   *Tick           `json:"tick"`
}

// Tick is one kline bucket, streamed in market messages and returned by the
// REST history endpoint. ID is the bucket start in epoch seconds; Amount is
// the aggregated base-currency volume.
type Tick struct {
	ID     int64           `json:"id"`
	Open   decimal.Decimal `json:"open"`
	Close  decimal.Decimal `json:"close"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Amount decimal.Decimal `json:"amount"`
	Vol    decimal.Decimal `json:"vol"`
	Count  int64           `json:"count"`
}

// pongMessage echoes a ping nonce. The nonce bytes are carried verbatim so
// the reply matches whatever literal representation the server sent.
type pongMessage struct {
	Pong json.RawMessage `json:"pong"`
}

// subRequest subscribes to one kline channel.
type subRequest struct {
	Sub string `json:"sub"`
	ID  string `json:"id"`
}

// klineResponse is the REST envelope for /market/history/kline.
type klineResponse struct {
	Status string `json:"status"`
	Ch     string `json:"ch"`
	Ts     int64  `json:"ts"`
	ErrMsg string `json:"err-msg"`
	Data   []Tick `json:"data"`
}
