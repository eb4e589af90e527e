package htx

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"

	"marketfeed/internal/exchange"
	"marketfeed/internal/market"

	"go.uber.org/zap"
)

// ConnState tracks where the adapter is in the connection lifecycle.
type ConnState int32

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateSubscribing
	StateStreaming
)

func (s ConnState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateSubscribing:
		return "subscribing"
	case StateStreaming:
		return "streaming"
	default:
		return "invalid"
	}
}

// Config binds an Adapter to a symbol set and the synthesis rules.
type Config struct {
	Symbols []market.Symbol
	// Interval is the kline period in wire form, e.g. "1min".
	Interval string
	// WindowSize is the bootstrap fetch size; it also bounds every trade
	// window (oldest buckets are dropped).
	WindowSize int
	// SourceQuote/TargetQuote drive synthesis: symbols quoted in
	// SourceQuote get a derived twin quoted in TargetQuote.
	SourceQuote string
	TargetQuote string
	// RatePair is the fiat rate used for synthesis, e.g. KRW/USD.
	RatePair market.Symbol
}

// Adapter is the HTX market-data adapter. All message handling runs on the
// transport's single read goroutine, so per-symbol window updates never
// race against themselves and need no locks of their own.
type Adapter struct {
	cfg      Config
	channels map[string]market.Symbol // compact upper-case name -> symbol

	store *market.MemoryStore
	rates market.RateProvider
	sink  TradeSink // optional

	state atomic.Int32
	alive atomic.Bool
	errs  chan<- exchange.FeedError

	logger *zap.Logger
}

// TradeSink receives every normalized trade, e.g. for database persistence.
type TradeSink interface {
	SaveTrade(symbol string, tr market.Trade) error
}

func New(cfg Config, store *market.MemoryStore, rates market.RateProvider, errs chan<- exchange.FeedError, logger *zap.Logger) *Adapter {
	if cfg.Interval == "" {
		cfg.Interval = "1min"
	}
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = 10
	}

	channels := make(map[string]market.Symbol, len(cfg.Symbols))
	for _, sym := range cfg.Symbols {
		channels[strings.ToUpper(sym.Compact())] = sym
	}

	return &Adapter{
		cfg:      cfg,
		channels: channels,
		store:    store,
		rates:    rates,
		errs:     errs,
		logger:   logger,
	}
}

// SetSink attaches an optional persistence sink. Must be called before the
// stream starts.
func (a *Adapter) SetSink(sink TradeSink) {
	a.sink = sink
}

func (a *Adapter) Name() string { return "htx" }

func (a *Adapter) State() ConnState {
	return ConnState(a.state.Load())
}

func (a *Adapter) setState(s ConnState) {
	a.state.Store(int32(s))
}

// OnConnect emits one subscription per configured symbol and enters
// Streaming optimistically, without waiting for acknowledgements.
func (a *Adapter) OnConnect(s exchange.Sender) error {
	a.setState(StateSubscribing)

	for i, sym := range a.cfg.Symbols {
		req := subRequest{
			Sub: channelName(sym, a.cfg.Interval),
			ID:  fmt.Sprintf("sub-%d", i+1),
		}
		if err := s.Send(req); err != nil {
			a.setState(StateDisconnected)
			return fmt.Errorf("subscribe %s: %w", sym, err)
		}
		a.logger.Info("subscribed", zap.String("channel", req.Sub))
	}

	a.setState(StateStreaming)
	return nil
}

// OnFrame decodes and routes one raw frame. A malformed frame is dropped
// and reported; the connection stays open. A message shape the adapter
// does not recognize is a fatal protocol error.
func (a *Adapter) OnFrame(s exchange.Sender, frame []byte) {
	payload, err := decodeFrame(frame)
	if err != nil {
		a.report(exchange.KindFrame, "", err)
		return
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		a.report(exchange.KindFrame, "", fmt.Errorf("parse frame: %w", err))
		return
	}

	switch {
	case len(env.Ping) > 0:
		// Reply in the handling path; a delayed pong risks a server-side
		// disconnect. The nonce is echoed byte-for-byte.
		if err := s.Send(pongMessage{Pong: env.Ping}); err != nil {
			a.report(exchange.KindFrame, "", fmt.Errorf("send pong: %w", err))
		}

	case env.Status != "":
		if env.Status != "ok" {
			a.report(exchange.KindSubscription, env.Subbed,
				fmt.Errorf("subscription rejected: %s", env.ErrMsg))
		}

	case env.Ch != "" && env.Tick != nil:
		sym, ok := a.symbolForChannel(env.Ch)
		if !ok {
			return // channel not tied to a configured symbol
		}
		a.applyTick(sym, env.Tick)

	default:
		a.report(exchange.KindProtocol, "",
			fmt.Errorf("unrecognized message: %s", truncate(payload, 256)))
	}
}

// Alive reports whether a normalized update landed since the previous call
// and clears the flag.
func (a *Adapter) Alive() bool {
	return a.alive.Swap(false)
}

// channelName builds the wire channel for a symbol: slash stripped,
// lower-cased, wrapped in the kline channel convention.
func channelName(sym market.Symbol, interval string) string {
	return "market." + strings.ToLower(sym.Compact()) + ".kline." + interval
}

// symbolForChannel reverse-maps a market channel to a configured symbol.
// The known prefix and suffix are stripped and the remainder is matched
// upper-cased against the configured set.
func (a *Adapter) symbolForChannel(ch string) (market.Symbol, bool) {
	name, ok := strings.CutPrefix(ch, "market.")
	if !ok {
		return market.Symbol{}, false
	}
	if i := strings.Index(name, ".kline."); i >= 0 {
		name = name[:i]
	} else {
		return market.Symbol{}, false
	}
	sym, ok := a.channels[strings.ToUpper(name)]
	return sym, ok
}

func (a *Adapter) report(kind exchange.ErrorKind, symbol string, err error) {
	exchange.Report(a.errs, exchange.FeedError{
		Kind:     kind,
		Exchange: a.Name(),
		Symbol:   symbol,
		Err:      err,
	})
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
