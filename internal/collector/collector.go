package collector

import (
	"context"
	"fmt"
	"time"

	"marketfeed/config"
	"marketfeed/internal/exchange"
	"marketfeed/internal/exchange/htx"
	"marketfeed/internal/fxrate"
	"marketfeed/internal/market"
	"marketfeed/pkg/storage/postgres"
	"marketfeed/pkg/ws"

	"go.uber.org/zap"
)

// StartCollector wires the full pipeline: shared store, FX rate poller,
// HTX adapter, bootstrap seed, websocket stream and liveness supervisor.
// Bootstrap failures never block stream startup.
func StartCollector(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	symbols, err := parseSymbols(cfg.Symbols)
	if err != nil {
		return err
	}
	ratePair, err := market.ParseSymbol(cfg.Synth.RatePair)
	if err != nil {
		return fmt.Errorf("synth rate pair: %w", err)
	}

	store := market.NewMemoryStore()

	// Single structured error channel; expected no-ops (no rate yet,
	// unknown channel) never land here.
	errs := make(chan exchange.FeedError, 64)
	go drainErrors(errs, logger)

	adapter := htx.New(htx.Config{
		Symbols:     symbols,
		Interval:    cfg.HTX.WS.Interval,
		WindowSize:  cfg.HTX.Window,
		SourceQuote: cfg.Synth.SourceQuote,
		TargetQuote: cfg.Synth.TargetQuote,
		RatePair:    ratePair,
	}, store, store, errs, logger)

	// Optional Postgres sink for normalized trades
	if cfg.Postgres.Enabled {
		postgresClient, err := postgres.InitializeAndMigrateTradeRecord(cfg.Postgres, true)
		if err != nil {
			return fmt.Errorf("failed to connect to DB: %w", err)
		}
		adapter.SetSink(postgresClient)
	}

	// Keep the synthesis rate fresh before and during streaming
	fx := fxrate.New(cfg.FXRate.URL, ratePair, cfg.FXRate.Refresh, cfg.FXRate.Timeout, store, logger)
	fx.Start(ctx)

	// Seed trade windows from recent history, then open the stream
	restClient := htx.NewRESTClient(cfg.HTX.REST.BaseURL, cfg.HTX.REST.Timeout)
	adapter.Bootstrap(ctx, restClient)

	wsClient := ws.NewClient(cfg.HTX.WS.URL, adapter, logger)
	if err := wsClient.Connect(); err != nil {
		return err
	}
	go wsClient.Listen() // explicitly start listener

	// Periodically print stored trade count for visibility
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				logger.Info("current stored trades", zap.Int("count", store.CountAll()))
			}
		}
	}()

	supervisor := exchange.NewSupervisor(adapter, wsClient,
		cfg.Monitor.PollInterval, cfg.Monitor.StallThreshold, logger)
	go supervisor.Run(ctx)

	return nil
}

func parseSymbols(raw []string) ([]market.Symbol, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("no symbols configured")
	}
	symbols := make([]market.Symbol, 0, len(raw))
	for _, s := range raw {
		sym, err := market.ParseSymbol(s)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, sym)
	}
	return symbols, nil
}

func drainErrors(errs <-chan exchange.FeedError, logger *zap.Logger) {
	for e := range errs {
		switch e.Kind {
		case exchange.KindProtocol:
			// Schema drift: keeping going could corrupt state
			logger.Error("fatal protocol error", zap.String("exchange", e.Exchange), zap.Error(e.Err))
		case exchange.KindSubscription:
			logger.Error("subscription rejected", zap.String("exchange", e.Exchange),
				zap.String("channel", e.Symbol), zap.Error(e.Err))
		default:
			logger.Warn("feed error", zap.String("exchange", e.Exchange),
				zap.String("kind", e.Kind.String()), zap.String("symbol", e.Symbol), zap.Error(e.Err))
		}
	}
}
