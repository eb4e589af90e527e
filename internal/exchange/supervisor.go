package exchange

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Reconnector lets the supervisor bounce a transport connection. The
// transport itself redials and resubscribes.
type Reconnector interface {
	ForceReconnect()
}

// Supervisor polls an adapter's liveness flag on a fixed interval. A
// subscribed-but-silent feed is invisible to the read loop, so after
// threshold consecutive quiet polls the connection is forced down and the
// transport's reconnect path takes over.
type Supervisor struct {
	adapter   Adapter
	transport Reconnector
	interval  time.Duration
	threshold int
	logger    *zap.Logger
}

func NewSupervisor(adapter Adapter, transport Reconnector, interval time.Duration, threshold int, logger *zap.Logger) *Supervisor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if threshold <= 0 {
		threshold = 3
	}
	return &Supervisor{
		adapter:   adapter,
		transport: transport,
		interval:  interval,
		threshold: threshold,
		logger:    logger,
	}
}

// Run blocks until ctx is cancelled.
func (s *Supervisor) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	stalled := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if s.adapter.Alive() {
			stalled = 0
			continue
		}

		stalled++
		s.logger.Warn("no feed activity since last check",
			zap.String("exchange", s.adapter.Name()),
			zap.Int("consecutive", stalled))

		if stalled >= s.threshold {
			s.logger.Warn("feed stalled, forcing reconnect",
				zap.String("exchange", s.adapter.Name()))
			s.transport.ForceReconnect()
			stalled = 0
		}
	}
}
