package exchange

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

type scriptedAdapter struct {
	mu      sync.Mutex
	results []bool
	idx     int
}

func (a *scriptedAdapter) Name() string               { return "scripted" }
func (a *scriptedAdapter) OnConnect(s Sender) error   { return nil }
func (a *scriptedAdapter) OnFrame(s Sender, f []byte) {}

func (a *scriptedAdapter) Alive() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.idx >= len(a.results) {
		return false
	}
	r := a.results[a.idx]
	a.idx++
	return r
}

type countingReconnector struct {
	count atomic.Int32
}

func (r *countingReconnector) ForceReconnect() {
	r.count.Add(1)
}

func TestSupervisorForcesReconnectWhenStalled(t *testing.T) {
	adapter := &scriptedAdapter{} // always stalled
	transport := &countingReconnector{}
	sup := NewSupervisor(adapter, transport, 10*time.Millisecond, 2, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	sup.Run(ctx)

	if transport.count.Load() == 0 {
		t.Fatal("expected at least one forced reconnect for a stalled feed")
	}
}

func TestSupervisorResetsOnActivity(t *testing.T) {
	// One quiet poll, then activity, repeating: the threshold of 2 is
	// never reached.
	results := make([]bool, 40)
	for i := range results {
		results[i] = i%2 == 1
	}
	adapter := &scriptedAdapter{results: results}
	transport := &countingReconnector{}
	sup := NewSupervisor(adapter, transport, 10*time.Millisecond, 2, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 95*time.Millisecond)
	defer cancel()
	sup.Run(ctx)

	if got := transport.count.Load(); got != 0 {
		t.Fatalf("expected no reconnects for an intermittently active feed, got %d", got)
	}
}
