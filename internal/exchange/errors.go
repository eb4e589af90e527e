package exchange

import "fmt"

// ErrorKind classifies feed errors for the consumer of the error channel.
type ErrorKind int

const (
	// KindFrame is a transient decode/parse failure; the frame is dropped
	// and the connection stays open.
	KindFrame ErrorKind = iota
	// KindSubscription means the exchange rejected a subscription. Not
	// retried here; the supervisor decides what to do.
	KindSubscription
	// KindProtocol is a message shape the adapter does not understand.
	// Fatal for the connection: the schema has drifted.
	KindProtocol
	// KindBootstrap is a failed historical seed for one symbol.
	KindBootstrap
)

func (k ErrorKind) String() string {
	switch k {
	case KindFrame:
		return "frame"
	case KindSubscription:
		return "subscription"
	case KindProtocol:
		return "protocol"
	case KindBootstrap:
		return "bootstrap"
	default:
		return "unknown"
	}
}

// FeedError is the single structured error shape reported by adapters.
type FeedError struct {
	Kind     ErrorKind
	Exchange string
	Symbol   string // empty when not tied to one symbol
	Err      error
}

func (e FeedError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("%s %s error (%s): %v", e.Exchange, e.Kind, e.Symbol, e.Err)
	}
	return fmt.Sprintf("%s %s error: %v", e.Exchange, e.Kind, e.Err)
}

func (e FeedError) Unwrap() error { return e.Err }

// Report delivers e without blocking the message loop. If the channel is
// full the error is dropped; the channel is sized for bursts in practice.
func Report(ch chan<- FeedError, e FeedError) {
	select {
	case ch <- e:
	default:
	}
}
