package exchange

// Sender is the outgoing half of the transport: values are serialized as
// JSON and written to the current connection.
type Sender interface {
	Send(v any) error
}

// Adapter is implemented once per exchange. The transport calls OnConnect
// after every successful dial (initial or reconnect) and OnFrame for every
// raw frame, strictly in arrival order from a single goroutine. Alive is
// polled by the supervisor; it reports whether new data arrived since the
// previous call and clears the flag.
type Adapter interface {
	Name() string
	OnConnect(s Sender) error
	OnFrame(s Sender, frame []byte)
	Alive() bool
}
