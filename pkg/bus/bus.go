package bus

// Handler is the callback when a frame is received.
type Handler func(Frame)

// ErrorHandler is the callback when the transport reports an error.
type ErrorHandler func(error)

// Bus is the send/receive contract the protocol core consumes.
// Delivery guarantees (ordering, retransmission of unacknowledged
// frames) belong to the transport behind this interface, not to the
// core.
type Bus interface {
	// Send transmits a frame. It must not block on peer processing.
	Send(Frame) error
	// Notify registers the receive callback. Frames the transport
	// could not decode are dropped before reaching the handler.
	Notify(Handler)
}

// ErrorNotifier is optionally implemented by transports that surface
// asynchronous bus errors.
type ErrorNotifier interface {
	NotifyError(ErrorHandler)
}
