package flipdisc

// Transport receives finished frames. Dispatch is called by the scheduler
// only when at least one cell of either grid differs from the previously
// dispatched frame. The grids belong to the transport after the call.
type Transport interface {
	Dispatch(vertical, horizontal *Grid)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(vertical, horizontal *Grid)

// Dispatch calls f(vertical, horizontal).
func (f TransportFunc) Dispatch(vertical, horizontal *Grid) {
	f(vertical, horizontal)
}

type nopTransport struct{}

func (nopTransport) Dispatch(*Grid, *Grid) {}
