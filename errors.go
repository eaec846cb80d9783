package glyphwalk

import "errors"

var (
	// ErrDimension is returned when a latent vector does not have the
	// dimensionality its table or model expects.
	ErrDimension = errors.New("glyphwalk: latent vector has wrong dimension")

	// ErrSymbol is returned when a table key is not a single alphanumeric symbol.
	ErrSymbol = errors.New("glyphwalk: not an alphanumeric symbol")

	// ErrUnknownSymbol is returned when a symbol has no entry in the address table.
	ErrUnknownSymbol = errors.New("glyphwalk: symbol not in address table")

	// ErrIndexOutOfRange is returned by Document operations given a bad index.
	ErrIndexOutOfRange = errors.New("glyphwalk: slot index out of range")

	// ErrFrameLabel is returned when a generator answers with a frame whose
	// output label differs from the one the gateway was configured with.
	ErrFrameLabel = errors.New("glyphwalk: unexpected frame label")

	// ErrGatewayClosed is reported for requests submitted after Close.
	ErrGatewayClosed = errors.New("glyphwalk: gateway closed")

	// ErrGatewayBusy is reported when the worker queues are full.
	ErrGatewayBusy = errors.New("glyphwalk: gateway queue full")
)
