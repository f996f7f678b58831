package gridpath

import "errors"

var (
	// ErrInvalidGrid reports malformed dimensions or obstacle coordinates.
	ErrInvalidGrid = errors.New("invalid grid")

	// ErrInvalidEndpoints reports a start or end that is out of bounds,
	// blocked, or identical to the other endpoint.
	ErrInvalidEndpoints = errors.New("invalid endpoints")

	// ErrAborted reports a search stopped by its expansion cap or by context
	// cancellation before reaching a terminal outcome.
	ErrAborted = errors.New("search aborted")
)
