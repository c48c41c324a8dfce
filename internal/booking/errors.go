package booking

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrSeatConflict is returned by a Store when the storage uniqueness
	// constraint on (flight, row, seat) rejects an insert.
	ErrSeatConflict = errors.New("seat already taken")
)

type ErrorKind string

const (
	KindEmptyOrder       ErrorKind = "empty_order"
	KindUnknownFlight    ErrorKind = "unknown_flight"
	KindOutOfRange       ErrorKind = "out_of_range"
	KindDuplicateInBatch ErrorKind = "duplicate_in_batch"
	KindSeatTaken        ErrorKind = "seat_taken"
)

// OrderError describes why an order was rejected. Index and Request point
// at the first failing ticket request; both are zero for KindEmptyOrder.
type OrderError struct {
	Kind    ErrorKind
	Index   int
	Request TicketRequest
	Err     error
}

func (e *OrderError) Error() string {
	if e.Kind == KindEmptyOrder {
		return "order must contain at least one ticket"
	}
	return fmt.Sprintf("ticket %d (flight %d, row %d, seat %d): %s",
		e.Index, e.Request.FlightID, e.Request.Row, e.Request.Seat, e.Reason())
}

// Reason is the human readable cause without the ticket coordinates.
func (e *OrderError) Reason() string {
	switch e.Kind {
	case KindEmptyOrder:
		return "order must contain at least one ticket"
	case KindUnknownFlight:
		return fmt.Sprintf("flight %d does not exist", e.Request.FlightID)
	case KindOutOfRange:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "seat is outside the airplane"
	case KindDuplicateInBatch:
		return fmt.Sprintf("row %d, seat %d on flight %d is requested more than once", e.Request.Row, e.Request.Seat, e.Request.FlightID)
	case KindSeatTaken:
		return fmt.Sprintf("row %d, seat %d on flight %d is already taken", e.Request.Row, e.Request.Seat, e.Request.FlightID)
	default:
		return string(e.Kind)
	}
}

func (e *OrderError) Unwrap() error { return e.Err }

// IsKind reports whether err is an *OrderError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var target *OrderError
	return errors.As(err, &target) && target.Kind == kind
}
