package booking

import (
	"fmt"

	"github.com/farellandr/airport/internal/models"
)

// Dimension names the seat coordinate that failed validation.
type Dimension string

const (
	DimensionRow  Dimension = "row"
	DimensionSeat Dimension = "seat"
)

// SeatError reports a coordinate outside the airplane grid. Max is the
// largest valid value for Dimension; the smallest is always 1.
type SeatError struct {
	Dimension Dimension
	Value     int
	Max       int
}

func (e *SeatError) Error() string {
	limitName := "rows"
	if e.Dimension == DimensionSeat {
		limitName = "seats_in_row"
	}
	return fmt.Sprintf("%s number must be in available range: (1, %s): (1, %d)", e.Dimension, limitName, e.Max)
}

// ValidateSeat checks that (row, seat) lies within the airplane's grid.
func ValidateSeat(row, seat int, airplane models.Airplane) error {
	if row < 1 || row > airplane.Rows {
		return &SeatError{Dimension: DimensionRow, Value: row, Max: airplane.Rows}
	}
	if seat < 1 || seat > airplane.SeatsInRow {
		return &SeatError{Dimension: DimensionSeat, Value: seat, Max: airplane.SeatsInRow}
	}
	return nil
}

// AvailableSeats is the airplane capacity minus committed tickets.
func AvailableSeats(airplane models.Airplane, committed int) int {
	return airplane.Capacity() - committed
}
