package booking_test

import (
	"errors"
	"testing"

	"github.com/farellandr/airport/internal/booking"
	"github.com/farellandr/airport/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSeat(t *testing.T) {
	airplane := models.Airplane{Rows: 20, SeatsInRow: 4}

	tests := []struct {
		name      string
		row, seat int
		dimension booking.Dimension
		max       int
	}{
		{name: "first seat", row: 1, seat: 1},
		{name: "last seat", row: 20, seat: 4},
		{name: "row past the grid", row: 21, seat: 1, dimension: booking.DimensionRow, max: 20},
		{name: "row zero", row: 0, seat: 1, dimension: booking.DimensionRow, max: 20},
		{name: "seat past the row", row: 5, seat: 5, dimension: booking.DimensionSeat, max: 4},
		{name: "negative seat", row: 5, seat: -1, dimension: booking.DimensionSeat, max: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := booking.ValidateSeat(tt.row, tt.seat, airplane)
			if tt.dimension == "" {
				assert.NoError(t, err)
				return
			}

			var seatErr *booking.SeatError
			require.True(t, errors.As(err, &seatErr))
			assert.Equal(t, tt.dimension, seatErr.Dimension)
			assert.Equal(t, tt.max, seatErr.Max)
		})
	}
}

func TestSeatError_Message(t *testing.T) {
	err := booking.ValidateSeat(21, 1, models.Airplane{Rows: 20, SeatsInRow: 4})
	assert.EqualError(t, err, "row number must be in available range: (1, rows): (1, 20)")

	err = booking.ValidateSeat(1, 7, models.Airplane{Rows: 20, SeatsInRow: 6})
	assert.EqualError(t, err, "seat number must be in available range: (1, seats_in_row): (1, 6)")
}

func TestAvailableSeats(t *testing.T) {
	airplane := models.Airplane{Rows: 20, SeatsInRow: 4}

	assert.Equal(t, 80, airplane.Capacity())
	assert.Equal(t, 80, booking.AvailableSeats(airplane, 0))
	assert.Equal(t, 75, booking.AvailableSeats(airplane, 5))
	assert.Equal(t, 0, booking.AvailableSeats(airplane, 80))
}
