package booking

import (
	"context"

	"github.com/farellandr/airport/internal/models"
	"gorm.io/gorm"
)

const ticketsAvailableSelect = `flights.*, ` +
	`(airplanes."rows" * airplanes.seats_in_row) - ` +
	`(SELECT COUNT(*) FROM tickets WHERE tickets.flight_id = flights.id) AS tickets_available`

// WithTicketsAvailable is a gorm scope over flights that fills
// Flight.TicketsAvailable from committed tickets.
func WithTicketsAvailable(db *gorm.DB) *gorm.DB {
	return db.Select(ticketsAvailableSelect).
		Joins("JOIN airplanes ON airplanes.id = flights.airplane_id")
}

// Place is one occupied seat of a flight.
type Place struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

// TakenPlaces lists the occupied seats of a flight ordered by row, seat.
func TakenPlaces(ctx context.Context, db *gorm.DB, flightID uint) ([]Place, error) {
	places := []Place{}
	err := db.WithContext(ctx).Model(&models.Ticket{}).
		Select("row", "seat").
		Where("flight_id = ?", flightID).
		Order(SeatOrder).
		Scan(&places).Error
	return places, err
}
