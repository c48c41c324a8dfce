package booking

import (
	"context"

	"github.com/farellandr/airport/internal/models"
	"github.com/google/uuid"
)

// Store is the persistence collaborator of the order engine. A Store handed
// to a Transaction callback runs every call inside that transaction.
type Store interface {
	Transaction(ctx context.Context, fn func(tx Store) error) error

	// FlightForBooking returns the flight with its airplane loaded, or ErrNotFound.
	FlightForBooking(ctx context.Context, id uint) (*models.Flight, error)
	SeatTaken(ctx context.Context, flightID uint, row, seat int) (bool, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	// CreateTicket returns ErrSeatConflict when the seat is already occupied.
	CreateTicket(ctx context.Context, ticket *models.Ticket) error

	ListOrders(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.Order, int64, error)
	GetOrder(ctx context.Context, userID uuid.UUID, id uint) (*models.Order, error)
}
