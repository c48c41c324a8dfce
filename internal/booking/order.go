package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/farellandr/airport/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TicketRequest asks for one seat on one flight.
type TicketRequest struct {
	FlightID uint
	Row      int
	Seat     int
}

type seatKey struct {
	flightID  uint
	row, seat int
}

// Engine validates and commits orders.
type Engine struct {
	store Store
	log   logrus.FieldLogger
}

func NewEngine(store Store, logger logrus.FieldLogger) *Engine {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Engine{store: store, log: logger}
}

// CreateOrder commits every requested ticket under a single new order for
// userID, or nothing at all. Rejections are returned as *OrderError.
func (e *Engine) CreateOrder(ctx context.Context, userID uuid.UUID, requests []TicketRequest) (*models.Order, error) {
	if len(requests) == 0 {
		return nil, &OrderError{Kind: KindEmptyOrder}
	}

	var order *models.Order
	err := e.store.Transaction(ctx, func(tx Store) error {
		flights, err := e.checkRequests(ctx, tx, requests)
		if err != nil {
			return err
		}

		order = &models.Order{UserID: userID}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		tickets := make([]models.Ticket, 0, len(requests))
		for i, req := range requests {
			ticket := models.Ticket{
				FlightID: req.FlightID,
				OrderID:  order.ID,
				Row:      req.Row,
				Seat:     req.Seat,
			}
			if err := tx.CreateTicket(ctx, &ticket); err != nil {
				if errors.Is(err, ErrSeatConflict) {
					e.log.WithFields(logrus.Fields{
						"flight_id": req.FlightID,
						"row":       req.Row,
						"seat":      req.Seat,
					}).Warn("seat taken by a concurrent order")
					return &OrderError{Kind: KindSeatTaken, Index: i, Request: req, Err: err}
				}
				return fmt.Errorf("failed to create ticket: %w", err)
			}
			ticket.Flight = *flights[req.FlightID]
			tickets = append(tickets, ticket)
		}
		order.Tickets = tickets
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  userID,
		"tickets":  len(order.Tickets),
	}).Info("order committed")
	return order, nil
}

// checkRequests runs the read-time checks in request order so the first
// failing request is the one reported. It returns the flights it loaded,
// keyed by ID.
func (e *Engine) checkRequests(ctx context.Context, tx Store, requests []TicketRequest) (map[uint]*models.Flight, error) {
	flights := make(map[uint]*models.Flight)
	seen := make(map[seatKey]struct{}, len(requests))

	for i, req := range requests {
		flight, ok := flights[req.FlightID]
		if !ok {
			var err error
			flight, err = tx.FlightForBooking(ctx, req.FlightID)
			if errors.Is(err, ErrNotFound) {
				return nil, &OrderError{Kind: KindUnknownFlight, Index: i, Request: req, Err: err}
			}
			if err != nil {
				return nil, fmt.Errorf("failed to load flight %d: %w", req.FlightID, err)
			}
			flights[req.FlightID] = flight
		}

		if err := ValidateSeat(req.Row, req.Seat, flight.Airplane); err != nil {
			return nil, &OrderError{Kind: KindOutOfRange, Index: i, Request: req, Err: err}
		}

		key := seatKey{flightID: req.FlightID, row: req.Row, seat: req.Seat}
		if _, dup := seen[key]; dup {
			return nil, &OrderError{Kind: KindDuplicateInBatch, Index: i, Request: req}
		}
		seen[key] = struct{}{}

		taken, err := tx.SeatTaken(ctx, req.FlightID, req.Row, req.Seat)
		if err != nil {
			return nil, fmt.Errorf("failed to check seat: %w", err)
		}
		if taken {
			return nil, &OrderError{Kind: KindSeatTaken, Index: i, Request: req, Err: ErrSeatConflict}
		}
	}
	return flights, nil
}

// Orders returns one page of the user's orders, newest first.
func (e *Engine) Orders(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.Order, int64, error) {
	return e.store.ListOrders(ctx, userID, offset, limit)
}

// Order returns one of the user's orders or ErrNotFound.
func (e *Engine) Order(ctx context.Context, userID uuid.UUID, id uint) (*models.Order, error) {
	return e.store.GetOrder(ctx, userID, id)
}
