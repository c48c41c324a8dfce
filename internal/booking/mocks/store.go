package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/farellandr/airport/internal/booking"
	"github.com/farellandr/airport/internal/models"
	"github.com/google/uuid"
)

type seatKey struct {
	flightID  uint
	row, seat int
}

// MemoryStore is an in-memory booking.Store. Transactions run concurrently
// and are applied on success only. The (flight, row, seat) index is enforced
// on insert: a seat held by a committed ticket or reserved by another open
// transaction is reported as a conflict.
type MemoryStore struct {
	mu       sync.Mutex
	flights  map[uint]models.Flight
	orders   []models.Order
	tickets  []models.Ticket
	seats    map[seatKey]struct{}
	reserved map[seatKey]*memoryTx
	nextID   uint

	// StaleSeatReads makes SeatTaken always report free seats, so only the
	// insert-time index can catch a conflict.
	StaleSeatReads bool
}

func NewMemoryStore(flights ...models.Flight) *MemoryStore {
	s := &MemoryStore{
		flights:  make(map[uint]models.Flight),
		seats:    make(map[seatKey]struct{}),
		reserved: make(map[seatKey]*memoryTx),
	}
	for _, f := range flights {
		s.flights[f.ID] = f
	}
	return s
}

// AddTicket stores a committed ticket under a fresh order outside any transaction.
func (s *MemoryStore) AddTicket(userID uuid.UUID, flightID uint, row, seat int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	order := models.Order{ID: s.nextID, UserID: userID, CreatedAt: time.Now()}
	s.nextID++
	ticket := models.Ticket{ID: s.nextID, OrderID: order.ID, FlightID: flightID, Row: row, Seat: seat}
	s.orders = append(s.orders, order)
	s.tickets = append(s.tickets, ticket)
	s.seats[seatKey{flightID, row, seat}] = struct{}{}
}

func (s *MemoryStore) Tickets() []models.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Ticket(nil), s.tickets...)
}

func (s *MemoryStore) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *MemoryStore) Transaction(ctx context.Context, fn func(tx booking.Store) error) error {
	tx := &memoryTx{store: s}
	err := fn(tx)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tx.tickets {
		delete(s.reserved, seatKey{t.FlightID, t.Row, t.Seat})
	}
	if err != nil {
		return err
	}
	for _, t := range tx.tickets {
		s.seats[seatKey{t.FlightID, t.Row, t.Seat}] = struct{}{}
	}
	s.orders = append(s.orders, tx.orders...)
	s.tickets = append(s.tickets, tx.tickets...)
	return nil
}

func (s *MemoryStore) FlightForBooking(ctx context.Context, id uint) (*models.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flights[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return &f, nil
}

func (s *MemoryStore) SeatTaken(ctx context.Context, flightID uint, row, seat int) (bool, error) {
	if s.StaleSeatReads {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, taken := s.seats[seatKey{flightID, row, seat}]
	return taken, nil
}

func (s *MemoryStore) CreateOrder(ctx context.Context, order *models.Order) error {
	return s.Transaction(ctx, func(tx booking.Store) error { return tx.CreateOrder(ctx, order) })
}

func (s *MemoryStore) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	return s.Transaction(ctx, func(tx booking.Store) error { return tx.CreateTicket(ctx, ticket) })
}

func (s *MemoryStore) ListOrders(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.Order, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var mine []models.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			mine = append(mine, s.withTickets(o))
		}
	}
	sort.SliceStable(mine, func(i, j int) bool { return mine[i].ID > mine[j].ID })

	total := int64(len(mine))
	if offset >= len(mine) {
		return []models.Order{}, total, nil
	}
	end := offset + limit
	if end > len(mine) {
		end = len(mine)
	}
	return mine[offset:end], total, nil
}

func (s *MemoryStore) GetOrder(ctx context.Context, userID uuid.UUID, id uint) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id && o.UserID == userID {
			order := s.withTickets(o)
			return &order, nil
		}
	}
	return nil, booking.ErrNotFound
}

func (s *MemoryStore) withTickets(o models.Order) models.Order {
	for _, t := range s.tickets {
		if t.OrderID == o.ID {
			t.Flight = s.flights[t.FlightID]
			o.Tickets = append(o.Tickets, t)
		}
	}
	sort.Slice(o.Tickets, func(i, j int) bool {
		if o.Tickets[i].Row != o.Tickets[j].Row {
			return o.Tickets[i].Row < o.Tickets[j].Row
		}
		return o.Tickets[i].Seat < o.Tickets[j].Seat
	})
	return o
}

type memoryTx struct {
	store   *MemoryStore
	orders  []models.Order
	tickets []models.Ticket
}

func (tx *memoryTx) Transaction(ctx context.Context, fn func(tx booking.Store) error) error {
	return fn(tx)
}

func (tx *memoryTx) FlightForBooking(ctx context.Context, id uint) (*models.Flight, error) {
	return tx.store.FlightForBooking(ctx, id)
}

func (tx *memoryTx) SeatTaken(ctx context.Context, flightID uint, row, seat int) (bool, error) {
	return tx.store.SeatTaken(ctx, flightID, row, seat)
}

func (tx *memoryTx) CreateOrder(ctx context.Context, order *models.Order) error {
	tx.store.mu.Lock()
	tx.store.nextID++
	order.ID = tx.store.nextID
	tx.store.mu.Unlock()
	order.CreatedAt = time.Now()
	tx.orders = append(tx.orders, *order)
	return nil
}

func (tx *memoryTx) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	key := seatKey{ticket.FlightID, ticket.Row, ticket.Seat}

	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	if _, taken := tx.store.seats[key]; taken {
		return booking.ErrSeatConflict
	}
	if _, held := tx.store.reserved[key]; held {
		return booking.ErrSeatConflict
	}
	tx.store.reserved[key] = tx
	tx.store.nextID++
	ticket.ID = tx.store.nextID
	tx.tickets = append(tx.tickets, *ticket)
	return nil
}

func (tx *memoryTx) ListOrders(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.Order, int64, error) {
	return tx.store.ListOrders(ctx, userID, offset, limit)
}

func (tx *memoryTx) GetOrder(ctx context.Context, userID uuid.UUID, id uint) (*models.Order, error) {
	return tx.store.GetOrder(ctx, userID, id)
}
