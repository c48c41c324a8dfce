package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/farellandr/airport/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pgUniqueViolation = "23505"

// SeatOrder sorts tickets by row, then seat.
var SeatOrder = clause.OrderBy{Columns: []clause.OrderByColumn{
	{Column: clause.Column{Name: "row"}},
	{Column: clause.Column{Name: "seat"}},
}}

// GormStore is the Store backed by the relational schema.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) FlightForBooking(ctx context.Context, id uint) (*models.Flight, error) {
	var flight models.Flight
	err := s.db.WithContext(ctx).
		Preload("Airplane").
		Preload("Route.Source").
		Preload("Route.Destination").
		First(&flight, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &flight, nil
}

func (s *GormStore) SeatTaken(ctx context.Context, flightID uint, row, seat int) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Ticket{}).
		Where(map[string]interface{}{"flight_id": flightID, "row": row, "seat": seat}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) CreateOrder(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error
}

func (s *GormStore) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(ticket).Error
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrSeatConflict, err)
	}
	return err
}

func (s *GormStore) ListOrders(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.Order, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("user_id = ?", userID).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := preloadOrder(query).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (s *GormStore) GetOrder(ctx context.Context, userID uuid.UUID, id uint) (*models.Order, error) {
	var order models.Order
	err := preloadOrder(s.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func preloadOrder(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Tickets", func(db *gorm.DB) *gorm.DB { return db.Order(SeatOrder) }).
		Preload("Tickets.Flight.Route.Source").
		Preload("Tickets.Flight.Route.Destination").
		Preload("Tickets.Flight.Airplane").
		Preload("Tickets.Flight.Crew")
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
