package booking

import (
	"context"
	"errors"

	"github.com/farellandr/airport/internal/models"
	"gorm.io/gorm"
)

// DeleteFlight removes a flight with its tickets and crew assignments, then
// drops the orders that no longer hold any ticket. It returns the number of
// orders removed.
func (s *GormStore) DeleteFlight(ctx context.Context, id uint) (int64, error) {
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var flight models.Flight
		if err := tx.Select("id").First(&flight, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var orderIDs []uint
		err := tx.Model(&models.Ticket{}).
			Where("flight_id = ?", id).
			Distinct().
			Pluck("order_id", &orderIDs).Error
		if err != nil {
			return err
		}

		if err := tx.Where("flight_id = ?", id).Delete(&models.Ticket{}).Error; err != nil {
			return err
		}
		if err := tx.Select("Crew").Delete(&flight).Error; err != nil {
			return err
		}

		if len(orderIDs) == 0 {
			return nil
		}
		result := tx.Where("id IN ?", orderIDs).
			Where("NOT EXISTS (SELECT 1 FROM tickets WHERE tickets.order_id = orders.id)").
			Delete(&models.Order{})
		removed = result.RowsAffected
		return result.Error
	})
	return removed, err
}
