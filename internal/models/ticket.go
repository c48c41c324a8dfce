package models

import "time"

// Ticket occupies one physical seat of a flight. The (flight, row, seat)
// triple is unique across all orders.
//
// Both foreign keys cascade from the has-many side (Flight.Tickets and
// Order.Tickets); the belongs-to fields here carry no constraint of their own.
type Ticket struct {
	ID        uint `gorm:"primaryKey"`
	Row       int  `gorm:"not null;uniqueIndex:idx_tickets_flight_row_seat,priority:2"`
	Seat      int  `gorm:"not null;uniqueIndex:idx_tickets_flight_row_seat,priority:3"`
	FlightID  uint `gorm:"not null;uniqueIndex:idx_tickets_flight_row_seat,priority:1"`
	Flight    Flight
	OrderID   uint `gorm:"not null;index"`
	Order     Order
	CreatedAt time.Time
}
