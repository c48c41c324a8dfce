package models

import "time"

type Flight struct {
	ID            uint      `gorm:"primaryKey"`
	RouteID       uint      `gorm:"not null;index"`
	Route         Route     `gorm:"constraint:OnDelete:CASCADE"`
	AirplaneID    uint      `gorm:"not null;index"`
	Airplane      Airplane  `gorm:"constraint:OnDelete:CASCADE"`
	DepartureTime time.Time `gorm:"not null"`
	ArrivalTime   time.Time `gorm:"not null"`
	Crew          []Crew    `gorm:"many2many:flight_crews;constraint:OnDelete:CASCADE"`
	Tickets       []Ticket  `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// TicketsAvailable is filled by capacity queries and never stored.
	TicketsAvailable int `gorm:"->;-:migration"`
}
