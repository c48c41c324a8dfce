package models

import "time"

type AirplaneType struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Airplane struct {
	ID             uint         `gorm:"primaryKey"`
	Name           string       `gorm:"not null"`
	Rows           int          `gorm:"not null"`
	SeatsInRow     int          `gorm:"not null"`
	AirplaneTypeID uint         `gorm:"not null;index"`
	AirplaneType   AirplaneType `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Capacity is the number of physical seats on the airplane.
func (a Airplane) Capacity() int {
	return a.Rows * a.SeatsInRow
}

type Crew struct {
	ID        uint   `gorm:"primaryKey"`
	FirstName string `gorm:"not null"`
	LastName  string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}

type Country struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type City struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"not null"`
	CountryID uint    `gorm:"not null;index"`
	Country   Country `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Airport struct {
	ID               uint   `gorm:"primaryKey"`
	Name             string `gorm:"not null"`
	ClosestBigCityID uint   `gorm:"not null;index"`
	ClosestBigCity   City   `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Route struct {
	ID            uint    `gorm:"primaryKey"`
	SourceID      uint    `gorm:"not null;index"`
	Source        Airport `gorm:"constraint:OnDelete:CASCADE"`
	DestinationID uint    `gorm:"not null;index"`
	Destination   Airport `gorm:"constraint:OnDelete:CASCADE"`
	Distance      int     `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Label renders the route as "source - destination" using airport names.
func (r Route) Label() string {
	return r.Source.Name + " - " + r.Destination.Name
}
