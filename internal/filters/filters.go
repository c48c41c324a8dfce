// Package filters builds gorm scopes from typed list filters. A zero-valued
// filter field imposes no constraint; set fields are AND-combined and the ids
// inside one field are OR-combined.
package filters

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

type Scope = func(*gorm.DB) *gorm.DB

// FlightFilter narrows the flight list by route, airplane and crew ids.
type FlightFilter struct {
	RouteIDs    []uint
	AirplaneIDs []uint
	CrewIDs     []uint
}

// Scope matches crew through a subquery so a flight staffed by several of the
// requested crew members is still returned once.
func (f FlightFilter) Scope() Scope {
	return func(db *gorm.DB) *gorm.DB {
		if len(f.RouteIDs) > 0 {
			db = db.Where("flights.route_id IN ?", f.RouteIDs)
		}
		if len(f.AirplaneIDs) > 0 {
			db = db.Where("flights.airplane_id IN ?", f.AirplaneIDs)
		}
		if len(f.CrewIDs) > 0 {
			db = db.Where("flights.id IN (?)",
				db.Session(&gorm.Session{NewDB: true}).
					Table("flight_crews").
					Select("flight_id").
					Where("crew_id IN ?", f.CrewIDs))
		}
		return db
	}
}

type AirplaneFilter struct {
	TypeIDs []uint
}

func (f AirplaneFilter) Scope() Scope {
	return func(db *gorm.DB) *gorm.DB {
		if len(f.TypeIDs) > 0 {
			db = db.Where("airplanes.airplane_type_id IN ?", f.TypeIDs)
		}
		return db
	}
}

// AirportFilter matches ClosestBigCity against the city name as a
// case-insensitive substring, and against the city id when it is numeric.
type AirportFilter struct {
	ClosestBigCity string
}

func (f AirportFilter) Scope() Scope {
	return func(db *gorm.DB) *gorm.DB {
		value := strings.TrimSpace(f.ClosestBigCity)
		if value == "" {
			return db
		}
		byName := db.Session(&gorm.Session{NewDB: true}).
			Table("cities").
			Select("id").
			Where("name ILIKE ?", contains(value))

		if id, err := strconv.ParseUint(value, 10, 64); err == nil {
			return db.Where("(airports.closest_big_city_id = ? OR airports.closest_big_city_id IN (?))", id, byName)
		}
		return db.Where("airports.closest_big_city_id IN (?)", byName)
	}
}

// RouteFilter matches the closest big city name of the source and
// destination airports.
type RouteFilter struct {
	Source      string
	Destination string
}

func (f RouteFilter) Scope() Scope {
	return func(db *gorm.DB) *gorm.DB {
		if v := strings.TrimSpace(f.Source); v != "" {
			db = db.Where("routes.source_id IN (?)", airportsInCity(db, v))
		}
		if v := strings.TrimSpace(f.Destination); v != "" {
			db = db.Where("routes.destination_id IN (?)", airportsInCity(db, v))
		}
		return db
	}
}

func airportsInCity(db *gorm.DB, city string) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Table("airports").
		Select("airports.id").
		Joins("JOIN cities ON cities.id = airports.closest_big_city_id").
		Where("cities.name ILIKE ?", contains(city))
}

// contains turns s into an ILIKE pattern, escaping the wildcard characters.
func contains(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
