package handlers

import (
	"time"

	"github.com/farellandr/airport/internal/booking"
	"github.com/farellandr/airport/internal/models"
)

type AirplaneTypeResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type AirplaneListItem struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Rows         int    `json:"rows"`
	SeatsInRow   int    `json:"seats_in_row"`
	Capacity     int    `json:"capacity"`
	AirplaneType string `json:"airplane_type"`
}

type AirplaneDetail struct {
	ID           uint                 `json:"id"`
	Name         string               `json:"name"`
	Rows         int                  `json:"rows"`
	SeatsInRow   int                  `json:"seats_in_row"`
	Capacity     int                  `json:"capacity"`
	AirplaneType AirplaneTypeResponse `json:"airplane_type"`
}

type CrewResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

type CountryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CityListItem struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type CityDetail struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	Country CountryResponse `json:"country"`
}

type AirportListItem struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

type AirportDetail struct {
	ID             uint       `json:"id"`
	Name           string     `json:"name"`
	ClosestBigCity CityDetail `json:"closest_big_city"`
}

type RouteListItem struct {
	ID          uint   `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    int    `json:"distance"`
}

type RouteDetail struct {
	ID          uint          `json:"id"`
	Source      AirportDetail `json:"source"`
	Destination AirportDetail `json:"destination"`
	Distance    int           `json:"distance"`
}

type FlightListItem struct {
	ID               uint      `json:"id"`
	Route            string    `json:"route"`
	AirplaneName     string    `json:"airplane_name"`
	AirplaneCapacity int       `json:"airplane_capacity"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	Crew             []string  `json:"crew"`
	TicketsAvailable int       `json:"tickets_available"`
}

type FlightDetail struct {
	ID               uint            `json:"id"`
	Route            RouteDetail     `json:"route"`
	Airplane         AirplaneDetail  `json:"airplane"`
	DepartureTime    time.Time       `json:"departure_time"`
	ArrivalTime      time.Time       `json:"arrival_time"`
	Crew             []CrewResponse  `json:"crew"`
	TicketsAvailable int             `json:"tickets_available"`
	TakenPlaces      []booking.Place `json:"taken_places"`
}

type TicketFlight struct {
	ID            uint      `json:"id"`
	Route         string    `json:"route"`
	AirplaneName  string    `json:"airplane_name"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

type TicketResponse struct {
	ID     uint         `json:"id"`
	Row    int          `json:"row"`
	Seat   int          `json:"seat"`
	Flight TicketFlight `json:"flight"`
}

type OrderResponse struct {
	ID        uint             `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []TicketResponse `json:"tickets"`
}

func newAirplaneType(t models.AirplaneType) AirplaneTypeResponse {
	return AirplaneTypeResponse{ID: t.ID, Name: t.Name}
}

func newAirplaneListItem(a models.Airplane) AirplaneListItem {
	return AirplaneListItem{
		ID:           a.ID,
		Name:         a.Name,
		Rows:         a.Rows,
		SeatsInRow:   a.SeatsInRow,
		Capacity:     a.Capacity(),
		AirplaneType: a.AirplaneType.Name,
	}
}

func newAirplaneDetail(a models.Airplane) AirplaneDetail {
	return AirplaneDetail{
		ID:           a.ID,
		Name:         a.Name,
		Rows:         a.Rows,
		SeatsInRow:   a.SeatsInRow,
		Capacity:     a.Capacity(),
		AirplaneType: newAirplaneType(a.AirplaneType),
	}
}

func newCrew(c models.Crew) CrewResponse {
	return CrewResponse{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, FullName: c.FullName()}
}

func newCountry(c models.Country) CountryResponse {
	return CountryResponse{ID: c.ID, Name: c.Name}
}

func newCityListItem(c models.City) CityListItem {
	return CityListItem{ID: c.ID, Name: c.Name, Country: c.Country.Name}
}

func newCityDetail(c models.City) CityDetail {
	return CityDetail{ID: c.ID, Name: c.Name, Country: newCountry(c.Country)}
}

func newAirportListItem(a models.Airport) AirportListItem {
	return AirportListItem{ID: a.ID, Name: a.Name, ClosestBigCity: a.ClosestBigCity.Name}
}

func newAirportDetail(a models.Airport) AirportDetail {
	return AirportDetail{ID: a.ID, Name: a.Name, ClosestBigCity: newCityDetail(a.ClosestBigCity)}
}

func newRouteListItem(r models.Route) RouteListItem {
	return RouteListItem{ID: r.ID, Source: r.Source.Name, Destination: r.Destination.Name, Distance: r.Distance}
}

func newRouteDetail(r models.Route) RouteDetail {
	return RouteDetail{
		ID:          r.ID,
		Source:      newAirportDetail(r.Source),
		Destination: newAirportDetail(r.Destination),
		Distance:    r.Distance,
	}
}

func newFlightListItem(f models.Flight) FlightListItem {
	crew := make([]string, 0, len(f.Crew))
	for _, member := range f.Crew {
		crew = append(crew, member.FullName())
	}
	return FlightListItem{
		ID:               f.ID,
		Route:            f.Route.Label(),
		AirplaneName:     f.Airplane.Name,
		AirplaneCapacity: f.Airplane.Capacity(),
		DepartureTime:    f.DepartureTime,
		ArrivalTime:      f.ArrivalTime,
		Crew:             crew,
		TicketsAvailable: f.TicketsAvailable,
	}
}

func newFlightDetail(f models.Flight, taken []booking.Place) FlightDetail {
	crew := make([]CrewResponse, 0, len(f.Crew))
	for _, member := range f.Crew {
		crew = append(crew, newCrew(member))
	}
	return FlightDetail{
		ID:               f.ID,
		Route:            newRouteDetail(f.Route),
		Airplane:         newAirplaneDetail(f.Airplane),
		DepartureTime:    f.DepartureTime,
		ArrivalTime:      f.ArrivalTime,
		Crew:             crew,
		TicketsAvailable: f.TicketsAvailable,
		TakenPlaces:      taken,
	}
}

func newTicket(t models.Ticket) TicketResponse {
	return TicketResponse{
		ID:   t.ID,
		Row:  t.Row,
		Seat: t.Seat,
		Flight: TicketFlight{
			ID:            t.FlightID,
			Route:         t.Flight.Route.Label(),
			AirplaneName:  t.Flight.Airplane.Name,
			DepartureTime: t.Flight.DepartureTime,
			ArrivalTime:   t.Flight.ArrivalTime,
		},
	}
}

func newOrder(o models.Order) OrderResponse {
	tickets := make([]TicketResponse, 0, len(o.Tickets))
	for _, t := range o.Tickets {
		tickets = append(tickets, newTicket(t))
	}
	return OrderResponse{ID: o.ID, CreatedAt: o.CreatedAt, Tickets: tickets}
}
