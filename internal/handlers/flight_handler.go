package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/farellandr/airport/internal/booking"
	"github.com/farellandr/airport/internal/filters"
	"github.com/farellandr/airport/internal/helpers"
	"github.com/farellandr/airport/internal/middleware"
	"github.com/farellandr/airport/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type FlightRequest struct {
	Route         uint      `json:"route" binding:"required"`
	Airplane      uint      `json:"airplane" binding:"required"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
	Crew          []uint    `json:"crew"`
}

// ListFlights supports ?routes=1,2&airplanes=3&crews=4,5 and annotates every
// flight with tickets_available.
func ListFlights(c *gin.Context) {
	var filter filters.FlightFilter
	var ok bool
	if filter.RouteIDs, ok = queryIDs(c, "routes"); !ok {
		return
	}
	if filter.AirplaneIDs, ok = queryIDs(c, "airplanes"); !ok {
		return
	}
	if filter.CrewIDs, ok = queryIDs(c, "crews"); !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var flights []models.Flight
	err := gormDB.Model(&models.Flight{}).
		Scopes(booking.WithTicketsAvailable, filter.Scope()).
		Preload("Route.Source").
		Preload("Route.Destination").
		Preload("Airplane").
		Preload("Crew", func(db *gorm.DB) *gorm.DB { return db.Order("crews.id") }).
		Order("flights.id").
		Find(&flights).Error
	if err != nil {
		middleware.GetLogger(c).WithError(err).Error("failed to list flights")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving flights.")
		return
	}

	out := make([]FlightListItem, 0, len(flights))
	for _, f := range flights {
		out = append(out, newFlightListItem(f))
	}
	c.JSON(http.StatusOK, out)
}

func GetFlight(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var flight models.Flight
	err := preloadRoute(gormDB, "Route.").
		Preload("Airplane.AirplaneType").
		Preload("Crew", func(db *gorm.DB) *gorm.DB { return db.Order("crews.id") }).
		First(&flight, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Flight not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving flight.")
		return
	}

	taken, err := booking.TakenPlaces(c.Request.Context(), gormDB, flight.ID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving taken places.")
		return
	}
	flight.TicketsAvailable = booking.AvailableSeats(flight.Airplane, len(taken))

	c.JSON(http.StatusOK, newFlightDetail(flight, taken))
}

func CreateFlight(c *gin.Context) {
	var req FlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, invalidInput)
		return
	}

	if !req.ArrivalTime.After(req.DepartureTime) {
		helpers.RespondWithFieldErrors(c, http.StatusBadRequest, helpers.FieldErrors{
			"arrival_time": {"Arrival time must be after departure time."},
		})
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var route models.Route
	if !findReferenced(c, gormDB, &route, req.Route, "route") {
		return
	}
	var airplane models.Airplane
	if !findReferenced(c, gormDB, &airplane, req.Airplane, "airplane") {
		return
	}

	crew, ok := loadCrew(c, gormDB, req.Crew)
	if !ok {
		return
	}

	flight := models.Flight{
		RouteID:       route.ID,
		AirplaneID:    airplane.ID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		Crew:          crew,
	}
	if err := gormDB.Omit("Route", "Airplane", "Crew.*").Create(&flight).Error; err != nil {
		middleware.GetLogger(c).WithError(err).Error("failed to create flight")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create flight.")
		return
	}

	crewIDs := make([]uint, 0, len(crew))
	for _, member := range crew {
		crewIDs = append(crewIDs, member.ID)
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":             flight.ID,
		"route":          flight.RouteID,
		"airplane":       flight.AirplaneID,
		"departure_time": flight.DepartureTime,
		"arrival_time":   flight.ArrivalTime,
		"crew":           crewIDs,
	})
}

// loadCrew resolves crew ids, rejecting the request when any id is unknown.
func loadCrew(c *gin.Context, gormDB *gorm.DB, ids []uint) ([]models.Crew, bool) {
	if len(ids) == 0 {
		return nil, true
	}

	var crew []models.Crew
	if err := gormDB.Where("id IN ?", ids).Order("id").Find(&crew).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving crew.")
		return nil, false
	}

	found := make(map[uint]struct{}, len(crew))
	for _, member := range crew {
		found[member.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			helpers.RespondWithFieldErrors(c, http.StatusBadRequest, helpers.FieldErrors{
				"crew": {"Invalid pk \"" + helpers.UintToString(id) + "\" - object does not exist."},
			})
			return nil, false
		}
	}
	return crew, true
}

func DeleteFlight(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	removedOrders, err := booking.NewGormStore(gormDB).DeleteFlight(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Flight not found.")
			return
		}
		middleware.GetLogger(c).WithError(err).Error("failed to delete flight")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete flight.")
		return
	}

	middleware.GetLogger(c).WithFields(logrus.Fields{
		"flight_id":      id,
		"removed_orders": removedOrders,
	}).Info("flight deleted")
	c.Status(http.StatusNoContent)
}
