package handlers

import (
	"errors"
	"net/http"

	"github.com/farellandr/airport/internal/filters"
	"github.com/farellandr/airport/internal/helpers"
	"github.com/farellandr/airport/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RouteRequest struct {
	Source      uint `json:"source" binding:"required"`
	Destination uint `json:"destination" binding:"required"`
	Distance    int  `json:"distance" binding:"required,min=1"`
}

func preloadRoute(db *gorm.DB, prefix string) *gorm.DB {
	return db.
		Preload(prefix + "Source.ClosestBigCity.Country").
		Preload(prefix + "Destination.ClosestBigCity.Country")
}

// ListRoutes supports ?source=<city>&destination=<city>.
func ListRoutes(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	filter := filters.RouteFilter{
		Source:      c.Query("source"),
		Destination: c.Query("destination"),
	}

	var routes []models.Route
	err := gormDB.Scopes(filter.Scope()).
		Preload("Source").
		Preload("Destination").
		Order("routes.id").
		Find(&routes).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving routes.")
		return
	}

	out := make([]RouteListItem, 0, len(routes))
	for _, r := range routes {
		out = append(out, newRouteListItem(r))
	}
	c.JSON(http.StatusOK, out)
}

func GetRoute(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var route models.Route
	if err := preloadRoute(gormDB, "").First(&route, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Route not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving route.")
		return
	}

	c.JSON(http.StatusOK, newRouteDetail(route))
}

func CreateRoute(c *gin.Context) {
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, invalidInput)
		return
	}

	if req.Source == req.Destination {
		helpers.RespondWithFieldErrors(c, http.StatusBadRequest, helpers.FieldErrors{
			helpers.NonFieldErrors: {"Source and destination must be different airports."},
		})
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var source, destination models.Airport
	if !findReferenced(c, gormDB.Preload("ClosestBigCity.Country"), &source, req.Source, "source") {
		return
	}
	if !findReferenced(c, gormDB.Preload("ClosestBigCity.Country"), &destination, req.Destination, "destination") {
		return
	}

	route := models.Route{
		SourceID:      source.ID,
		Source:        source,
		DestinationID: destination.ID,
		Destination:   destination,
		Distance:      req.Distance,
	}
	if err := gormDB.Omit("Source", "Destination").Create(&route).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create route.")
		return
	}

	c.JSON(http.StatusCreated, newRouteDetail(route))
}
