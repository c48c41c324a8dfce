package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/farellandr/airport/internal/filters"
	"github.com/farellandr/airport/internal/helpers"
	"github.com/farellandr/airport/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AirportRequest struct {
	Name           string `json:"name" binding:"required,max=255"`
	ClosestBigCity uint   `json:"closest_big_city" binding:"required"`
}

func ListAirports(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var airports []models.Airport
	err := gormDB.Scopes(filters.AirportFilter{ClosestBigCity: c.Query("closest_big_city")}.Scope()).
		Preload("ClosestBigCity").
		Order("airports.id").
		Find(&airports).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airports.")
		return
	}

	out := make([]AirportListItem, 0, len(airports))
	for _, a := range airports {
		out = append(out, newAirportListItem(a))
	}
	c.JSON(http.StatusOK, out)
}

func GetAirport(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var airport models.Airport
	if err := gormDB.Preload("ClosestBigCity.Country").First(&airport, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Airport not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airport.")
		return
	}

	c.JSON(http.StatusOK, newAirportDetail(airport))
}

func CreateAirport(c *gin.Context) {
	var req AirportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, invalidInput)
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var city models.City
	if !findReferenced(c, gormDB.Preload("Country"), &city, req.ClosestBigCity, "closest_big_city") {
		return
	}

	airport := models.Airport{
		Name:             strings.TrimSpace(req.Name),
		ClosestBigCityID: city.ID,
		ClosestBigCity:   city,
	}
	if err := gormDB.Omit("ClosestBigCity").Create(&airport).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create airport.")
		return
	}

	c.JSON(http.StatusCreated, newAirportDetail(airport))
}
