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

type AirplaneRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Rows         int    `json:"rows" binding:"required,min=1"`
	SeatsInRow   int    `json:"seats_in_row" binding:"required,min=1"`
	AirplaneType uint   `json:"airplane_type" binding:"required"`
}

// ListAirplanes supports ?airplane_types=1,2.
func ListAirplanes(c *gin.Context) {
	typeIDs, ok := queryIDs(c, "airplane_types")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var airplanes []models.Airplane
	err := gormDB.Scopes(filters.AirplaneFilter{TypeIDs: typeIDs}.Scope()).
		Preload("AirplaneType").
		Order("airplanes.id").
		Find(&airplanes).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplanes.")
		return
	}

	out := make([]AirplaneListItem, 0, len(airplanes))
	for _, a := range airplanes {
		out = append(out, newAirplaneListItem(a))
	}
	c.JSON(http.StatusOK, out)
}

func GetAirplane(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var airplane models.Airplane
	if err := gormDB.Preload("AirplaneType").First(&airplane, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Airplane not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplane.")
		return
	}

	c.JSON(http.StatusOK, newAirplaneDetail(airplane))
}

func CreateAirplane(c *gin.Context) {
	var req AirplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, invalidInput)
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var airplaneType models.AirplaneType
	if !findReferenced(c, gormDB, &airplaneType, req.AirplaneType, "airplane_type") {
		return
	}

	airplane := models.Airplane{
		Name:           strings.TrimSpace(req.Name),
		Rows:           req.Rows,
		SeatsInRow:     req.SeatsInRow,
		AirplaneTypeID: airplaneType.ID,
		AirplaneType:   airplaneType,
	}
	if err := gormDB.Omit("AirplaneType").Create(&airplane).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create airplane.")
		return
	}

	c.JSON(http.StatusCreated, newAirplaneDetail(airplane))
}
