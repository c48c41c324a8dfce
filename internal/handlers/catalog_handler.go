package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/farellandr/airport/internal/helpers"
	"github.com/farellandr/airport/internal/middleware"
	"github.com/farellandr/airport/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NameRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type CrewRequest struct {
	FirstName string `json:"first_name" binding:"required,max=255"`
	LastName  string `json:"last_name" binding:"required,max=255"`
}

type CityRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Country uint   `json:"country" binding:"required"`
}

func ListAirplaneTypes(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var types []models.AirplaneType
	if err := gormDB.Order("id").Find(&types).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplane types.")
		return
	}

	out := make([]AirplaneTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, newAirplaneType(t))
	}
	c.JSON(http.StatusOK, out)
}

func CreateAirplaneType(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, invalidInput)
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	airplaneType := models.AirplaneType{Name: strings.TrimSpace(req.Name)}
	if err := gormDB.Create(&airplaneType).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create airplane type.")
		return
	}

	c.JSON(http.StatusCreated, newAirplaneType(airplaneType))
}

func ListCrews(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var crews []models.Crew
	if err := gormDB.Order("id").Find(&crews).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving crews.")
		return
	}

	out := make([]CrewResponse, 0, len(crews))
	for _, crew := range crews {
		out = append(out, newCrew(crew))
	}
	c.JSON(http.StatusOK, out)
}

func CreateCrew(c *gin.Context) {
	var req CrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, invalidInput)
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	crew := models.Crew{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}
	if err := gormDB.Create(&crew).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create crew member.")
		return
	}

	c.JSON(http.StatusCreated, newCrew(crew))
}

func ListCountries(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var countries []models.Country
	if err := gormDB.Order("id").Find(&countries).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving countries.")
		return
	}

	out := make([]CountryResponse, 0, len(countries))
	for _, country := range countries {
		out = append(out, newCountry(country))
	}
	c.JSON(http.StatusOK, out)
}

func CreateCountry(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, invalidInput)
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	country := models.Country{Name: strings.TrimSpace(req.Name)}
	if err := gormDB.Create(&country).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create country.")
		return
	}

	c.JSON(http.StatusCreated, newCountry(country))
}

func ListCities(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var cities []models.City
	if err := gormDB.Preload("Country").Order("id").Find(&cities).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving cities.")
		return
	}

	out := make([]CityListItem, 0, len(cities))
	for _, city := range cities {
		out = append(out, newCityListItem(city))
	}
	c.JSON(http.StatusOK, out)
}

func CreateCity(c *gin.Context) {
	var req CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, invalidInput)
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var country models.Country
	if !findReferenced(c, gormDB, &country, req.Country, "country") {
		return
	}

	city := models.City{Name: strings.TrimSpace(req.Name), CountryID: country.ID, Country: country}
	if err := gormDB.Omit("Country").Create(&city).Error; err != nil {
		middleware.GetLogger(c).WithError(err).Error("failed to create city")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create city.")
		return
	}

	c.JSON(http.StatusCreated, newCityDetail(city))
}

// findReferenced loads the row a create request points at, answering 400 with
// a field error when it does not exist.
func findReferenced(c *gin.Context, gormDB *gorm.DB, dest interface{}, id uint, field string) bool {
	err := gormDB.First(dest, id).Error
	if err == nil {
		return true
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		helpers.RespondWithFieldErrors(c, http.StatusBadRequest, helpers.FieldErrors{
			field: {"Invalid pk \"" + helpers.UintToString(id) + "\" - object does not exist."},
		})
		return false
	}
	helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving "+field+".")
	return false
}
