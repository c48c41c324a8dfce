package handlers

import (
	"net/http"

	"github.com/farellandr/airport/internal/helpers"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const invalidInput = "Invalid input. Please check your fields."

func getDB(c *gin.Context) (*gorm.DB, bool) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return nil, false
	}
	return db.(*gorm.DB).WithContext(c.Request.Context()), true
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := helpers.StringToID(c.Param(name))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+".")
		return 0, false
	}
	return id, true
}

// queryIDs parses a comma separated id list from the query string.
func queryIDs(c *gin.Context, name string) ([]uint, bool) {
	ids, err := helpers.ParseIDList(c.Query(name))
	if err != nil {
		helpers.RespondWithFieldErrors(c, http.StatusBadRequest, helpers.FieldErrors{
			name: {"Expected a comma separated list of ids."},
		})
		return nil, false
	}
	return ids, true
}
