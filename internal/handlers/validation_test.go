package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(handler gin.HandlerFunc, method, path, pattern, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Handle(method, pattern, handler)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateRoute_SameAirport(t *testing.T) {
	w := serve(CreateRoute, http.MethodPost, "/routes", "/routes", `{"source":3,"destination":3,"distance":100}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "non_field_errors")
}

func TestCreateFlight_ArrivalBeforeDeparture(t *testing.T) {
	body := `{"route":1,"airplane":1,"departure_time":"2026-05-01T10:00:00Z","arrival_time":"2026-05-01T10:00:00Z"}`
	w := serve(CreateFlight, http.MethodPost, "/flights", "/flights", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "arrival_time")
}

func TestCreateAirplane_InvalidGrid(t *testing.T) {
	w := serve(CreateAirplane, http.MethodPost, "/airplanes", "/airplanes", `{"name":"A320","rows":0,"seats_in_row":6,"airplane_type":1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListFlights_BadIDList(t *testing.T) {
	w := serve(ListFlights, http.MethodGet, "/flights?routes=1,x", "/flights", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "routes")
}

func TestGetFlight_BadID(t *testing.T) {
	w := serve(GetFlight, http.MethodGet, "/flights/zero", "/flights/:id", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlers_MissingDatabase(t *testing.T) {
	w := serve(ListCountries, http.MethodGet, "/countries", "/countries", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Database connection not found.")
}
