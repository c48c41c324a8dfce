package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/farellandr/airport/config"
	"github.com/farellandr/airport/internal/booking"
	"github.com/farellandr/airport/internal/booking/mocks"
	"github.com/farellandr/airport/internal/helpers"
	"github.com/farellandr/airport/internal/middleware"
	"github.com/farellandr/airport/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type orderFixture struct {
	router *gin.Engine
	store  *mocks.MemoryStore
	userID uuid.UUID
}

func testFlight() models.Flight {
	departure := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	return models.Flight{
		ID:         1,
		AirplaneID: 1,
		Airplane:   models.Airplane{ID: 1, Name: "Boeing 737", Rows: 20, SeatsInRow: 4},
		Route: models.Route{
			Source:      models.Airport{Name: "Boryspil"},
			Destination: models.Airport{Name: "Heathrow"},
		},
		DepartureTime: departure,
		ArrivalTime:   departure.Add(3 * time.Hour),
	}
}

// withUser stands in for JWTAuthMiddleware. The X-User header switches the
// caller so scoping can be tested.
func withUser(defaultUser uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := defaultUser
		if h := c.GetHeader("X-User"); h != "" {
			userID = uuid.MustParse(h)
		}
		c.Set("user_id", userID)
		c.Set("role", models.RoleCustomer)
		c.Next()
	}
}

func setupOrderRouter(t *testing.T) *orderFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := mocks.NewMemoryStore(testFlight())
	engine := booking.NewEngine(store, logger)
	userID := uuid.New()

	r := gin.New()
	r.Use(
		middleware.BookingMiddleware(engine),
		middleware.ConfigMiddleware(&config.Config{JWTSecret: testSecret}),
		withUser(userID),
	)
	r.POST("/orders", CreateOrder)
	r.GET("/orders", ListOrders)
	r.GET("/orders/:id", GetOrder)
	r.GET("/orders/:id/tickets/:ticketId/qr", GenerateTicketQR)
	r.GET("/orders/:id/eticket.pdf", GetETicketPDF)

	return &orderFixture{router: r, store: store, userID: userID}
}

func (f *orderFixture) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestCreateOrder_Success(t *testing.T) {
	f := setupOrderRouter(t)

	w := f.do(t, http.MethodPost, "/orders", `{"tickets":[{"row":2,"seat":1,"flight":1},{"row":1,"seat":4,"flight":1}]}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := decode[OrderResponse](t, w)
	assert.NotZero(t, order.ID)
	require.Len(t, order.Tickets, 2)
	for _, ticket := range order.Tickets {
		assert.Equal(t, uint(1), ticket.Flight.ID)
		assert.Equal(t, "Boryspil - Heathrow", ticket.Flight.Route)
		assert.Equal(t, "Boeing 737", ticket.Flight.AirplaneName)
		assert.True(t, testFlight().DepartureTime.Equal(ticket.Flight.DepartureTime))
		assert.True(t, testFlight().ArrivalTime.Equal(ticket.Flight.ArrivalTime))
	}
	assert.Len(t, f.store.Tickets(), 2)
}

func TestCreateOrder_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		field  string
	}{
		{"row outside the airplane", `{"tickets":[{"row":21,"seat":1,"flight":1}]}`, http.StatusBadRequest, "row"},
		{"seat outside the row", `{"tickets":[{"row":1,"seat":5,"flight":1}]}`, http.StatusBadRequest, "seat"},
		{"unknown flight", `{"tickets":[{"row":1,"seat":1,"flight":9}]}`, http.StatusBadRequest, "flight"},
		{"duplicate in batch", `{"tickets":[{"row":1,"seat":1,"flight":1},{"row":1,"seat":1,"flight":1}]}`, http.StatusBadRequest, "tickets"},
		{"no tickets", `{"tickets":[]}`, http.StatusBadRequest, "tickets"},
		{"seat already sold", `{"tickets":[{"row":3,"seat":4,"flight":1}]}`, http.StatusConflict, "non_field_errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupOrderRouter(t)
			f.store.AddTicket(uuid.New(), 1, 3, 4)

			w := f.do(t, http.MethodPost, "/orders", tt.body)

			assert.Equal(t, tt.status, w.Code)
			body := decode[map[string][]string](t, w)
			assert.Len(t, body[tt.field], 1, w.Body.String())
			assert.Len(t, f.store.Tickets(), 1)
		})
	}
}

func TestCreateOrder_OutOfRangeMessage(t *testing.T) {
	f := setupOrderRouter(t)

	w := f.do(t, http.MethodPost, "/orders", `{"tickets":[{"row":21,"seat":1,"flight":1}]}`)

	body := decode[map[string][]string](t, w)
	assert.Equal(t, []string{"row number must be in available range: (1, rows): (1, 20)"}, body["row"])
}

func TestCreateOrder_MalformedBody(t *testing.T) {
	f := setupOrderRouter(t)

	w := f.do(t, http.MethodPost, "/orders", `{"tickets":"nope"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, f.store.Tickets())
}

func TestListOrders_Pagination(t *testing.T) {
	f := setupOrderRouter(t)
	for seat := 1; seat <= 3; seat++ {
		body := `{"tickets":[{"row":1,"seat":` + string(rune('0'+seat)) + `,"flight":1}]}`
		require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/orders", body).Code)
	}
	f.store.AddTicket(uuid.New(), 1, 10, 1)

	w := f.do(t, http.MethodGet, "/orders?page=1&limit=2", "")

	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Orders     []OrderResponse `json:"orders"`
		Total      int64           `json:"total"`
		Page       int             `json:"page"`
		Limit      int             `json:"limit"`
		TotalPages int             `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.EqualValues(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Orders, 2)
	assert.Greater(t, page.Orders[0].ID, page.Orders[1].ID)
	assert.Equal(t, 3, page.Orders[0].Tickets[0].Seat)

	w = f.do(t, http.MethodGet, "/orders?page=2&limit=2", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Orders, 1)
}

func TestGetOrder_ScopedToCaller(t *testing.T) {
	f := setupOrderRouter(t)
	w := f.do(t, http.MethodPost, "/orders", `{"tickets":[{"row":1,"seat":1,"flight":1}]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	order := decode[OrderResponse](t, w)
	path := "/orders/" + helpers.UintToString(order.ID)

	w = f.do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, path, "", "X-User", uuid.NewString())
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodGet, "/orders/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketArtifacts(t *testing.T) {
	f := setupOrderRouter(t)
	w := f.do(t, http.MethodPost, "/orders", `{"tickets":[{"row":1,"seat":1,"flight":1}]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	order := decode[OrderResponse](t, w)
	orderPath := "/orders/" + helpers.UintToString(order.ID)

	w = f.do(t, http.MethodGet, orderPath+"/tickets/"+helpers.UintToString(order.Tickets[0].ID)+"/qr", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))

	w = f.do(t, http.MethodGet, orderPath+"/tickets/999/qr", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodGet, orderPath+"/eticket.pdf", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestOrders_RequireUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/orders", ListOrders)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
