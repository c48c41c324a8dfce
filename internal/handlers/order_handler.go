package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/farellandr/airport/internal/booking"
	"github.com/farellandr/airport/internal/helpers"
	"github.com/farellandr/airport/internal/middleware"
	"github.com/farellandr/airport/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderTicketRequest struct {
	Row    int  `json:"row"`
	Seat   int  `json:"seat"`
	Flight uint `json:"flight"`
}

type OrderRequest struct {
	Tickets []OrderTicketRequest `json:"tickets"`
}

// orderContext pulls the caller and the order engine out of the request
// context, answering with an error when either is missing.
func orderContext(c *gin.Context) (uuid.UUID, *booking.Engine, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return uuid.Nil, nil, false
	}
	engine := middleware.GetBookingEngine(c)
	if engine == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Booking engine not configured.")
		return uuid.Nil, nil, false
	}
	return userID, engine, true
}

func CreateOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, invalidInput)
		return
	}

	userID, engine, ok := orderContext(c)
	if !ok {
		return
	}

	requests := make([]booking.TicketRequest, 0, len(req.Tickets))
	for _, t := range req.Tickets {
		requests = append(requests, booking.TicketRequest{FlightID: t.Flight, Row: t.Row, Seat: t.Seat})
	}

	order, err := engine.CreateOrder(c.Request.Context(), userID, requests)
	if err != nil {
		if _, _, rejected := helpers.OrderErrorStatus(err); !rejected {
			middleware.GetLogger(c).WithError(err).Error("failed to create order")
		}
		helpers.RespondWithOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newOrder(*order))
}

func ListOrders(c *gin.Context) {
	userID, engine, ok := orderContext(c)
	if !ok {
		return
	}

	pagination := helpers.GetPagination(c)
	orders, total, err := engine.Orders(c.Request.Context(), userID, pagination.Skip, pagination.Limit)
	if err != nil {
		middleware.GetLogger(c).WithError(err).Error("failed to list orders")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving orders.")
		return
	}

	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrder(o))
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":      out,
		"total":       total,
		"page":        pagination.Page,
		"limit":       pagination.Limit,
		"total_pages": helpers.TotalPages(total, pagination.Limit),
	})
}

func GetOrder(c *gin.Context) {
	order, ok := loadOrder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newOrder(*order))
}

func loadOrder(c *gin.Context) (*models.Order, bool) {
	userID, engine, ok := orderContext(c)
	if !ok {
		return nil, false
	}
	id, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}

	order, err := engine.Order(c.Request.Context(), userID, id)
	if err != nil {
		helpers.RespondWithOrderError(c, err)
		return nil, false
	}
	return order, true
}

func signingKey(c *gin.Context) (string, bool) {
	cfg := middleware.GetConfig(c)
	if cfg == nil || cfg.JWTSecret == "" {
		helpers.RespondWithError(c, http.StatusInternalServerError, "JWT_SECRET not configured.")
		return "", false
	}
	return cfg.JWTSecret, true
}

func GenerateTicketQR(c *gin.Context) {
	order, ok := loadOrder(c)
	if !ok {
		return
	}
	ticketID, ok := pathID(c, "ticketId")
	if !ok {
		return
	}
	secret, ok := signingKey(c)
	if !ok {
		return
	}

	for _, ticket := range order.Tickets {
		if ticket.ID != ticketID {
			continue
		}
		qrImage, err := helpers.GenerateQRCode(helpers.BoardingPassFor(order, ticket), secret)
		if err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
			return
		}
		c.Data(http.StatusOK, "image/png", qrImage)
		return
	}

	helpers.RespondWithError(c, http.StatusNotFound, "Ticket not found.")
}

func GetETicketPDF(c *gin.Context) {
	order, ok := loadOrder(c)
	if !ok {
		return
	}
	secret, ok := signingKey(c)
	if !ok {
		return
	}

	pdfBytes, filename, err := helpers.BuildETicketPDF(order, secret)
	if err != nil {
		middleware.GetLogger(c).WithError(err).Error("failed to render e-ticket")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate e-ticket.")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

type BoardingPassRequest struct {
	QRData string `json:"qr_data" binding:"required"`
}

// ValidateBoardingPass checks a scanned QR payload against the stored ticket.
func ValidateBoardingPass(c *gin.Context) {
	var req BoardingPassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}
	secret, ok := signingKey(c)
	if !ok {
		return
	}

	pass, err := helpers.DecodeBoardingPass(req.QRData, secret)
	if err != nil {
		helpers.RespondWithError(c, http.StatusForbidden, "Invalid QR code signature.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var ticket models.Ticket
	err = gormDB.Preload("Flight.Route.Source").
		Preload("Flight.Route.Destination").
		Preload("Flight.Airplane").
		Where(&models.Ticket{ID: pass.TicketID, OrderID: pass.OrderID, FlightID: pass.FlightID}).
		First(&ticket).Error
	if err != nil || ticket.Row != pass.Row || ticket.Seat != pass.Seat {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving ticket.")
			return
		}
		helpers.RespondWithError(c, http.StatusNotFound, "Ticket not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Boarding pass is valid.",
		"ticket":  newTicket(ticket),
	})
}
