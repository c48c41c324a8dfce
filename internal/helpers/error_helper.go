package helpers

import (
	"errors"
	"net/http"

	"github.com/farellandr/airport/internal/booking"
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// FieldErrors maps a field name to its validation messages. Errors not tied to
// one field go under NonFieldErrors.
type FieldErrors map[string][]string

const NonFieldErrors = "non_field_errors"

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   HTTPStatusText(statusCode),
		Message: customMessage,
	})
}

func RespondWithFieldErrors(c *gin.Context, statusCode int, errs FieldErrors) {
	c.JSON(statusCode, errs)
}

// OrderErrorStatus returns the HTTP status and field errors for a rejected
// order. ok is false when err is not an order rejection.
func OrderErrorStatus(err error) (status int, errs FieldErrors, ok bool) {
	var orderErr *booking.OrderError
	if !errors.As(err, &orderErr) {
		return 0, nil, false
	}

	reason := orderErr.Reason()
	switch orderErr.Kind {
	case booking.KindOutOfRange:
		field := string(booking.DimensionRow)
		var seatErr *booking.SeatError
		if errors.As(err, &seatErr) {
			field = string(seatErr.Dimension)
		}
		return http.StatusBadRequest, FieldErrors{field: {reason}}, true
	case booking.KindUnknownFlight:
		return http.StatusBadRequest, FieldErrors{"flight": {reason}}, true
	case booking.KindEmptyOrder, booking.KindDuplicateInBatch:
		return http.StatusBadRequest, FieldErrors{"tickets": {reason}}, true
	case booking.KindSeatTaken:
		return http.StatusConflict, FieldErrors{NonFieldErrors: {reason}}, true
	default:
		return http.StatusBadRequest, FieldErrors{NonFieldErrors: {reason}}, true
	}
}

// RespondWithOrderError writes the response for an error returned by the
// order engine.
func RespondWithOrderError(c *gin.Context, err error) {
	if status, errs, ok := OrderErrorStatus(err); ok {
		RespondWithFieldErrors(c, status, errs)
		return
	}
	if errors.Is(err, booking.ErrNotFound) {
		RespondWithError(c, http.StatusNotFound, "Order not found.")
		return
	}
	RespondWithError(c, http.StatusInternalServerError, "Failed to process order.")
}
