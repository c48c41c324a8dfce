package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidBoardingPass = errors.New("invalid boarding pass")

// BoardingPass identifies one seat of one order. It is what the ticket QR
// code carries.
type BoardingPass struct {
	OrderID  uint
	TicketID uint
	FlightID uint
	Row      int
	Seat     int
}

func (p BoardingPass) data() string {
	return fmt.Sprintf("order:%d;ticket:%d;flight:%d;seat:%d-%d",
		p.OrderID, p.TicketID, p.FlightID, p.Row, p.Seat)
}

// Encode renders the pass with an HMAC-SHA256 signature appended.
func (p BoardingPass) Encode(secretKey string) string {
	data := p.data()
	return data + ";signature:" + generateSignature(data, secretKey)
}

// DecodeBoardingPass parses an encoded pass and verifies its signature.
func DecodeBoardingPass(encoded, secretKey string) (BoardingPass, error) {
	var p BoardingPass
	data, signature, found := strings.Cut(encoded, ";signature:")
	if !found {
		return p, ErrInvalidBoardingPass
	}

	n, err := fmt.Sscanf(data, "order:%d;ticket:%d;flight:%d;seat:%d-%d",
		&p.OrderID, &p.TicketID, &p.FlightID, &p.Row, &p.Seat)
	if err != nil || n != 5 || p.data() != data {
		return BoardingPass{}, ErrInvalidBoardingPass
	}

	expected := generateSignature(data, secretKey)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return BoardingPass{}, ErrInvalidBoardingPass
	}
	return p, nil
}

func generateSignature(data, secretKey string) string {
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
