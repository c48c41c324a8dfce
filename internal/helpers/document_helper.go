package helpers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/farellandr/airport/internal/models"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

const (
	QRCodeSize     = 256
	timeLayout     = "2006-01-02 15:04 MST"
	qrSizeOnTicket = 40.0
)

func BoardingPassFor(order *models.Order, ticket models.Ticket) BoardingPass {
	return BoardingPass{
		OrderID:  order.ID,
		TicketID: ticket.ID,
		FlightID: ticket.FlightID,
		Row:      ticket.Row,
		Seat:     ticket.Seat,
	}
}

// GenerateQRCode renders the signed boarding pass as a PNG.
func GenerateQRCode(pass BoardingPass, secretKey string) ([]byte, error) {
	return qrcode.Encode(pass.Encode(secretKey), qrcode.Medium, QRCodeSize)
}

// BuildETicketPDF renders one section per ticket of the order, each with its
// boarding QR code. The order must have its tickets and their flights loaded.
func BuildETicketPDF(order *models.Order, secretKey string) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("E-Ticket #%d", order.ID), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, fmt.Sprintf("E-TICKET - ORDER #%d", order.ID))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Ordered: "+order.CreatedAt.UTC().Format(timeLayout))
	pdf.Ln(10)

	for i, ticket := range order.Tickets {
		if pdf.GetY() > 240 {
			pdf.AddPage()
		}
		top := pdf.GetY()

		flight := ticket.Flight
		lines := []string{
			fmt.Sprintf("Ticket    : #%d", ticket.ID),
			fmt.Sprintf("Flight    : #%d", ticket.FlightID),
			fmt.Sprintf("Route     : %s", safe(flight.Route.Label(), "-")),
			fmt.Sprintf("Airplane  : %s", safe(flight.Airplane.Name, "-")),
			fmt.Sprintf("Departure : %s", formatTime(flight.DepartureTime)),
			fmt.Sprintf("Arrival   : %s", formatTime(flight.ArrivalTime)),
			fmt.Sprintf("Seat      : row %d, seat %d", ticket.Row, ticket.Seat),
		}

		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, fmt.Sprintf("Passenger ticket %d of %d", i+1, len(order.Tickets)))
		pdf.Ln(8)
		pdf.SetFont("Courier", "", 10)
		for _, s := range lines {
			pdf.Cell(0, 6, s)
			pdf.Ln(6)
		}

		png, err := GenerateQRCode(BoardingPassFor(order, ticket), secretKey)
		if err != nil {
			return nil, "", fmt.Errorf("failed to render QR for ticket %d: %w", ticket.ID, err)
		}
		name := fmt.Sprintf("qr-%d", ticket.ID)
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
		pdf.ImageOptions(name, 150, top, qrSizeOnTicket, qrSizeOnTicket, false, opts, 0, "")

		if y := top + qrSizeOnTicket + 4; pdf.GetY() < y {
			pdf.SetY(y)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("ETICKET_%d.pdf", order.ID), nil
}

func safe(s, fallback string) string {
	if s == "" || s == " - " {
		return fallback
	}
	return s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(timeLayout)
}
