package confirmation

import (
	"bytes"
	"fmt"

	"oasis/models"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

const dateFormat = "Mon, Jan 2 2006"

// Render lays out a one-page booking confirmation with the signed reference as a QR code.
func Render(b models.Booking, cabin models.Cabin, guestName, payload string) ([]byte, error) {
	qrPNG, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("generate QR code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking confirmation "+b.ID, true)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "The Wild Oasis - Booking confirmation")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	lines := []string{
		fmt.Sprintf("Guest: %s", guestName),
		fmt.Sprintf("Cabin: %s", cabin.Name),
		fmt.Sprintf("Arrival: %s", b.StartDate.UTC().Format(dateFormat)),
		fmt.Sprintf("Departure: %s", b.EndDate.UTC().Format(dateFormat)),
		fmt.Sprintf("Nights: %d", b.NumNights),
		fmt.Sprintf("Guests: %d", b.NumGuests),
		fmt.Sprintf("Total: $%.2f", b.TotalPrice),
		fmt.Sprintf("Status: %s", b.Status),
		fmt.Sprintf("Booking #%s", b.ID),
	}
	if b.IsPaid {
		lines = append(lines, "Paid")
	} else {
		lines = append(lines, "Pay on arrival")
	}
	for _, l := range lines {
		pdf.Cell(0, 10, pdf.UnicodeTranslatorFromDescriptor("")(l))
		pdf.Ln(8)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 30, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
