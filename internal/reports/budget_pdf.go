package reports

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/bekatam/dream-a-trip/internal/budget"
	"github.com/bekatam/dream-a-trip/internal/images"
	"github.com/bekatam/dream-a-trip/internal/money"
)

// BuildBudgetPDF renders a saved trip budget as a one-page breakdown.
// Core PDF fonts are latin-only, so Cyrillic names are transliterated and
// amounts carry a "KZT" suffix instead of the tenge sign.
func BuildBudgetPDF(rep *BudgetReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Dream-a-Trip Budget", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Dream-a-Trip")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	place := images.Transliterate(rep.City)
	if rep.Country != "" {
		place += ", " + images.Transliterate(rep.Country)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Trip: %s", place))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Traveler: %s", images.Transliterate(rep.UserName)))
	pdf.Ln(6)
	if rep.Record.TripDate != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Trip date: %s", rep.Record.TripDate.Format("2006-01-02")))
		pdf.Ln(6)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", rep.GeneratedAt.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Daily costs")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(90, 7, "Food per day")
	pdf.Cell(50, 7, money.FormatTenge(rep.Record.FoodPrice)+" KZT")
	pdf.Ln(7)
	pdf.Cell(90, 7, "Hotel per night")
	pdf.Cell(50, 7, money.FormatTenge(rep.Record.HotelPrice)+" KZT")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Destinations")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(90, 7, "Name")
	pdf.Cell(50, 7, "Price")
	pdf.Cell(30, 7, "Status")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 11)
	for _, d := range rep.Record.Destinations {
		status := "included"
		if d.IsBlurred {
			status = "excluded"
		}
		pdf.Cell(90, 7, images.Transliterate(d.Name))
		pdf.Cell(50, 7, money.FormatTenge(d.Price)+" KZT")
		pdf.Cell(30, 7, status)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	computed := budget.ComputeTotal(rep.Record.FoodPrice, rep.Record.HotelPrice, rep.Record.Destinations)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %s KZT", money.FormatTenge(computed)))
	pdf.Ln(8)

	if computed != rep.Record.TotalPrice {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 7, fmt.Sprintf("Saved total differs: %s KZT", money.FormatTenge(rep.Record.TotalPrice)))
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
