// Package reports renders the sales summary as a printable document.
package reports

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"delights/internal/inventory"
)

var salesColumns = []struct {
	title string
	width float64
	align string
}{
	{"Dish", 50, "L"},
	{"Portions", 20, "C"},
	{"Price", 24, "R"},
	{"Dish cost", 24, "R"},
	{"Revenue", 24, "R"},
	{"Cost", 24, "R"},
	{"Profit", 24, "R"},
}

// WriteSalesPDF renders the summary as an A4 table with totals.
func WriteSalesPDF(w io.Writer, summary inventory.Summary, best *inventory.BestSeller, currency string, generated time.Time) error {
	money := func(value decimal.Decimal) string {
		if currency == "" {
			return value.StringFixed(2)
		}
		return currency + " " + value.StringFixed(2)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Sales report", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Sales report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Generated "+generated.UTC().Format("02 Jan 2006 15:04 MST"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Purchases: %d   Portions sold: %d", summary.Purchases, summary.Portions), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Revenue: "+money(summary.Revenue), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Cost: "+money(summary.Cost), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Profit: "+money(summary.Profit), "", 1, "L", false, 0, "")
	if best != nil {
		pdf.CellFormat(0, 8, fmt.Sprintf("Best seller: %s (%d)", best.Title, best.Quantity), "", 1, "L", false, 0, "")
	}
	if summary.Orphaned > 0 {
		pdf.CellFormat(0, 8, fmt.Sprintf("%d purchases of deleted menu items excluded", summary.Orphaned), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 10)
	for idx, column := range salesColumns {
		lineBreak := 0
		if idx == len(salesColumns)-1 {
			lineBreak = 1
		}
		pdf.CellFormat(column.width, 8, column.title, "1", lineBreak, "C", false, 0, "")
	}

	pdf.SetFont("Arial", "", 10)
	for _, line := range summary.Lines {
		cells := []string{
			line.Title,
			strconv.FormatInt(line.Portions, 10),
			line.Price.StringFixed(2),
			line.DishCost.StringFixed(2),
			line.Revenue.StringFixed(2),
			line.Cost.StringFixed(2),
			line.Profit.StringFixed(2),
		}
		for idx, column := range salesColumns {
			lineBreak := 0
			if idx == len(salesColumns)-1 {
				lineBreak = 1
			}
			pdf.CellFormat(column.width, 8, cells[idx], "1", lineBreak, column.align, false, 0, "")
		}
	}

	return pdf.Output(w)
}
