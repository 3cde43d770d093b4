package pages

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"delights/internal/inventory"
	"delights/internal/views/components"
	"delights/internal/views/layout"
)

// ReportData carries the sales summary for the report page.
type ReportData struct {
	UserName    string
	Currency    string
	GeneratedAt time.Time
	Summary     inventory.Summary
	BestSeller  *inventory.BestSeller
}

// Report renders the full sales report page.
func Report(data ReportData) templ.Component {
	return layout.Layout("Reports | Delights", sidebar("reports", data.UserName), ReportPartial(data), true)
}

// ReportPartial renders the report body.
func ReportPartial(data ReportData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		rows := make([][]string, 0, len(data.Summary.Lines))
		for _, line := range data.Summary.Lines {
			rows = append(rows, []string{
				line.Title,
				strconv.FormatInt(line.Portions, 10),
				components.Money(line.Price, data.Currency),
				components.Money(line.DishCost, data.Currency),
				components.Money(line.Revenue, data.Currency),
				components.Money(line.Cost, data.Currency),
				components.Money(line.Profit, data.Currency),
			})
		}

		m := components.NewMarkup(ctx, w)
		m.Raw(`<section data-page="reports"><h1>Sales report</h1><p class="generated">`).
			Text(FormatReportDate(data.GeneratedAt)).
			Raw(` <a href="/app/reports/sales.pdf">Download PDF</a></p><div class="stats">`).
			Component(components.StatCard("Revenue", components.Money(data.Summary.Revenue, data.Currency), "", "")).
			Component(components.StatCard("Cost", components.Money(data.Summary.Cost, data.Currency), "", "")).
			Component(components.StatCard("Profit", components.Money(data.Summary.Profit, data.Currency), "", "")).
			Component(components.StatCard("Portions sold", strconv.FormatInt(data.Summary.Portions, 10), "", strconv.Itoa(data.Summary.Purchases)+" purchases")).
			Raw(`</div>`)
		if data.BestSeller != nil {
			m.Raw(`<p class="best-seller">Best seller: `).Text(data.BestSeller.Title).
				Raw(` (`).Text(strconv.FormatInt(data.BestSeller.Quantity, 10)).Raw(` sold)</p>`)
		}
		if data.Summary.Orphaned > 0 {
			m.Component(components.Message("warning", strconv.Itoa(data.Summary.Orphaned)+" purchases refer to deleted menu items and are excluded from the totals."))
		}
		m.Component(components.Table("sales", []string{"Dish", "Portions", "Price", "Dish cost", "Revenue", "Cost", "Profit"}, rows)).
			Raw(`</section>`)
		return m.Err()
	})
}
