package pages

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"delights/internal/views/components"
	"delights/internal/views/layout"
)

// Dashboard renders the signed-in landing page.
func Dashboard(snapshot DashboardSnapshot) templ.Component {
	return layout.Layout("Dashboard | Delights", sidebar("dashboard", snapshot.UserName), DashboardPartial(snapshot), true)
}

// DashboardPartial renders the dashboard body for HTMX navigation.
func DashboardPartial(snapshot DashboardSnapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		best := "No sales yet"
		if snapshot.BestSeller != nil {
			best = snapshot.BestSeller.Title + " (" + strconv.FormatInt(snapshot.BestSeller.Quantity, 10) + ")"
		}

		menuRows := make([][]string, 0, len(snapshot.Availability))
		for _, row := range snapshot.Availability {
			menuRows = append(menuRows, []string{
				row.Title,
				strconv.FormatInt(row.Available, 10),
				DefaultDash(row.Limiting),
				DefaultDash(strings.Join(row.Problems, "; ")),
			})
		}

		stockRows := make([][]string, 0, len(snapshot.Ingredients))
		for _, ingredient := range snapshot.Ingredients {
			status := "ok"
			switch {
			case ingredient.Buy():
				status = "reorder"
			case !ingredient.InStock():
				status = "out"
			}
			stockRows = append(stockRows, []string{
				ingredient.Name,
				components.Quantity(ingredient.Quantity, ingredient.Unit),
				components.Money(ingredient.UnitPrice, snapshot.Currency),
				status,
			})
		}

		m := components.NewMarkup(ctx, w)
		m.Raw(`<section data-page="dashboard"><h1>Kitchen</h1>`).
			Component(components.Message("info", snapshot.Notice)).
			Raw(`<div class="stats">`).
			Component(components.StatCard("Revenue", components.Money(snapshot.Summary.Revenue, snapshot.Currency), "", strconv.Itoa(snapshot.Summary.Purchases)+" purchases")).
			Component(components.StatCard("Profit", components.Money(snapshot.Summary.Profit, snapshot.Currency), "", "")).
			Component(components.StatCard("Best seller", best, "", "")).
			Component(components.StatCard("To reorder", strconv.Itoa(len(snapshot.ShoppingList)), "", "ingredients on the shopping list")).
			Raw(`</div><h2>Menu availability</h2>`).
			Component(components.Table("availability", []string{"Dish", "Portions", "Limited by", "Problems"}, menuRows)).
			Raw(`<h2>Stock</h2>`).
			Component(components.Table("stock", []string{"Ingredient", "On hand", "Unit price", "Status"}, stockRows)).
			Raw(`</section>`)
		return m.Err()
	})
}

func sidebar(active, userName string) templ.Component {
	return components.Sidebar(components.SidebarData{
		Active:   active,
		UserName: userName,
		Links:    components.DefaultLinks(),
	})
}
