package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"

	"delights/internal/views/components"
	"delights/internal/views/layout"
	"delights/models"
)

// ShoppingListData carries the reorder candidates and the current basket.
type ShoppingListData struct {
	UserName string
	Currency string
	Items    []models.Ingredient
	Basket   []models.Basket
}

// ShoppingList renders the full shopping list page.
func ShoppingList(data ShoppingListData) templ.Component {
	return layout.Layout("Shopping list | Delights", sidebar("shopping-list", data.UserName), ShoppingListPartial(data), true)
}

// ShoppingListPartial renders the shopping list body.
func ShoppingListPartial(data ShoppingListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(ctx, w)
		m.Raw(`<section data-page="shopping-list" hx-get="/app/shopping-list" hx-trigger="basket-changed from:body" hx-swap="outerHTML"><h1>Shopping list</h1>`)
		if len(data.Items) == 0 {
			m.Raw(`<p class="empty">Nothing needs reordering.</p>`)
		} else {
			m.Raw(`<ul class="shopping-list">`)
			for _, item := range data.Items {
				id := strconv.FormatUint(uint64(item.ID), 10)
				m.Raw(`<li data-ingredient="`, id, `"><span>`).Text(item.Label()).Raw(`</span> <span>`).
					Text(components.Quantity(item.Quantity, item.Unit)).Raw(` on hand, reorder `).
					Text(components.Quantity(item.ReOrder, item.Unit)).
					Raw(`</span> <button hx-post="/app/api/basket" hx-swap="none" hx-vals='{"ingredient_id": `, id, `}'>Add to basket</button></li>`)
			}
			m.Raw(`</ul>`)
		}

		rows := make([][]string, 0, len(data.Basket))
		for _, row := range data.Basket {
			name, unit := "", ""
			price := decimal.Zero
			if row.Ingredient != nil {
				name, unit = row.Ingredient.Name, row.Ingredient.Unit
				price = row.Ingredient.UnitPrice.Mul(row.Quantity)
			}
			rows = append(rows, []string{name, components.Quantity(row.Quantity, unit), components.Money(price, data.Currency)})
		}
		m.Raw(`<h2>Basket</h2>`).
			Component(components.Table("basket", []string{"Ingredient", "Quantity", "Estimated cost"}, rows))
		if len(data.Basket) > 0 {
			m.Raw(`<button hx-post="/app/api/orders" hx-swap="none">Place order</button>`)
		}
		m.Raw(`</section>`)
		return m.Err()
	})
}
