package components

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"
)

// SidebarLink is a single navigation entry.
type SidebarLink struct {
	Label   string
	Path    string
	Section string
}

// SidebarData drives the navigation rail.
type SidebarData struct {
	Active   string
	UserName string
	Links    []SidebarLink
}

// DefaultLinks are the navigation entries of the signed-in workspace.
func DefaultLinks() []SidebarLink {
	return []SidebarLink{
		{Label: "Dashboard", Path: "/app", Section: "dashboard"},
		{Label: "Shopping list", Path: "/app/shopping-list", Section: "shopping-list"},
		{Label: "Reports", Path: "/app/reports", Section: "reports"},
	}
}

func linkState(section, active string) string {
	if strings.EqualFold(strings.TrimSpace(section), strings.TrimSpace(active)) {
		return "active"
	}
	return "inactive"
}

// Sidebar renders the navigation rail with the active section highlighted.
func Sidebar(data SidebarData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := NewMarkup(ctx, w)
		m.Raw(`<aside class="sidebar"><div class="brand">Delights</div><nav>`)
		for _, link := range data.Links {
			m.Raw(`<a href="`).Text(link.Path).
				Raw(`" hx-boost="true" data-nav-section="`).Text(link.Section).
				Raw(`" data-state="`, linkState(link.Section, data.Active), `">`).
				Text(link.Label).Raw(`</a>`)
		}
		m.Raw(`</nav>`)
		if data.UserName != "" {
			m.Raw(`<div class="user">`).Text(data.UserName).Raw(`</div>`)
		}
		m.Raw(`<form method="post" action="/logout"><button type="submit">Sign out</button></form></aside>`)
		return m.Err()
	})
}

// StatCard renders a headline metric.
func StatCard(label, value, delta, caption string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := NewMarkup(ctx, w)
		m.Raw(`<div class="stat-card"><p class="label">`).Text(label).
			Raw(`</p><p class="value">`).Text(value).Raw(`</p>`)
		if delta != "" {
			m.Raw(`<p class="delta">`).Text(delta).Raw(`</p>`)
		}
		if caption != "" {
			m.Raw(`<p class="caption">`).Text(caption).Raw(`</p>`)
		}
		m.Raw(`</div>`)
		return m.Err()
	})
}

// Table renders a plain data table. Rows shorter than the header are padded.
func Table(key string, headers []string, rows [][]string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := NewMarkup(ctx, w)
		m.Raw(`<table data-table="`).Text(key).Raw(`"><thead><tr>`)
		for _, header := range headers {
			m.Raw(`<th>`).Text(header).Raw(`</th>`)
		}
		m.Raw(`</tr></thead><tbody>`)
		if len(rows) == 0 {
			m.Raw(`<tr class="empty"><td colspan="`).Text(strconv.Itoa(len(headers))).Raw(`">Nothing to show yet.</td></tr>`)
		}
		for _, row := range rows {
			m.Raw(`<tr>`)
			for idx := range headers {
				cell := ""
				if idx < len(row) {
					cell = row[idx]
				}
				m.Raw(`<td>`).Text(cell).Raw(`</td>`)
			}
			m.Raw(`</tr>`)
		}
		m.Raw(`</tbody></table>`)
		return m.Err()
	})
}

// Message renders a flash banner; empty messages render nothing.
func Message(kind, text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return NewMarkup(ctx, w).
			Raw(`<div class="message message-`).Text(kind).Raw(`" role="alert">`).
			Text(text).Raw(`</div>`).Err()
	})
}

// Money formats an amount with two decimals and the currency code.
func Money(amount decimal.Decimal, currency string) string {
	value := amount.StringFixed(2)
	if currency = strings.TrimSpace(currency); currency == "" {
		return value
	}
	return currency + " " + value
}

// Quantity formats a stock quantity with its unit.
func Quantity(amount decimal.Decimal, unit string) string {
	value := amount.Round(3).String()
	if unit = strings.TrimSpace(unit); unit == "" {
		return value
	}
	return value + " " + unit
}
