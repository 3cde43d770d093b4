package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"delights/internal/inventory"
	applog "delights/internal/log"
	"delights/internal/reports"
	"delights/internal/views/pages"
)

const reportsAPIPrefix = "/app/api/reports"

var nowFunc = time.Now

// ReportResource serves the JSON reports: summary, best-seller,
// shopping-list, orphans, current-stock and stocked-items.
func ReportResource(w http.ResponseWriter, r *http.Request) {
	if !requireDatabase(w, r, "reports") {
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	segments := resourceSegments(r, reportsAPIPrefix)
	if len(segments) != 1 {
		http.NotFound(w, r)
		return
	}

	ctx := r.Context()
	switch segments[0] {
	case "summary":
		summary, err := inventory.BuildSummary(ctx, database)
		if err != nil {
			writeInventoryError(w, r, err, "build summary")
			return
		}
		writeJSON(w, http.StatusOK, summary)
	case "best-seller":
		best, err := inventory.FindBestSeller(ctx, database)
		if err != nil {
			writeInventoryError(w, r, err, "find best seller")
			return
		}
		writeJSON(w, http.StatusOK, best)
	case "shopping-list":
		list, err := inventory.ShoppingList(ctx, database)
		if err != nil {
			writeInventoryError(w, r, err, "build shopping list")
			return
		}
		writeJSON(w, http.StatusOK, projectIngredients(list))
	case "orphans":
		orphans, err := inventory.FindOrphans(ctx, database)
		if err != nil {
			writeInventoryError(w, r, err, "find orphaned ingredients")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"no_recipe": projectIngredients(orphans.NoRecipe),
			"non_stock": projectIngredients(orphans.NonStock),
		})
	case "current-stock":
		stock, err := inventory.CurrentStock(ctx, database)
		if err != nil {
			writeInventoryError(w, r, err, "load current stock")
			return
		}
		writeJSON(w, http.StatusOK, projectIngredients(stock))
	case "stocked-items":
		items, err := inventory.StockedMenuItems(ctx, database)
		if err != nil {
			writeInventoryError(w, r, err, "load stocked menu items")
			return
		}
		availability := make([]inventory.Availability, 0, len(items))
		for _, item := range items {
			availability = append(availability, inventory.Explain(item))
		}
		writeJSON(w, http.StatusOK, availability)
	default:
		http.NotFound(w, r)
	}
}

// loadReportData gathers the summary and best seller. No sales is not an
// error for the report pages.
func loadReportData(r *http.Request) (pages.ReportData, error) {
	data := pages.ReportData{
		UserName:    currentUserName(r),
		Currency:    reportCurrency,
		GeneratedAt: nowFunc().UTC(),
	}
	summary, err := inventory.BuildSummary(r.Context(), database)
	if err != nil {
		return data, err
	}
	data.Summary = summary

	best, err := inventory.FindBestSeller(r.Context(), database)
	switch {
	case err == nil:
		data.BestSeller = &best
	case !errors.Is(err, inventory.ErrNoSales):
		return data, err
	}
	return data, nil
}

// ReportsPage renders the HTML sales report.
func ReportsPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if database == nil {
		http.Error(w, "Reporting is unavailable because no database connection is configured.", http.StatusServiceUnavailable)
		return
	}

	data, err := loadReportData(r)
	if err != nil {
		applog.Error(r.Context(), "failed to build sales report", "error", err)
		http.Error(w, "We were unable to build the sales report. Please try again.", http.StatusInternalServerError)
		return
	}

	renderPage(w, r, "sales report", pages.Report(data), pages.ReportPartial(data))
}

// SalesReportPDF streams the sales report as a PDF download.
func SalesReportPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if database == nil {
		http.Error(w, "Reporting is unavailable because no database connection is configured.", http.StatusServiceUnavailable)
		return
	}

	data, err := loadReportData(r)
	if err != nil {
		applog.Error(r.Context(), "failed to build sales report", "error", err)
		http.Error(w, "We were unable to build the sales report. Please try again.", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := reports.WriteSalesPDF(&buf, data.Summary, data.BestSeller, data.Currency, data.GeneratedAt); err != nil {
		applog.Error(r.Context(), "failed to render sales pdf", "error", err)
		http.Error(w, "We were unable to generate the PDF. Please try again.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="sales-`+data.GeneratedAt.Format("20060102")+`.pdf"`)
	if _, err := w.Write(buf.Bytes()); err != nil {
		applog.Error(r.Context(), "failed to write sales pdf", "error", err)
	}
}
