package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"delights/internal/db/mock"
	"delights/internal/inventory"
)

func withMockDatabase(t *testing.T) {
	t.Helper()
	db, err := mock.New(context.Background())
	if err != nil {
		t.Fatalf("mock database: %v", err)
	}
	original, originalSessions := database, sessionManager
	Configure(nil, db)
	t.Cleanup(func() {
		Configure(originalSessions, original)
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
}

func TestReportResourceSummaryAndBestSeller(t *testing.T) {
	withMockDatabase(t)

	w := serve(ReportResource, apiRequest(t, http.MethodGet, "/app/api/reports/summary", nil))
	expectStatus(t, w, http.StatusOK)
	summary := decodeBody[inventory.Summary](t, w)
	if summary.Purchases != 4 || !summary.Profit.Equal(summary.Revenue.Sub(summary.Cost)) {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	w = serve(ReportResource, apiRequest(t, http.MethodGet, "/app/api/reports/best-seller", nil))
	expectStatus(t, w, http.StatusOK)
	if best := decodeBody[inventory.BestSeller](t, w); best.Title != "Pancakes" || best.Quantity != 7 {
		t.Fatalf("unexpected best seller: %+v", best)
	}

	w = serve(ReportResource, apiRequest(t, http.MethodGet, "/app/api/reports/orphans", nil))
	expectStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "saffron") {
		t.Fatalf("expected saffron among orphans: %s", w.Body.String())
	}

	w = serve(ReportResource, apiRequest(t, http.MethodGet, "/app/api/reports/stocked-items", nil))
	expectStatus(t, w, http.StatusOK)
	if items := decodeBody[[]inventory.Availability](t, w); len(items) != 2 {
		t.Fatalf("expected two stocked menu items, got %+v", items)
	}
}

func TestBestSellerWithoutSales(t *testing.T) {
	_, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)

	w := serve(ReportResource, apiRequest(t, http.MethodGet, "/app/api/reports/best-seller", nil))
	expectStatus(t, w, http.StatusNotFound)

	w = serve(ReportsPage, httptest.NewRequest(http.MethodGet, "/app/reports", nil))
	expectStatus(t, w, http.StatusOK)
}

func TestReportsPageRendersSummary(t *testing.T) {
	withMockDatabase(t)
	original := nowFunc
	nowFunc = func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { nowFunc = original })

	w := serve(ReportsPage, httptest.NewRequest(http.MethodGet, "/app/reports", nil))
	expectStatus(t, w, http.StatusOK)
	body := w.Body.String()
	for _, want := range []string{"<html", "Sales report", "01 Jun 2024", "Best seller: Pancakes"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in report page", want)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/app/reports", nil)
	req.Header.Set("HX-Request", "true")
	w = serve(ReportsPage, req)
	if strings.Contains(w.Body.String(), "<html") {
		t.Fatal("expected HTMX request to receive the partial")
	}
}

func TestSalesReportPDF(t *testing.T) {
	withMockDatabase(t)

	w := serve(SalesReportPDF, httptest.NewRequest(http.MethodGet, "/app/reports/sales.pdf", nil))
	expectStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")) {
		t.Fatal("expected a PDF document")
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "sales-") {
		t.Fatalf("unexpected content disposition %q", cd)
	}
}

func TestReportPagesWithoutDatabase(t *testing.T) {
	original := database
	database = nil
	t.Cleanup(func() { database = original })

	for _, handler := range []http.HandlerFunc{ReportsPage, SalesReportPDF, ShoppingListPage} {
		w := serve(handler, httptest.NewRequest(http.MethodGet, "/app/reports", nil))
		expectStatus(t, w, http.StatusServiceUnavailable)
	}
}
