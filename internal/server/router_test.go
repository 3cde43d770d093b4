package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"delights/internal/handlers"
)

func TestNewRouterRegistersHealthRoute(t *testing.T) {
	router := newRouter()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected /healthz to return 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json content type, got %q", ct)
	}
}

func TestNewRouterProtectsApplicationRoutes(t *testing.T) {
	handlers.Configure(nil, nil)
	router := newRouter()

	for _, path := range []string{
		"/app",
		"/app/reports",
		"/app/reports/sales.pdf",
		"/app/shopping-list",
		"/app/api/ingredients",
		"/app/api/menu-items/1",
		"/app/api/recipes",
		"/app/api/purchases",
		"/app/api/basket",
		"/app/api/orders",
		"/app/api/categories",
		"/app/api/reports/summary",
	} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusSeeOther {
			t.Fatalf("expected %s to redirect anonymous users, got %d", path, rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "/login" {
			t.Fatalf("expected %s to redirect to /login, got %q", path, loc)
		}
	}
}

func TestNewRouterRootRedirectsToLogin(t *testing.T) {
	handlers.Configure(nil, nil)
	router := newRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", rr.Code, rr.Header().Get("Location"))
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown path, got %d", rr.Code)
	}
}
