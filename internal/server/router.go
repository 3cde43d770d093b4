package server

import (
	"context"
	"net/http"

	"delights/internal/handlers"
	applog "delights/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")

	public := map[string]http.HandlerFunc{
		"/healthz": handlers.Health,
		"/login":   handlers.Login,
		"/signup":  handlers.Signup,
		"/logout":  handlers.Logout,
	}
	for path, handler := range public {
		mux.HandleFunc(path, handler)
		applog.Debug(context.Background(), "route registered", "path", path)
	}

	protected := []struct {
		path    string
		handler http.HandlerFunc
	}{
		{"/app", handlers.Dashboard},
		{"/app/reports", handlers.ReportsPage},
		{"/app/reports/sales.pdf", handlers.SalesReportPDF},
		{"/app/shopping-list", handlers.ShoppingListPage},
		{"/app/api/ingredients", handlers.IngredientResource},
		{"/app/api/ingredients/", handlers.IngredientResource},
		{"/app/api/menu-items", handlers.MenuItemResource},
		{"/app/api/menu-items/", handlers.MenuItemResource},
		{"/app/api/recipes", handlers.RecipeResource},
		{"/app/api/recipes/", handlers.RecipeResource},
		{"/app/api/purchases", handlers.PurchaseResource},
		{"/app/api/purchases/", handlers.PurchaseResource},
		{"/app/api/basket", handlers.BasketResource},
		{"/app/api/basket/", handlers.BasketResource},
		{"/app/api/orders", handlers.OrderResource},
		{"/app/api/categories", handlers.CategoryResource},
		{"/app/api/categories/", handlers.CategoryResource},
		{"/app/api/reports/", handlers.ReportResource},
	}
	for _, route := range protected {
		mux.Handle(route.path, handlers.RequireAuthentication(route.handler))
		applog.Debug(context.Background(), "route registered", "path", route.path, "protected", true)
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		target := "/login"
		if handlers.ActiveSession(r) {
			target = "/app"
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	})
	applog.Debug(context.Background(), "route registered", "path", "/")
	return mux
}
