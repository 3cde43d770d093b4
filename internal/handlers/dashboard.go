package handlers

import (
	"errors"
	"net/http"

	"delights/internal/inventory"
	applog "delights/internal/log"
	"delights/internal/views/pages"
)

// Dashboard renders the kitchen overview once a user is authenticated.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	snapshot, err := loadDashboardSnapshot(r)
	if err != nil {
		applog.Error(r.Context(), "failed to load dashboard", "error", err)
		http.Error(w, "We were unable to load the dashboard. Please try again.", http.StatusInternalServerError)
		return
	}

	snapshot.Notice = popSessionString(r, sessionBriefingKey)
	renderPage(w, r, "dashboard", pages.Dashboard(snapshot), pages.DashboardPartial(snapshot))
}

func loadDashboardSnapshot(r *http.Request) (pages.DashboardSnapshot, error) {
	if database == nil {
		snapshot := pages.EmptyDashboardSnapshot()
		snapshot.UserName = currentUserName(r)
		snapshot.Currency = reportCurrency
		return snapshot, nil
	}

	ctx := r.Context()
	items, err := inventory.ListMenuItems(ctx, database)
	if err != nil {
		return pages.DashboardSnapshot{}, err
	}
	ingredients, err := inventory.ListIngredients(ctx, database)
	if err != nil {
		return pages.DashboardSnapshot{}, err
	}
	summary, err := inventory.BuildSummary(ctx, database)
	if err != nil {
		return pages.DashboardSnapshot{}, err
	}
	var best *inventory.BestSeller
	if found, err := inventory.FindBestSeller(ctx, database); err == nil {
		best = &found
	} else if !errors.Is(err, inventory.ErrNoSales) {
		return pages.DashboardSnapshot{}, err
	}

	return pages.NewDashboardSnapshot(currentUserName(r), reportCurrency, items, ingredients, summary, best), nil
}

// ShoppingListPage renders the reorder list next to the basket.
func ShoppingListPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if database == nil {
		http.Error(w, "The shopping list is unavailable because no database connection is configured.", http.StatusServiceUnavailable)
		return
	}

	items, err := inventory.ShoppingList(r.Context(), database)
	if err != nil {
		applog.Error(r.Context(), "failed to build shopping list", "error", err)
		http.Error(w, "We were unable to build the shopping list. Please try again.", http.StatusInternalServerError)
		return
	}
	basket, err := inventory.ListBasket(r.Context(), database)
	if err != nil {
		applog.Error(r.Context(), "failed to load basket", "error", err)
		http.Error(w, "We were unable to load the basket. Please try again.", http.StatusInternalServerError)
		return
	}

	data := pages.ShoppingListData{
		UserName: currentUserName(r),
		Currency: reportCurrency,
		Items:    items,
		Basket:   basket,
	}

	renderPage(w, r, "shopping list", pages.ShoppingList(data), pages.ShoppingListPartial(data))
}
