package handlers

import (
	"net/http"

	"delights/internal/inventory"
	applog "delights/internal/log"
	"delights/models"
)

const menuItemsPrefix = "/app/api/menu-items"

// MenuItemResource serves menu items and their availability.
func MenuItemResource(w http.ResponseWriter, r *http.Request) {
	if !requireDatabase(w, r, "menu-items") {
		return
	}

	segments := resourceSegments(r, menuItemsPrefix)
	if len(segments) == 0 {
		switch r.Method {
		case http.MethodGet:
			listMenuItems(w, r)
		case http.MethodPost:
			createMenuItem(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	menuItemID, ok := parseID(segments[0])
	if !ok || len(segments) > 2 {
		http.NotFound(w, r)
		return
	}

	if len(segments) == 2 {
		if segments[1] != "availability" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		item, err := inventory.GetMenuItem(r.Context(), database, menuItemID)
		if err != nil {
			writeInventoryError(w, r, err, "load menu item")
			return
		}
		writeJSON(w, http.StatusOK, inventory.Explain(*item))
		return
	}

	switch r.Method {
	case http.MethodGet:
		item, err := inventory.GetMenuItem(r.Context(), database, menuItemID)
		if err != nil {
			writeInventoryError(w, r, err, "load menu item")
			return
		}
		writeJSON(w, http.StatusOK, projectMenuItem(*item))
	case http.MethodPut:
		payload, ok := decodeMenuItemInput(w, r)
		if !ok {
			return
		}
		item, err := inventory.UpdateMenuItem(r.Context(), database, menuItemID, payload)
		if err != nil {
			writeInventoryError(w, r, err, "update menu item")
			return
		}
		writeJSON(w, http.StatusOK, projectMenuItem(*item))
	case http.MethodDelete:
		if err := inventory.DeleteMenuItem(r.Context(), database, menuItemID); err != nil {
			writeInventoryError(w, r, err, "delete menu item")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listMenuItems(w http.ResponseWriter, r *http.Request) {
	var (
		items []models.MenuItem
		err   error
	)
	if r.URL.Query().Get("stocked") == "true" {
		items, err = inventory.StockedMenuItems(r.Context(), database)
	} else {
		items, err = inventory.ListMenuItems(r.Context(), database)
	}
	if err != nil {
		writeInventoryError(w, r, err, "load menu items")
		return
	}
	writeJSON(w, http.StatusOK, projectMenuItems(items))
}

func createMenuItem(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeMenuItemInput(w, r)
	if !ok {
		return
	}
	item, err := inventory.CreateMenuItem(r.Context(), database, payload)
	if err != nil {
		writeInventoryError(w, r, err, "create menu item")
		return
	}
	applog.Info(r.Context(), "menu item created", "menuItemID", item.ID, "title", item.Title)
	writeJSON(w, http.StatusCreated, projectMenuItem(*item))
}

// decodeMenuItemInput reads the payload; menu items are displayed unless
// the client says otherwise.
func decodeMenuItemInput(w http.ResponseWriter, r *http.Request) (inventory.MenuItemInput, bool) {
	payload := inventory.MenuItemInput{Display: true}
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(r.Context(), "invalid menu item payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return payload, false
	}
	return payload, true
}
