package handlers

import (
	"net/http"

	"delights/internal/inventory"
	applog "delights/internal/log"
)

const ingredientsPrefix = "/app/api/ingredients"

// IngredientResource serves the ingredient collection, single ingredients and
// the bulk stock-count endpoint.
func IngredientResource(w http.ResponseWriter, r *http.Request) {
	if !requireDatabase(w, r, "ingredients") {
		return
	}

	segments := resourceSegments(r, ingredientsPrefix)
	if len(segments) == 0 {
		switch r.Method {
		case http.MethodGet:
			listIngredients(w, r)
		case http.MethodPost:
			createIngredient(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	if segments[0] == "stock" && len(segments) == 1 {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		setStockLevels(w, r)
		return
	}

	ingredientID, ok := parseID(segments[0])
	if !ok || len(segments) > 1 {
		applog.Debug(r.Context(), "invalid ingredient path", "path", r.URL.Path)
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		ingredient, err := inventory.GetIngredient(r.Context(), database, ingredientID)
		if err != nil {
			writeInventoryError(w, r, err, "load ingredient")
			return
		}
		writeJSON(w, http.StatusOK, projectIngredient(*ingredient))
	case http.MethodPut:
		var payload inventory.IngredientInput
		if err := decodeJSON(r, &payload); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
		ingredient, err := inventory.UpdateIngredient(r.Context(), database, ingredientID, payload)
		if err != nil {
			writeInventoryError(w, r, err, "update ingredient")
			return
		}
		writeJSON(w, http.StatusOK, projectIngredient(*ingredient))
	case http.MethodDelete:
		if err := inventory.DeleteIngredient(r.Context(), database, ingredientID); err != nil {
			writeInventoryError(w, r, err, "delete ingredient")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := inventory.ListIngredients(r.Context(), database)
	if err != nil {
		writeInventoryError(w, r, err, "load ingredients")
		return
	}
	writeJSON(w, http.StatusOK, projectIngredients(ingredients))
}

func createIngredient(w http.ResponseWriter, r *http.Request) {
	var payload inventory.IngredientInput
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(r.Context(), "invalid ingredient payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	ingredient, err := inventory.CreateIngredient(r.Context(), database, payload)
	if err != nil {
		writeInventoryError(w, r, err, "create ingredient")
		return
	}
	writeJSON(w, http.StatusCreated, projectIngredient(*ingredient))
}

func setStockLevels(w http.ResponseWriter, r *http.Request) {
	var levels []inventory.StockLevel
	if err := decodeJSON(r, &levels); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := inventory.SetStockLevels(r.Context(), database, levels); err != nil {
		writeInventoryError(w, r, err, "update stock levels")
		return
	}
	applog.Info(r.Context(), "stock levels updated", "count", len(levels))
	w.WriteHeader(http.StatusNoContent)
}
