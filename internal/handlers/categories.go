package handlers

import (
	"net/http"

	"delights/internal/inventory"
)

const categoriesPrefix = "/app/api/categories"

type categoryRequest struct {
	Name string `json:"name"`
}

// CategoryResource lists, creates and deletes menu categories.
func CategoryResource(w http.ResponseWriter, r *http.Request) {
	if !requireDatabase(w, r, "categories") {
		return
	}

	segments := resourceSegments(r, categoriesPrefix)
	if len(segments) == 0 {
		switch r.Method {
		case http.MethodGet:
			categories, err := inventory.ListCategories(r.Context(), database)
			if err != nil {
				writeInventoryError(w, r, err, "load categories")
				return
			}
			out := make([]categoryResponse, 0, len(categories))
			for _, category := range categories {
				out = append(out, categoryResponse{ID: category.ID, Name: category.Name})
			}
			writeJSON(w, http.StatusOK, out)
		case http.MethodPost:
			var payload categoryRequest
			if err := decodeJSON(r, &payload); err != nil {
				writeJSONError(w, http.StatusBadRequest, "invalid request payload")
				return
			}
			category, err := inventory.CreateCategory(r.Context(), database, payload.Name)
			if err != nil {
				writeInventoryError(w, r, err, "create category")
				return
			}
			writeJSON(w, http.StatusCreated, categoryResponse{ID: category.ID, Name: category.Name})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	categoryID, ok := parseID(segments[0])
	if !ok || len(segments) > 1 {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := inventory.DeleteCategory(r.Context(), database, categoryID); err != nil {
		writeInventoryError(w, r, err, "delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
