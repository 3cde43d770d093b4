package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"delights/internal/inventory"
)

const recipesPrefix = "/app/api/recipes"

type recipeQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// RecipeResource serves recipe rows. Listing and candidates accept an
// optional menu_item_id query parameter.
func RecipeResource(w http.ResponseWriter, r *http.Request) {
	if !requireDatabase(w, r, "recipes") {
		return
	}

	menuItemID, _ := parseID(r.URL.Query().Get("menu_item_id"))
	segments := resourceSegments(r, recipesPrefix)
	if len(segments) == 0 {
		switch r.Method {
		case http.MethodGet:
			recipes, err := inventory.ListRecipes(r.Context(), database, menuItemID)
			if err != nil {
				writeInventoryError(w, r, err, "load recipes")
				return
			}
			out := make([]recipeResponse, 0, len(recipes))
			for _, recipe := range recipes {
				out = append(out, projectRecipe(recipe))
			}
			writeJSON(w, http.StatusOK, out)
		case http.MethodPost:
			var payload inventory.RecipeInput
			if err := decodeJSON(r, &payload); err != nil {
				writeJSONError(w, http.StatusBadRequest, "invalid request payload")
				return
			}
			recipe, err := inventory.AddRecipe(r.Context(), database, payload)
			if err != nil {
				writeInventoryError(w, r, err, "add recipe row")
				return
			}
			writeJSON(w, http.StatusCreated, projectRecipe(*recipe))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	if segments[0] == "candidates" && len(segments) == 1 {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if menuItemID == 0 {
			writeJSONError(w, http.StatusBadRequest, "menu_item_id is required")
			return
		}
		candidates, err := inventory.RecipeCandidates(r.Context(), database, menuItemID)
		if err != nil {
			writeInventoryError(w, r, err, "load recipe candidates")
			return
		}
		writeJSON(w, http.StatusOK, projectIngredients(candidates))
		return
	}

	recipeID, ok := parseID(segments[0])
	if !ok || len(segments) > 1 {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		var payload recipeQuantityRequest
		if err := decodeJSON(r, &payload); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
		recipe, err := inventory.UpdateRecipeQuantity(r.Context(), database, recipeID, payload.Quantity)
		if err != nil {
			writeInventoryError(w, r, err, "update recipe row")
			return
		}
		writeJSON(w, http.StatusOK, projectRecipe(*recipe))
	case http.MethodDelete:
		if err := inventory.DeleteRecipe(r.Context(), database, recipeID); err != nil {
			writeInventoryError(w, r, err, "delete recipe row")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
