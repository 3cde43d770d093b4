package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"delights/internal/inventory"
	applog "delights/internal/log"
)

const purchasesPrefix = "/app/api/purchases"

type purchaseQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

// PurchaseResource records and corrects sales. DELETE accepts restock=true
// to return the consumed ingredients to stock.
func PurchaseResource(w http.ResponseWriter, r *http.Request) {
	if !requireDatabase(w, r, "purchases") {
		return
	}

	segments := resourceSegments(r, purchasesPrefix)
	if len(segments) == 0 {
		switch r.Method {
		case http.MethodGet:
			purchases, err := inventory.ListPurchases(r.Context(), database)
			if err != nil {
				writeInventoryError(w, r, err, "load purchases")
				return
			}
			out := make([]purchaseResponse, 0, len(purchases))
			for _, purchase := range purchases {
				out = append(out, projectPurchase(purchase))
			}
			writeJSON(w, http.StatusOK, out)
		case http.MethodPost:
			var payload inventory.PurchaseInput
			if err := decodeJSON(r, &payload); err != nil {
				writeJSONError(w, http.StatusBadRequest, "invalid request payload")
				return
			}
			purchase, err := inventory.CreatePurchase(r.Context(), database, payload)
			if err != nil {
				writeInventoryError(w, r, err, "record purchase")
				return
			}
			userID, _ := currentUserID(r)
			applog.Info(r.Context(), "purchase recorded", "purchaseID", purchase.ID, "menuItem", purchase.MenuItemTitle, "quantity", purchase.Quantity, "userID", userID)
			writeJSON(w, http.StatusCreated, projectPurchase(*purchase))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	purchaseID, ok := parseID(segments[0])
	if !ok || len(segments) > 1 {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		purchase, err := inventory.GetPurchase(r.Context(), database, purchaseID)
		if err != nil {
			writeInventoryError(w, r, err, "load purchase")
			return
		}
		writeJSON(w, http.StatusOK, projectPurchase(*purchase))
	case http.MethodPut:
		var payload purchaseQuantityRequest
		if err := decodeJSON(r, &payload); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
		purchase, err := inventory.UpdatePurchaseQuantity(r.Context(), database, purchaseID, payload.Quantity)
		if err != nil {
			writeInventoryError(w, r, err, "update purchase")
			return
		}
		writeJSON(w, http.StatusOK, projectPurchase(*purchase))
	case http.MethodDelete:
		restock := false
		if raw := strings.TrimSpace(r.URL.Query().Get("restock")); raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, "invalid restock flag")
				return
			}
			restock = parsed
		}
		if err := inventory.DeletePurchase(r.Context(), database, purchaseID, restock); err != nil {
			writeInventoryError(w, r, err, "delete purchase")
			return
		}
		userID, _ := currentUserID(r)
		applog.Info(r.Context(), "purchase removed", "purchaseID", purchaseID, "restock", restock, "userID", userID)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
