package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"delights/internal/inventory"
	applog "delights/internal/log"
)

const (
	basketPrefix = "/app/api/basket"
	ordersPrefix = "/app/api/orders"
)

type basketRequest struct {
	IngredientID uint            `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// BasketResource manages the restock basket. Adding without a quantity uses
// the ingredient's re-order quantity.
func BasketResource(w http.ResponseWriter, r *http.Request) {
	if !requireDatabase(w, r, "basket") {
		return
	}

	segments := resourceSegments(r, basketPrefix)
	if len(segments) == 0 {
		switch r.Method {
		case http.MethodGet:
			rows, err := inventory.ListBasket(r.Context(), database)
			if err != nil {
				writeInventoryError(w, r, err, "load basket")
				return
			}
			out := make([]basketResponse, 0, len(rows))
			for _, row := range rows {
				out = append(out, projectBasket(row))
			}
			writeJSON(w, http.StatusOK, out)
		case http.MethodPost:
			payload, err := decodeBasketRequest(r)
			if err != nil {
				applog.Debug(r.Context(), "invalid basket payload", "error", err)
				writeJSONError(w, http.StatusBadRequest, "invalid request payload")
				return
			}
			row, err := inventory.AddFromShoppingList(r.Context(), database, payload.IngredientID, payload.Quantity)
			if err != nil {
				writeInventoryError(w, r, err, "add to basket")
				return
			}
			triggerEvent(w, basketChangedEvent)
			writeJSON(w, http.StatusCreated, projectBasket(*row))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	rowID, ok := parseID(segments[0])
	if !ok || len(segments) > 1 {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		var payload basketRequest
		if err := decodeJSON(r, &payload); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
		row, err := inventory.SetBasketQuantity(r.Context(), database, rowID, payload.Quantity)
		if err != nil {
			writeInventoryError(w, r, err, "update basket")
			return
		}
		triggerEvent(w, basketChangedEvent)
		if row == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, projectBasket(*row))
	case http.MethodDelete:
		if err := inventory.RemoveFromBasket(r.Context(), database, rowID); err != nil {
			writeInventoryError(w, r, err, "remove from basket")
			return
		}
		triggerEvent(w, basketChangedEvent)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// decodeBasketRequest accepts JSON or the form posted by the shopping list.
func decodeBasketRequest(r *http.Request) (basketRequest, error) {
	var payload basketRequest
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		err := decodeJSON(r, &payload)
		return payload, err
	}
	if err := r.ParseForm(); err != nil {
		return payload, err
	}
	id, ok := parseID(r.PostFormValue("ingredient_id"))
	if !ok {
		return payload, errors.New("ingredient_id is required")
	}
	payload.IngredientID = id
	if raw := strings.TrimSpace(r.PostFormValue("quantity")); raw != "" {
		quantity, err := decimal.NewFromString(raw)
		if err != nil {
			return payload, err
		}
		payload.Quantity = quantity
	}
	return payload, nil
}

// OrderResource lists placed orders and flushes the basket into a new one.
func OrderResource(w http.ResponseWriter, r *http.Request) {
	if !requireDatabase(w, r, "orders") {
		return
	}
	if len(resourceSegments(r, ordersPrefix)) != 0 {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		numbers, err := inventory.ListOrderNumbers(r.Context(), database)
		if err != nil {
			writeInventoryError(w, r, err, "load orders")
			return
		}
		out := make([]orderNumberResponse, 0, len(numbers))
		for _, number := range numbers {
			out = append(out, projectOrderNumber(number))
		}
		writeJSON(w, http.StatusOK, out)
	case http.MethodPost:
		number, err := inventory.PlaceOrder(r.Context(), database)
		if err != nil {
			writeInventoryError(w, r, err, "place order")
			return
		}
		userID, _ := currentUserID(r)
		applog.Info(r.Context(), "order placed", "reference", number.Reference.String(), "lines", len(number.Orders), "userID", userID)
		triggerEvent(w, basketChangedEvent)
		writeJSON(w, http.StatusCreated, projectOrderNumber(*number))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
