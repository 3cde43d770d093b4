package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"delights/internal/inventory"
	applog "delights/internal/log"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// writeInventoryError maps inventory failures onto HTTP statuses. Anything
// unrecognised is logged and reported as a 500 mentioning action.
func writeInventoryError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, gorm.ErrInvalidDB):
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
	case errors.Is(err, inventory.ErrNotFound), errors.Is(err, inventory.ErrNoSales):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, inventory.ErrDuplicate),
		errors.Is(err, inventory.ErrMenuItemGone),
		errors.Is(err, inventory.ErrEmptyBasket):
		writeJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, inventory.ErrInvalidInput), errors.Is(err, inventory.ErrInvalidQuantity):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		applog.Error(r.Context(), "inventory operation failed", "action", action, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to "+action)
	}
}

// resourceSegments strips prefix from the request path and splits the rest.
func resourceSegments(r *http.Request, prefix string) []string {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func parseID(value string) (uint, bool) {
	parsed, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return uint(parsed), true
}

// requireDatabase writes a 503 and returns false when no database is configured.
func requireDatabase(w http.ResponseWriter, r *http.Request, resource string) bool {
	if database != nil {
		return true
	}
	applog.Debug(r.Context(), "request without database", "resource", resource)
	writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
	return false
}
