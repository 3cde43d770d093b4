package handlers

import (
	"net/http"

	"github.com/a-h/templ"

	applog "delights/internal/log"
)

const (
	hxRequestHeader  = "HX-Request"
	hxBoostedHeader  = "HX-Boosted"
	hxRedirectHeader = "HX-Redirect"
	hxTriggerHeader  = "HX-Trigger"

	// basketChangedEvent makes the shopping list page reload its basket table.
	basketChangedEvent = "basket-changed"
)

func isHTMX(r *http.Request) bool {
	return r.Header.Get(hxRequestHeader) == "true" || r.Header.Get(hxBoostedHeader) == "true"
}

// redirect answers HTMX swaps with HX-Redirect so the browser leaves the
// partial it is in. Plain navigation gets a 303.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if isHTMX(r) {
		w.Header().Set(hxRedirectHeader, target)
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, "/login")
}

func redirectToApp(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, "/app")
}

func triggerEvent(w http.ResponseWriter, event string) {
	w.Header().Set(hxTriggerHeader, event)
}

// renderPage writes the full page, or only its body when HTMX is swapping
// the content area.
func renderPage(w http.ResponseWriter, r *http.Request, page string, full, partial templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	component := full
	if isHTMX(r) {
		component = partial
	}
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render page", "page", page, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
