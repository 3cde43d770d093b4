package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"delights/internal/inventory"
	applog "delights/internal/log"
	"delights/internal/views/pages"
)

// credentials is a submitted login or signup form.
type credentials struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

func readCredentials(r *http.Request) (credentials, error) {
	if err := r.ParseForm(); err != nil {
		return credentials{}, err
	}
	return credentials{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Email:    strings.ToLower(strings.TrimSpace(r.PostFormValue("email"))),
		Password: r.PostFormValue("password"),
		Confirm:  r.PostFormValue("confirm_password"),
	}, nil
}

// Login shows the staff sign-in form. A successful sign-in leaves a kitchen
// briefing for the dashboard.
func Login(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			redirectToApp(w, r)
			return
		}
		renderLogin(w, r, popSessionString(r, sessionLoginMessageKey), "")
	case http.MethodPost:
		if sessionManager == nil || database == nil {
			http.Error(w, "sign-in is unavailable until the kitchen database is configured", http.StatusServiceUnavailable)
			return
		}
		creds, err := readCredentials(r)
		if err != nil {
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		if creds.Email == "" || creds.Password == "" {
			renderLogin(w, r, "Enter your email and password.", creds.Email)
			return
		}
		if !authenticate(w, r, creds.Email, creds.Password) {
			applog.Debug(r.Context(), "sign-in rejected", "email", creds.Email)
			message := popSessionString(r, sessionLoginMessageKey)
			if message == "" {
				message = "We were unable to sign you in. Please try again."
			}
			renderLogin(w, r, message, creds.Email)
			return
		}

		userID, _ := currentUserID(r)
		applog.Info(r.Context(), "staff signed in", "userID", userID)
		leaveBriefing(r, "Welcome back")
		redirectToApp(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func renderLogin(w http.ResponseWriter, r *http.Request, message, email string) {
	renderPage(w, r, "login", pages.Login(message, email), pages.LoginPartial(message, email))
}

func popSessionString(r *http.Request, key string) string {
	if sessionManager == nil {
		return ""
	}
	return sessionManager.PopString(r.Context(), key)
}

// leaveBriefing stores a one-line kitchen status that the next dashboard
// render shows once.
func leaveBriefing(r *http.Request, greeting string) {
	if sessionManager == nil {
		return
	}
	sessionManager.Put(r.Context(), sessionBriefingKey, kitchenBriefing(r, greeting))
}

func kitchenBriefing(r *http.Request, greeting string) string {
	line := greeting + "."
	if name := currentUserName(r); name != "" {
		line = greeting + ", " + name + "."
	}
	if database == nil {
		return line
	}

	shopping, err := inventory.ShoppingList(r.Context(), database)
	if err != nil {
		applog.Warn(r.Context(), "failed to build sign-in briefing", "error", err)
		return line
	}
	switch len(shopping) {
	case 0:
		return line + " Every kanban ingredient is above its reorder threshold."
	case 1:
		return line + " 1 ingredient needs reordering: " + shopping[0].Name + "."
	default:
		return line + " " + strconv.Itoa(len(shopping)) + " ingredients need reordering."
	}
}
