package handlers

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	applog "delights/internal/log"
	"delights/internal/views/pages"
)

const minPasswordLength = 8

// signupProblem returns the message shown for an unacceptable staff
// registration, or "" when the form can be saved.
func (c credentials) signupProblem() string {
	switch {
	case c.Email == "" || !strings.Contains(c.Email, "@"):
		return "Please provide a valid email address."
	case len(c.Password) < minPasswordLength:
		return "Password must be at least 8 characters long."
	case c.Password != c.Confirm:
		return "Passwords do not match."
	}
	return ""
}

// Signup registers a new staff account and signs it in.
func Signup(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			redirectToApp(w, r)
			return
		}
		renderSignup(w, r, "", credentials{})
	case http.MethodPost:
		if sessionManager == nil || database == nil {
			http.Error(w, "registration is unavailable until the kitchen database is configured", http.StatusServiceUnavailable)
			return
		}
		creds, err := readCredentials(r)
		if err != nil {
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		if problem := creds.signupProblem(); problem != "" {
			renderSignup(w, r, problem, creds)
			return
		}

		_, err = findUserByEmail(r, creds.Email)
		switch {
		case err == nil:
			renderSignup(w, r, "A staff account with that email already exists.", creds)
			return
		case !errors.Is(err, gorm.ErrRecordNotFound):
			applog.Error(r.Context(), "failed to check existing staff account", "error", err)
			renderSignup(w, r, "We couldn't create your account right now. Please try again.", creds)
			return
		}

		user, err := createUser(r, creds.Email, creds.Name, creds.Password)
		if err != nil {
			applog.Error(r.Context(), "failed to create staff account", "error", err)
			renderSignup(w, r, "We couldn't create your account right now. Please try again.", creds)
			return
		}
		if err := establishSession(r, user); err != nil {
			applog.Error(r.Context(), "failed to establish session after signup", "error", err)
			renderSignup(w, r, "We couldn't sign you in after creating your account. Please try again.", creds)
			return
		}

		applog.Info(r.Context(), "staff account created", "userID", user.ID)
		leaveBriefing(r, "Welcome to the kitchen")
		redirectToApp(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func renderSignup(w http.ResponseWriter, r *http.Request, message string, creds credentials) {
	renderPage(w, r, "signup", pages.Signup(message, creds.Name, creds.Email), pages.SignupPartial(message, creds.Name, creds.Email))
}
