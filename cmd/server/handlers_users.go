package main

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nin-supply/commerce/internal/auth"
	"github.com/nin-supply/commerce/internal/httputil"
	"github.com/nin-supply/commerce/internal/store"
)

// handleIssueToken issues a signed identity token for the posted identity.
// Nothing is persisted; the token expires on its own after an hour.
func (app *application) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	var identity auth.Identity
	if err := json.NewDecoder(r.Body).Decode(&identity); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	if identity.Email == "" {
		httputil.WriteMessage(w, http.StatusBadRequest, "email is required")
		return
	}

	token, err := app.tokens.Issue(identity)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

// handleCreateUser registers a user. Registration is idempotent on email: a
// duplicate returns a no-op signal instead of an error.
func (app *application) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var user store.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	if user.Email == "" {
		httputil.WriteMessage(w, http.StatusBadRequest, "email is required")
		return
	}

	existing, err := app.store.Users().FindByEmail(r.Context(), user.Email)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if existing != nil {
		httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"message":    "user already exists",
			"insertedId": nil,
		})
		return
	}

	id, err := app.store.Users().Insert(r.Context(), user)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"acknowledged": true,
		"insertedId":   id,
	})
}

// handleGetUser returns the user record for an email, or null.
func (app *application) handleGetUser(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	user, err := app.store.Users().FindByEmail(r.Context(), email)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// handleUpdateUserRole sets a user's role. Reached only through the
// authenticated admin gate.
func (app *application) handleUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	if body.Role == "" {
		httputil.WriteMessage(w, http.StatusBadRequest, "role is required")
		return
	}

	result, err := app.store.Users().UpdateRole(r.Context(), id, body.Role)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

func (app *application) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	deleted, err := app.store.Users().Delete(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]int64{"deletedCount": deleted})
}

func (app *application) handleAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := app.store.Users().All(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, users)
}
