package main

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nin-supply/commerce/internal/httputil"
	"github.com/nin-supply/commerce/internal/store"
)

func (app *application) handleGetCarts(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		httputil.WriteMessage(w, http.StatusBadRequest, "User email is required")
		return
	}

	items, err := app.store.Carts().FindByUserEmail(r.Context(), email)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, items)
}

func (app *application) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	var item store.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	if item.UserEmail == "" {
		httputil.WriteMessage(w, http.StatusBadRequest, "User email is required")
		return
	}

	id, err := app.store.Carts().Insert(r.Context(), item)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"acknowledged": true,
		"insertedId":   id,
	})
}

func (app *application) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var item store.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := app.store.Carts().Update(r.Context(), id, item)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

func (app *application) handleDeleteCartItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	deleted, err := app.store.Carts().Delete(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]int64{"deletedCount": deleted})
}
