package main

import (
	"encoding/json"
	"net/http"

	"github.com/nin-supply/commerce/internal/httputil"
	"github.com/nin-supply/commerce/internal/store"
)

// handleCreateOrder records a placed order. New orders start Pending unless
// the caller provides a status.
func (app *application) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var order store.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	if order.UserEmail == "" {
		httputil.WriteMessage(w, http.StatusBadRequest, "User email is required")
		return
	}
	if order.Status == "" {
		order.Status = store.OrderStatusPending
	}

	id, err := app.store.Orders().Insert(r.Context(), order)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"acknowledged": true,
		"insertedId":   id,
	})
}

func (app *application) handleGetOrders(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		httputil.WriteMessage(w, http.StatusBadRequest, "User email is required")
		return
	}

	orders, err := app.store.Orders().FindByUserEmail(r.Context(), email)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, orders)
}

func (app *application) handleAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := app.store.Orders().All(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, orders)
}

// handleTotalRevenue sums order totals grouped by status.
func (app *application) handleTotalRevenue(w http.ResponseWriter, r *http.Request) {
	summary, err := app.store.Orders().RevenueByStatus(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, summary)
}
