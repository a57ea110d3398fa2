package main

import (
	"encoding/json"
	"net/http"

	"github.com/nin-supply/commerce/internal/httputil"
	"github.com/nin-supply/commerce/internal/store"
)

// handleCreateProduct adds a catalog entry. Admin gated.
func (app *application) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var product store.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	if product.Name == "" {
		httputil.WriteMessage(w, http.StatusBadRequest, "product name is required")
		return
	}

	id, err := app.store.Products().Insert(r.Context(), product)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"acknowledged": true,
		"insertedId":   id,
	})
}

func (app *application) handleProducts(w http.ResponseWriter, r *http.Request) {
	products, err := app.store.Products().All(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, products)
}

func (app *application) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := app.store.Categories().All(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, categories)
}
