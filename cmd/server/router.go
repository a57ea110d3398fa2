package main

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/nin-supply/commerce/internal/httputil"
	"github.com/nin-supply/commerce/internal/metrics"
	"github.com/nin-supply/commerce/internal/middleware"
)

// routes builds the router and wraps it in CORS. The wrap sits outside the
// mux so preflight OPTIONS requests get their headers even when no
// method-restricted route matches.
func (app *application) routes() http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.RequestLogging(app.logger))
	r.Use(middleware.Metrics())

	r.Use(mux.MiddlewareFunc(app.limiter.Handler))

	requireAuth := middleware.RequireAuth(app.tokens, app.logger)
	requireAdmin := middleware.RequireAdmin(app.store.Users(), app.logger)
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return requireAuth(requireAdmin(h))
	}

	r.HandleFunc("/", app.handleRoot).Methods(http.MethodGet)
	r.HandleFunc("/healthz", app.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	// Users
	r.HandleFunc("/jwt", app.handleIssueToken).Methods(http.MethodPost)
	r.HandleFunc("/createUser", app.handleCreateUser).Methods(http.MethodPost)
	r.HandleFunc("/users/{email}", app.handleGetUser).Methods(http.MethodGet)
	r.Handle("/users/{id}", adminOnly(app.handleUpdateUserRole)).Methods(http.MethodPatch)
	r.Handle("/users/{id}", adminOnly(app.handleDeleteUser)).Methods(http.MethodDelete)
	r.Handle("/allUsers", adminOnly(app.handleAllUsers)).Methods(http.MethodGet)

	// Catalog
	r.Handle("/createProduct", adminOnly(app.handleCreateProduct)).Methods(http.MethodPost)
	r.HandleFunc("/products", app.handleProducts).Methods(http.MethodGet)
	r.HandleFunc("/category", app.handleCategories).Methods(http.MethodGet)

	// Carts
	r.HandleFunc("/carts", app.handleGetCarts).Methods(http.MethodGet)
	r.HandleFunc("/carts", app.handleAddCartItem).Methods(http.MethodPost)
	r.HandleFunc("/carts/{id}", app.handleUpdateCartItem).Methods(http.MethodPut)
	r.HandleFunc("/carts/{id}", app.handleDeleteCartItem).Methods(http.MethodDelete)

	// Orders
	r.HandleFunc("/orders", app.handleCreateOrder).Methods(http.MethodPost)
	r.HandleFunc("/orders", app.handleGetOrders).Methods(http.MethodGet)
	r.HandleFunc("/allOrders", app.handleAllOrders).Methods(http.MethodGet)
	r.HandleFunc("/totalRevenue", app.handleTotalRevenue).Methods(http.MethodGet)

	// Payments, direct gateway
	r.HandleFunc("/bkash-checkout", app.handleBkashCheckout).Methods(http.MethodPost)
	r.HandleFunc("/bkash-callback", app.handleBkashCallback).Methods(http.MethodGet)
	r.HandleFunc("/bkash-refund", app.handleBkashRefund).Methods(http.MethodPost)
	r.HandleFunc("/bkash-search", app.handleBkashSearch).Methods(http.MethodGet)
	r.HandleFunc("/bkash-query", app.handleBkashQuery).Methods(http.MethodGet)

	// Payments, tokenized gateway
	r.HandleFunc("/api/bkash/payment", app.handleTokenizedPayment).Methods(http.MethodPost)
	r.HandleFunc("/api/bkash/payment/callback", app.handleTokenizedCallback).Methods(http.MethodGet)

	return middleware.CORS(app.cfg.AllowedOrigins)(r)
}

func (app *application) handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("NiN Supply commerce backend"))
}

func (app *application) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := app.store.Ping(r.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	httputil.WriteJSON(w, code, map[string]interface{}{
		"status":    status,
		"service":   "commerce",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
