package main

import (
	"context"
	"net/http"
	"testing"

	"github.com/nin-supply/commerce/internal/store"
)

func TestCreateOrderDefaultsToPending(t *testing.T) {
	app, _ := newTestApp()
	router := app.routes()

	rr := doJSON(t, router, http.MethodPost, "/orders", `{"userEmail":"reza@example.com","totalPrice":42.5}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["acknowledged"] != true {
		t.Fatalf("response = %v, want acknowledged true", body)
	}

	orders, err := app.store.Orders().FindByUserEmail(context.Background(), "reza@example.com")
	if err != nil {
		t.Fatalf("FindByUserEmail: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("stored orders = %d, want 1", len(orders))
	}
	if orders[0].Status != store.OrderStatusPending {
		t.Fatalf("status = %q, want Pending", orders[0].Status)
	}
}

func TestCreateOrderRequiresEmail(t *testing.T) {
	app, _ := newTestApp()
	rr := doJSON(t, app.routes(), http.MethodPost, "/orders", `{"totalPrice":10}`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestGetOrdersRequiresEmail(t *testing.T) {
	app, _ := newTestApp()
	rr := doJSON(t, app.routes(), http.MethodGet, "/orders", "", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if body := decodeBody(t, rr); body["message"] != "User email is required" {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestTotalRevenueGroupsByStatus(t *testing.T) {
	app, _ := newTestApp()
	ctx := context.Background()

	fixture := []store.Order{
		{UserEmail: "a@example.com", TotalPrice: 10, Status: store.OrderStatusPending},
		{UserEmail: "b@example.com", TotalPrice: 20, Status: store.OrderStatusComplete},
		{UserEmail: "c@example.com", TotalPrice: 5, Status: store.OrderStatusComplete},
	}
	for _, order := range fixture {
		if _, err := app.store.Orders().Insert(ctx, order); err != nil {
			t.Fatalf("seed order: %v", err)
		}
	}

	rr := doJSON(t, app.routes(), http.MethodGet, "/totalRevenue", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	body := decodeBody(t, rr)
	if body["pending"] != float64(10) {
		t.Fatalf("pending = %v, want 10", body["pending"])
	}
	if body["processing"] != float64(0) {
		t.Fatalf("processing = %v, want 0", body["processing"])
	}
	if body["completed"] != float64(25) {
		t.Fatalf("completed = %v, want 25", body["completed"])
	}
}
