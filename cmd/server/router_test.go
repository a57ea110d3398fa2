package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPreflightOnMethodRestrictedRoutes(t *testing.T) {
	app, _ := newTestApp()
	router := app.routes()

	cases := []struct {
		path   string
		method string
	}{
		{path: "/carts/abc", method: http.MethodPut},
		{path: "/users/abc", method: http.MethodPatch},
		{path: "/createProduct", method: http.MethodPost},
		{path: "/allUsers", method: http.MethodGet},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodOptions, tc.path, nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", tc.method)
		req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		if res.Code != http.StatusOK {
			t.Fatalf("OPTIONS %s: status = %d, want 200", tc.path, res.Code)
		}
		if got := res.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
			t.Fatalf("OPTIONS %s: Allow-Origin = %q", tc.path, got)
		}
		if got := res.Header().Get("Access-Control-Allow-Methods"); got == "" {
			t.Fatalf("OPTIONS %s: Allow-Methods header missing", tc.path)
		}
	}
}

func TestCrossOriginRequestCarriesHeaders(t *testing.T) {
	app, _ := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	res := httptest.NewRecorder()
	app.routes().ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.Code)
	}
	if got := res.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("Allow-Origin = %q", got)
	}
}

func TestUnknownOriginRejectedByRouter(t *testing.T) {
	app, _ := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	res := httptest.NewRecorder()
	app.routes().ServeHTTP(res, req)

	if res.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", res.Code)
	}
}
