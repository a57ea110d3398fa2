package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nin-supply/commerce/internal/auth"
	"github.com/nin-supply/commerce/internal/store"
)

func doJSON(t *testing.T, handler http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return body
}

func TestIssueToken(t *testing.T) {
	app, _ := newTestApp()
	router := app.routes()

	rr := doJSON(t, router, http.MethodPost, "/jwt", `{"email":"reza@example.com","name":"Reza","role":"admin"}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	body := decodeBody(t, rr)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("response has no token")
	}

	claims, err := app.tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Email != "reza@example.com" || claims.Role != "admin" {
		t.Fatalf("claims = %+v, want posted identity", claims)
	}
}

func TestIssueTokenRequiresEmail(t *testing.T) {
	app, _ := newTestApp()
	rr := doJSON(t, app.routes(), http.MethodPost, "/jwt", `{"name":"no email"}`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestCreateUserIsIdempotentOnEmail(t *testing.T) {
	app, _ := newTestApp()
	router := app.routes()

	first := doJSON(t, router, http.MethodPost, "/createUser", `{"email":"reza@example.com","name":"Reza"}`, nil)
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d, want 200", first.Code)
	}
	firstBody := decodeBody(t, first)
	if firstBody["acknowledged"] != true {
		t.Fatalf("first response = %v, want acknowledged true", firstBody)
	}
	if id, _ := firstBody["insertedId"].(string); id == "" {
		t.Fatalf("first response insertedId = %v, want non-empty id", firstBody["insertedId"])
	}

	second := doJSON(t, router, http.MethodPost, "/createUser", `{"email":"reza@example.com","name":"Reza again"}`, nil)
	if second.Code != http.StatusOK {
		t.Fatalf("second status = %d, want 200", second.Code)
	}
	secondBody := decodeBody(t, second)
	if secondBody["message"] != "user already exists" {
		t.Fatalf("second response message = %v, want duplicate signal", secondBody["message"])
	}
	if id, ok := secondBody["insertedId"]; !ok || id != nil {
		t.Fatalf("second response insertedId = %v, want null", id)
	}

	users, err := app.store.Users().All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("stored users = %d, want 1", len(users))
	}
}

func TestGetUserReturnsNullWhenAbsent(t *testing.T) {
	app, _ := newTestApp()

	rr := doJSON(t, app.routes(), http.MethodGet, "/users/nobody@example.com", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != "null" {
		t.Fatalf("body = %q, want null", got)
	}
}

func TestUpdateUserRoleThroughAdminGate(t *testing.T) {
	app, _ := newTestApp()
	ctx := context.Background()

	if _, err := app.store.Users().Insert(ctx, store.User{Email: "admin@example.com", Role: store.RoleAdmin}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	memberID, err := app.store.Users().Insert(ctx, store.User{Email: "member@example.com"})
	if err != nil {
		t.Fatalf("seed member: %v", err)
	}

	adminToken, err := app.tokens.Issue(auth.Identity{Email: "admin@example.com", Role: store.RoleAdmin})
	if err != nil {
		t.Fatalf("issue admin token: %v", err)
	}
	memberToken, err := app.tokens.Issue(auth.Identity{Email: "member@example.com"})
	if err != nil {
		t.Fatalf("issue member token: %v", err)
	}

	router := app.routes()

	// No token at all.
	rr := doJSON(t, router, http.MethodPatch, "/users/"+memberID, `{"role":"admin"}`, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", rr.Code)
	}

	// Authenticated but not an admin.
	rr = doJSON(t, router, http.MethodPatch, "/users/"+memberID, `{"role":"admin"}`, map[string]string{
		"Authorization": "Bearer " + memberToken,
	})
	if rr.Code != http.StatusForbidden {
		t.Fatalf("non-admin status = %d, want 403", rr.Code)
	}
	if body := decodeBody(t, rr); body["message"] != "forbidden access" {
		t.Fatalf("non-admin message = %v, want forbidden access", body["message"])
	}

	// Admin succeeds.
	rr = doJSON(t, router, http.MethodPatch, "/users/"+memberID, `{"role":"admin"}`, map[string]string{
		"Authorization": "Bearer " + adminToken,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["matchedCount"] != float64(1) || body["modifiedCount"] != float64(1) {
		t.Fatalf("update result = %v, want matched and modified 1", body)
	}

	promoted, err := app.store.Users().FindByEmail(ctx, "member@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if promoted == nil || promoted.Role != store.RoleAdmin {
		t.Fatalf("member role = %+v, want admin", promoted)
	}
}
