package integration

import (
	"net/http"
	"testing"

	"defter/internal/models"
)

func TestAuthFlow_LoginAndProfile(t *testing.T) {
	app := setupApp(t)
	app.seedUser(t, "volkan", models.RoleAdmin)

	token := app.loginUser(t, "volkan", "password123")
	if token == "" {
		t.Fatal("expected non-empty token from login")
	}

	rec := app.request("GET", "/api/v1/auth/profile", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	if user["username"] != "volkan" {
		t.Errorf("expected username volkan, got %v", user["username"])
	}
	if user["role"] != string(models.RoleAdmin) {
		t.Errorf("expected role admin, got %v", user["role"])
	}
}

func TestAuthFlow_LoginWrongPassword(t *testing.T) {
	app := setupApp(t)
	app.seedUser(t, "volkan", models.RoleAdmin)

	rec := app.request("POST", "/api/v1/auth/login",
		`{"username":"volkan","password":"wrongpassword"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "INVALID_CREDENTIALS" {
		t.Errorf("expected INVALID_CREDENTIALS, got %v", code)
	}
}

func TestAuthFlow_AdminProvisionsUser(t *testing.T) {
	app := setupApp(t)
	adminToken := app.loginAs(t, "volkan", models.RoleAdmin)

	rec := app.request("POST", "/api/v1/auth/users",
		`{"username":"depocu","password":"password123","role":"personnel"}`, adminToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// The provisioned user can log in straight away
	token := app.loginUser(t, "depocu", "password123")
	if token == "" {
		t.Fatal("expected non-empty token for provisioned user")
	}

	// Duplicate usernames are rejected
	rec = app.request("POST", "/api/v1/auth/users",
		`{"username":"depocu","password":"password123","role":"personnel"}`, adminToken)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate username, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "DUPLICATE_USERNAME" {
		t.Errorf("expected DUPLICATE_USERNAME, got %v", code)
	}
}

func TestAuthFlow_RoleGates(t *testing.T) {
	app := setupApp(t)
	personnelToken := app.loginAs(t, "depocu", models.RolePersonnel)
	observerToken := app.loginAs(t, "izleyici", models.RoleObserver)

	// Personnel may not touch the transaction store
	rec := app.request("GET", "/api/v1/transactions", "", personnelToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for personnel on transactions, got %d: %s", rec.Code, rec.Body.String())
	}

	// Personnel may write operational data
	rec = app.request("POST", "/api/v1/stock",
		`{"product_code":"KRM-1","product_name":"Ceramic Bowl","quantity":10,"unit_price":"150"}`, personnelToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for personnel stock create, got %d: %s", rec.Code, rec.Body.String())
	}

	// Observers may read operational data but not write it
	rec = app.request("GET", "/api/v1/stock", "", observerToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for observer stock read, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("POST", "/api/v1/stock",
		`{"product_code":"KRM-2","product_name":"Ceramic Plate","quantity":5,"unit_price":"200"}`, observerToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for observer stock write, got %d: %s", rec.Code, rec.Body.String())
	}

	// No token at all
	rec = app.request("GET", "/api/v1/stock", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d: %s", rec.Code, rec.Body.String())
	}
}
