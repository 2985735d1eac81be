package integration

import (
	"fmt"
	"net/http"
	"testing"

	"defter/internal/models"
)

// getStockLevels reads a stock item by product code and returns its counters.
func (app *testApp) getStockLevels(t *testing.T, token, code string) (quantity, realStock float64) {
	t.Helper()
	rec := app.request("GET", "/api/v1/stock/"+code, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed to read stock %s: %d %s", code, rec.Code, rec.Body.String())
	}
	item := parseJSON(t, rec)["stock_item"].(map[string]interface{})
	return item["quantity"].(float64), item["real_stock"].(float64)
}

func TestOrderFlow_RealAndDemoOrders(t *testing.T) {
	app := setupApp(t)
	token := app.loginAs(t, "depocu", models.RolePersonnel)

	rec := app.request("POST", "/api/v1/stock",
		`{"product_code":"KRM-10","product_name":"Ceramic Vase","quantity":10,"unit_price":"150"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	item := parseJSON(t, rec)["stock_item"].(map[string]interface{})
	if item["real_stock"].(float64) != 10 {
		t.Errorf("expected real stock to default to quantity, got %v", item["real_stock"])
	}

	// A real order draws down both counters
	rec = app.request("POST", "/api/v1/orders",
		`{"product_code":"KRM-10","customer_name":"Ayse","product_name":"Ceramic Vase","quantity":4,"unit_price":"150","is_real_order":true}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	order := parseJSON(t, rec)["order"].(map[string]interface{})
	if order["total_amount"] != "600" {
		t.Errorf("expected order total 600, got %v", order["total_amount"])
	}
	quantity, realStock := app.getStockLevels(t, token, "KRM-10")
	if quantity != 6 || realStock != 6 {
		t.Errorf("expected 6/6 after real order, got %v/%v", quantity, realStock)
	}

	// A demo order only draws down the display quantity
	rec = app.request("POST", "/api/v1/orders",
		`{"product_code":"KRM-10","customer_name":"Mehmet","product_name":"Ceramic Vase","quantity":2,"unit_price":"150","is_real_order":false}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	quantity, realStock = app.getStockLevels(t, token, "KRM-10")
	if quantity != 4 || realStock != 6 {
		t.Errorf("expected 4/6 after demo order, got %v/%v", quantity, realStock)
	}

	// The day's summary covers both orders
	rec = app.request("GET", "/api/v1/orders/summary", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	summary := parseJSON(t, rec)
	if summary["total_orders"].(float64) != 2 {
		t.Errorf("expected 2 orders in summary, got %v", summary["total_orders"])
	}
	if summary["total_amount"] != "900" {
		t.Errorf("expected summary total 900, got %v", summary["total_amount"])
	}
}

func TestOrderFlow_Oversell(t *testing.T) {
	app := setupApp(t)
	token := app.loginAs(t, "depocu", models.RolePersonnel)

	rec := app.request("POST", "/api/v1/stock",
		`{"product_code":"KRM-20","product_name":"Ceramic Cup","quantity":3,"real_stock":2,"unit_price":"50"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// Without the override the order is refused and stock is untouched
	rec = app.request("POST", "/api/v1/orders",
		`{"product_code":"KRM-20","customer_name":"Ayse","product_name":"Ceramic Cup","quantity":5,"unit_price":"50","is_real_order":true}`, token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "INSUFFICIENT_STOCK" {
		t.Errorf("expected INSUFFICIENT_STOCK, got %v", code)
	}
	quantity, realStock := app.getStockLevels(t, token, "KRM-20")
	if quantity != 3 || realStock != 2 {
		t.Errorf("expected stock untouched at 3/2, got %v/%v", quantity, realStock)
	}

	// With the override the counters clamp at zero
	rec = app.request("POST", "/api/v1/orders",
		`{"product_code":"KRM-20","customer_name":"Ayse","product_name":"Ceramic Cup","quantity":5,"unit_price":"50","is_real_order":true,"allow_oversell":true}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 with oversell override, got %d: %s", rec.Code, rec.Body.String())
	}
	quantity, realStock = app.getStockLevels(t, token, "KRM-20")
	if quantity != 0 || realStock != 0 {
		t.Errorf("expected stock clamped at 0/0, got %v/%v", quantity, realStock)
	}
}

func TestOrderFlow_UpdateAndDelete(t *testing.T) {
	app := setupApp(t)
	token := app.loginAs(t, "depocu", models.RolePersonnel)

	rec := app.request("POST", "/api/v1/stock",
		`{"product_code":"KRM-30","product_name":"Ceramic Plate","quantity":10,"unit_price":"100"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("POST", "/api/v1/orders",
		`{"product_code":"KRM-30","customer_name":"Ayse","product_name":"Ceramic Plate","quantity":2,"unit_price":"100","is_real_order":true}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	order := parseJSON(t, rec)["order"].(map[string]interface{})
	orderID := order["id"].(float64)

	// Changing the quantity recomputes the total
	rec = app.request("PUT", fmt.Sprintf("/api/v1/orders/%.0f", orderID),
		`{"quantity":7}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)["order"].(map[string]interface{})
	if updated["total_amount"] != "700" {
		t.Errorf("expected recomputed total 700, got %v", updated["total_amount"])
	}

	// Deleting an order does not restock
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/orders/%.0f", orderID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	quantity, realStock := app.getStockLevels(t, token, "KRM-30")
	if quantity != 8 || realStock != 8 {
		t.Errorf("expected 8/8 after order delete, got %v/%v", quantity, realStock)
	}
}
