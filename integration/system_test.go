//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

func TestShop_E2E(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	var products []map[string]any
	doJSON(t, http.MethodGet, baseURL+"/api/products", nil, &products, 200)
	if len(products) == 0 {
		t.Fatalf("expected non-empty products")
	}

	pid, ok := products[0]["id"].(float64)
	if !ok || pid == 0 {
		t.Fatalf("product id missing in response: %#v", products[0])
	}

	var cart struct {
		Items []map[string]any `json:"items"`
		Total float64          `json:"total"`
	}
	doJSON(t, http.MethodPost, baseURL+"/api/cart", map[string]any{
		"productId": int(pid),
		"qty":       2,
	}, &cart, 200)
	if len(cart.Items) == 0 {
		t.Fatalf("cart empty after add: %#v", cart)
	}

	var receipt map[string]any
	doJSON(t, http.MethodPost, baseURL+"/api/checkout", map[string]any{
		"cartItems": cart.Items,
		"name":      "E2E Shopper",
		"email":     "e2e@example.com",
	}, &receipt, 200)

	orderID, _ := receipt["orderId"].(string)
	if orderID == "" {
		t.Fatalf("order id missing: %#v", receipt)
	}

	cart.Items = nil
	doJSON(t, http.MethodGet, baseURL+"/api/cart", nil, &cart, 200)
	if len(cart.Items) != 0 {
		t.Fatalf("cart not cleared after checkout: %#v", cart.Items)
	}
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func doJSON(t *testing.T, method, url string, body any, out any, want int) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("%s %s: status=%d want=%d", method, url, resp.StatusCode, want)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
