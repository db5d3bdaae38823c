package razorpay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kalakriti-next/internal/payment"
)

func collectAndWait(t *testing.T, g *Gateway, req payment.Request) (string, string) {
	t.Helper()
	refCh := make(chan string, 1)
	reasonCh := make(chan string, 1)
	g.Collect(context.Background(), req, payment.Callbacks{
		OnSuccess: func(ref string) { refCh <- ref },
		OnFailure: func(reason string) { reasonCh <- reason },
	})
	select {
	case ref := <-refCh:
		return ref, ""
	case reason := <-reasonCh:
		return "", reason
	case <-time.After(3 * time.Second):
		t.Fatalf("no callback fired")
		return "", ""
	}
}

func TestCollectNotConfigured(t *testing.T) {
	g := New(Config{})
	ref, reason := collectAndWait(t, g, payment.Request{AmountMinor: 100})
	if ref != "" {
		t.Fatalf("expected no payment ref, got %q", ref)
	}
	if reason != ReasonNotConfigured {
		t.Fatalf("unexpected failure reason: %q", reason)
	}
}

func TestCollectSuccess(t *testing.T) {
	var gotAmount int64
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		user, _, ok := r.BasicAuth()
		if !ok || user != "rzp_test_key" {
			t.Errorf("missing or wrong basic auth")
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if amount, ok := body["amount"].(float64); ok {
			gotAmount = int64(amount)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_NXh2Qx4jJ9",
			"amount":   body["amount"],
			"currency": "INR",
			"status":   "created",
		})
	}))
	defer server.Close()

	g := New(Config{
		KeyID:      "rzp_test_key",
		KeySecret:  "secret",
		APIBaseURL: server.URL,
	})
	ref, reason := collectAndWait(t, g, payment.Request{
		OrderRef:    "checkout-1",
		AmountMinor: 286000,
		Currency:    "INR",
		Identity:    payment.Identity{Name: "Asha", Email: "asha@example.com", Contact: "9876543210"},
	})
	if reason != "" {
		t.Fatalf("unexpected failure: %q", reason)
	}
	if ref != "order_NXh2Qx4jJ9" {
		t.Fatalf("unexpected payment ref: %q", ref)
	}
	if gotPath != "/v1/orders" {
		t.Fatalf("unexpected request path: %q", gotPath)
	}
	if gotAmount != 286000 {
		t.Fatalf("unexpected minor amount: %d", gotAmount)
	}
}

func TestCollectProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"description":"bad key"}}`))
	}))
	defer server.Close()

	g := New(Config{KeyID: "k", KeySecret: "s", APIBaseURL: server.URL})
	ref, reason := collectAndWait(t, g, payment.Request{OrderRef: "checkout-2", AmountMinor: 100})
	if ref != "" {
		t.Fatalf("expected failure, got ref %q", ref)
	}
	if reason == "" {
		t.Fatalf("expected a failure reason")
	}
}
