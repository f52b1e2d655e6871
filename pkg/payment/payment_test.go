package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/waleedan253-cmd/Moxiepro/pkg/domain"
)

func TestQuote(t *testing.T) {
	cases := []struct {
		credits      int
		wantFinal    int
		wantDiscount int
	}{
		{0, 1499, 0},
		{1, 1399, 100},
		{5, 999, 500},
		{14, 99, 1400},
		{15, 0, 1499},  // capped at base price
		{100, 0, 1499}, // never negative
		{-3, 1499, 0},
	}
	for _, tc := range cases {
		final, discount := Quote(tc.credits)
		if final != tc.wantFinal || discount != tc.wantDiscount {
			t.Errorf("Quote(%d) = (%d, %d), want (%d, %d)",
				tc.credits, final, discount, tc.wantFinal, tc.wantDiscount)
		}
	}
}

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"meta":{"event_name":"order_created"}}`)
	secret := "whsec_test"

	if err := VerifySignature(body, sign(body, secret), secret); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
	if err := VerifySignature(body, sign(body, "wrong"), secret); !errors.Is(err, domain.ErrWebhookVerificationFailed) {
		t.Fatalf("wrong-secret signature: err = %v", err)
	}
	if err := VerifySignature(body, "", secret); !errors.Is(err, domain.ErrWebhookVerificationFailed) {
		t.Fatalf("missing signature: err = %v", err)
	}
}

func TestParseEvent(t *testing.T) {
	body := []byte(`{
		"meta": {"event_name": "order_created"},
		"data": {
			"id": "order_1",
			"attributes": {
				"user_email": "buyer@example.com",
				"first_order_item": {"product_custom_data": {"audit_id": "audit_5_z"}}
			}
		}
	}`)
	secret := "whsec_test"

	event, err := ParseEvent(body, sign(body, secret), secret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !event.IsPaymentSuccess() {
		t.Fatal("order_created should count as payment success")
	}
	if event.AuditID() != "audit_5_z" {
		t.Fatalf("auditID = %q", event.AuditID())
	}
	if event.Data.Attributes.UserEmail != "buyer@example.com" {
		t.Fatalf("email = %q", event.Data.Attributes.UserEmail)
	}

	if _, err := ParseEvent(body, sign(body, "other"), secret); !errors.Is(err, domain.ErrWebhookVerificationFailed) {
		t.Fatalf("tampered: err = %v", err)
	}
}

func TestCreateCheckout(t *testing.T) {
	var gotReq checkoutRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkouts" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "application/vnd.api+json" {
			t.Errorf("content-type = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode: %v", err)
		}
		_, _ = w.Write([]byte(`{"data":{"attributes":{"url":"https://checkout.example.com/c/abc"}}}`))
	}))
	defer srv.Close()

	c := NewCheckoutClient(srv.URL, "lsk_test", "store_1", "variant_1", "https://app.example.com")
	url, err := c.CreateCheckout(context.Background(), "audit_7_q", "buyer@example.com", 999)
	if err != nil {
		t.Fatalf("create checkout: %v", err)
	}
	if url != "https://checkout.example.com/c/abc" {
		t.Fatalf("url = %q", url)
	}
	if got := gotReq.Data.Attributes.CheckoutData.Custom["audit_id"]; got != "audit_7_q" {
		t.Fatalf("custom audit_id = %q", got)
	}
	if gotReq.Data.Attributes.CustomPrice != 999 {
		t.Fatalf("custom price = %d", gotReq.Data.Attributes.CustomPrice)
	}
	if !strings.HasSuffix(gotReq.Data.Attributes.ProductOptions.RedirectURL, "/results/audit_7_q?payment=success") {
		t.Fatalf("redirect = %q", gotReq.Data.Attributes.ProductOptions.RedirectURL)
	}
	if gotReq.Data.Relationships.Store.Data.ID != "store_1" || gotReq.Data.Relationships.Variant.Data.ID != "variant_1" {
		t.Fatalf("relationships = %+v", gotReq.Data.Relationships)
	}
}

func TestCreateCheckoutProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":[{"detail":"variant not found"}]}`))
	}))
	defer srv.Close()

	c := NewCheckoutClient(srv.URL, "lsk_test", "store_1", "bad_variant", "https://app.example.com")
	_, err := c.CreateCheckout(context.Background(), "audit_1_x", "buyer@example.com", 1499)
	apiErr := &APIError{}
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T %v, want *APIError", err, err)
	}
	if apiErr.Message != "variant not found" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}
