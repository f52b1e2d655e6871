package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/waleedan253-cmd/Moxiepro/pkg/domain"
)

// Webhook event names the provider sends that this service reacts to.
const (
	EventOrderCreated   = "order_created"
	EventPaymentSuccess = "subscription_payment_success"
	EventPaymentFailed  = "subscription_payment_failed"
)

// Event is a decoded provider webhook.
type Event struct {
	Meta struct {
		EventName string `json:"event_name"`
	} `json:"meta"`
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			UserEmail      string `json:"user_email"`
			FirstOrderItem struct {
				ProductCustomData map[string]string `json:"product_custom_data"`
			} `json:"first_order_item"`
		} `json:"attributes"`
	} `json:"data"`
}

// AuditID returns the audit id attached to the checkout, if any.
func (e Event) AuditID() string {
	return e.Data.Attributes.FirstOrderItem.ProductCustomData["audit_id"]
}

// IsPaymentSuccess reports whether the event confirms a completed payment.
func (e Event) IsPaymentSuccess() bool {
	return e.Meta.EventName == EventOrderCreated || e.Meta.EventName == EventPaymentSuccess
}

// VerifySignature checks the provider's HMAC-SHA256 hex signature over the
// raw body. Comparison is constant time.
func VerifySignature(rawBody []byte, signature, secret string) error {
	if signature == "" {
		return fmt.Errorf("%w: missing signature", domain.ErrWebhookVerificationFailed)
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return fmt.Errorf("%w: signature mismatch", domain.ErrWebhookVerificationFailed)
	}
	return nil
}

// ParseEvent verifies the signature and decodes the webhook body.
func ParseEvent(rawBody []byte, signature, secret string) (Event, error) {
	if err := VerifySignature(rawBody, signature, secret); err != nil {
		return Event{}, err
	}
	var event Event
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return Event{}, fmt.Errorf("%w: malformed body: %v", domain.ErrWebhookVerificationFailed, err)
	}
	return event, nil
}
