package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultCheckoutBaseURL = "https://api.lemonsqueezy.com"

// CheckoutClient creates hosted checkout sessions with the payment provider.
type CheckoutClient struct {
	baseURL    string
	apiKey     string
	storeID    string
	variantID  string
	appURL     string
	httpClient *http.Client
}

// APIError represents a payment provider error response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewCheckoutClient constructs a checkout client. baseURL may be empty for
// the hosted service.
func NewCheckoutClient(baseURL, apiKey, storeID, variantID, appURL string) *CheckoutClient {
	if baseURL == "" {
		baseURL = defaultCheckoutBaseURL
	}
	return &CheckoutClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		storeID:    storeID,
		variantID:  variantID,
		appURL:     strings.TrimRight(appURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// The provider speaks JSON:API; the request shape below is the minimum it
// accepts for a custom-priced checkout.

type checkoutRequest struct {
	Data checkoutData `json:"data"`
}

type checkoutData struct {
	Type          string               `json:"type"`
	Attributes    checkoutAttributes   `json:"attributes"`
	Relationships checkoutRelationship `json:"relationships"`
}

type checkoutAttributes struct {
	CheckoutData    checkoutCustomerData `json:"checkout_data"`
	ProductOptions  productOptions       `json:"product_options"`
	CheckoutOptions checkoutOptions      `json:"checkout_options"`
	CustomPrice     int                  `json:"custom_price,omitempty"`
}

type checkoutCustomerData struct {
	Email  string            `json:"email"`
	Custom map[string]string `json:"custom"`
}

type productOptions struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	RedirectURL string `json:"redirect_url"`
}

type checkoutOptions struct {
	ButtonColor string `json:"button_color"`
}

type checkoutRelationship struct {
	Store   relationshipRef `json:"store"`
	Variant relationshipRef `json:"variant"`
}

type relationshipRef struct {
	Data relationshipData `json:"data"`
}

type relationshipData struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type checkoutResponse struct {
	Data struct {
		Attributes struct {
			URL string `json:"url"`
		} `json:"attributes"`
	} `json:"data"`
}

// CreateCheckout opens a checkout session for one audit and returns the
// hosted payment URL. The audit id rides along as custom data so the webhook
// can tie the order back.
func (c *CheckoutClient) CreateCheckout(ctx context.Context, auditID, userEmail string, priceCents int) (string, error) {
	payload := checkoutRequest{
		Data: checkoutData{
			Type: "checkouts",
			Attributes: checkoutAttributes{
				CheckoutData: checkoutCustomerData{
					Email:  userEmail,
					Custom: map[string]string{"audit_id": auditID},
				},
				ProductOptions: productOptions{
					Name:        "Psychology Today Profile Audit - Full PDF",
					Description: "Comprehensive PDF audit with all 11 sections including competitor analysis, revenue projections, and implementation roadmap.",
					RedirectURL: fmt.Sprintf("%s/results/%s?payment=success", c.appURL, auditID),
				},
				CheckoutOptions: checkoutOptions{ButtonColor: "#10b981"},
				CustomPrice:     priceCents,
			},
			Relationships: checkoutRelationship{
				Store:   relationshipRef{Data: relationshipData{Type: "stores", ID: c.storeID}},
				Variant: relationshipRef{Data: relationshipData{Type: "variants", ID: c.variantID}},
			},
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/checkouts", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.api+json")
	req.Header.Set("Content-Type", "application/vnd.api+json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var errResp struct {
			Errors []struct {
				Detail string `json:"detail"`
			} `json:"errors"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		msg := resp.Status
		if len(errResp.Errors) > 0 && errResp.Errors[0].Detail != "" {
			msg = errResp.Errors[0].Detail
		}
		return "", &APIError{Status: resp.StatusCode, Message: msg}
	}

	var out checkoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Data.Attributes.URL == "" {
		return "", &APIError{Status: resp.StatusCode, Message: "checkout response missing url"}
	}
	return out.Data.Attributes.URL, nil
}
