package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/waleedan253-cmd/Moxiepro/pkg/domain"
)

func TestClientSend(t *testing.T) {
	var gotAuth string
	var gotReq sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/emails" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(sendResponse{ID: "msg_123"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "re_testkey", "PT Profile Audit <audit@example.com>")
	id, err := c.Send(context.Background(), "user@example.com", "Hello", "<p>hi</p>")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if id != "msg_123" {
		t.Fatalf("id = %q", id)
	}
	if gotAuth != "Bearer re_testkey" {
		t.Fatalf("auth = %q", gotAuth)
	}
	if len(gotReq.To) != 1 || gotReq.To[0] != "user@example.com" {
		t.Fatalf("to = %v", gotReq.To)
	}
	if gotReq.From != "PT Profile Audit <audit@example.com>" {
		t.Fatalf("from = %q", gotReq.From)
	}
}

func TestClientSendErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "re_testkey", "bad")
	_, err := c.Send(context.Background(), "user@example.com", "Hello", "<p>hi</p>")
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("err = %T %v, want *APIError", err, err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity || apiErr.Message != "invalid from address" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestRenderAuditResultsEscapesContent(t *testing.T) {
	audit := domain.Audit{
		ID: "audit_1_x",
		AuditData: domain.AuditData{
			OverallScore:     55,
			PerformanceLevel: domain.LevelBelowAverage,
			ExecutiveSummary: domain.ExecutiveSummary{
				CurrentState: `Profile mentions <script>alert("x")</script> content.`,
				KeyFindings:  []string{"Finding one"},
			},
		},
	}
	html, err := renderAuditResults(audit, "https://app.example.com/results/audit_1_x", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatal("model-provided content must be escaped")
	}
	if !strings.Contains(html, "55") || !strings.Contains(html, domain.LevelBelowAverage) {
		t.Fatal("score and level should appear in the email")
	}
	if !strings.Contains(html, "https://app.example.com/results/audit_1_x") {
		t.Fatal("results link missing")
	}
}

func TestRenderPaymentConfirmationCarriesLinks(t *testing.T) {
	audit := domain.Audit{
		ID:        "audit_2_y",
		AuditData: domain.AuditData{OverallScore: 81, PerformanceLevel: domain.LevelAboveAverage},
	}
	html, err := renderPaymentConfirmation(audit, "https://cdn.example.com/r.pdf", "https://app.example.com/results/audit_2_y")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"https://cdn.example.com/r.pdf", "https://app.example.com/results/audit_2_y", "81"} {
		if !strings.Contains(html, want) {
			t.Fatalf("email missing %q", want)
		}
	}
}
