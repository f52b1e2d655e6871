package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/waleedan253-cmd/Moxiepro/internal/app"
	"github.com/waleedan253-cmd/Moxiepro/internal/util"
	"github.com/waleedan253-cmd/Moxiepro/pkg/domain"
	"github.com/waleedan253-cmd/Moxiepro/pkg/payment"
)

const maxBodyBytes = 1 << 20

// Config wires required dependencies for the HTTP server.
type Config struct {
	App           *app.App
	WebhookSecret string
	// AllowedOrigin is the browser frontend's origin, typically the app URL.
	AllowedOrigin string
}

// Server exposes the audit API over HTTP.
type Server struct {
	app           *app.App
	webhookSecret string
	allowedOrigin string
	mux           *http.ServeMux
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	s := &Server{
		app:           cfg.App,
		webhookSecret: cfg.WebhookSecret,
		allowedOrigin: cfg.AllowedOrigin,
		mux:           http.NewServeMux(),
	}
	s.routes()
	return s
}

// Router returns the configured handler with the middleware chain applied.
func (s *Server) Router() http.Handler {
	return util.WithCORS(s.allowedOrigin,
		util.WithSecurityHeaders(
			util.WithRequestLog(s.mux)))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/api/create-audit", s.handleCreateAudit)
	s.mux.HandleFunc("/api/get-audit", s.handleGetAudit)
	s.mux.HandleFunc("/api/generate-pdf", s.handleGeneratePDF)
	s.mux.HandleFunc("/api/create-payment", s.handleCreatePayment)
	s.mux.HandleFunc("/api/webhook", s.handleWebhook)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createAuditRequest struct {
	ProfileURL   string `json:"profileUrl"`
	Email        string `json:"userEmail"`
	ReferralCode string `json:"referralCode"`
}

func (s *Server) handleCreateAudit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req createAuditRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeAPIError(w, domain.ErrMissingParameter)
		return
	}
	result, err := s.app.CreateAudit(r.Context(), app.CreateAuditInput{
		ProfileURL:   req.ProfileURL,
		Email:        req.Email,
		ReferralCode: req.ReferralCode,
		ClientID:     util.ClientIP(r),
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

func (s *Server) handleGetAudit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	result, err := s.app.GetAudit(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

type generatePDFRequest struct {
	AuditID string `json:"auditId"`
}

func (s *Server) handleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req generatePDFRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil || req.AuditID == "" {
		writeAPIError(w, domain.ErrMissingParameter)
		return
	}
	result, err := s.app.GeneratePDF(r.Context(), req.AuditID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

type createPaymentRequest struct {
	AuditID   string `json:"auditId"`
	UserEmail string `json:"userEmail"`
}

func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req createPaymentRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeAPIError(w, domain.ErrMissingParameter)
		return
	}
	result, err := s.app.CreatePayment(r.Context(), req.AuditID, req.UserEmail)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

// handleWebhook verifies the provider signature over the raw body before any
// JSON decoding happens.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	rawBody, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeAPIError(w, domain.ErrWebhookVerificationFailed)
		return
	}
	event, err := payment.ParseEvent(rawBody, r.Header.Get("X-Signature"), s.webhookSecret)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if err := s.app.HandleWebhook(r.Context(), event); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeAPIError(w, &domain.APIError{
		Code:    "METHOD_NOT_ALLOWED",
		Status:  http.StatusMethodNotAllowed,
		Message: "Method not allowed.",
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type dataEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dataEnvelope{Success: true, Data: data})
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

func writeAPIError(w http.ResponseWriter, apiErr *domain.APIError) {
	writeJSON(w, apiErr.Status, errorEnvelope{Error: errorBody{
		Code:       apiErr.Code,
		Message:    apiErr.Message,
		StatusCode: apiErr.Status,
	}})
}

// writeAppError maps a domain error to its HTTP shape. Anything that is not
// an APIError is an internal failure and stays opaque to the client.
func writeAppError(w http.ResponseWriter, err error) {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		writeAPIError(w, apiErr)
		return
	}
	slog.Error("server.internal_error", "err", err)
	writeAPIError(w, &domain.APIError{
		Code:    "INTERNAL_ERROR",
		Status:  http.StatusInternalServerError,
		Message: "An unexpected error occurred. Please try again.",
	})
}
