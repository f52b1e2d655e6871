package domain

import "net/http"

// APIError is a domain error that carries the HTTP status it maps to.
// Errors of this type propagate unchanged to the request boundary; anything
// else is converted there to a generic internal error.
type APIError struct {
	Code    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

var (
	ErrRateLimitExceeded = &APIError{
		Code:    "RATE_LIMIT_EXCEEDED",
		Status:  http.StatusTooManyRequests,
		Message: "Rate limit exceeded. You can only perform 3 audits per day.",
	}
	ErrInvalidURL = &APIError{
		Code:    "INVALID_URL",
		Status:  http.StatusBadRequest,
		Message: "Invalid Psychology Today profile URL.",
	}
	ErrInvalidEmail = &APIError{
		Code:    "INVALID_EMAIL",
		Status:  http.StatusBadRequest,
		Message: "Invalid email address.",
	}
	ErrMissingParameter = &APIError{
		Code:    "MISSING_PARAMETER",
		Status:  http.StatusBadRequest,
		Message: "Required parameter is missing.",
	}
	ErrInsufficientData = &APIError{
		Code:    "INSUFFICIENT_DATA",
		Status:  http.StatusBadRequest,
		Message: "Unable to extract sufficient profile data. The profile may be incomplete, private, or blocked.",
	}
	ErrScrapingFailed = &APIError{
		Code:    "SCRAPING_FAILED",
		Status:  http.StatusInternalServerError,
		Message: "Failed to scrape the profile. Please verify the URL is correct.",
	}
	ErrGenerationFailed = &APIError{
		Code:    "GENERATION_FAILED",
		Status:  http.StatusInternalServerError,
		Message: "Failed to generate audit. Please try again.",
	}
	ErrParse = &APIError{
		Code:    "PARSE_ERROR",
		Status:  http.StatusInternalServerError,
		Message: "Failed to parse audit results.",
	}
	ErrAuditNotFound = &APIError{
		Code:    "AUDIT_NOT_FOUND",
		Status:  http.StatusNotFound,
		Message: "Audit not found or has expired.",
	}
	ErrAuditExpired = &APIError{
		Code:    "AUDIT_EXPIRED",
		Status:  http.StatusGone,
		Message: "This audit has expired. Please generate a new one.",
	}
	ErrPaymentFailed = &APIError{
		Code:    "PAYMENT_FAILED",
		Status:  http.StatusPaymentRequired,
		Message: "Payment processing failed. Please try again.",
	}
	ErrWebhookVerificationFailed = &APIError{
		Code:    "WEBHOOK_VERIFICATION_FAILED",
		Status:  http.StatusUnauthorized,
		Message: "Webhook signature verification failed.",
	}
	ErrDatabase = &APIError{
		Code:    "DATABASE_ERROR",
		Status:  http.StatusInternalServerError,
		Message: "Database operation failed. Please try again.",
	}
)
