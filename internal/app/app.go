package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/waleedan253-cmd/Moxiepro/internal/ratelimit"
	"github.com/waleedan253-cmd/Moxiepro/internal/util"
	"github.com/waleedan253-cmd/Moxiepro/pkg/domain"
	"github.com/waleedan253-cmd/Moxiepro/pkg/payment"
	"github.com/waleedan253-cmd/Moxiepro/pkg/pdf"
	"github.com/waleedan253-cmd/Moxiepro/pkg/storage"
	"github.com/waleedan253-cmd/Moxiepro/pkg/store"
)

// Ports the orchestrator depends on. Concrete implementations live in their
// own packages; tests substitute fakes.

type ProfileExtractor interface {
	Extract(ctx context.Context, profileURL string) (domain.ProfileRecord, error)
}

type AuditGenerator interface {
	Generate(ctx context.Context, record domain.ProfileRecord) (domain.AuditData, error)
}

type RateLimiter interface {
	Check(ctx context.Context, clientID string) (ratelimit.Result, error)
}

type Mailer interface {
	SendAuditResults(ctx context.Context, to string, audit domain.Audit) error
	SendPaymentConfirmation(ctx context.Context, to string, audit domain.Audit, pdfURL string) error
	SendPaymentFailed(ctx context.Context, to string) error
}

type CheckoutCreator interface {
	CreateCheckout(ctx context.Context, auditID, userEmail string, priceCents int) (string, error)
}

// Config carries the orchestrator's tunables.
type Config struct {
	// EnforceRateLimit controls whether exceeding the daily cap rejects the
	// request or only logs.
	EnforceRateLimit bool
}

// App wires the audit pipeline: scrape, generate, persist, monetize.
type App struct {
	cfg       Config
	audits    *store.AuditRepository
	users     *store.UserDirectory
	limiter   RateLimiter
	extractor ProfileExtractor
	generator AuditGenerator
	reports   storage.ReportStore
	mailer    Mailer
	checkout  CheckoutCreator

	renderPDF func(domain.Audit) ([]byte, error)
	inflight  singleflight.Group
	now       func() time.Time
}

// New assembles the application.
func New(cfg Config, audits *store.AuditRepository, users *store.UserDirectory,
	limiter RateLimiter, extractor ProfileExtractor, generator AuditGenerator,
	reports storage.ReportStore, mailer Mailer, checkout CheckoutCreator) *App {
	return &App{
		cfg:       cfg,
		audits:    audits,
		users:     users,
		limiter:   limiter,
		extractor: extractor,
		generator: generator,
		reports:   reports,
		mailer:    mailer,
		checkout:  checkout,
		renderPDF: pdf.Render,
		now:       time.Now,
	}
}

// CreateAuditInput is one audit request.
type CreateAuditInput struct {
	ProfileURL   string
	Email        string
	ReferralCode string
	ClientID     string
}

// CreateAuditResult is the response payload for audit creation.
type CreateAuditResult struct {
	Audit           domain.Audit `json:"audit"`
	Cached          bool         `json:"cached"`
	RemainingAudits int          `json:"remainingAudits"`
	ReferralCode    string       `json:"referralCode"`
}

// CreateAudit runs the full pipeline for one profile URL. Recent audits of
// the same URL are served from cache without scraping; concurrent requests
// for one URL share a single scrape.
func (a *App) CreateAudit(ctx context.Context, in CreateAuditInput) (CreateAuditResult, error) {
	if strings.TrimSpace(in.ProfileURL) == "" || strings.TrimSpace(in.Email) == "" {
		return CreateAuditResult{}, domain.ErrMissingParameter
	}
	if err := ValidateProfileURL(in.ProfileURL); err != nil {
		return CreateAuditResult{}, err
	}
	if err := ValidateEmail(in.Email); err != nil {
		return CreateAuditResult{}, err
	}

	remaining := 0
	limit, err := a.limiter.Check(ctx, in.ClientID)
	switch {
	case err != nil:
		// A limiter outage must not take audit creation down with it.
		slog.Warn("audit.ratelimit_unavailable", "err", err)
		remaining = -1
	case !limit.Allowed && a.cfg.EnforceRateLimit:
		return CreateAuditResult{}, domain.ErrRateLimitExceeded
	case !limit.Allowed:
		slog.Warn("audit.ratelimit_soft_exceeded", "client_id", in.ClientID)
	default:
		remaining = limit.Remaining
	}

	user, err := a.users.GetOrCreate(ctx, in.Email)
	if err != nil {
		return CreateAuditResult{}, err
	}

	if audit, ok := a.cachedAudit(ctx, in.ProfileURL); ok {
		if err := a.users.AppendAudit(ctx, user.Email, audit.ID); err != nil {
			slog.Warn("audit.append_failed", "audit_id", audit.ID, "err", err)
		}
		slog.Info("audit.cache_hit", "audit_id", audit.ID, "email", util.MaskEmail(user.Email))
		return CreateAuditResult{Audit: audit, Cached: true, RemainingAudits: remaining, ReferralCode: user.ReferralCode}, nil
	}

	// Referral credits are only earned on a fresh audit, never a cache hit.
	a.attributeReferral(ctx, user, in.ReferralCode)

	// The pipeline is detached from the request context: once a scrape is
	// underway it runs to completion even if the submitting client (or the
	// coalescing leader) disconnects. The extractor and generator carry
	// their own timeouts.
	pipelineCtx := context.WithoutCancel(ctx)
	key := store.NormalizeURL(in.ProfileURL)
	v, err, shared := a.inflight.Do(key, func() (any, error) {
		return a.runPipeline(pipelineCtx, in.ProfileURL, user.Email)
	})
	if err != nil {
		return CreateAuditResult{}, err
	}
	audit := v.(domain.Audit)

	if err := a.users.AppendAudit(ctx, user.Email, audit.ID); err != nil {
		slog.Warn("audit.append_failed", "audit_id", audit.ID, "err", err)
	}
	if err := a.mailer.SendAuditResults(ctx, user.Email, audit); err != nil {
		slog.Warn("audit.results_email_failed", "audit_id", audit.ID, "err", err)
	}

	return CreateAuditResult{Audit: audit, Cached: shared, RemainingAudits: remaining, ReferralCode: user.ReferralCode}, nil
}

// runPipeline is the non-cached path: scrape, generate, persist.
func (a *App) runPipeline(ctx context.Context, profileURL, email string) (domain.Audit, error) {
	started := a.now()
	record, err := a.extractor.Extract(ctx, profileURL)
	if err != nil {
		return domain.Audit{}, err
	}
	if !record.Sufficient() {
		return domain.Audit{}, fmt.Errorf("%w: profile %s", domain.ErrInsufficientData, profileURL)
	}

	data, err := a.generator.Generate(ctx, record)
	if err != nil {
		return domain.Audit{}, err
	}

	audit, err := a.audits.Save(ctx, profileURL, email, data)
	if err != nil {
		return domain.Audit{}, err
	}
	slog.Info("audit.created",
		"audit_id", audit.ID,
		"score", data.OverallScore,
		"email", util.MaskEmail(email),
		"duration_ms", a.now().Sub(started).Milliseconds())
	return audit, nil
}

// attributeReferral credits the code owner once per referred user. Self
// referrals and repeat attributions are ignored. Attribution failures are
// logged, never fatal: the audit matters more than the credit.
func (a *App) attributeReferral(ctx context.Context, user domain.User, code string) {
	code = strings.TrimSpace(code)
	if code == "" || user.ReferredBy != "" {
		return
	}
	referrer, found, err := a.users.ResolveReferralCode(ctx, code)
	if err != nil {
		slog.Warn("referral.resolve_failed", "code", code, "err", err)
		return
	}
	if !found || referrer.Email == user.Email {
		return
	}
	if err := a.users.MarkReferred(ctx, user.Email, referrer.Email); err != nil {
		slog.Warn("referral.mark_failed", "err", err)
		return
	}
	if err := a.users.CreditReferral(ctx, referrer.Email); err != nil {
		slog.Warn("referral.credit_failed", "err", err)
		return
	}
	slog.Info("referral.credited",
		"referrer", util.MaskEmail(referrer.Email),
		"referred", util.MaskEmail(user.Email))
}

func (a *App) cachedAudit(ctx context.Context, profileURL string) (domain.Audit, bool) {
	id, found, err := a.audits.FindByURL(ctx, profileURL)
	if err != nil || !found {
		if err != nil {
			slog.Warn("audit.url_index_lookup_failed", "err", err)
		}
		return domain.Audit{}, false
	}
	audit, found, err := a.audits.Get(ctx, id)
	if err != nil || !found {
		return domain.Audit{}, false
	}
	// The index can outlive the audit by a hair; check the record's own clock.
	if audit.Expired(a.now()) {
		return domain.Audit{}, false
	}
	return audit, true
}

// GetAuditResult carries an audit plus the derived PDF-window state.
type GetAuditResult struct {
	Audit      domain.Audit `json:"audit"`
	PDFExpired bool         `json:"pdfExpired"`
}

// GetAudit fetches an audit by id, distinguishing missing from expired.
func (a *App) GetAudit(ctx context.Context, id string) (GetAuditResult, error) {
	if strings.TrimSpace(id) == "" {
		return GetAuditResult{}, domain.ErrMissingParameter
	}
	audit, found, err := a.audits.Get(ctx, id)
	if err != nil {
		return GetAuditResult{}, err
	}
	if !found {
		return GetAuditResult{}, domain.ErrAuditNotFound
	}
	now := a.now()
	if audit.Expired(now) {
		return GetAuditResult{}, domain.ErrAuditExpired
	}
	return GetAuditResult{Audit: audit, PDFExpired: audit.PDFExpired(now)}, nil
}

// GeneratePDFResult describes a stored report.
type GeneratePDFResult struct {
	PDFURL    string `json:"pdfUrl"`
	SizeBytes int    `json:"sizeBytes"`
}

// GeneratePDF renders the full report, stores it and returns a download link.
func (a *App) GeneratePDF(ctx context.Context, auditID string) (GeneratePDFResult, error) {
	audit, found, err := a.audits.Get(ctx, auditID)
	if err != nil {
		return GeneratePDFResult{}, err
	}
	if !found {
		return GeneratePDFResult{}, domain.ErrAuditNotFound
	}
	raw, err := a.renderPDF(audit)
	if err != nil {
		return GeneratePDFResult{}, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	if err := a.reports.PutReport(ctx, audit.ID, raw); err != nil {
		return GeneratePDFResult{}, err
	}
	url, err := a.reports.ReportURL(ctx, audit.ID, store.PDFTTL)
	if err != nil {
		return GeneratePDFResult{}, err
	}
	slog.Info("pdf.generated", "audit_id", audit.ID, "size_bytes", len(raw))
	return GeneratePDFResult{PDFURL: url, SizeBytes: len(raw)}, nil
}

// CreatePaymentResult is the response payload for checkout creation.
type CreatePaymentResult struct {
	AlreadyPaid   bool   `json:"alreadyPaid,omitempty"`
	PDFURL        string `json:"pdfUrl,omitempty"`
	CheckoutURL   string `json:"checkoutUrl,omitempty"`
	FinalCents    int    `json:"finalCents"`
	DiscountCents int    `json:"discountCents"`
}

// CreatePayment opens a checkout for the full report, applying the buyer's
// referral credits. An already-paid audit short-circuits with its PDF link.
func (a *App) CreatePayment(ctx context.Context, auditID, email string) (CreatePaymentResult, error) {
	if strings.TrimSpace(auditID) == "" || strings.TrimSpace(email) == "" {
		return CreatePaymentResult{}, domain.ErrMissingParameter
	}
	if err := ValidateEmail(email); err != nil {
		return CreatePaymentResult{}, err
	}
	audit, found, err := a.audits.Get(ctx, auditID)
	if err != nil {
		return CreatePaymentResult{}, err
	}
	if !found {
		return CreatePaymentResult{}, domain.ErrAuditNotFound
	}
	if audit.IsPaid {
		return CreatePaymentResult{AlreadyPaid: true, PDFURL: audit.PDFURL}, nil
	}

	user, err := a.users.GetOrCreate(ctx, email)
	if err != nil {
		return CreatePaymentResult{}, err
	}
	finalCents, discountCents := payment.Quote(user.ReferralCredits)

	checkoutURL, err := a.checkout.CreateCheckout(ctx, audit.ID, user.Email, finalCents)
	if err != nil {
		slog.Error("payment.checkout_failed", "audit_id", audit.ID, "err", err)
		return CreatePaymentResult{}, fmt.Errorf("%w: %v", domain.ErrPaymentFailed, err)
	}
	slog.Info("payment.checkout_created",
		"audit_id", audit.ID,
		"final_cents", finalCents,
		"discount_cents", discountCents,
		"email", util.MaskEmail(user.Email))
	return CreatePaymentResult{CheckoutURL: checkoutURL, FinalCents: finalCents, DiscountCents: discountCents}, nil
}

// HandleWebhook reacts to a verified payment event. Unknown events are
// acknowledged and logged; provider retries want a 200, not an error.
func (a *App) HandleWebhook(ctx context.Context, event payment.Event) error {
	switch {
	case event.IsPaymentSuccess():
		return a.handlePaymentSuccess(ctx, event)
	case event.Meta.EventName == payment.EventPaymentFailed:
		email := event.Data.Attributes.UserEmail
		if email != "" {
			if err := a.mailer.SendPaymentFailed(ctx, email); err != nil {
				slog.Warn("payment.failed_email_error", "err", err)
			}
		}
		return nil
	default:
		slog.Info("webhook.unhandled_event", "event", event.Meta.EventName)
		return nil
	}
}

func (a *App) handlePaymentSuccess(ctx context.Context, event payment.Event) error {
	auditID := event.AuditID()
	if auditID == "" {
		slog.Error("webhook.missing_audit_id", "order_id", event.Data.ID)
		return nil
	}
	audit, found, err := a.audits.Get(ctx, auditID)
	if err != nil {
		return err
	}
	if !found {
		slog.Error("webhook.audit_not_found", "audit_id", auditID)
		return nil
	}

	result, err := a.GeneratePDF(ctx, auditID)
	if err != nil {
		return err
	}
	paid, err := a.audits.MarkPaid(ctx, auditID, result.PDFURL)
	if err != nil {
		return err
	}

	email := event.Data.Attributes.UserEmail
	if email == "" {
		email = audit.UserEmail
	}
	if err := a.mailer.SendPaymentConfirmation(ctx, email, paid, result.PDFURL); err != nil {
		slog.Warn("payment.confirmation_email_failed", "audit_id", auditID, "err", err)
	}
	slog.Info("payment.processed", "audit_id", auditID, "email", util.MaskEmail(email))
	return nil
}
