package mail

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/waleedan253-cmd/Moxiepro/internal/util"
	"github.com/waleedan253-cmd/Moxiepro/pkg/domain"
)

// Mailer renders and sends the product's transactional emails. All sends are
// best effort: callers log failures and move on, a mail outage never blocks
// an audit or a payment.
type Mailer struct {
	sender Sender
	appURL string
	now    func() time.Time
}

// NewMailer wires a sender with the public app URL used in result links.
func NewMailer(sender Sender, appURL string) *Mailer {
	return &Mailer{sender: sender, appURL: appURL, now: time.Now}
}

func (m *Mailer) resultsURL(auditID string) string {
	return fmt.Sprintf("%s/results/%s", m.appURL, auditID)
}

// SendAuditResults delivers the free results summary after generation.
func (m *Mailer) SendAuditResults(ctx context.Context, to string, audit domain.Audit) error {
	html, err := renderAuditResults(audit, m.resultsURL(audit.ID), m.now())
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Your Psychology Today Profile Audit Results - Score: %d/100", audit.AuditData.OverallScore)
	id, err := m.sender.Send(ctx, to, subject, html)
	if err != nil {
		return err
	}
	slog.Info("mail.audit_results_sent", "to", util.MaskEmail(to), "audit_id", audit.ID, "message_id", id)
	return nil
}

// SendPaymentConfirmation delivers the PDF download link after a successful
// payment.
func (m *Mailer) SendPaymentConfirmation(ctx context.Context, to string, audit domain.Audit, pdfURL string) error {
	html, err := renderPaymentConfirmation(audit, pdfURL, m.resultsURL(audit.ID))
	if err != nil {
		return err
	}
	id, err := m.sender.Send(ctx, to, "Your Full Audit Report Is Ready", html)
	if err != nil {
		return err
	}
	slog.Info("mail.payment_confirmation_sent", "to", util.MaskEmail(to), "audit_id", audit.ID, "message_id", id)
	return nil
}

// SendPaymentFailed notifies the user that a charge did not go through.
func (m *Mailer) SendPaymentFailed(ctx context.Context, to string) error {
	html, err := renderPaymentFailed()
	if err != nil {
		return err
	}
	id, err := m.sender.Send(ctx, to, "Payment Issue With Your Audit Report", html)
	if err != nil {
		return err
	}
	slog.Info("mail.payment_failed_sent", "to", util.MaskEmail(to), "message_id", id)
	return nil
}
