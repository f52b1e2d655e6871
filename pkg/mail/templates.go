package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/waleedan253-cmd/Moxiepro/pkg/domain"
)

// Templates are inline rather than on-disk: they change with the code that
// fills them, and inline keeps the binary self-contained.

var auditResultsTmpl = template.Must(template.New("auditResults").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Your Profile Audit Results</title></head>
<body style="margin:0;padding:0;font-family:-apple-system,'Segoe UI',Roboto,Arial,sans-serif;background-color:#f3f4f6;">
  <table width="100%" cellpadding="0" cellspacing="0" style="background-color:#f3f4f6;padding:40px 20px;">
    <tr><td align="center"><table width="100%" style="max-width:600px;" cellpadding="0" cellspacing="0">
      <tr><td style="background:#667eea;padding:40px 30px;border-radius:12px 12px 0 0;text-align:center;">
        <h1 style="color:#ffffff;margin:0;font-size:28px;">Your Profile Audit Results</h1>
        <p style="color:#e0e7ff;margin:10px 0 0 0;font-size:16px;">Psychology Today Profile Analysis</p>
      </td></tr>
      <tr><td style="background:#ffffff;padding:40px 30px;text-align:center;">
        <div style="background-color:{{.ScoreColor}};color:white;width:120px;height:120px;border-radius:60px;margin:0 auto;display:inline-block;line-height:120px;font-size:42px;font-weight:700;">{{.Score}}</div>
        <h2 style="color:#1f2937;margin:24px 0 10px 0;font-size:24px;">{{.PerformanceLevel}}</h2>
        <p style="color:#6b7280;margin:0;font-size:16px;line-height:1.6;">{{.CurrentState}}</p>
      </td></tr>
      {{if .KeyFindings}}
      <tr><td style="background:#ffffff;padding:0 30px 30px 30px;">
        <h3 style="color:#1f2937;margin:0 0 16px 0;font-size:20px;">Key Findings</h3>
        <ul style="color:#4b5563;margin:0;padding-left:20px;line-height:1.8;">
          {{range .KeyFindings}}<li style="margin-bottom:8px;">{{.}}</li>{{end}}
        </ul>
        {{if .PotentialImpact}}
        <div style="margin-top:20px;padding:16px;background-color:#ecfdf5;border-left:4px solid #10b981;">
          <p style="color:#065f46;margin:0;font-weight:600;">{{.PotentialImpact}}</p>
        </div>
        {{end}}
      </td></tr>
      {{end}}
      {{if .TopIssues}}
      <tr><td style="background:#fef2f2;padding:30px;">
        <h3 style="color:#991b1b;margin:0 0 20px 0;font-size:20px;">Top Critical Issues</h3>
        {{range $i, $issue := .TopIssues}}
        <div style="margin-bottom:16px;padding:16px;background-color:#ffffff;border-left:4px solid #f97316;border-radius:6px;">
          <h4 style="margin:0 0 10px 0;color:#1f2937;font-size:16px;">{{$issue.Title}}</h4>
          <p style="margin:0 0 10px 0;color:#6b7280;font-size:14px;"><strong>Impact:</strong> {{$issue.Impact}}</p>
          <p style="margin:0;color:#059669;font-size:14px;"><strong>Fix:</strong> {{$issue.Recommendation}}</p>
        </div>
        {{end}}
      </td></tr>
      {{end}}
      <tr><td style="background:#ffffff;padding:40px 30px;text-align:center;border-radius:0 0 12px 12px;">
        <a href="{{.ResultsURL}}" style="display:inline-block;background:#667eea;color:#ffffff;padding:16px 40px;text-decoration:none;border-radius:8px;font-size:18px;font-weight:700;">View Full Audit Report</a>
      </td></tr>
      <tr><td style="padding:20px 0;text-align:center;">
        <p style="color:#9ca3af;margin:0;font-size:12px;">&copy; {{.Year}} PT Profile Audit. Generated {{.Date}}</p>
      </td></tr>
    </table></td></tr>
  </table>
</body>
</html>`))

var paymentConfirmationTmpl = template.Must(template.New("paymentConfirmation").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Your Full Report Is Ready</title></head>
<body style="margin:0;padding:0;font-family:-apple-system,'Segoe UI',Roboto,Arial,sans-serif;background-color:#f3f4f6;">
  <table width="100%" cellpadding="0" cellspacing="0" style="background-color:#f3f4f6;padding:40px 20px;">
    <tr><td align="center"><table width="100%" style="max-width:600px;" cellpadding="0" cellspacing="0">
      <tr><td style="background:#10b981;padding:40px 30px;border-radius:12px 12px 0 0;text-align:center;">
        <h1 style="color:#ffffff;margin:0;font-size:28px;">Payment Confirmed</h1>
      </td></tr>
      <tr><td style="background:#ffffff;padding:40px 30px;text-align:center;">
        <p style="color:#1f2937;font-size:16px;line-height:1.6;margin:0 0 24px 0;">
          Thank you for your purchase. Your full audit report (score: {{.Score}}/100, {{.PerformanceLevel}}) is ready to download.
        </p>
        <a href="{{.PDFURL}}" style="display:inline-block;background:#10b981;color:#ffffff;padding:16px 40px;text-decoration:none;border-radius:8px;font-size:18px;font-weight:700;">Download PDF Report</a>
        <p style="color:#6b7280;margin:24px 0 0 0;font-size:14px;">You can also view your results online anytime:</p>
        <p style="margin:8px 0 0 0;"><a href="{{.ResultsURL}}" style="color:#667eea;">{{.ResultsURL}}</a></p>
      </td></tr>
      <tr><td style="padding:20px 0;text-align:center;">
        <p style="color:#9ca3af;margin:0;font-size:12px;">The download link stays valid for 60 days.</p>
      </td></tr>
    </table></td></tr>
  </table>
</body>
</html>`))

var paymentFailedTmpl = template.Must(template.New("paymentFailed").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Payment Issue</title></head>
<body style="margin:0;padding:0;font-family:-apple-system,'Segoe UI',Roboto,Arial,sans-serif;background-color:#f3f4f6;">
  <table width="100%" cellpadding="0" cellspacing="0" style="background-color:#f3f4f6;padding:40px 20px;">
    <tr><td align="center"><table width="100%" style="max-width:600px;" cellpadding="0" cellspacing="0">
      <tr><td style="background:#ef4444;padding:40px 30px;border-radius:12px 12px 0 0;text-align:center;">
        <h1 style="color:#ffffff;margin:0;font-size:28px;">Payment Issue</h1>
      </td></tr>
      <tr><td style="background:#ffffff;padding:40px 30px;text-align:center;border-radius:0 0 12px 12px;">
        <p style="color:#1f2937;font-size:16px;line-height:1.6;margin:0;">
          We could not process your payment for the full audit report. No charge was made.
          Please try again from your results page, or reply to this email if the problem persists.
        </p>
      </td></tr>
    </table></td></tr>
  </table>
</body>
</html>`))

type auditResultsData struct {
	Score            int
	ScoreColor       string
	PerformanceLevel string
	CurrentState     string
	KeyFindings      []string
	PotentialImpact  string
	TopIssues        []domain.CriticalIssue
	ResultsURL       string
	Year             int
	Date             string
}

func renderAuditResults(audit domain.Audit, resultsURL string, now time.Time) (string, error) {
	issues := audit.AuditData.CriticalIssues
	if len(issues) > 3 {
		issues = issues[:3]
	}
	var buf bytes.Buffer
	err := auditResultsTmpl.Execute(&buf, auditResultsData{
		Score:            audit.AuditData.OverallScore,
		ScoreColor:       emailScoreColor(audit.AuditData.OverallScore),
		PerformanceLevel: audit.AuditData.PerformanceLevel,
		CurrentState:     audit.AuditData.ExecutiveSummary.CurrentState,
		KeyFindings:      audit.AuditData.ExecutiveSummary.KeyFindings,
		PotentialImpact:  audit.AuditData.ExecutiveSummary.PotentialImpact,
		TopIssues:        issues,
		ResultsURL:       resultsURL,
		Year:             now.Year(),
		Date:             now.Format(time.DateOnly),
	})
	if err != nil {
		return "", fmt.Errorf("render audit results email: %w", err)
	}
	return buf.String(), nil
}

type paymentConfirmationData struct {
	Score            int
	PerformanceLevel string
	PDFURL           string
	ResultsURL       string
}

func renderPaymentConfirmation(audit domain.Audit, pdfURL, resultsURL string) (string, error) {
	var buf bytes.Buffer
	err := paymentConfirmationTmpl.Execute(&buf, paymentConfirmationData{
		Score:            audit.AuditData.OverallScore,
		PerformanceLevel: audit.AuditData.PerformanceLevel,
		PDFURL:           pdfURL,
		ResultsURL:       resultsURL,
	})
	if err != nil {
		return "", fmt.Errorf("render payment confirmation email: %w", err)
	}
	return buf.String(), nil
}

func renderPaymentFailed() (string, error) {
	var buf bytes.Buffer
	if err := paymentFailedTmpl.Execute(&buf, nil); err != nil {
		return "", fmt.Errorf("render payment failed email: %w", err)
	}
	return buf.String(), nil
}

func emailScoreColor(score int) string {
	switch {
	case score >= 90:
		return "#10b981"
	case score >= 75:
		return "#3b82f6"
	case score >= 60:
		return "#f59e0b"
	case score >= 45:
		return "#f97316"
	default:
		return "#ef4444"
	}
}
