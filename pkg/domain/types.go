package domain

import (
	"strings"
	"time"
)

// Performance level bands reported by the model for the overall score.
const (
	LevelExcellent    = "Excellent"
	LevelAboveAverage = "Above Average"
	LevelAverage      = "Average"
	LevelBelowAverage = "Below Average"
	LevelPoor         = "Poor"
)

// ProfileRecord holds the fields extracted from a public therapist profile page.
// It is created once per scrape and consumed by the audit generator; only the
// derived Audit is ever persisted.
type ProfileRecord struct {
	Name              string    `json:"name"`
	Credentials       string    `json:"credentials"`
	Location          string    `json:"location"`
	Headline          string    `json:"headline"`
	AboutMe           string    `json:"aboutMe"`
	PhotoURL          string    `json:"photoUrl"`
	Specialties       []string  `json:"specialties"`
	Issues            []string  `json:"issues"`
	TreatmentApproach string    `json:"treatmentApproach"`
	TreatmentMethods  []string  `json:"treatmentMethods"`
	ClientFocus       []string  `json:"clientFocus"`
	AgeGroups         []string  `json:"ageGroups"`
	SessionType       []string  `json:"sessionType"`
	SessionFee        string    `json:"sessionFee"`
	Insurance         []string  `json:"insurance"`
	YearsExperience   string    `json:"yearsExperience"`
	LicenseNumber     string    `json:"licenseNumber"`
	Education         []string  `json:"education"`
	Languages         []string  `json:"languages"`
	Website           string    `json:"website"`
	ProfileURL        string    `json:"profileUrl"`
	ScrapedAt         time.Time `json:"scrapedAt"`
}

// Empty reports whether the page yielded no usable content at all.
func (r ProfileRecord) Empty() bool {
	return strings.TrimSpace(r.Name) == "" &&
		strings.TrimSpace(r.AboutMe) == "" &&
		strings.TrimSpace(r.Headline) == ""
}

// Sufficient reports whether the record carries enough content to audit.
// A name is required, plus at least one narrative field or a specialty.
func (r ProfileRecord) Sufficient() bool {
	if strings.TrimSpace(r.Name) == "" {
		return false
	}
	if strings.TrimSpace(r.AboutMe) != "" ||
		strings.TrimSpace(r.Headline) != "" ||
		strings.TrimSpace(r.TreatmentApproach) != "" {
		return true
	}
	return len(r.Specialties) > 0
}

// Audit is the persisted evaluation of one profile.
type Audit struct {
	ID             string     `json:"id"`
	ProfileURL     string     `json:"profileUrl"`
	UserEmail      string     `json:"userEmail"`
	IsPaid         bool       `json:"isPaid"`
	AuditData      AuditData  `json:"auditData"`
	CreatedAt      time.Time  `json:"createdAt"`
	ExpiresAt      time.Time  `json:"expiresAt"`
	PDFGeneratedAt *time.Time `json:"pdfGeneratedAt"`
	PDFURL         string     `json:"pdfUrl"`
	PDFExpiresAt   *time.Time `json:"pdfExpiresAt"`
}

// Expired reports whether the audit is past its 30-day window.
func (a Audit) Expired(now time.Time) bool {
	return now.After(a.ExpiresAt)
}

// PDFExpired reports whether a previously generated PDF is past its own window.
func (a Audit) PDFExpired(now time.Time) bool {
	return a.IsPaid && a.PDFExpiresAt != nil && now.After(*a.PDFExpiresAt)
}

// User is a record keyed by lower-cased email.
type User struct {
	Email           string    `json:"email"`
	Audits          []string  `json:"audits"`
	ReferralCode    string    `json:"referralCode"`
	ReferralCredits int       `json:"referralCredits"`
	ReferralCount   int       `json:"referralCount"`
	ReferredBy      string    `json:"referredBy,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}
