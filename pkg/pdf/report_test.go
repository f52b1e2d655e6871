package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/waleedan253-cmd/Moxiepro/pkg/domain"
)

func sampleAudit() domain.Audit {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return domain.Audit{
		ID:         "audit_1748772000000_abc123def",
		ProfileURL: "https://www.psychologytoday.com/us/therapists/jane-doe/123",
		UserEmail:  "jane@example.com",
		IsPaid:     true,
		CreatedAt:  created,
		ExpiresAt:  created.Add(30 * 24 * time.Hour),
		AuditData: domain.AuditData{
			OverallScore:     72,
			PerformanceLevel: domain.LevelAverage,
			ExecutiveSummary: domain.ExecutiveSummary{
				CurrentState:    "Solid foundation with room to grow.",
				KeyFindings:     []string{"Generic headline", "Long about section", "No client focus"},
				PotentialImpact: "Doubling inquiries is realistic.",
			},
			CriticalIssues: []domain.CriticalIssue{{
				Title:           "Generic headline",
				Severity:        "High",
				Impact:          "Blends in with every other profile.",
				CurrentExample:  "Therapist in Austin",
				Recommendation:  "Lead with the client problem you solve.",
				ExpectedOutcome: "More profile clicks.",
			}},
			SectionScores: map[string]domain.SectionScore{
				"headline": {Score: 40, Status: "Needs Work", Priority: "High"},
				"aboutMe":  {Score: 70, Status: "Good", Priority: "Medium"},
			},
			QuickWins: []domain.QuickWin{{
				Action:         "Rewrite the first sentence",
				TimeRequired:   "15 min",
				ExpectedImpact: "High",
				Instructions:   "Open with the client's pain point.",
			}},
			RevenueOpportunity: domain.RevenueOpportunity{
				CurrentEstimate:         "2-4 inquiries/month",
				OptimizedEstimate:       "8-12 inquiries/month",
				MonthlyRevenuePotential: "$4,800-7,200",
				AnnualRevenuePotential:  "$57,600-86,400",
				Breakdown:               "Assumes $180/session and 60% conversion.",
			},
			MarketAnalysis: domain.MarketAnalysis{
				Location:         "Austin, TX",
				LocalCompetition: "High",
			},
			OptimizationPreview: domain.OptimizationPreview{
				Headline: domain.Rewrite{Before: "Therapist in Austin", After: "Anxiety relief for burned-out professionals", Reasoning: "Specific and client-centered."},
			},
			ImplementationRoadmap: map[string]domain.RoadmapWeek{
				"week1": {Focus: "Headline", Tasks: []string{"Rewrite headline", "Update photo"}, EstimatedTime: "2 hours"},
				"week2": {Focus: "About Me", Tasks: []string{"Restructure opening"}, EstimatedTime: "3 hours"},
			},
		},
	}
}

func TestRenderProducesPDF(t *testing.T) {
	out, err := Render(sampleAudit())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output does not start with PDF header: %q", out[:min(len(out), 8)])
	}
	if len(out) < 2000 {
		t.Fatalf("suspiciously small report: %d bytes", len(out))
	}
}

func TestRenderBulletedSectionsAddContent(t *testing.T) {
	full := sampleAudit()
	trimmed := sampleAudit()
	trimmed.AuditData.ExecutiveSummary.KeyFindings = nil
	trimmed.AuditData.MarketAnalysis.DemandIndicators = nil
	for key, week := range trimmed.AuditData.ImplementationRoadmap {
		week.Tasks = nil
		trimmed.AuditData.ImplementationRoadmap[key] = week
	}

	withBullets, err := Render(full)
	if err != nil {
		t.Fatalf("render full: %v", err)
	}
	withoutBullets, err := Render(trimmed)
	if err != nil {
		t.Fatalf("render trimmed: %v", err)
	}
	if len(withBullets) <= len(withoutBullets) {
		t.Fatalf("bulleted lists not rendered: %d <= %d bytes", len(withBullets), len(withoutBullets))
	}
}

func TestRenderHandlesSparseData(t *testing.T) {
	audit := domain.Audit{
		ID:         "audit_1_x",
		ProfileURL: "https://example.com/p",
		CreatedAt:  time.Now(),
		AuditData: domain.AuditData{
			OverallScore:     10,
			PerformanceLevel: domain.LevelPoor,
		},
	}
	out, err := Render(audit)
	if err != nil {
		t.Fatalf("render sparse: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatal("output does not start with PDF header")
	}
}
