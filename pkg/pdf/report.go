package pdf

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/waleedan253-cmd/Moxiepro/pkg/domain"
)

// Section display order for the score table. The roadmap keys sort the same
// way (week1..week4) so a plain string sort suffices there.
var sectionOrder = []string{
	"headline", "aboutMe", "specialties", "clientFocus",
	"treatmentApproach", "credentials", "photo",
}

var sectionLabels = map[string]string{
	"headline":          "Headline",
	"aboutMe":           "About Me",
	"specialties":       "Specialties",
	"clientFocus":       "Client Focus",
	"treatmentApproach": "Treatment Approach",
	"credentials":       "Credentials",
	"photo":             "Photo",
}

// Render produces the full PDF report for a paid audit.
func Render(audit domain.Audit) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Profile Audit Report", false)
	doc.SetAutoPageBreak(true, 18)
	doc.SetFooterFunc(func() {
		doc.SetY(-12)
		doc.SetFont("Helvetica", "I", 8)
		doc.SetTextColor(130, 130, 130)
		doc.CellFormat(0, 8, fmt.Sprintf("Page %d", doc.PageNo()), "", 0, "C", false, 0, "")
	})

	r := &renderer{doc: doc}
	r.coverPage(audit)
	r.executiveSummary(audit.AuditData.ExecutiveSummary)
	r.criticalIssues(audit.AuditData.CriticalIssues)
	r.sectionScores(audit.AuditData.SectionScores)
	r.quickWins(audit.AuditData.QuickWins)
	r.revenueOpportunity(audit.AuditData.RevenueOpportunity)
	r.marketAndCompetitors(audit.AuditData.MarketAnalysis, audit.AuditData.CompetitorAnalysis)
	r.optimizationPreview(audit.AuditData.OptimizationPreview)
	r.roadmap(audit.AuditData.ImplementationRoadmap)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type renderer struct {
	doc *fpdf.Fpdf
}

func (r *renderer) coverPage(audit domain.Audit) {
	doc := r.doc
	doc.AddPage()

	doc.SetY(60)
	doc.SetFont("Helvetica", "B", 26)
	doc.SetTextColor(30, 30, 30)
	doc.CellFormat(0, 14, "Profile Audit Report", "", 1, "C", false, 0, "")

	doc.Ln(8)
	doc.SetFont("Helvetica", "", 12)
	doc.SetTextColor(90, 90, 90)
	doc.CellFormat(0, 8, audit.ProfileURL, "", 1, "C", false, 0, "")

	doc.Ln(16)
	doc.SetFont("Helvetica", "B", 52)
	doc.SetTextColor(scoreColor(audit.AuditData.OverallScore))
	doc.CellFormat(0, 24, fmt.Sprintf("%d / 100", audit.AuditData.OverallScore), "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 12, audit.AuditData.PerformanceLevel, "", 1, "C", false, 0, "")

	doc.Ln(24)
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(130, 130, 130)
	doc.CellFormat(0, 6, "Generated "+audit.CreatedAt.Format(time.DateOnly), "", 1, "C", false, 0, "")
}

func (r *renderer) executiveSummary(summary domain.ExecutiveSummary) {
	r.sectionHeading("Executive Summary")
	r.paragraph(summary.CurrentState)
	if len(summary.KeyFindings) > 0 {
		r.subheading("Key Findings")
		r.bulletList(summary.KeyFindings)
	}
	if summary.PotentialImpact != "" {
		r.subheading("Potential Impact")
		r.paragraph(summary.PotentialImpact)
	}
}

func (r *renderer) criticalIssues(issues []domain.CriticalIssue) {
	if len(issues) == 0 {
		return
	}
	r.sectionHeading("Critical Issues")
	for i, issue := range issues {
		r.subheading(fmt.Sprintf("%d. %s (%s)", i+1, issue.Title, issue.Severity))
		r.labeled("Impact", issue.Impact)
		r.labeled("Currently", issue.CurrentExample)
		r.labeled("Recommendation", issue.Recommendation)
		r.labeled("Expected outcome", issue.ExpectedOutcome)
		r.doc.Ln(3)
	}
}

func (r *renderer) sectionScores(scores map[string]domain.SectionScore) {
	if len(scores) == 0 {
		return
	}
	r.sectionHeading("Section Scores")
	doc := r.doc
	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(240, 240, 240)
	doc.SetTextColor(30, 30, 30)
	doc.CellFormat(70, 8, "Section", "1", 0, "L", true, 0, "")
	doc.CellFormat(30, 8, "Score", "1", 0, "C", true, 0, "")
	doc.CellFormat(45, 8, "Status", "1", 0, "C", true, 0, "")
	doc.CellFormat(35, 8, "Priority", "1", 1, "C", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	for _, key := range orderedSectionKeys(scores) {
		score := scores[key]
		label := sectionLabels[key]
		if label == "" {
			label = key
		}
		doc.CellFormat(70, 8, label, "1", 0, "L", false, 0, "")
		doc.CellFormat(30, 8, fmt.Sprintf("%d", score.Score), "1", 0, "C", false, 0, "")
		doc.CellFormat(45, 8, score.Status, "1", 0, "C", false, 0, "")
		doc.CellFormat(35, 8, score.Priority, "1", 1, "C", false, 0, "")
	}
}

func (r *renderer) quickWins(wins []domain.QuickWin) {
	if len(wins) == 0 {
		return
	}
	r.sectionHeading("Quick Wins")
	for i, win := range wins {
		r.subheading(fmt.Sprintf("%d. %s", i+1, win.Action))
		r.labeled("Time required", win.TimeRequired)
		r.labeled("Expected impact", win.ExpectedImpact)
		r.labeled("How", win.Instructions)
		r.doc.Ln(3)
	}
}

func (r *renderer) revenueOpportunity(rev domain.RevenueOpportunity) {
	r.sectionHeading("Revenue Opportunity")
	r.labeled("Current inquiries", rev.CurrentEstimate)
	r.labeled("Optimized inquiries", rev.OptimizedEstimate)
	r.labeled("Monthly potential", rev.MonthlyRevenuePotential)
	r.labeled("Annual potential", rev.AnnualRevenuePotential)
	if rev.Breakdown != "" {
		r.doc.Ln(2)
		r.paragraph(rev.Breakdown)
	}
}

func (r *renderer) marketAndCompetitors(market domain.MarketAnalysis, comp domain.CompetitorAnalysis) {
	r.sectionHeading("Market Analysis")
	r.labeled("Location", market.Location)
	r.labeled("Local competition", market.LocalCompetition)
	r.labeled("Average session rate", market.AverageSessionRate)
	if len(market.DemandIndicators) > 0 {
		r.subheading("Demand Indicators")
		r.bulletList(market.DemandIndicators)
	}
	if len(market.Opportunities) > 0 {
		r.subheading("Opportunities")
		r.bulletList(market.Opportunities)
	}

	if len(comp.TopCompetitors) > 0 {
		r.sectionHeading("Competitor Analysis")
		for _, c := range comp.TopCompetitors {
			r.subheading(c.ProfileURL)
			if len(c.Strengths) > 0 {
				r.labeled("Strengths", strings.Join(c.Strengths, "; "))
			}
			if len(c.Weaknesses) > 0 {
				r.labeled("Weaknesses", strings.Join(c.Weaknesses, "; "))
			}
			r.labeled("Takeaways", c.KeyTakeaways)
			r.doc.Ln(3)
		}
		if len(comp.CompetitiveAdvantages) > 0 {
			r.subheading("Your Advantages")
			r.bulletList(comp.CompetitiveAdvantages)
		}
		if len(comp.GapsToFill) > 0 {
			r.subheading("Gaps To Fill")
			r.bulletList(comp.GapsToFill)
		}
	}
}

func (r *renderer) optimizationPreview(preview domain.OptimizationPreview) {
	r.sectionHeading("Optimization Preview")
	r.rewrite("Headline", preview.Headline)
	r.rewrite("About Me Opening", preview.AboutMeOpening)
}

func (r *renderer) rewrite(title string, rw domain.Rewrite) {
	if rw.Before == "" && rw.After == "" {
		return
	}
	r.subheading(title)
	r.labeled("Before", rw.Before)
	r.labeled("After", rw.After)
	r.labeled("Why", rw.Reasoning)
	r.doc.Ln(3)
}

func (r *renderer) roadmap(weeks map[string]domain.RoadmapWeek) {
	if len(weeks) == 0 {
		return
	}
	r.sectionHeading("30-Day Implementation Roadmap")
	keys := make([]string, 0, len(weeks))
	for k := range weeks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		week := weeks[key]
		r.subheading(fmt.Sprintf("%s: %s", roadmapLabel(key), week.Focus))
		r.bulletList(week.Tasks)
		r.labeled("Estimated time", week.EstimatedTime)
		r.doc.Ln(3)
	}
}

func roadmapLabel(key string) string {
	if n, ok := strings.CutPrefix(key, "week"); ok {
		return "Week " + n
	}
	return key
}

func orderedSectionKeys(scores map[string]domain.SectionScore) []string {
	keys := make([]string, 0, len(scores))
	seen := make(map[string]bool, len(scores))
	for _, key := range sectionOrder {
		if _, ok := scores[key]; ok {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	extras := make([]string, 0)
	for key := range scores {
		if !seen[key] {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	return append(keys, extras...)
}

func scoreColor(score int) (int, int, int) {
	switch {
	case score >= 75:
		return 34, 139, 34
	case score >= 45:
		return 218, 165, 32
	default:
		return 178, 34, 34
	}
}

func (r *renderer) sectionHeading(title string) {
	doc := r.doc
	doc.AddPage()
	doc.SetFont("Helvetica", "B", 18)
	doc.SetTextColor(30, 30, 30)
	doc.CellFormat(0, 12, title, "", 1, "L", false, 0, "")
	doc.SetDrawColor(200, 200, 200)
	doc.Line(doc.GetX(), doc.GetY(), doc.GetX()+180, doc.GetY())
	doc.Ln(6)
}

func (r *renderer) subheading(title string) {
	doc := r.doc
	doc.SetFont("Helvetica", "B", 12)
	doc.SetTextColor(50, 50, 50)
	doc.MultiCell(0, 7, title, "", "L", false)
	doc.Ln(1)
}

func (r *renderer) paragraph(text string) {
	if text == "" {
		return
	}
	doc := r.doc
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(60, 60, 60)
	doc.MultiCell(0, 5.5, text, "", "L", false)
	doc.Ln(2)
}

func (r *renderer) bulletList(items []string) {
	doc := r.doc
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(60, 60, 60)
	for _, item := range items {
		doc.MultiCell(0, 5.5, "- "+item, "", "L", false)
	}
	doc.Ln(2)
}

func (r *renderer) labeled(label, value string) {
	if value == "" {
		return
	}
	doc := r.doc
	doc.SetFont("Helvetica", "B", 10)
	doc.SetTextColor(60, 60, 60)
	doc.MultiCell(0, 5.5, label+": "+value, "", "L", false)
}
