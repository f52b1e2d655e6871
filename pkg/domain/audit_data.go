package domain

// AuditData is the structured report produced by the model. The field layout
// mirrors the JSON schema embedded in the generation prompt.
type AuditData struct {
	OverallScore          int                     `json:"overallScore"`
	PerformanceLevel      string                  `json:"performanceLevel"`
	ExecutiveSummary      ExecutiveSummary        `json:"executiveSummary"`
	CriticalIssues        []CriticalIssue         `json:"criticalIssues"`
	SectionScores         map[string]SectionScore `json:"sectionScores"`
	QuickWins             []QuickWin              `json:"quickWins"`
	RevenueOpportunity    RevenueOpportunity      `json:"revenueOpportunity"`
	MarketAnalysis        MarketAnalysis          `json:"marketAnalysis"`
	CompetitorAnalysis    CompetitorAnalysis      `json:"competitorAnalysis"`
	OptimizationPreview   OptimizationPreview     `json:"optimizationPreview"`
	ImplementationRoadmap map[string]RoadmapWeek  `json:"implementationRoadmap"`
}

type ExecutiveSummary struct {
	CurrentState    string   `json:"currentState"`
	KeyFindings     []string `json:"keyFindings"`
	PotentialImpact string   `json:"potentialImpact"`
}

type CriticalIssue struct {
	Title           string `json:"title"`
	Severity        string `json:"severity"` // Critical, High or Medium
	Impact          string `json:"impact"`
	CurrentExample  string `json:"currentExample"`
	Recommendation  string `json:"recommendation"`
	ExpectedOutcome string `json:"expectedOutcome"`
}

type SectionScore struct {
	Score    int    `json:"score"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

type QuickWin struct {
	Action         string `json:"action"`
	TimeRequired   string `json:"timeRequired"`
	ExpectedImpact string `json:"expectedImpact"`
	Instructions   string `json:"instructions"`
}

type RevenueOpportunity struct {
	CurrentEstimate         string `json:"currentEstimate"`
	OptimizedEstimate       string `json:"optimizedEstimate"`
	MonthlyRevenuePotential string `json:"monthlyRevenuePotential"`
	AnnualRevenuePotential  string `json:"annualRevenuePotential"`
	Breakdown               string `json:"breakdown"`
}

type MarketAnalysis struct {
	Location           string   `json:"location"`
	LocalCompetition   string   `json:"localCompetition"`
	AverageSessionRate string   `json:"averageSessionRate"`
	DemandIndicators   []string `json:"demandIndicators"`
	Opportunities      []string `json:"opportunities"`
}

type Competitor struct {
	ProfileURL   string   `json:"profileUrl"`
	Strengths    []string `json:"strengths"`
	Weaknesses   []string `json:"weaknesses"`
	KeyTakeaways string   `json:"keyTakeaways"`
}

type CompetitorAnalysis struct {
	TopCompetitors        []Competitor `json:"topCompetitors"`
	CompetitiveAdvantages []string     `json:"competitiveAdvantages"`
	GapsToFill            []string     `json:"gapsToFill"`
}

type Rewrite struct {
	Before    string `json:"before"`
	After     string `json:"after"`
	Reasoning string `json:"reasoning"`
}

type OptimizationPreview struct {
	Headline       Rewrite `json:"headline"`
	AboutMeOpening Rewrite `json:"aboutMeOpening"`
}

type RoadmapWeek struct {
	Focus         string   `json:"focus"`
	Tasks         []string `json:"tasks"`
	EstimatedTime string   `json:"estimatedTime"`
}
