package audit

import (
	"encoding/json"
	"fmt"

	"github.com/waleedan253-cmd/Moxiepro/pkg/domain"
)

// systemInstruction pins the model to raw JSON output.
const systemInstruction = "You are a JSON-only API that audits Psychology Today profiles. You MUST return ONLY valid JSON. No explanations. No markdown. No code blocks. Start with { and end with }."

// scoringFramework is the fixed audit framework sent as cacheable system
// context on every request.
const scoringFramework = `# Psychology Today Profile Audit Framework

You are analyzing Psychology Today therapist profiles to help them optimize for maximum client conversion. Your audit must be:
- **Data-driven**: Base all recommendations on the actual profile content
- **Specific**: Provide concrete examples and actionable steps
- **Revenue-focused**: Quantify the business impact
- **Empathetic**: Remember you're helping therapists grow their practice

## Audit Structure (11 Sections)

### 1. Executive Summary
- Overall score (0-100) based on profile effectiveness
- Performance level: Excellent (90-100), Above Average (75-89), Average (60-74), Below Average (45-59), Poor (0-44)
- 2-3 sentence summary of current state
- 3 key findings
- Potential impact statement

### 2. Critical Issues (Top 5)
Identify the 5 most important problems hurting conversion:
- **Title**: Clear, specific issue name
- **Severity**: Critical/High/Medium
- **Impact**: How this hurts their practice
- **Current Example**: What they have now
- **Recommendation**: Specific fix
- **Expected Outcome**: What improvement to expect

### 3. Section-by-Section Scores
Score each section 0-100 with status and priority:
- **Headline** (Critical - first impression)
- **About Me** (Critical - main content)
- **Specialties** (High - searchability)
- **Client Focus** (High - targeting)
- **Treatment Approach** (Medium - credibility)
- **Credentials** (Medium - trust)
- **Photo** (High - personal connection)

### 4. Quick Wins (5-7 items)
Easy improvements they can make today:
- Action item (specific)
- Time required (5 min, 15 min, 30 min, 1 hour)
- Expected impact (High/Medium/Low)
- Step-by-step instructions

### 5. Revenue Opportunity Analysis
Quantify the business impact:
- Current estimated inquiries/month
- Optimized estimated inquiries/month
- Monthly revenue potential
- Annual revenue potential
- Breakdown explaining the math

### 6. Market Analysis
Local market context:
- Location and competition level
- Average session rates in their area
- Demand indicators (population, demographics)
- Opportunities based on market gaps

### 7. Competitor Analysis
Analyze top 2-3 local competitors:
- Their profile URLs
- What they do well
- Their weaknesses
- Key takeaways
- Competitive advantages to emphasize
- Gaps in the market to fill

### 8. Optimization Preview
Show before/after for 2 key sections:
- **Headline**: Current vs. optimized with reasoning
- **About Me Opening**: Current first paragraph vs. optimized with reasoning

### 9. Implementation Roadmap (30 Days)
Week-by-week action plan:
- **Week 1**: Quick wins and headline optimization
- **Week 2**: About Me section rewrite
- **Week 3**: Specialties, client focus, treatment approach
- **Week 4**: Photo, credentials, final polish

### 10. Before/After Comparison
Side-by-side comparison showing:
- Current profile state
- Optimized profile state
- Expected results

### 11. Next Steps
Clear call-to-action:
- Summary of what they learned
- Immediate action items

## Scoring Criteria

**Overall Score Calculation:**
- Headline: 20%
- About Me: 30%
- Specialties: 15%
- Client Focus: 10%
- Treatment Approach: 10%
- Credentials: 5%
- Photo: 10%

**Performance Levels:**
- **Excellent (90-100)**: Profile is highly optimized, minor tweaks only
- **Above Average (75-89)**: Strong profile, some improvements possible
- **Average (60-74)**: Decent profile, significant improvement potential
- **Below Average (45-59)**: Weak profile, major issues to fix
- **Poor (0-44)**: Critical problems, complete overhaul needed

## Important Guidelines

1. **Be Specific**: Don't say "improve your headline" - show exactly what to write
2. **Use Data**: Reference specific parts of their profile
3. **Quantify Impact**: Use numbers for revenue projections
4. **Stay Professional**: Constructive, not harsh
5. **Focus on ROI**: Always tie recommendations to business growth
6. **Be Actionable**: Every recommendation should have clear next steps`

// targetSchema enumerates the exact response structure the model must emit.
const targetSchema = `{
  "overallScore": <number 0-100>,
  "performanceLevel": "<Excellent|Above Average|Average|Below Average|Poor>",
  "executiveSummary": {
    "currentState": "<2-3 sentences>",
    "keyFindings": ["<finding 1>", "<finding 2>", "<finding 3>"],
    "potentialImpact": "<1-2 sentences about revenue opportunity>"
  },
  "criticalIssues": [
    {
      "title": "<issue title>",
      "severity": "<Critical|High|Medium>",
      "impact": "<description>",
      "currentExample": "<what they have now>",
      "recommendation": "<what to do>",
      "expectedOutcome": "<results>"
    }
  ],
  "sectionScores": {
    "headline": {"score": <0-100>, "status": "<Excellent|Good|Needs Work|Critical>", "priority": "<High|Medium|Low>"},
    "aboutMe": {"score": <0-100>, "status": "<status>", "priority": "<priority>"},
    "specialties": {"score": <0-100>, "status": "<status>", "priority": "<priority>"},
    "clientFocus": {"score": <0-100>, "status": "<status>", "priority": "<priority>"},
    "treatmentApproach": {"score": <0-100>, "status": "<status>", "priority": "<priority>"},
    "credentials": {"score": <0-100>, "status": "<status>", "priority": "<priority>"},
    "photo": {"score": <0-100>, "status": "<status>", "priority": "<priority>"}
  },
  "quickWins": [
    {
      "action": "<specific action>",
      "timeRequired": "<5 min|15 min|30 min|1 hour>",
      "expectedImpact": "<High|Medium|Low>",
      "instructions": "<step-by-step>"
    }
  ],
  "revenueOpportunity": {
    "currentEstimate": "<e.g., 2-4 inquiries/month>",
    "optimizedEstimate": "<e.g., 8-12 inquiries/month>",
    "monthlyRevenuePotential": "<e.g., $4,800-7,200>",
    "annualRevenuePotential": "<e.g., $57,600-86,400>",
    "breakdown": "<explanation>"
  },
  "marketAnalysis": {
    "location": "<city, state>",
    "localCompetition": "<Low|Medium|High>",
    "averageSessionRate": "<$XXX-$XXX>",
    "demandIndicators": ["<indicator 1>", "<indicator 2>"],
    "opportunities": ["<opportunity 1>", "<opportunity 2>"]
  },
  "competitorAnalysis": {
    "topCompetitors": [
      {
        "profileUrl": "<URL>",
        "strengths": ["<strength 1>", "<strength 2>"],
        "weaknesses": ["<weakness 1>", "<weakness 2>"],
        "keyTakeaways": "<what to learn from them>"
      }
    ],
    "competitiveAdvantages": ["<advantage 1>", "<advantage 2>"],
    "gapsToFill": ["<gap 1>", "<gap 2>"]
  },
  "optimizationPreview": {
    "headline": {
      "before": "<current headline>",
      "after": "<optimized headline>",
      "reasoning": "<why this works>"
    },
    "aboutMeOpening": {
      "before": "<current first paragraph>",
      "after": "<optimized first paragraph>",
      "reasoning": "<why this works>"
    }
  },
  "implementationRoadmap": {
    "week1": {"focus": "<focus area>", "tasks": ["<task 1>", "<task 2>", "<task 3>"], "estimatedTime": "<X hours>"},
    "week2": {"focus": "<focus area>", "tasks": ["<task 1>", "<task 2>", "<task 3>"], "estimatedTime": "<X hours>"},
    "week3": {"focus": "<focus area>", "tasks": ["<task 1>", "<task 2>", "<task 3>"], "estimatedTime": "<X hours>"},
    "week4": {"focus": "<focus area>", "tasks": ["<task 1>", "<task 2>", "<task 3>"], "estimatedTime": "<X hours>"}
  }
}`

// systemBlocks returns the stable, cacheable system context.
func systemBlocks() []string {
	return []string{systemInstruction, scoringFramework}
}

// buildUserPrompt serializes the profile record with the target schema.
func buildUserPrompt(record domain.ProfileRecord) string {
	profileJSON, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		profileJSON = []byte("{}")
	}
	return fmt.Sprintf(`Analyze this Psychology Today therapist profile and generate a comprehensive audit following the exact framework provided in the system prompt.

**Profile Data:**
%s

Generate the audit in JSON format with this exact structure:
%s

IMPORTANT: Return ONLY valid JSON. Ensure all strings are properly escaped:
- Use double quotes for strings
- Escape special characters (quotes, newlines, etc.)
- No trailing commas
- No comments
- Return the raw JSON without markdown code blocks`, profileJSON, targetSchema)
}

// correctionSuffix is appended on the retry after an unparseable response.
const correctionSuffix = "\n\nYour previous response was not valid JSON. Respond again with ONLY the JSON object, no markdown fences, no trailing commas, no commentary."
