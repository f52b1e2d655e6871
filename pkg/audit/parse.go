package audit

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/waleedan253-cmd/Moxiepro/pkg/domain"
)

var (
	fencePattern         = regexp.MustCompile("```(?:json)?\\s*")
	trailingCommaPattern = regexp.MustCompile(`,(\s*[}\]])`)
)

// ParseResponse extracts the audit structure from raw model output. Model
// responses are not guaranteed well-formed, so it strips markdown fences,
// slices to the outermost brace pair and removes trailing commas before
// parsing, then validates the minimum required fields.
func ParseResponse(responseText string) (domain.AuditData, error) {
	cleaned := strings.TrimSpace(fencePattern.ReplaceAllString(responseText, ""))

	first := strings.IndexByte(cleaned, '{')
	last := strings.LastIndexByte(cleaned, '}')
	if first == -1 || last == -1 || last < first {
		return domain.AuditData{}, fmt.Errorf("%w: no JSON object in response", domain.ErrParse)
	}
	jsonStr := trailingCommaPattern.ReplaceAllString(cleaned[first:last+1], "$1")

	// Validate key presence against the raw document: a score of 0 is a
	// legal value, absence of the key is not.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return domain.AuditData{}, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if _, ok := raw["overallScore"]; !ok {
		return domain.AuditData{}, fmt.Errorf("%w: missing overallScore", domain.ErrParse)
	}
	if _, ok := raw["performanceLevel"]; !ok {
		return domain.AuditData{}, fmt.Errorf("%w: missing performanceLevel", domain.ErrParse)
	}

	var data domain.AuditData
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return domain.AuditData{}, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if strings.TrimSpace(data.PerformanceLevel) == "" {
		return domain.AuditData{}, fmt.Errorf("%w: empty performanceLevel", domain.ErrParse)
	}

	// The model self-applies the scoring arithmetic; only clamp the range.
	if data.OverallScore < 0 {
		data.OverallScore = 0
	}
	if data.OverallScore > 100 {
		data.OverallScore = 100
	}
	return data, nil
}
