package audit

import (
	"errors"
	"testing"

	"github.com/waleedan253-cmd/Moxiepro/pkg/domain"
)

const cleanResponse = `{
  "overallScore": 72,
  "performanceLevel": "Average",
  "executiveSummary": {
    "currentState": "Solid base.",
    "keyFindings": ["a", "b", "c"],
    "potentialImpact": "More inquiries."
  }
}`

func TestParseResponseClean(t *testing.T) {
	data, err := ParseResponse(cleanResponse)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if data.OverallScore != 72 || data.PerformanceLevel != domain.LevelAverage {
		t.Fatalf("unexpected data: %+v", data)
	}
}

func TestParseResponseFencesAndTrailingComma(t *testing.T) {
	wrapped := "Here is your audit:\n```json\n{\n  \"overallScore\": 72,\n  \"performanceLevel\": \"Average\",\n  \"executiveSummary\": {\n    \"currentState\": \"Solid base.\",\n    \"keyFindings\": [\"a\", \"b\", \"c\",],\n    \"potentialImpact\": \"More inquiries.\",\n  }\n}\n```\n"
	got, err := ParseResponse(wrapped)
	if err != nil {
		t.Fatalf("parse wrapped: %v", err)
	}
	want, err := ParseResponse(cleanResponse)
	if err != nil {
		t.Fatalf("parse clean: %v", err)
	}
	if got.OverallScore != want.OverallScore ||
		got.PerformanceLevel != want.PerformanceLevel ||
		got.ExecutiveSummary.CurrentState != want.ExecutiveSummary.CurrentState ||
		len(got.ExecutiveSummary.KeyFindings) != len(want.ExecutiveSummary.KeyFindings) {
		t.Fatalf("wrapped parse diverges: %+v vs %+v", got, want)
	}
}

func TestParseResponseNoBraces(t *testing.T) {
	_, err := ParseResponse("I could not produce an audit for this profile.")
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestParseResponseInvalidJSON(t *testing.T) {
	_, err := ParseResponse(`{"overallScore": 72, "performanceLevel": `)
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestParseResponseMissingRequiredFields(t *testing.T) {
	_, err := ParseResponse(`{"overallScore": 72}`)
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("missing performanceLevel: err = %v, want ErrParse", err)
	}
	_, err = ParseResponse(`{"performanceLevel": "Poor"}`)
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("missing overallScore: err = %v, want ErrParse", err)
	}
}

func TestParseResponseZeroScoreIsValid(t *testing.T) {
	data, err := ParseResponse(`{"overallScore": 0, "performanceLevel": "Poor"}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if data.OverallScore != 0 || data.PerformanceLevel != domain.LevelPoor {
		t.Fatalf("unexpected data: %+v", data)
	}
}

func TestParseResponseClampsScore(t *testing.T) {
	data, err := ParseResponse(`{"overallScore": 140, "performanceLevel": "Excellent"}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if data.OverallScore != 100 {
		t.Fatalf("score = %d, want clamped to 100", data.OverallScore)
	}
}
