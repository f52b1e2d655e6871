package audit

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/waleedan253-cmd/Moxiepro/pkg/domain"
)

type scriptedGenerator struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (s *scriptedGenerator) GenerateText(_ context.Context, _ []string, userPrompt string) (string, error) {
	i := s.calls
	s.calls++
	s.prompts = append(s.prompts, userPrompt)
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return s.responses[len(s.responses)-1], nil
}

func testRecord() domain.ProfileRecord {
	return domain.ProfileRecord{
		Name:        "Jane Doe",
		AboutMe:     "I help adults with anxiety.",
		Specialties: []string{"Anxiety", "Depression", "Trauma"},
	}
}

func TestGenerateSuccessFirstAttempt(t *testing.T) {
	llm := &scriptedGenerator{responses: []string{cleanResponse}}
	data, err := NewGenerator(llm).Generate(context.Background(), testRecord())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if data.OverallScore != 72 {
		t.Fatalf("score = %d, want 72", data.OverallScore)
	}
	if llm.calls != 1 {
		t.Fatalf("llm calls = %d, want 1", llm.calls)
	}
}

func TestGenerateRetriesOnceOnParseFailure(t *testing.T) {
	llm := &scriptedGenerator{responses: []string{"not json at all", cleanResponse}}
	data, err := NewGenerator(llm).Generate(context.Background(), testRecord())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if data.PerformanceLevel != domain.LevelAverage {
		t.Fatalf("unexpected data: %+v", data)
	}
	if llm.calls != 2 {
		t.Fatalf("llm calls = %d, want 2", llm.calls)
	}
	if !strings.Contains(llm.prompts[1], "not valid JSON") {
		t.Fatal("retry prompt should carry the corrective instruction")
	}
}

func TestGenerateTerminalAfterSecondParseFailure(t *testing.T) {
	llm := &scriptedGenerator{responses: []string{"garbage", "still garbage"}}
	_, err := NewGenerator(llm).Generate(context.Background(), testRecord())
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
	if llm.calls != 2 {
		t.Fatalf("llm calls = %d, want 2", llm.calls)
	}
}

func TestGenerateAPIErrorIsNotRetried(t *testing.T) {
	llm := &scriptedGenerator{errs: []error{errors.New("overloaded")}, responses: []string{""}}
	_, err := NewGenerator(llm).Generate(context.Background(), testRecord())
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
	if llm.calls != 1 {
		t.Fatalf("llm calls = %d, want 1", llm.calls)
	}
}

func TestBuildUserPromptCarriesProfileAndSchema(t *testing.T) {
	prompt := buildUserPrompt(testRecord())
	for _, want := range []string{"Jane Doe", "overallScore", "performanceLevel", "sectionScores", "implementationRoadmap"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}
