package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/waleedan253-cmd/Moxiepro/pkg/ai"
	"github.com/waleedan253-cmd/Moxiepro/pkg/domain"
)

// maxAttempts bounds the retry-with-correction loop on unparseable output.
const maxAttempts = 2

// Generator produces a structured audit from a scraped profile record.
// The LLM is treated as an untrusted function returning semi-structured text;
// all parsing and validation happens in ParseResponse.
type Generator struct {
	llm ai.TextGenerator
}

// NewGenerator wires a text generator.
func NewGenerator(llm ai.TextGenerator) *Generator {
	return &Generator{llm: llm}
}

// Generate builds the prompt, calls the model and parses the result. An
// unparseable response is retried once with a corrective instruction; a
// second failure is terminal.
func (g *Generator) Generate(ctx context.Context, record domain.ProfileRecord) (domain.AuditData, error) {
	system := systemBlocks()
	userPrompt := buildUserPrompt(record)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		prompt := userPrompt
		if attempt > 1 {
			prompt += correctionSuffix
		}
		text, err := g.llm.GenerateText(ctx, system, prompt)
		if err != nil {
			return domain.AuditData{}, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
		}
		data, err := ParseResponse(text)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if errors.Is(err, domain.ErrParse) && attempt < maxAttempts {
			slog.Warn("audit.parse_retry", "attempt", attempt, "err", err)
			continue
		}
	}
	return domain.AuditData{}, lastErr
}
