package ai

import "context"

// TextGenerator generates text from stable system context and a per-request
// user prompt. System blocks are sent separately so providers that support
// prompt caching can reuse them across requests.
type TextGenerator interface {
	GenerateText(ctx context.Context, system []string, userPrompt string) (string, error)
}
