// Package explain provides text-generation providers that turn causal
// mappings into natural-language prose. Providers implement
// insight.Explainer; when none is configured or available, the insight
// layer falls back to its deterministic template.
package explain

import (
	"fmt"
	"strings"

	"github.com/nabheet/opencausenx/internal/causal"
	"github.com/nabheet/opencausenx/internal/insight"
)

// Settings selects and configures a provider. Zero value means no
// provider - template explanations only.
type Settings struct {
	Provider string `json:"provider"` // "ollama", "openai", or "" to disable
	Endpoint string `json:"endpoint,omitempty"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
}

// FromSettings builds the configured explainer. Returns nil (no
// explainer, not an error) when the provider field is empty.
func FromSettings(s Settings) (insight.Explainer, error) {
	switch s.Provider {
	case "":
		return nil, nil
	case "ollama":
		return NewOllama(s.Endpoint, s.Model), nil
	case "openai":
		return NewOpenAI(s.APIKey, s.Model), nil
	default:
		return nil, fmt.Errorf("unknown explainer provider %q", s.Provider)
	}
}

// systemPrompt frames the model's task. Providers share it so switching
// providers does not change the register of the output.
const systemPrompt = `You are an analyst explaining how a world event affects a specific business.
You are given a structured causal analysis: an event, a reasoned cause-to-effect chain,
the assumptions behind it, and a confidence assessment.
Write a short, plain-English explanation (2-4 sentences) for a business owner.
Do not invent facts beyond the analysis. Do not restate the confidence number.`

// userPrompt renders the structured analysis the model explains. It
// reuses the deterministic template so the provider sees exactly what
// the fallback would have shown.
func userPrompt(m causal.Mapping) string {
	var b strings.Builder
	b.WriteString("Structured analysis:\n\n")
	b.WriteString(insight.TemplateExplanation(m))
	b.WriteString("\nExplain this impact in plain English.")
	return b.String()
}
