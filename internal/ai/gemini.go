package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/olex-green/family-budget/internal/model"
)

const (
	// DefaultModel is the Gemini model used when the config names none.
	DefaultModel = "gemini-2.0-flash"
	// DefaultMinConfidence is the floor below which a suggestion is
	// discarded and the transaction stays Uncategorized.
	DefaultMinConfidence = 0.4
)

// GeminiClassifier asks Gemini for a single-category suggestion. The API key
// comes from the environment (GEMINI_API_KEY / GOOGLE_API_KEY), which the
// client library reads itself.
type GeminiClassifier struct {
	client        *genai.Client
	model         string
	minConfidence float64
}

// NewGeminiClassifier creates a classifier. Empty modelName and zero
// minConfidence select the defaults.
func NewGeminiClassifier(ctx context.Context, modelName string, minConfidence float64) (*GeminiClassifier, error) {
	if modelName == "" {
		modelName = DefaultModel
	}
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiClassifier{client: client, model: modelName, minConfidence: minConfidence}, nil
}

// Classify asks the model to pick one of the candidates. A low-confidence or
// out-of-candidates answer comes back as Uncategorized with the reported
// confidence, never as an error.
func (g *GeminiClassifier) Classify(ctx context.Context, description string, candidates []model.Category) (Suggestion, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: buildPrompt(description, candidates)},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return Suggestion{}, fmt.Errorf("generate content: %w", err)
	}

	raw := resp.Text()
	if raw == "" {
		return Suggestion{}, fmt.Errorf("empty response from model")
	}

	var s Suggestion
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &s); err != nil {
		return Suggestion{}, fmt.Errorf("unmarshal suggestion: %w\nraw response: %s", err, raw)
	}

	if s.Confidence < g.minConfidence || !validCandidate(s.Category, candidates) {
		s.Category = model.Uncategorized
	}
	return s, nil
}

func buildPrompt(description string, candidates []model.Category) string {
	var b strings.Builder
	b.WriteString("You categorize personal bank transactions.\n\n")
	b.WriteString("Transaction description: ")
	b.WriteString(description)
	b.WriteString("\n\nPick exactly one category from this list:\n")
	for _, c := range candidates {
		b.WriteString("- ")
		b.WriteString(string(c))
		b.WriteString("\n")
	}
	b.WriteString("\nOutput STRICT JSON only, no code fences, no extra text.\n")
	b.WriteString("The object must have exactly these fields:\n")
	b.WriteString(`- "category": string (one of the listed categories)` + "\n")
	b.WriteString(`- "confidence": number between 0 and 1` + "\n")
	b.WriteString("Output must begin with \"{\" and end with \"}\".\n")
	return b.String()
}

func validCandidate(c model.Category, candidates []model.Category) bool {
	for _, candidate := range candidates {
		if c == candidate {
			return true
		}
	}
	return false
}

func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// Handle ```json ... ``` or ``` ... ``` wrappers.
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	// If there is still junk around the JSON object, keep only from the
	// first '{' to the last '}'.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}
