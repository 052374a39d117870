package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiSuggester implements ManifestSuggester using Google's Gemini models.
type GeminiSuggester struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiSuggester(ctx context.Context, apiKey string) (*GeminiSuggester, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.0-flash")
	model.ResponseMIMEType = "application/json"
	// Low temperature: extraction, not creativity.
	model.SetTemperature(0.2)

	return &GeminiSuggester{client: client, model: model}, nil
}

func (s *GeminiSuggester) Close() {
	s.client.Close()
}

func (s *GeminiSuggester) SuggestManifest(ctx context.Context, inventoryText string) ([]Suggestion, error) {
	prompt := fmt.Sprintf("%s\n\nInventory text:\n%s", systemPrompt, inventoryText)

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	var suggestions []Suggestion
	clean := cleanJSONString(responseText.String())
	if err := json.Unmarshal([]byte(clean), &suggestions); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w (raw: %s)", err, clean)
	}

	for i := range suggestions {
		if suggestions[i].Quantity < 1 {
			suggestions[i].Quantity = 1
		}
	}
	return suggestions, nil
}

const systemPrompt = `You extract moving-inventory items for a Japanese moving brokerage.

Read the customer's free-text inventory below and return a JSON array of items:
[{"name": string, "quantity": int, "points": number, "note": string}]

Rules:
- "name": short normalized noun, lowercase ("sofa", "double bed", "refrigerator").
- "quantity": how many; 1 when not stated.
- "points": load-point guess for one unit. Scale: small item 0.5, chair 1,
  desk 2, single bed 3, sofa 4, large wardrobe 5, upright piano 8.
- "note": only when something needs a human check (size unclear, disassembly,
  fragile). Omit otherwise.
- Ignore boxes and loose small goods; the box count is captured separately.
- Return [] when the text contains no movable items.`

// cleanJSONString strips markdown code fences some model responses still
// wrap around JSON despite the JSON response MIME type.
func cleanJSONString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
