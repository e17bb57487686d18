package trip

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tripbot/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GenerateOutput is what a collaborator call produced: the raw text and,
// when the reply was already well-formed JSON, the structured bytes.
type GenerateOutput struct {
	Text       string
	Structured json.RawMessage
}

// Generator is the model collaborator interface. Output is treated as
// untrusted: it may be conforming JSON, JSON wrapped in formatting noise,
// or free prose.
type Generator interface {
	Generate(ctx context.Context, agent models.AgentConfig, input string) (GenerateOutput, error)
}

// GeminiClient calls the Gemini API with a per-stage system instruction.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) Generate(ctx context.Context, agent models.AgentConfig, input string) (GenerateOutput, error) {
	model := g.client.GenerativeModel(g.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(agent.Instructions)},
	}
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(input))
	if err != nil {
		return GenerateOutput{}, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return GenerateOutput{}, fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}

	out := GenerateOutput{Text: sb.String()}
	if trimmed := strings.TrimSpace(out.Text); json.Valid([]byte(trimmed)) {
		out.Structured = json.RawMessage(trimmed)
	}
	return out, nil
}

// Close releases the underlying API client.
func (g *GeminiClient) Close() error {
	return g.client.Close()
}
