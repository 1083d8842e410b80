package recommender

import (
	"context"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/scheme-recommender/internal/models"
	"github.com/BerylCAtieno/scheme-recommender/internal/retrieval"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Options tune the generation call.
type Options struct {
	Model       string
	Temperature float32
	TopP        float32
	MaxTokens   int32

	// Retriever grounds the prompt in the scheme corpus. Nil sends the
	// profile alone.
	Retriever Retriever
}

// Retriever finds corpus passages relevant to a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]retrieval.Hit, error)
}

type GeminiClient struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	retriever Retriever
}

func NewGeminiClient(ctx context.Context, apiKey string, opts Options) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(opts.Model)
	model.SetTemperature(opts.Temperature)
	model.SetTopP(opts.TopP)
	model.SetMaxOutputTokens(opts.MaxTokens)

	return &GeminiClient{
		client:    client,
		model:     model,
		retriever: opts.Retriever,
	}, nil
}

func (g *GeminiClient) Close() {
	g.client.Close()
}

// Recommend asks the model for schemes matching p and returns the prompt
// together with the model's markdown reply.
func (g *GeminiClient) Recommend(ctx context.Context, p models.Profile) (string, string, error) {
	prompt, err := g.prompt(ctx, p)
	if err != nil {
		return "", "", err
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return prompt, "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return prompt, "", fmt.Errorf("no content generated")
	}
	return prompt, text, nil
}

// prompt builds the prompt for p, adding the best matching corpus passages
// when a retriever is configured.
func (g *GeminiClient) prompt(ctx context.Context, p models.Profile) (string, error) {
	if g.retriever == nil {
		return BuildPrompt(p, nil)
	}

	hits, err := g.retriever.Retrieve(ctx, RetrievalQuery(p))
	if err != nil {
		return "", fmt.Errorf("retrieve schemes: %w", err)
	}
	passages := make([]string, len(hits))
	for i, h := range hits {
		passages[i] = fmt.Sprintf("[%s] %s", h.State, h.Text)
	}
	return BuildPrompt(p, passages)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return strings.TrimSpace(b.String())
}
