package retrieval

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultEmbeddingModel = "text-embedding-004"

// Gemini accepts at most this many contents per batch request.
const embedBatchSize = 100

// Embedder turns text into vectors. Documents and queries are embedded
// separately because retrieval models encode the two sides differently.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	Model() string
}

// GeminiEmbedder embeds text with a Gemini embedding model.
type GeminiEmbedder struct {
	client *genai.Client
	name   string
	docs   *genai.EmbeddingModel
	query  *genai.EmbeddingModel
}

func NewGeminiEmbedder(ctx context.Context, apiKey, model string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("embedding requires an API key")
	}
	if model == "" {
		model = DefaultEmbeddingModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	docs := client.EmbeddingModel(model)
	docs.TaskType = genai.TaskTypeRetrievalDocument
	query := client.EmbeddingModel(model)
	query.TaskType = genai.TaskTypeRetrievalQuery

	return &GeminiEmbedder{
		client: client,
		name:   model,
		docs:   docs,
		query:  query,
	}, nil
}

func (e *GeminiEmbedder) Model() string {
	return e.name
}

func (e *GeminiEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += embedBatchSize {
		end := min(start+embedBatchSize, len(texts))

		batch := e.docs.NewBatch()
		for _, t := range texts[start:end] {
			batch.AddContent(genai.Text(t))
		}
		resp, err := e.docs.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("embed documents %d-%d: %w", start, end, err)
		}
		if len(resp.Embeddings) != end-start {
			return nil, fmt.Errorf("embed documents %d-%d: got %d embeddings", start, end, len(resp.Embeddings))
		}
		for _, emb := range resp.Embeddings {
			if emb == nil {
				return nil, fmt.Errorf("embed documents %d-%d: missing embedding", start, end)
			}
			out = append(out, emb.Values)
		}
	}
	return out, nil
}

func (e *GeminiEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.query.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if resp.Embedding == nil {
		return nil, fmt.Errorf("embed query: no embedding returned")
	}
	return resp.Embedding.Values, nil
}

func (e *GeminiEmbedder) Close() error {
	return e.client.Close()
}
