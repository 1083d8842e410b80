package retrieval

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
)

var ErrEmptyCorpus = errors.New("corpus has no indexable text")

// Chunk is one embedded passage of a scheme document.
type Chunk struct {
	State  string    `json:"state"`
	Source string    `json:"source"`
	Text   string    `json:"text"`
	Vector []float32 `json:"vector"`
}

// Hit is a chunk scored against a query.
type Hit struct {
	Chunk
	Score float64
}

// Index is an in-memory vector store. It is immutable once built and safe
// for concurrent searches.
type Index struct {
	Model  string  `json:"model"`
	Chunks []Chunk `json:"chunks"`
}

// ChunkOptions control how documents are split before embedding.
type ChunkOptions struct {
	Size    int
	Overlap int
}

// Chunks splits docs without embedding them.
func Chunks(docs []Document, opts ChunkOptions) []Chunk {
	var chunks []Chunk
	for _, d := range docs {
		for _, text := range Split(d.Text, opts.Size, opts.Overlap) {
			chunks = append(chunks, Chunk{State: d.State, Source: d.Source, Text: text})
		}
	}
	return chunks
}

// Build chunks docs and embeds every chunk with e.
func Build(ctx context.Context, docs []Document, e Embedder, opts ChunkOptions) (*Index, error) {
	chunks := Chunks(docs, opts)
	if len(chunks) == 0 {
		return nil, ErrEmptyCorpus
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := e.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}
	for i := range chunks {
		chunks[i].Vector = vectors[i]
	}

	return &Index{Model: e.Model(), Chunks: chunks}, nil
}

// Search returns the k chunks most similar to query, best first. Chunks
// whose dimension differs from the query are skipped.
func (ix *Index) Search(query []float32, k int) []Hit {
	hits := make([]Hit, 0, len(ix.Chunks))
	for _, c := range ix.Chunks {
		score, ok := cosine(query, c.Vector)
		if !ok {
			continue
		}
		hits = append(hits, Hit{Chunk: c, Score: score})
	}

	slices.SortStableFunc(hits, func(a, b Hit) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

func (ix *Index) Len() int {
	return len(ix.Chunks)
}

// Save writes the index as JSON, creating parent directories.
func (ix *Index) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	data, err := json.Marshal(ix)
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	var ix Index
	if err := json.Unmarshal(data, &ix); err != nil {
		return nil, fmt.Errorf("decode index %s: %w", path, err)
	}
	return &ix, nil
}

func cosine(a, b []float32) (float64, bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0, true
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), true
}
