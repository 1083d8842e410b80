package retrieval

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BerylCAtieno/scheme-recommender/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var vocabulary = []string{"farmer", "student", "housing", "pension", "health"}

// keywordEmbedder counts vocabulary words, so similarity follows topic.
type keywordEmbedder struct {
	model     string
	docCalls  int
	queries   []string
	failQuery bool
}

func (e *keywordEmbedder) vector(text string) []float32 {
	text = strings.ToLower(text)
	v := make([]float32, len(vocabulary))
	for i, w := range vocabulary {
		v[i] = float32(strings.Count(text, w))
	}
	return v
}

func (e *keywordEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	e.docCalls++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = e.vector(t)
	}
	return out, nil
}

func (e *keywordEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	if e.failQuery {
		return nil, errors.New("quota exceeded")
	}
	e.queries = append(e.queries, text)
	return e.vector(text), nil
}

func (e *keywordEmbedder) Model() string {
	if e.model == "" {
		return "keywords"
	}
	return e.model
}

var schemeDocs = []Document{
	{State: "odisha", Source: "odisha/kalia.txt", Text: "KALIA gives every small farmer cash support. Farmer families also get insurance."},
	{State: "delhi", Source: "delhi/scholarship.txt", Text: "Merit scholarship for a student in class 11 and 12."},
	{State: "kerala", Source: "kerala/life.txt", Text: "LIFE Mission builds housing for the homeless."},
	{State: "punjab", Source: "punjab/pension.txt", Text: "Old age pension and health cover for senior citizens."},
}

func TestBuildAndSearch_RanksBySimilarity(t *testing.T) {
	e := &keywordEmbedder{}
	ix, err := Build(context.Background(), schemeDocs, e, ChunkOptions{Size: DefaultChunkSize, Overlap: DefaultChunkOverlap})
	require.NoError(t, err)
	require.Equal(t, 4, ix.Len())
	assert.Equal(t, "keywords", ix.Model)
	assert.Equal(t, 1, e.docCalls)

	hits := ix.Search(e.vector("farmer needs support"), 2)
	require.Len(t, hits, 2)
	assert.Equal(t, "odisha", hits[0].State)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-9)
	assert.Greater(t, hits[0].Score, hits[1].Score)

	hits = ix.Search(e.vector("pension for a student"), 0)
	require.Len(t, hits, 4)
	assert.ElementsMatch(t, []string{"delhi", "punjab"}, []string{hits[0].State, hits[1].State})
}

func TestSearch_SkipsMismatchedDimensions(t *testing.T) {
	ix := &Index{Chunks: []Chunk{
		{Text: "short", Vector: []float32{1}},
		{Text: "match", Vector: []float32{1, 0}},
	}}

	hits := ix.Search([]float32{1, 0}, 5)
	require.Len(t, hits, 1)
	assert.Equal(t, "match", hits[0].Text)
}

func TestBuild_EmptyCorpus(t *testing.T) {
	_, err := Build(context.Background(), nil, &keywordEmbedder{}, ChunkOptions{})
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestRetriever(t *testing.T) {
	e := &keywordEmbedder{}
	ix, err := Build(context.Background(), schemeDocs, e, ChunkOptions{})
	require.NoError(t, err)

	hits, err := NewRetriever(ix, e, 1).Retrieve(context.Background(), "housing for my family")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "kerala", hits[0].State)
	assert.Equal(t, []string{"housing for my family"}, e.queries)

	e.failQuery = true
	_, err = NewRetriever(ix, e, 1).Retrieve(context.Background(), "anything")
	assert.Error(t, err)
}

func TestOpen_BuildsSavesAndReloads(t *testing.T) {
	root := writeCorpus(t, map[string]string{
		"odisha/kalia.txt":   "KALIA supports every small farmer.",
		"kerala/life.txt":    "LIFE Mission housing.",
		"kerala/notes.docx":  "ignored",
		"punjab/pension.txt": "Old age pension.",
	})
	indexPath := filepath.Join(t.TempDir(), "index", "schemes.json")
	opts := Options{CorpusDir: root, IndexPath: indexPath}
	log := logger.NewTestLogger(t)

	e := &keywordEmbedder{}
	ix, err := Open(context.Background(), opts, e, log)
	require.NoError(t, err)
	assert.Equal(t, 3, ix.Len())
	assert.Equal(t, 1, e.docCalls)

	saved, err := LoadIndex(indexPath)
	require.NoError(t, err)
	assert.Equal(t, ix, saved)

	// A second open reads the saved index without embedding again.
	ix, err = Open(context.Background(), Options{IndexPath: indexPath}, e, log)
	require.NoError(t, err)
	assert.Equal(t, 3, ix.Len())
	assert.Equal(t, 1, e.docCalls)

	// A different embedding model invalidates the saved index.
	other := &keywordEmbedder{model: "other"}
	ix, err = Open(context.Background(), opts, other, log)
	require.NoError(t, err)
	assert.Equal(t, "other", ix.Model)
	assert.Equal(t, 1, other.docCalls)
}

func TestOpen_NothingToLoad(t *testing.T) {
	_, err := Open(context.Background(), Options{IndexPath: filepath.Join(t.TempDir(), "missing.json")},
		&keywordEmbedder{}, logger.NewNoOpLogger())
	assert.Error(t, err)
}
