package recommender

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/BerylCAtieno/scheme-recommender/internal/models"
	"github.com/BerylCAtieno/scheme-recommender/internal/retrieval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	p := models.Profile{Objective: "crop insurance"}
	p.Demographics.Location = "  Punjab "
	p.Demographics.Occupation = "Farmer"

	prompt, err := BuildPrompt(p, nil)
	require.NoError(t, err)

	assert.Contains(t, prompt, "government schemes of both central and Punjab.")
	assert.Contains(t, prompt, "in each central and Punjab. For each scheme")
	assert.Contains(t, prompt, "based on the user's location (Punjab)")
	assert.Contains(t, prompt, `"Objective":"crop insurance"`)
	assert.Contains(t, prompt, `"Occupation":"Farmer"`)
	assert.Contains(t, prompt, "**Scheme Name:**")
	assert.Contains(t, prompt, "Central Government Schemes")
	assert.NotContains(t, prompt, "database")
	assert.NotContains(t, prompt, "Scheme documents:")
}

func TestBuildPrompt_DefaultLocation(t *testing.T) {
	prompt, err := BuildPrompt(models.Profile{}, nil)
	require.NoError(t, err)

	assert.Contains(t, prompt, "central and the user's state.")
	assert.Contains(t, prompt, `"Location":""`)
}

func TestBuildPrompt_WithPassages(t *testing.T) {
	prompt, err := BuildPrompt(models.Profile{Objective: "housing"}, []string{"[kerala] LIFE Mission", "[central] PMAY-G"})
	require.NoError(t, err)

	assert.Contains(t, prompt, "in each central and the user's state from the scheme documents below.")
	assert.Contains(t, prompt, "Scheme documents:\n---\n[kerala] LIFE Mission\n---\n[central] PMAY-G\n---\n")
	assert.Less(t, strings.Index(prompt, "Scheme documents:"), strings.Index(prompt, "User Input:"))
}

func TestRetrievalQuery(t *testing.T) {
	assert.Equal(t, "government schemes", RetrievalQuery(models.Profile{}))

	p := models.Profile{Objective: " house repair "}
	p.Demographics.Location = "Kerala"
	p.Demographics.Occupation = "Fisherman"
	p.SpecificRequirements.TypeOfBenefit = "Grant"
	assert.Equal(t, "house repair; Grant; Fisherman; Kerala", RetrievalQuery(p))
}

type fakeRetriever struct {
	hits    []retrieval.Hit
	err     error
	queries []string
}

func (f *fakeRetriever) Retrieve(_ context.Context, query string) ([]retrieval.Hit, error) {
	f.queries = append(f.queries, query)
	return f.hits, f.err
}

func TestGeminiClient_PromptUsesRetrievedPassages(t *testing.T) {
	r := &fakeRetriever{hits: []retrieval.Hit{
		{Chunk: retrieval.Chunk{State: "odisha", Text: "KALIA supports small farmers."}, Score: 0.9},
	}}
	g := &GeminiClient{retriever: r}

	p := models.Profile{Objective: "farm support"}
	p.Demographics.Location = "Odisha"

	prompt, err := g.prompt(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, []string{"farm support; Odisha"}, r.queries)
	assert.Contains(t, prompt, "---\n[odisha] KALIA supports small farmers.\n---\n")
	assert.Contains(t, prompt, "from the scheme documents below")
}

func TestGeminiClient_PromptRetrievalError(t *testing.T) {
	g := &GeminiClient{retriever: &fakeRetriever{err: errors.New("quota exceeded")}}

	_, err := g.prompt(context.Background(), models.Profile{})
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestGeminiClient_PromptWithoutRetriever(t *testing.T) {
	prompt, err := (&GeminiClient{}).prompt(context.Background(), models.Profile{})
	require.NoError(t, err)
	assert.NotContains(t, prompt, "Scheme documents:")
}
