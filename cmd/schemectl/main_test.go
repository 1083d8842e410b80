package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BerylCAtieno/scheme-recommender/internal/classifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
Objective: skill training
Demographics:
  Age: "22"
  Location: Tamil Nadu
SpecificRequirements:
  TypeOfBenefit: Stipend
`), 0o644))

	p, err := loadProfile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "skill training", p.Objective)
	assert.Equal(t, "22", p.Demographics.Age)
	assert.Equal(t, "Tamil Nadu", p.Demographics.Location)
	assert.Equal(t, "Stipend", p.SpecificRequirements.TypeOfBenefit)

	jsonPath := filepath.Join(dir, "profile.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"Objective":"pension","AdditionalInformation":{"PreviousBeneficiaryStatus":"No"}}`), 0o644))

	p, err = loadProfile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "pension", p.Objective)
	assert.Equal(t, "No", p.AdditionalInformation.PreviousBeneficiaryStatus)
}

func TestApplySets(t *testing.T) {
	p, err := loadProfile("")
	require.NoError(t, err)

	p, err = applySets(p, []string{"Objective=loan=small", "Demographics.Married=Yes"})
	require.NoError(t, err)
	assert.Equal(t, "loan=small", p.Objective)
	assert.Equal(t, "Yes", p.Demographics.Married)

	_, err = applySets(p, []string{"Demographics.Married"})
	assert.Error(t, err)

	_, err = applySets(p, []string{"Demographics.Pets=2"})
	assert.Error(t, err)
}

func TestClassifyCmd_JSON(t *testing.T) {
	raw := "Central Government Schemes\n" +
		"**Scheme Name:** A\n**Scheme Name:** B\n**Scheme Name:** C\n**Scheme Name:** D\n" +
		"State Government Schemes\n**Scheme Name:** E\n"

	root := newRootCmd()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(raw))
	root.SetOut(&out)
	root.SetArgs([]string{"classify", "--json"})
	require.NoError(t, root.Execute())

	var res classifier.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, []string{"A", "B", "C"}, res.Central)
	assert.Equal(t, []string{"E"}, res.State)
}

func runRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestClassifyCmd_Lists(t *testing.T) {
	raw := "## Central Government Schemes\n**Scheme Name:** PM-KISAN\n" +
		"## State Government Schemes\n**Scheme Name:** KALIA\n"

	out, err := runRoot(t, raw, "classify")
	require.NoError(t, err)
	assert.Contains(t, out, "a. Central Government Schemes")
	assert.Contains(t, out, "1. PM-KISAN")
	assert.Contains(t, out, "b. State Government Schemes")
	assert.Contains(t, out, "1. KALIA")
}

func TestClassifyCmd_MarkdownFallback(t *testing.T) {
	out, err := runRoot(t, "# Suggestions\n\nVisit the district office.\n", "classify")
	require.NoError(t, err)
	assert.Contains(t, out, "Suggestions")
	assert.Contains(t, out, "district office")
	assert.NotContains(t, out, "a. Central Government Schemes")
}

func TestSubmitCmd(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  bool
		contains []string
	}{
		{
			name:     "classified reply",
			status:   http.StatusOK,
			body:     `{"result":"Central Government Schemes\n**Scheme Name:** PMAY-G\nState Government Schemes\n**Scheme Name:** Kanyashree\n"}`,
			contains: []string{"Schemes found", "1. PMAY-G", "1. Kanyashree"},
		},
		{
			name:     "markdown reply",
			status:   http.StatusOK,
			body:     `{"result":"# Nothing matched\n\nTry again later."}`,
			contains: []string{"Nothing matched", "Try again later"},
		},
		{
			name:     "error payload",
			status:   http.StatusOK,
			body:     `{"error":"Quota exceeded"}`,
			wantErr:  true,
			contains: []string{"Quota exceeded"},
		},
		{
			name:     "upstream failure",
			status:   http.StatusInternalServerError,
			body:     `oops`,
			wantErr:  true,
			contains: []string{"Failed to fetch schemes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]any
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/get_schemes", r.URL.Path)
				_ = json.NewDecoder(r.Body).Decode(&got)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			out, err := runRoot(t, "", "submit", "--url", srv.URL, "--set", "Objective=housing")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			assert.Equal(t, "housing", got["Objective"])
		})
	}
}

func TestIngestCmd_DryRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "odisha"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "odisha", "kalia.txt"),
		[]byte(strings.Repeat("KALIA supports small farmers with cash. ", 30)), 0o644))

	out, err := runRoot(t, "", "ingest", "--dir", dir, "--dry-run", "--chunk-size", "200", "--chunk-overlap", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "1 documents, 6 chunks")
	assert.Contains(t, out, filepath.Join("odisha", "kalia.txt"))
}
