package retrieval

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BerylCAtieno/scheme-recommender/internal/logger"
	"github.com/BerylCAtieno/scheme-recommender/internal/metrics"
)

const DefaultTopK = 4

// Retriever answers queries against an Index.
type Retriever struct {
	index    *Index
	embedder Embedder
	topK     int
}

func NewRetriever(ix *Index, e Embedder, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{index: ix, embedder: e, topK: topK}
}

// Retrieve embeds query and returns the best matching chunks.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]Hit, error) {
	start := time.Now()
	defer func() {
		metrics.RetrievalDuration.Observe(time.Since(start).Seconds())
	}()

	vec, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	return r.index.Search(vec, r.topK), nil
}

// Options locate the corpus and the saved index.
type Options struct {
	CorpusDir string
	IndexPath string
	Chunking  ChunkOptions
}

// Open loads the index at IndexPath when it exists and was built with e's
// model. Otherwise it builds one from CorpusDir and saves it to IndexPath
// when that is set.
func Open(ctx context.Context, opts Options, e Embedder, log logger.Logger) (*Index, error) {
	if opts.IndexPath != "" {
		ix, err := LoadIndex(opts.IndexPath)
		switch {
		case err == nil && ix.Model == e.Model():
			log.Info("loaded scheme index", map[string]interface{}{
				"path":   opts.IndexPath,
				"chunks": ix.Len(),
			})
			return ix, nil
		case err == nil:
			log.Warn("scheme index built with another model, rebuilding", map[string]interface{}{
				"path":  opts.IndexPath,
				"index": ix.Model,
				"model": e.Model(),
			})
		case !errors.Is(err, os.ErrNotExist):
			return nil, err
		}
	}

	if opts.CorpusDir == "" {
		return nil, fmt.Errorf("no usable index at %q and no corpus directory to build one", opts.IndexPath)
	}

	docs, err := LoadCorpus(opts.CorpusDir)
	if err != nil {
		return nil, err
	}
	log.Info("indexing scheme corpus", map[string]interface{}{
		"dir":       opts.CorpusDir,
		"documents": len(docs),
	})

	ix, err := Build(ctx, docs, e, opts.Chunking)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	if opts.IndexPath != "" {
		if err := ix.Save(opts.IndexPath); err != nil {
			return nil, err
		}
	}
	log.Info("scheme index ready", map[string]interface{}{
		"chunks": ix.Len(),
		"path":   opts.IndexPath,
	})
	return ix, nil
}
