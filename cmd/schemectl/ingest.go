package main

import (
	"fmt"
	"os"

	"github.com/BerylCAtieno/scheme-recommender/internal/retrieval"
	"github.com/spf13/cobra"
)

func newIngestCmd() *cobra.Command {
	var (
		dir     string
		out     string
		model   string
		apiKey  string
		size    int
		overlap int
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Chunk and embed a scheme corpus into an index the server can load",
		Example: `  schemectl ingest --dir data/states --out data/index.json
  schemectl ingest --dir data/states --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			docs, err := retrieval.LoadCorpus(dir)
			if err != nil {
				return err
			}
			opts := retrieval.ChunkOptions{Size: size, Overlap: overlap}

			if dryRun {
				chunks := retrieval.Chunks(docs, opts)
				printSuccess(w, fmt.Sprintf("%d documents, %d chunks", len(docs), len(chunks)))
				for _, d := range docs {
					fmt.Fprintf(w, "  %-20s %s\n", d.State, d.Source)
				}
				return nil
			}

			if apiKey == "" {
				apiKey = os.Getenv("GEMINI_API_KEY")
			}
			embedder, err := retrieval.NewGeminiEmbedder(cmd.Context(), apiKey, model)
			if err != nil {
				return err
			}
			defer embedder.Close()

			fmt.Fprintf(w, "%sEmbedding %d documents with %s%s\n", colorYellow, len(docs), embedder.Model(), colorReset)
			ix, err := retrieval.Build(cmd.Context(), docs, embedder, opts)
			if err != nil {
				printError(w, err.Error())
				return err
			}
			if err := ix.Save(out); err != nil {
				return err
			}
			printSuccess(w, fmt.Sprintf("Wrote %d chunks to %s", ix.Len(), out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "data/states", "Corpus root with one folder per state")
	cmd.Flags().StringVarP(&out, "out", "o", "data/index.json", "Index file to write")
	cmd.Flags().StringVar(&model, "model", retrieval.DefaultEmbeddingModel, "Embedding model")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY)")
	cmd.Flags().IntVar(&size, "chunk-size", retrieval.DefaultChunkSize, "Maximum characters per chunk")
	cmd.Flags().IntVar(&overlap, "chunk-overlap", retrieval.DefaultChunkOverlap, "Characters shared by neighbouring chunks")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only load and chunk the corpus")
	return cmd
}
